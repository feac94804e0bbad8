package integrity

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func length(n any) map[string]any {
	return map[string]any{MetaLength: n}
}

func TestAnalyzeCopyPasteEmpty(t *testing.T) {
	assert.Equal(t, CopyPasteAnalysis{}, AnalyzeCopyPaste(nil))
	assert.Empty(t, PairCopyPaste(nil))
}

func TestAnalyzeCopyPastePasteWithoutCopy(t *testing.T) {
	events := []Event{
		evMeta(Paste, sec(1), length(10)),
		evMeta(Paste, sec(2), length(12)),
	}

	assert.Equal(t, CopyPasteAnalysis{}, AnalyzeCopyPaste(events))
}

func TestAnalyzeCopyPasteDiscardsOlderCopy(t *testing.T) {
	events := []Event{
		evMeta(Copy, sec(1), length(40)),
		evMeta(Copy, sec(2), length(12)),
		evMeta(Paste, sec(3), length(12)),
	}

	pairs := PairCopyPaste(events)
	require.Len(t, pairs, 1)
	assert.Equal(t, at(sec(2)), pairs[0].CopyAt)
	assert.False(t, pairs[0].LengthMismatch)

	assert.Equal(t, CopyPasteAnalysis{TotalPairs: 1}, AnalyzeCopyPaste(events))
}

func TestAnalyzeCopyPasteCopyIsConsumedOnce(t *testing.T) {
	events := []Event{
		evMeta(Copy, sec(1), length(5)),
		evMeta(Paste, sec(2), length(5)),
		evMeta(Paste, sec(3), length(5)),
	}

	assert.Equal(t, 1, AnalyzeCopyPaste(events).TotalPairs)
}

func TestAnalyzeCopyPasteSuspiciousPair(t *testing.T) {
	events := []Event{
		evMeta(Copy, sec(1), length(5)),
		ev(FullscreenExit, sec(2)),
		evMeta(Paste, sec(3), length(300)),
	}

	got := AnalyzeCopyPaste(events)

	assert.Equal(t, CopyPasteAnalysis{TotalPairs: 1, SuspiciousPairs: 1}, got)
}

func TestAnalyzeCopyPasteStrongPair(t *testing.T) {
	for _, away := range []EventKind{TabSwitch, FocusLost} {
		t.Run(string(away), func(t *testing.T) {
			events := []Event{
				evMeta(Copy, sec(1), length(5)),
				ev(away, sec(2)),
				ev(FocusGained, sec(3)),
				evMeta(Paste, sec(4), length(300)),
			}

			got := AnalyzeCopyPaste(events)

			assert.Equal(t, CopyPasteAnalysis{TotalPairs: 1, StrongPairs: 1}, got)
		})
	}
}

func TestAnalyzeCopyPasteAwayEventMustBeStrictlyBetween(t *testing.T) {
	events := []Event{
		evMeta(Copy, sec(1), length(5)),
		ev(TabSwitch, sec(1)),
		ev(FocusLost, sec(4)),
		evMeta(Paste, sec(4), length(300)),
	}

	got := AnalyzeCopyPaste(events)

	assert.Equal(t, 0, got.StrongPairs)
	assert.Equal(t, 1, got.SuspiciousPairs)
}

func TestAnalyzeCopyPasteAwayEventOutsidePairIgnored(t *testing.T) {
	events := []Event{
		ev(TabSwitch, sec(0)),
		evMeta(Copy, sec(1), length(5)),
		evMeta(Paste, sec(2), length(9)),
		ev(TabSwitch, sec(3)),
	}

	assert.Equal(t, CopyPasteAnalysis{TotalPairs: 1, SuspiciousPairs: 1}, AnalyzeCopyPaste(events))
}

func TestAnalyzeCopyPasteAwayEventWithoutMismatchIsBenign(t *testing.T) {
	events := []Event{
		evMeta(Copy, sec(1), length(5)),
		ev(TabSwitch, sec(2)),
		evMeta(Paste, sec(3), length(5)),
	}

	pairs := PairCopyPaste(events)
	require.Len(t, pairs, 1)
	assert.False(t, pairs[0].LengthMismatch)
	assert.False(t, pairs[0].HasInterveningAwayEvent)
	assert.Equal(t, CopyPasteAnalysis{TotalPairs: 1}, AnalyzeCopyPaste(events))
}

func TestAnalyzeCopyPasteMissingLengthIsNoMismatch(t *testing.T) {
	tests := []struct {
		name  string
		copy  map[string]any
		paste map[string]any
	}{
		{"both missing", nil, nil},
		{"copy missing", nil, length(4)},
		{"paste missing", length(4), nil},
		{"non numeric", length("four"), length(4)},
		{"bool", length(true), length(4)},
		{"null", length(nil), length(4)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events := []Event{
				evMeta(Copy, sec(1), tt.copy),
				ev(TabSwitch, sec(2)),
				evMeta(Paste, sec(3), tt.paste),
			}
			assert.Equal(t, CopyPasteAnalysis{TotalPairs: 1}, AnalyzeCopyPaste(events))
		})
	}
}

func TestAnalyzeCopyPasteLengthEncodings(t *testing.T) {
	tests := []struct {
		name     string
		copy     any
		paste    any
		mismatch bool
	}{
		{"float and int equal", float64(12), 12, false},
		{"json number", json.Number("12"), float64(12), false},
		{"decimal string", "12", int64(12), false},
		{"padded string", " 12 ", uint(12), false},
		{"differ", float64(12), json.Number("13"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events := []Event{
				evMeta(Copy, sec(1), length(tt.copy)),
				evMeta(Paste, sec(2), length(tt.paste)),
			}
			pairs := PairCopyPaste(events)
			require.Len(t, pairs, 1)
			assert.Equal(t, tt.mismatch, pairs[0].LengthMismatch)
		})
	}
}

func TestAnalyzeCopyPasteCountsAreDisjoint(t *testing.T) {
	events := []Event{
		// strong
		evMeta(Copy, sec(1), length(1)),
		ev(TabSwitch, sec(2)),
		evMeta(Paste, sec(3), length(2)),
		// suspicious
		evMeta(Copy, sec(4), length(1)),
		evMeta(Paste, sec(5), length(2)),
		// benign
		evMeta(Copy, sec(6), length(3)),
		evMeta(Paste, sec(7), length(3)),
		// unpaired
		evMeta(Paste, sec(8), length(9)),
	}

	got := AnalyzeCopyPaste(events)

	assert.Equal(t, CopyPasteAnalysis{TotalPairs: 3, SuspiciousPairs: 1, StrongPairs: 1}, got)
	assert.LessOrEqual(t, got.SuspiciousPairs+got.StrongPairs, got.TotalPairs)
}

func TestCopyPastePairPredicates(t *testing.T) {
	assert.True(t, CopyPastePair{LengthMismatch: true, HasInterveningAwayEvent: true}.Strong())
	assert.False(t, CopyPastePair{LengthMismatch: true, HasInterveningAwayEvent: true}.Suspicious())
	assert.True(t, CopyPastePair{LengthMismatch: true}.Suspicious())
	assert.False(t, CopyPastePair{HasInterveningAwayEvent: true}.Strong())
}
