package integrity

import (
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

// sessionFixture is a short attempt touching every analyser.
func sessionFixture() ([]Event, []AnswerTimestamp) {
	events := []Event{
		ev(FocusLost, sec(10)),
		ev(FocusGained, sec(14)),
		evMeta(Copy, sec(20), length(18)),
		ev(TabSwitch, sec(25)),
		evMeta(Paste, sec(30), map[string]any{MetaLength: 240, MetaIsExternal: true}),
		evMeta(Copy, sec(40), length(6)),
		evMeta(Paste, sec(41), map[string]any{MetaLength: 6, MetaIsExternal: false}),
		ev(FullscreenExit, sec(60)),
		ev(FocusLost, sec(80)),
		ev(FocusGained, sec(82)),
	}
	answers := []AnswerTimestamp{
		answer("q1", sec(15)),
		answer("q2", sec(85)),
		answer("q3", sec(400)),
	}
	return events, answers
}

func TestAnalyze(t *testing.T) {
	events, answers := sessionFixture()

	got := Analyze(events, answers, DefaultFocusLossOptions())

	want := Report{
		EventCounts: map[EventKind]int{
			FocusLost:      2,
			FocusGained:    2,
			TabSwitch:      1,
			FullscreenExit: 1,
			Copy:           2,
			Paste:          2,
		},
		FocusLoss: FocusLossPattern{
			SuspiciousPairs: 2,
			TotalAnswers:    3,
			Ratio:           2.0 / 3.0,
			Flag:            FlagSuspicious,
		},
		CopyPaste:      CopyPasteAnalysis{TotalPairs: 2, StrongPairs: 1},
		ExternalPastes: ExternalPasteAnalysis{ExternalPastes: 1, InternalPastes: 1},
		Score: IntegrityScore{
			// 2*1 + 1*2 + 1*2 = 6 raw, +5 strong, +15 pattern, +5 external
			Score:         31,
			Band:          BandHigh,
			RawScore:      6,
			PairBonus:     5,
			PatternBonus:  15,
			ExternalBonus: 5,
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Analyze mismatch (-want +got):\n%s", diff)
	}
}

func TestAnalyzeEmpty(t *testing.T) {
	got := Analyze(nil, nil, DefaultFocusLossOptions())

	assert.Equal(t, FocusLossPattern{Flag: FlagNone}, got.FocusLoss)
	assert.Equal(t, CopyPasteAnalysis{}, got.CopyPaste)
	assert.Equal(t, ExternalPasteAnalysis{}, got.ExternalPastes)
	assert.Equal(t, 0, got.Score.Score)
	assert.Equal(t, BandNone, got.Score.Band)
	assert.Len(t, got.EventCounts, len(EventKinds))
}

func TestAnalyzeIsIdempotent(t *testing.T) {
	events, answers := sessionFixture()

	first := Analyze(events, answers, DefaultFocusLossOptions())
	second := Analyze(events, answers, DefaultFocusLossOptions())

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("repeated Analyze differs (-first +second):\n%s", diff)
	}
}

func TestAnalyzeConcurrentCallers(t *testing.T) {
	events, answers := sessionFixture()
	want := Analyze(events, answers, DefaultFocusLossOptions())

	var wg sync.WaitGroup
	results := make([]Report, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = Analyze(events, answers, DefaultFocusLossOptions())
		}(i)
	}
	wg.Wait()

	for _, r := range results {
		assert.True(t, cmp.Equal(want, r))
	}
}

func TestCountEvents(t *testing.T) {
	counts := CountEvents([]Event{ev(Copy, 1), ev(Copy, 2), ev(Paste, 3)})

	assert.Equal(t, 2, counts[Copy])
	assert.Equal(t, 1, counts[Paste])
	assert.Equal(t, 0, counts[TabSwitch])
	assert.Contains(t, counts, FullscreenExit)
}

func TestIsChronological(t *testing.T) {
	assert.True(t, IsChronological(nil))
	assert.True(t, IsChronological([]Event{ev(Copy, 1), ev(Paste, 1), ev(TabSwitch, 5)}))
	assert.False(t, IsChronological([]Event{ev(Copy, 5), ev(Paste, 1)}))
}

func TestEventKindValid(t *testing.T) {
	for _, k := range EventKinds {
		assert.True(t, k.Valid(), string(k))
	}
	assert.False(t, EventKind("focus_lost").Valid())
	assert.False(t, EventKind("").Valid())
}
