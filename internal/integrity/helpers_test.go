package integrity

import "time"

var t0 = time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

// at returns t0 offset by ms milliseconds.
func at(ms int) time.Time {
	return t0.Add(time.Duration(ms) * time.Millisecond)
}

func sec(s int) int { return s * 1000 }

func ev(kind EventKind, ms int) Event {
	return Event{Kind: kind, Timestamp: at(ms)}
}

func evMeta(kind EventKind, ms int, meta map[string]any) Event {
	return Event{Kind: kind, Timestamp: at(ms), Metadata: meta}
}

func answer(id string, ms int) AnswerTimestamp {
	return AnswerTimestamp{QuestionID: id, SavedAt: at(ms)}
}
