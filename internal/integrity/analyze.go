package integrity

// CountEvents 按类型统计事件数；所有已知类型都会出现在结果中，计数可以为 0
func CountEvents(events []Event) map[EventKind]int {
	counts := make(map[EventKind]int, len(EventKinds))
	for _, kind := range EventKinds {
		counts[kind] = 0
	}
	for _, e := range events {
		counts[e.Kind]++
	}
	return counts
}

// Analyze 对一次作答快照运行全部分析
func Analyze(events []Event, answers []AnswerTimestamp, opts FocusLossOptions) Report {
	r := Report{
		EventCounts:    CountEvents(events),
		FocusLoss:      AnalyzeFocusLoss(events, answers, opts),
		CopyPaste:      AnalyzeCopyPaste(events),
		ExternalPastes: AnalyzeExternalPastes(events),
	}
	r.Score = ComputeIntegrityScore(r.EventCounts, r.FocusLoss, r.ExternalPastes, r.CopyPaste)
	return r
}

// IsChronological 事件是否按 Timestamp 升序排列，允许时间相同
func IsChronological(events []Event) bool {
	for i := 1; i < len(events); i++ {
		if events[i].Timestamp.Before(events[i-1].Timestamp) {
			return false
		}
	}
	return true
}
