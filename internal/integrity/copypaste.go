package integrity

// PairCopyPaste 将 COPY 与其后的 PASTE 配对。
//
// 同一时刻最多只有一个待配对的 COPY，新的 COPY 会替换旧的（旧的不计入）。
// PASTE 消费待配对的 COPY；没有待配对 COPY 时该 PASTE 不成对。
func PairCopyPaste(events []Event) []CopyPastePair {
	var pairs []CopyPastePair
	pending := -1

	for i, e := range events {
		switch e.Kind {
		case Copy:
			pending = i
		case Paste:
			if pending < 0 {
				continue
			}
			pairs = append(pairs, gradePair(events, pending, i))
			pending = -1
		}
	}
	return pairs
}

// gradePair 比较复制与粘贴长度；长度不一致时查找严格位于两者时间之间的离开事件。
// 事件有序时，(copyIdx, pasteIdx) 之外的事件不可能落在两者之间
func gradePair(events []Event, copyIdx, pasteIdx int) CopyPastePair {
	c, p := events[copyIdx], events[pasteIdx]
	pair := CopyPastePair{
		CopyAt:  c.Timestamp,
		PasteAt: p.Timestamp,
	}

	copied, okCopy := numericField(c.Metadata, MetaLength)
	pasted, okPaste := numericField(p.Metadata, MetaLength)
	pair.LengthMismatch = okCopy && okPaste && copied != pasted
	if !pair.LengthMismatch {
		return pair
	}

	for _, e := range events[copyIdx+1 : pasteIdx] {
		if e.Kind != TabSwitch && e.Kind != FocusLost {
			continue
		}
		if e.Timestamp.After(c.Timestamp) && e.Timestamp.Before(p.Timestamp) {
			pair.HasInterveningAwayEvent = true
			break
		}
	}
	return pair
}

// AnalyzeCopyPaste 对所有复制粘贴对分类计数
func AnalyzeCopyPaste(events []Event) CopyPasteAnalysis {
	var out CopyPasteAnalysis
	for _, pair := range PairCopyPaste(events) {
		out.TotalPairs++
		switch {
		case pair.Strong():
			out.StrongPairs++
		case pair.Suspicious():
			out.SuspiciousPairs++
		}
	}
	return out
}
