package integrity

// 分档边界：0 为 NONE，1..LowBandMax 为 LOW，不超过 MediumBandMax 为 MEDIUM，其余为 HIGH
const (
	LowBandMax    = 3
	MediumBandMax = 8
)

// ScoreWeights 综合评分的全部权重
type ScoreWeights struct {
	// PerEvent 各类事件的计数权重，未列出的类型权重为 0
	PerEvent map[EventKind]int

	SuspiciousPairBonus int
	StrongPairBonus     int

	SuspiciousPatternBonus       int
	HighlySuspiciousPatternBonus int

	ExternalPasteBonus int
}

// DefaultScoreWeights 标准权重表。COPY 与 PASTE 权重为 0，只通过配对与外部粘贴加分体现
func DefaultScoreWeights() ScoreWeights {
	return ScoreWeights{
		PerEvent: map[EventKind]int{
			FocusLost:      1,
			FocusGained:    0,
			TabSwitch:      2,
			FullscreenExit: 2,
			Copy:           0,
			Paste:          0,
		},
		SuspiciousPairBonus:          2,
		StrongPairBonus:              5,
		SuspiciousPatternBonus:       15,
		HighlySuspiciousPatternBonus: 30,
		ExternalPasteBonus:           5,
	}
}

// Compute 合并事件计数与三项分析结果
func (w ScoreWeights) Compute(counts map[EventKind]int, focus FocusLossPattern, external ExternalPasteAnalysis, copyPaste CopyPasteAnalysis) IntegrityScore {
	var s IntegrityScore

	// 按固定顺序累加，与 map 遍历顺序无关
	for _, kind := range EventKinds {
		s.RawScore += w.PerEvent[kind] * counts[kind]
	}

	s.PairBonus = w.SuspiciousPairBonus*copyPaste.SuspiciousPairs + w.StrongPairBonus*copyPaste.StrongPairs

	switch focus.Flag {
	case FlagHighlySuspicious:
		s.PatternBonus = w.HighlySuspiciousPatternBonus
	case FlagSuspicious:
		s.PatternBonus = w.SuspiciousPatternBonus
	}

	s.ExternalBonus = w.ExternalPasteBonus * external.ExternalPastes

	s.Score = s.RawScore + s.PairBonus + s.PatternBonus + s.ExternalBonus
	s.Band = BandFor(s.Score)
	return s
}

// ComputeIntegrityScore 使用 DefaultScoreWeights 评分
func ComputeIntegrityScore(counts map[EventKind]int, focus FocusLossPattern, external ExternalPasteAnalysis, copyPaste CopyPasteAnalysis) IntegrityScore {
	return DefaultScoreWeights().Compute(counts, focus, external, copyPaste)
}

// BandFor 分数分档
func BandFor(score int) Band {
	switch {
	case score <= 0:
		return BandNone
	case score <= LowBandMax:
		return BandLow
	case score <= MediumBandMax:
		return BandMedium
	default:
		return BandHigh
	}
}
