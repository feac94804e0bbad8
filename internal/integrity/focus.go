package integrity

import "time"

// 焦点丢失比例阈值，两个比较都是严格大于
const (
	SuspiciousRatioThreshold       = 0.5
	HighlySuspiciousRatioThreshold = 0.75
)

// FocusLossOptions 焦点窗口参数
type FocusLossOptions struct {
	// WindowSeconds FOCUS_LOST 最早可早于答案保存的秒数
	WindowSeconds int `json:"windowSeconds"`
	// GraceMs FOCUS_GAINED 最晚可晚于答案保存的毫秒数
	GraceMs int `json:"graceMs"`
}

// DefaultFocusLossOptions 默认窗口 30 秒，宽限 5 秒
func DefaultFocusLossOptions() FocusLossOptions {
	return FocusLossOptions{
		WindowSeconds: 30,
		GraceMs:       5000,
	}
}

func (o FocusLossOptions) window() time.Duration {
	return time.Duration(o.WindowSeconds) * time.Second
}

func (o FocusLossOptions) grace() time.Duration {
	return time.Duration(o.GraceMs) * time.Millisecond
}

// AnalyzeFocusLoss 统计保存时间被紧邻的 FOCUS_LOST/FOCUS_GAINED 对包住的答案数。
// 两者之间出现任何其他事件都会打断配对
func AnalyzeFocusLoss(events []Event, answers []AnswerTimestamp, opts FocusLossOptions) FocusLossPattern {
	pattern := FocusLossPattern{
		TotalAnswers: len(answers),
		Flag:         FlagNone,
	}
	if len(answers) == 0 {
		return pattern
	}

	window, grace := opts.window(), opts.grace()
	for _, a := range answers {
		if bracketed(events, a.SavedAt, window, grace) {
			pattern.SuspiciousPairs++
		}
	}

	pattern.Ratio = float64(pattern.SuspiciousPairs) / float64(pattern.TotalAnswers)
	pattern.Flag = flagForRatio(pattern.Ratio)
	return pattern
}

// bracketed 找到第一个满足条件的配对即返回
func bracketed(events []Event, savedAt time.Time, window, grace time.Duration) bool {
	earliest := savedAt.Add(-window)
	latestGain := savedAt.Add(grace)

	for i := 0; i+1 < len(events); i++ {
		lost, gained := events[i], events[i+1]
		if lost.Kind != FocusLost || gained.Kind != FocusGained {
			continue
		}
		if lost.Timestamp.Before(earliest) || lost.Timestamp.After(savedAt) {
			continue
		}
		if gained.Timestamp.After(latestGain) {
			continue
		}
		return true
	}
	return false
}

func flagForRatio(ratio float64) FocusFlag {
	switch {
	case ratio > HighlySuspiciousRatioThreshold:
		return FlagHighlySuspicious
	case ratio > SuspiciousRatioThreshold:
		return FlagSuspicious
	default:
		return FlagNone
	}
}
