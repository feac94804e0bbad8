// Package integrity 分析单次考试作答已冻结的监考日志。
//
// 包内函数均为纯函数：不修改入参，不做 I/O，可并发调用。
// 调用方需保证事件按 Timestamp 升序，否则配对与相邻判断无意义（见 IsChronological）。
package integrity

import "time"

// EventKind 客户端上报的监考事件类型
type EventKind string

const (
	FocusLost      EventKind = "FOCUS_LOST"
	FocusGained    EventKind = "FOCUS_GAINED"
	TabSwitch      EventKind = "TAB_SWITCH"
	FullscreenExit EventKind = "FULLSCREEN_EXIT"
	Copy           EventKind = "COPY"
	Paste          EventKind = "PASTE"
)

// EventKinds 所有已知类型，顺序固定
var EventKinds = []EventKind{FocusLost, FocusGained, TabSwitch, FullscreenExit, Copy, Paste}

// Valid 是否为已知类型
func (k EventKind) Valid() bool {
	for _, known := range EventKinds {
		if k == known {
			return true
		}
	}
	return false
}

// 分析用到的元数据字段
const (
	MetaLength     = "length"
	MetaIsExternal = "isExternal"
)

// Event 一条监考事件
type Event struct {
	Kind      EventKind      `json:"kind"`
	Timestamp time.Time      `json:"timestamp"`
	Metadata  map[string]any `json:"metadata,omitempty"`
}

// AnswerTimestamp 某题答案的保存时间
type AnswerTimestamp struct {
	QuestionID string    `json:"questionId"`
	SavedAt    time.Time `json:"savedAt"`
}

// FocusFlag 焦点丢失分析结论
type FocusFlag string

const (
	FlagNone             FocusFlag = "NONE"
	FlagSuspicious       FocusFlag = "SUSPICIOUS"
	FlagHighlySuspicious FocusFlag = "HIGHLY_SUSPICIOUS"
)

// FocusLossPattern 被相邻失焦/回焦对包住的答案保存次数
type FocusLossPattern struct {
	SuspiciousPairs int       `json:"suspiciousPairs"`
	TotalAnswers    int       `json:"totalAnswers"`
	Ratio           float64   `json:"ratio"`
	Flag            FocusFlag `json:"flag"`
}

// CopyPastePair 一个 COPY 与消费它的 PASTE
type CopyPastePair struct {
	CopyAt                  time.Time `json:"copyAt"`
	PasteAt                 time.Time `json:"pasteAt"`
	LengthMismatch          bool      `json:"lengthMismatch"`
	HasInterveningAwayEvent bool      `json:"hasInterveningAwayEvent"`
}

// Strong 长度不一致且中间有离开事件
func (p CopyPastePair) Strong() bool {
	return p.LengthMismatch && p.HasInterveningAwayEvent
}

// Suspicious 长度不一致但中间没有离开事件
func (p CopyPastePair) Suspicious() bool {
	return p.LengthMismatch && !p.HasInterveningAwayEvent
}

// CopyPasteAnalysis 配对汇总，SuspiciousPairs 与 StrongPairs 互不重叠
type CopyPasteAnalysis struct {
	TotalPairs      int `json:"totalPairs"`
	SuspiciousPairs int `json:"suspiciousPairs"`
	StrongPairs     int `json:"strongPairs"`
}

// ExternalPasteAnalysis 按上报来源区分 PASTE
type ExternalPasteAnalysis struct {
	ExternalPastes int `json:"externalPastes"`
	InternalPastes int `json:"internalPastes"`
}

// Band 分数档位
type Band string

const (
	BandNone   Band = "NONE"
	BandLow    Band = "LOW"
	BandMedium Band = "MEDIUM"
	BandHigh   Band = "HIGH"
)

// IntegrityScore 综合评分。其余字段是 Score 的拆分明细
type IntegrityScore struct {
	Score         int  `json:"score"`
	Band          Band `json:"band"`
	RawScore      int  `json:"rawScore"`
	PairBonus     int  `json:"pairBonus"`
	PatternBonus  int  `json:"patternBonus"`
	ExternalBonus int  `json:"externalBonus"`
}

// Report 一次作答快照的全部分析结果
type Report struct {
	EventCounts    map[EventKind]int     `json:"eventCounts"`
	FocusLoss      FocusLossPattern      `json:"focusLoss"`
	CopyPaste      CopyPasteAnalysis     `json:"copyPaste"`
	ExternalPastes ExternalPasteAnalysis `json:"externalPastes"`
	Score          IntegrityScore        `json:"score"`
}
