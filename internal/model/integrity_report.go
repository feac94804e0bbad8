package model

import (
	"time"

	"exam_integrity_backend/internal/integrity"
)

// AttemptIntegrityReport 单次作答的完整性分析结果
type AttemptIntegrityReport struct {
	AttemptID   uint                       `json:"attemptId"`
	ExamID      uint                       `json:"examId"`
	StudentID   uint                       `json:"studentId"`
	Options     integrity.FocusLossOptions `json:"options"`
	EventCount  int                        `json:"eventCount"`
	AnswerCount int                        `json:"answerCount"`
	OutOfOrder  bool                       `json:"outOfOrder,omitempty"`
	ComputedAt  time.Time                  `json:"computedAt"`
	integrity.Report
}

// AttemptIntegritySummary 考试维度汇总中的一行
type AttemptIntegritySummary struct {
	AttemptID uint                `json:"attemptId"`
	StudentID uint                `json:"studentId"`
	Score     int                 `json:"score"`
	Band      integrity.Band      `json:"band"`
	FocusFlag integrity.FocusFlag `json:"focusFlag"`
}

// ExamIntegritySummary 考试维度汇总
type ExamIntegritySummary struct {
	ExamID   uint                      `json:"examId"`
	Attempts []AttemptIntegritySummary `json:"attempts"`
	Skipped  int                       `json:"skipped"` // 仍在作答中的记录
	ByBand   map[integrity.Band]int    `json:"byBand"`
}

// ArchivedReport 归档结果
type ArchivedReport struct {
	AttemptID uint   `json:"attemptId"`
	Key       string `json:"key"`
	URL       string `json:"url"`
}
