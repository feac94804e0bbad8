package model

import "time"

type AttemptStatus string

const (
	AttemptInProgress AttemptStatus = "in_progress"
	AttemptSubmitted  AttemptStatus = "submitted"
	AttemptGraded     AttemptStatus = "graded"
	AttemptAbandoned  AttemptStatus = "abandoned"
	AttemptTimeout    AttemptStatus = "timeout"
)

// Frozen reports whether the attempt's proctoring log can no longer change.
func (s AttemptStatus) Frozen() bool {
	return s != AttemptInProgress
}

// swagger:model ExamAttempt
type ExamAttempt struct {
	BaseModel
	ExamID      uint          `gorm:"index;type:bigint unsigned" json:"examId"`
	StudentID   uint          `gorm:"index;type:bigint unsigned" json:"studentId"`
	Status      AttemptStatus `gorm:"size:20;index;default:'in_progress'" json:"status"`
	StartedAt   time.Time     `json:"startedAt"`
	SubmittedAt *time.Time    `json:"submittedAt,omitempty"`
}

func (ExamAttempt) TableName() string {
	return "exam_attempts"
}
