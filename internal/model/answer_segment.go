package model

import "time"

// AnswerSegment 作答片段；SavedAt 为空表示从未保存
type AnswerSegment struct {
	BaseModel
	AttemptID  uint       `gorm:"index;type:bigint unsigned" json:"attemptId"`
	QuestionID uint       `gorm:"index;type:bigint unsigned" json:"questionId"`
	Content    string     `gorm:"type:text" json:"-"`
	SavedAt    *time.Time `gorm:"type:datetime(3)" json:"savedAt,omitempty"`
}

func (AnswerSegment) TableName() string {
	return "answer_segments"
}
