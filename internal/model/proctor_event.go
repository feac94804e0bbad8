package model

import (
	"encoding/json"
	"time"
)

// ProctorEvent 客户端监考事件，提交后只读
type ProctorEvent struct {
	BaseModel
	AttemptID  uint            `gorm:"index:idx_attempt_occurred,priority:1;type:bigint unsigned" json:"attemptId"`
	Kind       string          `gorm:"size:32;not null" json:"kind"`
	OccurredAt time.Time       `gorm:"index:idx_attempt_occurred,priority:2;type:datetime(3)" json:"occurredAt"`
	Metadata   json.RawMessage `gorm:"type:json" json:"metadata,omitempty"`
}

func (ProctorEvent) TableName() string {
	return "proctor_events"
}
