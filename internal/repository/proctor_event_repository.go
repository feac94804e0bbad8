package repository

import (
	"context"

	"exam_integrity_backend/internal/model"

	"gorm.io/gorm"
)

type ProctorEventRepository struct {
	DB *gorm.DB
}

func NewProctorEventRepository(db *gorm.DB) *ProctorEventRepository {
	return &ProctorEventRepository{DB: db}
}

// ListByAttempt 按发生时间升序返回，同一时间按写入顺序
func (r *ProctorEventRepository) ListByAttempt(ctx context.Context, attemptID uint) ([]model.ProctorEvent, error) {
	var events []model.ProctorEvent
	err := r.DB.WithContext(ctx).
		Where("attempt_id = ?", attemptID).
		Order("occurred_at ASC").
		Order("id ASC").
		Find(&events).Error
	return events, err
}
