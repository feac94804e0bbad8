package repository

import (
	"context"

	"exam_integrity_backend/internal/model"

	"gorm.io/gorm"
)

type AnswerSegmentRepository struct {
	DB *gorm.DB
}

func NewAnswerSegmentRepository(db *gorm.DB) *AnswerSegmentRepository {
	return &AnswerSegmentRepository{DB: db}
}

// ListSavedByAttempt 只返回有保存时间的片段
func (r *AnswerSegmentRepository) ListSavedByAttempt(ctx context.Context, attemptID uint) ([]model.AnswerSegment, error) {
	var segments []model.AnswerSegment
	err := r.DB.WithContext(ctx).
		Select("id", "attempt_id", "question_id", "saved_at").
		Where("attempt_id = ? AND saved_at IS NOT NULL", attemptID).
		Order("saved_at ASC").
		Find(&segments).Error
	return segments, err
}
