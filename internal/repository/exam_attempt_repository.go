package repository

import (
	"context"

	"exam_integrity_backend/internal/model"

	"gorm.io/gorm"
)

type ExamAttemptRepository struct {
	DB *gorm.DB
}

func NewExamAttemptRepository(db *gorm.DB) *ExamAttemptRepository {
	return &ExamAttemptRepository{DB: db}
}

func (r *ExamAttemptRepository) FindByID(ctx context.Context, id uint) (*model.ExamAttempt, error) {
	var a model.ExamAttempt
	if err := r.DB.WithContext(ctx).First(&a, id).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *ExamAttemptRepository) ListByExam(ctx context.Context, examID uint) ([]model.ExamAttempt, error) {
	var attempts []model.ExamAttempt
	err := r.DB.WithContext(ctx).
		Where("exam_id = ?", examID).
		Order("id ASC").
		Find(&attempts).Error
	return attempts, err
}
