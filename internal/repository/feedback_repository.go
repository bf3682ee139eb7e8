package repository

import (
	"quiz_backend/internal/model"

	"gorm.io/gorm"
)

type FeedbackRepository struct {
	DB *gorm.DB
}

func NewFeedbackRepository(db *gorm.DB) *FeedbackRepository {
	return &FeedbackRepository{DB: db}
}

func (r *FeedbackRepository) ListAll() ([]model.FeedbackQuestion, error) {
	var qs []model.FeedbackQuestion
	err := r.DB.Preload("Answers").Order("id asc").Find(&qs).Error
	return qs, err
}

func (r *FeedbackRepository) FindByDescription(description string) (*model.FeedbackQuestion, error) {
	var q model.FeedbackQuestion
	err := r.DB.Where("description = ?", description).First(&q).Error
	if err != nil {
		return nil, err
	}
	return &q, nil
}

func (r *FeedbackRepository) CreateWithAnswers(q *model.FeedbackQuestion) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		return tx.Create(q).Error
	})
}

func (r *FeedbackRepository) Count() (int64, error) {
	var count int64
	err := r.DB.Model(&model.FeedbackQuestion{}).Count(&count).Error
	return count, err
}
