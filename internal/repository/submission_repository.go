package repository

import (
	"quiz_backend/internal/model"

	"gorm.io/gorm"
)

type SubmissionRepository struct {
	DB *gorm.DB
}

func NewSubmissionRepository(db *gorm.DB) *SubmissionRepository {
	return &SubmissionRepository{DB: db}
}

// CreateWithAnswers persists the submission and all its answer rows in one
// transaction. Either everything lands or nothing does; a duplicate
// (test_id, user_id) pair fails the unique index and rolls everything back.
func (r *SubmissionRepository) CreateWithAnswers(sub *model.TestSubmission) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		return tx.Create(sub).Error
	})
}

func (r *SubmissionRepository) HasSubmitted(testID, userID uint) (bool, error) {
	var count int64
	err := r.DB.Model(&model.TestSubmission{}).
		Where("test_id = ? AND user_id = ?", testID, userID).
		Count(&count).Error
	return count > 0, err
}

func (r *SubmissionRepository) FindByTestAndUser(testID, userID uint) (*model.TestSubmission, error) {
	var sub model.TestSubmission
	err := r.DB.
		Preload("User").
		Preload("Answers", func(db *gorm.DB) *gorm.DB {
			return db.Order("question_answer_submissions.id asc")
		}).
		Preload("FeedbackAnswers", func(db *gorm.DB) *gorm.DB {
			return db.Order("feedback_answer_submissions.id asc")
		}).
		Where("test_id = ? AND user_id = ?", testID, userID).
		First(&sub).Error
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

func (r *SubmissionRepository) ListByTest(testID uint) ([]model.TestSubmission, error) {
	var subs []model.TestSubmission
	err := r.DB.
		Preload("User").
		Preload("Answers").
		Preload("FeedbackAnswers").
		Where("test_id = ?", testID).
		Order("submitted_at asc").
		Find(&subs).Error
	return subs, err
}
