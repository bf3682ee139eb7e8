package repository

import (
	"time"

	"quiz_backend/internal/model"

	"gorm.io/gorm"
)

type TestRepository struct {
	DB *gorm.DB
}

func NewTestRepository(db *gorm.DB) *TestRepository {
	return &TestRepository{DB: db}
}

// CreateTest persists a test together with its questions, answer keys and
// grade scale, and attaches the feedback-question snapshot. One
// transaction: a validation failure partway through leaves no rows behind.
func (r *TestRepository) CreateTest(test *model.Test, feedback []model.FeedbackQuestion) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(test).Error; err != nil {
			return err
		}
		if len(feedback) > 0 {
			if err := tx.Model(test).Association("FeedbackQuestions").Append(&feedback); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *TestRepository) FindByID(id uint) (*model.Test, error) {
	var test model.Test
	err := r.DB.
		Preload("Owner").
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("questions.id asc")
		}).
		Preload("Questions.Answers", func(db *gorm.DB) *gorm.DB {
			return db.Order("answers.id asc")
		}).
		Preload("FeedbackQuestions", func(db *gorm.DB) *gorm.DB {
			return db.Order("feedback_questions.id asc")
		}).
		Preload("FeedbackQuestions.Answers").
		Preload("GradeScale.Bands", func(db *gorm.DB) *gorm.DB {
			return db.Order("grade_bands.position asc")
		}).
		First(&test, id).Error
	return &test, err
}

// FindSummaryByID loads a test row without its question set.
func (r *TestRepository) FindSummaryByID(id uint) (*model.Test, error) {
	var test model.Test
	err := r.DB.First(&test, id).Error
	return &test, err
}

func (r *TestRepository) List() ([]model.Test, error) {
	var tests []model.Test
	err := r.DB.Preload("Owner").Order("created_at desc").Find(&tests).Error
	return tests, err
}

// MarkOpen stamps date_open once. The conditional update makes the
// transition race-free: a second concurrent open matches zero rows.
func (r *TestRepository) MarkOpen(id uint, now time.Time) (bool, error) {
	res := r.DB.Model(&model.Test{}).
		Where("id = ? AND date_open IS NULL", id).
		Update("date_open", now)
	return res.RowsAffected > 0, res.Error
}

// MarkClosed stamps date_close once, only on an already-opened test.
func (r *TestRepository) MarkClosed(id uint, now time.Time) (bool, error) {
	res := r.DB.Model(&model.Test{}).
		Where("id = ? AND date_open IS NOT NULL AND date_close IS NULL", id).
		Update("date_close", now)
	return res.RowsAffected > 0, res.Error
}

func (r *TestRepository) Delete(id uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		var questionIDs []uint
		if err := tx.Model(&model.Question{}).Where("test_id = ?", id).Pluck("id", &questionIDs).Error; err != nil {
			return err
		}
		if len(questionIDs) > 0 {
			if err := tx.Where("question_id IN ?", questionIDs).Delete(&model.Answer{}).Error; err != nil {
				return err
			}
			if err := tx.Where("test_id = ?", id).Delete(&model.Question{}).Error; err != nil {
				return err
			}
		}
		var scaleIDs []uint
		if err := tx.Model(&model.GradeScale{}).Where("test_id = ?", id).Pluck("id", &scaleIDs).Error; err != nil {
			return err
		}
		if len(scaleIDs) > 0 {
			if err := tx.Where("grade_scale_id IN ?", scaleIDs).Delete(&model.GradeBand{}).Error; err != nil {
				return err
			}
			if err := tx.Where("test_id = ?", id).Delete(&model.GradeScale{}).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&model.Test{}, id).Error
	})
}

// ListSubmittedByUser returns the tests a participant has a submission for.
func (r *TestRepository) ListSubmittedByUser(userID uint) ([]model.Test, error) {
	var tests []model.Test
	err := r.DB.Preload("Owner").
		Joins("JOIN test_submissions s ON s.test_id = tests.id").
		Where("s.user_id = ? AND s.deleted_at IS NULL", userID).
		Order("s.submitted_at desc").
		Find(&tests).Error
	return tests, err
}
