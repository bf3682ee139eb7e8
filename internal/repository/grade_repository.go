package repository

import (
	"quiz_backend/internal/model"

	"gorm.io/gorm"
)

type GradeRepository struct {
	DB *gorm.DB
}

func NewGradeRepository(db *gorm.DB) *GradeRepository {
	return &GradeRepository{DB: db}
}

func (r *GradeRepository) FindScaleByTestID(testID uint) (*model.GradeScale, error) {
	var scale model.GradeScale
	err := r.DB.
		Preload("Bands", func(db *gorm.DB) *gorm.DB {
			return db.Order("grade_bands.position asc")
		}).
		Where("test_id = ?", testID).
		First(&scale).Error
	if err != nil {
		return nil, err
	}
	return &scale, nil
}
