package model

// GradeScale bounds the achievable weighted-score interval of one test
// and partitions (a subrange of) it into labelled bands.
//
// swagger:model GradeScale
type GradeScale struct {
	BaseModel
	TestID   uint        `gorm:"uniqueIndex;not null" json:"testId"`
	MinValue float64     `gorm:"not null" json:"minValue"`
	MaxValue float64     `gorm:"not null" json:"maxValue"`
	Bands    []GradeBand `gorm:"foreignKey:GradeScaleID" json:"bands,omitempty"`
}

func (GradeScale) TableName() string {
	return "grade_scales"
}

// GradeBand is a closed sub-interval [LowerBound, UpperBound] mapped to a
// label. Bands of one scale are stored sorted by Position and never overlap.
//
// swagger:model GradeBand
type GradeBand struct {
	BaseModel
	GradeScaleID uint    `gorm:"index;not null" json:"gradeScaleId"`
	LowerBound   float64 `gorm:"not null" json:"lowerBound"`
	UpperBound   float64 `gorm:"not null" json:"upperBound"`
	Label        string  `gorm:"size:20;not null" json:"label"`
	Position     int     `gorm:"not null" json:"position"`
}

func (GradeBand) TableName() string {
	return "grade_bands"
}

// Contains reports whether score falls inside the band, bounds inclusive.
func (b *GradeBand) Contains(score float64) bool {
	return score >= b.LowerBound && score <= b.UpperBound
}
