package model

import "time"

// Test is an author-defined quiz: a fixed question set, an open/close
// submission window and an attached grade scale.
//
// DateOpen and DateClose are each set exactly once; both nil means the
// test is still a draft, DateClose set means no further submissions.
//
// swagger:model Test
type Test struct {
	BaseModel
	Name            string     `gorm:"size:150;not null" json:"name"`
	Description     string     `gorm:"size:250" json:"description"`
	OwnerID         uint       `gorm:"index;not null" json:"ownerId"`
	Owner           *User      `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	QuestionsNumber int        `gorm:"not null" json:"questionsNumber"`
	DateOpen        *time.Time `json:"dateOpen"`
	DateClose       *time.Time `json:"dateClose"`

	Questions         []Question         `gorm:"foreignKey:TestID" json:"questions,omitempty"`
	FeedbackQuestions []FeedbackQuestion `gorm:"many2many:test_feedback_questions" json:"feedbackQuestions,omitempty"`
	GradeScale        *GradeScale        `gorm:"foreignKey:TestID" json:"gradeScale,omitempty"`
}

func (Test) TableName() string {
	return "tests"
}

// IsOpen reports whether the test currently accepts submissions.
func (t *Test) IsOpen(now time.Time) bool {
	return t.DateOpen != nil && !t.DateOpen.After(now) && t.DateClose == nil
}

// IsClosed reports whether the submission window has been fully traversed,
// which is the precondition for reading results.
func (t *Test) IsClosed() bool {
	return t.DateOpen != nil && t.DateClose != nil
}
