package model

type QuestionType string

const (
	QuestionOne  QuestionType = "one"  // single choice
	QuestionMany QuestionType = "many" // multiple choice
	QuestionText QuestionType = "text" // free text
)

func (t QuestionType) Valid() bool {
	return t == QuestionOne || t == QuestionMany || t == QuestionText
}

// Question belongs to exactly one test and embeds its answer key.
// Weight feeds the grade-scale interval check at creation time.
//
// swagger:model Question
type Question struct {
	BaseModel
	TestID      uint         `gorm:"index;not null" json:"testId"`
	Description string       `gorm:"size:250;not null" json:"description"`
	Type        QuestionType `gorm:"size:4;not null" json:"type"`
	Weight      float64      `gorm:"not null;default:1" json:"weight"`
	Answers     []Answer     `gorm:"foreignKey:QuestionID" json:"answers,omitempty"`
}

func (Question) TableName() string {
	return "questions"
}

// FeedbackQuestion is an ungraded survey question shared across tests.
// Every test snapshots the full feedback set that exists when it is created.
//
// swagger:model FeedbackQuestion
type FeedbackQuestion struct {
	BaseModel
	Description string           `gorm:"size:250;not null" json:"description"`
	Type        QuestionType     `gorm:"size:4;not null" json:"type"`
	Answers     []FeedbackAnswer `gorm:"foreignKey:FeedbackQuestionID" json:"answers,omitempty"`
}

func (FeedbackQuestion) TableName() string {
	return "feedback_questions"
}
