package model

import "time"

// TestSubmission is one participant's scored attempt at a test. The
// composite unique index closes the duplicate-submission race at the
// store level: a concurrent second insert fails on the constraint and
// is surfaced as an already-submitted conflict.
//
// swagger:model TestSubmission
type TestSubmission struct {
	UUIDBase
	TestID             uint      `gorm:"uniqueIndex:idx_submissions_test_user;not null" json:"testId"`
	UserID             uint      `gorm:"uniqueIndex:idx_submissions_test_user;not null" json:"userId"`
	User               *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	SubmittedAt        time.Time `gorm:"not null" json:"submittedAt"`
	RightAnswersNumber int       `gorm:"not null" json:"rightAnswersNumber"`

	Answers         []QuestionAnswerSubmission `gorm:"foreignKey:SubmissionID" json:"answers,omitempty"`
	FeedbackAnswers []FeedbackAnswerSubmission `gorm:"foreignKey:SubmissionID" json:"feedbackAnswers,omitempty"`
}

func (TestSubmission) TableName() string {
	return "test_submissions"
}

// QuestionAnswerSubmission records one selected candidate answer.
// IsRight is copied from the candidate at submission time so historical
// grading stays stable even if the answer key changes later.
//
// swagger:model QuestionAnswerSubmission
type QuestionAnswerSubmission struct {
	BaseModel
	SubmissionID string `gorm:"index;type:varchar(36);not null" json:"submissionId"`
	QuestionID   uint   `gorm:"index;not null" json:"questionId"`
	AnswerID     uint   `json:"answerId"`
	Content      string `gorm:"size:100;not null" json:"content"`
	IsRight      bool   `gorm:"not null" json:"isRight"`
}

func (QuestionAnswerSubmission) TableName() string {
	return "question_answer_submissions"
}

// FeedbackAnswerSubmission records a feedback selection without any
// correctness judgment.
//
// swagger:model FeedbackAnswerSubmission
type FeedbackAnswerSubmission struct {
	BaseModel
	SubmissionID       string `gorm:"index;type:varchar(36);not null" json:"submissionId"`
	FeedbackQuestionID uint   `gorm:"index;not null" json:"feedbackQuestionId"`
	AnswerID           uint   `json:"answerId"`
	Content            string `gorm:"size:100" json:"content"`
}

func (FeedbackAnswerSubmission) TableName() string {
	return "feedback_answer_submissions"
}
