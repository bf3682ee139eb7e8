package model

// Answer is a candidate answer of a scored question. For free-text
// questions the stored rows are the acceptable exact-match strings.
//
// swagger:model Answer
type Answer struct {
	BaseModel
	QuestionID uint   `gorm:"index;not null" json:"questionId"`
	Content    string `gorm:"size:100;not null" json:"content"`
	IsRight    bool   `gorm:"not null" json:"isRight"`
}

func (Answer) TableName() string {
	return "answers"
}

// FeedbackAnswer is a candidate answer of a feedback question; it carries
// no right/wrong semantics. Content is nil for free-text feedback.
//
// swagger:model FeedbackAnswer
type FeedbackAnswer struct {
	BaseModel
	FeedbackQuestionID uint    `gorm:"index;not null" json:"feedbackQuestionId"`
	Content            *string `gorm:"size:100" json:"content"`
}

func (FeedbackAnswer) TableName() string {
	return "feedback_answers"
}
