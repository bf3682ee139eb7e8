package service

import (
	"errors"

	"quiz_backend/internal/model"
	"quiz_backend/internal/repository"
	"quiz_backend/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// FeedbackService manages the shared feedback-question pool that every
// new test snapshots at creation time.
type FeedbackService struct {
	Repo *repository.FeedbackRepository
}

func NewFeedbackService(repo *repository.FeedbackRepository) *FeedbackService {
	return &FeedbackService{Repo: repo}
}

func strPtr(s string) *string { return &s }

func defaultFeedbackQuestions() []model.FeedbackQuestion {
	return []model.FeedbackQuestion{
		{
			Description: "Did you like the test?",
			Type:        model.QuestionOne,
			Answers: []model.FeedbackAnswer{
				{Content: strPtr("Yes")},
				{Content: strPtr("No")},
			},
		},
		{
			Description: "How would you describe the test?",
			Type:        model.QuestionMany,
			Answers: []model.FeedbackAnswer{
				{Content: strPtr("Interesting")},
				{Content: strPtr("Challenging")},
				{Content: strPtr("Too easy")},
				{Content: strPtr("Too hard")},
				{Content: strPtr("Confusing")},
			},
		},
		{
			Description: "Which parts of the test worked well?",
			Type:        model.QuestionMany,
			Answers: []model.FeedbackAnswer{
				{Content: strPtr("Question wording")},
				{Content: strPtr("Answer choices")},
				{Content: strPtr("Length")},
				{Content: strPtr("Topic coverage")},
			},
		},
		{
			Description: "Leave a comment about the test",
			Type:        model.QuestionText,
		},
	}
}

// EnsureDefaults seeds the default feedback questions, keyed by
// description so a restart never duplicates them.
func (s *FeedbackService) EnsureDefaults() error {
	for _, q := range defaultFeedbackQuestions() {
		_, err := s.Repo.FindByDescription(q.Description)
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		question := q
		if err := s.Repo.CreateWithAnswers(&question); err != nil {
			return err
		}
		logger.Log.Info("seeded feedback question", zap.String("description", question.Description))
	}
	return nil
}

// List returns all feedback questions with their candidate answers.
func (s *FeedbackService) List() ([]model.FeedbackQuestion, error) {
	return s.Repo.ListAll()
}
