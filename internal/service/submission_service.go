package service

import (
	"errors"
	"strings"
	"time"

	"quiz_backend/internal/model"
	"quiz_backend/internal/repository"
	"quiz_backend/internal/util"

	"gorm.io/gorm"
)

// SubmissionService scores a participant's answers against the answer
// keys and persists the submission atomically.
type SubmissionService struct {
	Repo     *repository.SubmissionRepository
	TestRepo *repository.TestRepository

	now func() time.Time
}

func NewSubmissionService(repo *repository.SubmissionRepository, testRepo *repository.TestRepository) *SubmissionService {
	return &SubmissionService{
		Repo:     repo,
		TestRepo: testRepo,
		now:      time.Now,
	}
}

type QuestionSubmission struct {
	QuestionID uint   `json:"questionId"`
	AnswerIDs  []uint `json:"answerIds"`
	// Content carries the free-text answer for text questions.
	Content string `json:"content"`
}

type FeedbackSubmission struct {
	FeedbackQuestionID uint   `json:"feedbackQuestionId"`
	AnswerIDs          []uint `json:"answerIds"`
	Content            string `json:"content"`
}

type SubmitRequest struct {
	Questions         []QuestionSubmission `json:"questions" binding:"required"`
	FeedbackQuestions []FeedbackSubmission `json:"feedbackQuestions"`
}

// Submit validates the submission against the test definition, scores it
// and persists submission plus answer rows in one transaction.
//
// A question contributes 1 to the right-answer count only when every
// selected answer is right; one wrong selection on a multi-choice
// question zeroes that question. Each answer row freezes the candidate's
// is-right flag at submission time.
func (s *SubmissionService) Submit(testID, userID uint, req SubmitRequest) (*model.TestSubmission, error) {
	test, err := s.TestRepo.FindByID(testID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrTestNotFound
		}
		return nil, err
	}

	now := s.now()
	if test.DateClose != nil {
		return nil, util.ErrTestClosed
	}
	if test.DateOpen == nil {
		return nil, util.ErrTestNotOpen
	}
	if test.DateOpen.After(now) {
		// Stored open date ahead of the clock: a data inconsistency, not a
		// client mistake.
		return nil, util.ErrOpenDateInFuture
	}

	submitted, err := s.Repo.HasSubmitted(testID, userID)
	if err != nil {
		return nil, err
	}
	if submitted {
		return nil, util.ErrAlreadySubmitted
	}

	questionsByID := make(map[uint]*model.Question, len(test.Questions))
	for i := range test.Questions {
		questionsByID[test.Questions[i].ID] = &test.Questions[i]
	}
	feedbackByID := make(map[uint]*model.FeedbackQuestion, len(test.FeedbackQuestions))
	for i := range test.FeedbackQuestions {
		feedbackByID[test.FeedbackQuestions[i].ID] = &test.FeedbackQuestions[i]
	}

	answeredQuestions := make(map[uint]bool, len(req.Questions))
	rightCount := 0
	rows := make([]model.QuestionAnswerSubmission, 0, len(req.Questions))

	for _, qs := range req.Questions {
		question, ok := questionsByID[qs.QuestionID]
		if !ok {
			return nil, util.ErrUnknownQuestion
		}
		if answeredQuestions[qs.QuestionID] {
			return nil, util.ErrUnknownQuestion
		}
		answeredQuestions[qs.QuestionID] = true

		questionRows, allRight, err := scoreQuestion(question, qs)
		if err != nil {
			return nil, err
		}
		if allRight {
			rightCount++
		}
		rows = append(rows, questionRows...)
	}
	for id := range questionsByID {
		if !answeredQuestions[id] {
			return nil, util.ErrMissingAnswer
		}
	}

	answeredFeedback := make(map[uint]bool, len(req.FeedbackQuestions))
	feedbackRows := make([]model.FeedbackAnswerSubmission, 0, len(req.FeedbackQuestions))
	for _, fs := range req.FeedbackQuestions {
		question, ok := feedbackByID[fs.FeedbackQuestionID]
		if !ok {
			return nil, util.ErrUnknownQuestion
		}
		answeredFeedback[fs.FeedbackQuestionID] = true

		fr, err := recordFeedback(question, fs)
		if err != nil {
			return nil, err
		}
		feedbackRows = append(feedbackRows, fr...)
	}
	for id := range feedbackByID {
		if !answeredFeedback[id] {
			return nil, util.ErrMissingAnswer
		}
	}

	sub := &model.TestSubmission{
		TestID:             testID,
		UserID:             userID,
		SubmittedAt:        now,
		RightAnswersNumber: rightCount,
		Answers:            rows,
		FeedbackAnswers:    feedbackRows,
	}

	if err := s.Repo.CreateWithAnswers(sub); err != nil {
		// The unique index on (test_id, user_id) closes the check-then-act
		// race between concurrent submissions by the same participant.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, util.ErrAlreadySubmitted
		}
		return nil, err
	}
	return sub, nil
}

func scoreQuestion(question *model.Question, qs QuestionSubmission) ([]model.QuestionAnswerSubmission, bool, error) {
	if question.Type == model.QuestionText {
		content := strings.TrimSpace(qs.Content)
		if content == "" {
			return nil, false, util.ErrMissingAnswer
		}
		row := model.QuestionAnswerSubmission{
			QuestionID: question.ID,
			Content:    content,
		}
		for i := range question.Answers {
			if question.Answers[i].Content == content {
				row.AnswerID = question.Answers[i].ID
				row.IsRight = question.Answers[i].IsRight
				break
			}
		}
		return []model.QuestionAnswerSubmission{row}, row.IsRight, nil
	}

	if len(qs.AnswerIDs) == 0 {
		return nil, false, util.ErrMissingAnswer
	}

	answersByID := make(map[uint]*model.Answer, len(question.Answers))
	for i := range question.Answers {
		answersByID[question.Answers[i].ID] = &question.Answers[i]
	}

	rows := make([]model.QuestionAnswerSubmission, 0, len(qs.AnswerIDs))
	allRight := true
	seen := make(map[uint]bool, len(qs.AnswerIDs))
	for _, answerID := range qs.AnswerIDs {
		answer, ok := answersByID[answerID]
		if !ok || seen[answerID] {
			return nil, false, util.ErrUnknownAnswer
		}
		seen[answerID] = true
		if !answer.IsRight {
			allRight = false
		}
		rows = append(rows, model.QuestionAnswerSubmission{
			QuestionID: question.ID,
			AnswerID:   answer.ID,
			Content:    answer.Content,
			IsRight:    answer.IsRight,
		})
	}
	return rows, allRight, nil
}

func recordFeedback(question *model.FeedbackQuestion, fs FeedbackSubmission) ([]model.FeedbackAnswerSubmission, error) {
	if question.Type == model.QuestionText {
		content := strings.TrimSpace(fs.Content)
		if content == "" {
			return nil, util.ErrMissingAnswer
		}
		return []model.FeedbackAnswerSubmission{{
			FeedbackQuestionID: question.ID,
			Content:            content,
		}}, nil
	}

	if len(fs.AnswerIDs) == 0 {
		return nil, util.ErrMissingAnswer
	}

	answersByID := make(map[uint]*model.FeedbackAnswer, len(question.Answers))
	for i := range question.Answers {
		answersByID[question.Answers[i].ID] = &question.Answers[i]
	}

	rows := make([]model.FeedbackAnswerSubmission, 0, len(fs.AnswerIDs))
	for _, answerID := range fs.AnswerIDs {
		answer, ok := answersByID[answerID]
		if !ok {
			return nil, util.ErrUnknownAnswer
		}
		content := ""
		if answer.Content != nil {
			content = *answer.Content
		}
		rows = append(rows, model.FeedbackAnswerSubmission{
			FeedbackQuestionID: question.ID,
			AnswerID:           answer.ID,
			Content:            content,
		})
	}
	return rows, nil
}

// GetSubmission returns one participant's submission for a test.
func (s *SubmissionService) GetSubmission(testID, userID uint) (*model.TestSubmission, error) {
	sub, err := s.Repo.FindByTestAndUser(testID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrSubmissionNotFound
		}
		return nil, err
	}
	return sub, nil
}
