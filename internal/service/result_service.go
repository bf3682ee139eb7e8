package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"quiz_backend/internal/model"
	"quiz_backend/internal/repository"
	"quiz_backend/internal/util"
	"quiz_backend/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// overviewCacheTTL bounds staleness of the cached overview. A closed test
// never gains submissions, so the cache only shields repeated reads.
const overviewCacheTTL = 10 * time.Minute

// ResultService builds the two read projections over persisted
// submissions: the owner-facing overview and the per-participant result.
// Both require the test to be fully closed.
type ResultService struct {
	Subs   *repository.SubmissionRepository
	Tests  *repository.TestRepository
	Grades *GradeService
	Cache  *redis.Client // optional
}

func NewResultService(subs *repository.SubmissionRepository, tests *repository.TestRepository, grades *GradeService, cache *redis.Client) *ResultService {
	return &ResultService{Subs: subs, Tests: tests, Grades: grades, Cache: cache}
}

type AnswerOverview struct {
	AnswerID      uint   `json:"answerId,omitempty"`
	Content       string `json:"content"`
	IsRight       bool   `json:"isRight"`
	ChoicesNumber int    `json:"choicesNumber"`
}

type QuestionOverview struct {
	QuestionID         uint               `json:"questionId"`
	Description        string             `json:"description"`
	Type               model.QuestionType `json:"type"`
	AnsweredNumber     int                `json:"answeredNumber"`
	RightAnswersNumber int                `json:"rightAnswersNumber"`
	Answers            []AnswerOverview   `json:"answers"`
}

type FeedbackAnswerOverview struct {
	AnswerID      uint   `json:"answerId,omitempty"`
	Content       string `json:"content"`
	ChoicesNumber int    `json:"choicesNumber"`
}

type FeedbackOverview struct {
	QuestionID     uint                     `json:"questionId"`
	Description    string                   `json:"description"`
	Type           model.QuestionType       `json:"type"`
	AnsweredNumber int                      `json:"answeredNumber"`
	Answers        []FeedbackAnswerOverview `json:"answers"`
}

type OverviewView struct {
	TestID             uint               `json:"testId"`
	Name               string             `json:"name"`
	Description        string             `json:"description"`
	DateOpen           *time.Time         `json:"dateOpen"`
	DateClose          *time.Time         `json:"dateClose"`
	QuestionsNumber    int                `json:"questionsNumber"`
	ParticipantsNumber int                `json:"participantsNumber"`
	Questions          []QuestionOverview `json:"questions"`
	FeedbackQuestions  []FeedbackOverview `json:"feedbackQuestions"`
}

// Overview aggregates all submissions of a closed test into per-question
// choice distributions. Owner-only.
func (s *ResultService) Overview(ctx context.Context, testID, actorID uint) (*OverviewView, error) {
	test, err := s.loadClosedTest(testID, actorID)
	if err != nil {
		return nil, err
	}

	cacheKey := fmt.Sprintf("quiz:overview:%d", testID)
	if s.Cache != nil {
		if cached, err := s.Cache.Get(ctx, cacheKey).Bytes(); err == nil {
			var view OverviewView
			if err := json.Unmarshal(cached, &view); err == nil {
				return &view, nil
			}
		}
	}

	subs, err := s.Subs.ListByTest(testID)
	if err != nil {
		return nil, err
	}

	view := buildOverview(test, subs)

	if s.Cache != nil {
		if payload, err := json.Marshal(view); err == nil {
			if err := s.Cache.Set(ctx, cacheKey, payload, overviewCacheTTL).Err(); err != nil {
				logger.Log.Warn("overview cache write failed", zap.Uint("testId", testID), zap.Error(err))
			}
		}
	}

	return view, nil
}

func buildOverview(test *model.Test, subs []model.TestSubmission) *OverviewView {
	view := &OverviewView{
		TestID:             test.ID,
		Name:               test.Name,
		Description:        test.Description,
		DateOpen:           test.DateOpen,
		DateClose:          test.DateClose,
		QuestionsNumber:    test.QuestionsNumber,
		ParticipantsNumber: len(subs),
	}

	// Group every answer row by question once; all counters derive from it.
	rowsByQuestion := make(map[uint][][]model.QuestionAnswerSubmission, len(test.Questions))
	for i := range subs {
		perQuestion := make(map[uint][]model.QuestionAnswerSubmission)
		for _, row := range subs[i].Answers {
			perQuestion[row.QuestionID] = append(perQuestion[row.QuestionID], row)
		}
		for qid, rows := range perQuestion {
			rowsByQuestion[qid] = append(rowsByQuestion[qid], rows)
		}
	}

	view.Questions = make([]QuestionOverview, len(test.Questions))
	for i, q := range test.Questions {
		qo := QuestionOverview{
			QuestionID:  q.ID,
			Description: q.Description,
			Type:        q.Type,
		}

		participantRows := rowsByQuestion[q.ID]
		qo.AnsweredNumber = len(participantRows)
		for _, rows := range participantRows {
			allRight := len(rows) > 0
			for _, row := range rows {
				if !row.IsRight {
					allRight = false
					break
				}
			}
			if allRight {
				qo.RightAnswersNumber++
			}
		}

		if q.Type == model.QuestionText {
			qo.Answers = groupTextAnswers(participantRows)
		} else {
			counts := make(map[uint]int)
			for _, rows := range participantRows {
				for _, row := range rows {
					counts[row.AnswerID]++
				}
			}
			qo.Answers = make([]AnswerOverview, len(q.Answers))
			for j, a := range q.Answers {
				qo.Answers[j] = AnswerOverview{
					AnswerID:      a.ID,
					Content:       a.Content,
					IsRight:       a.IsRight,
					ChoicesNumber: counts[a.ID],
				}
			}
		}

		view.Questions[i] = qo
	}

	view.FeedbackQuestions = buildFeedbackOverview(test, subs)
	return view
}

// groupTextAnswers reports each distinct submitted text with its
// occurrence count and the correctness it was frozen with.
func groupTextAnswers(participantRows [][]model.QuestionAnswerSubmission) []AnswerOverview {
	order := make([]string, 0)
	grouped := make(map[string]*AnswerOverview)
	for _, rows := range participantRows {
		for _, row := range rows {
			g, ok := grouped[row.Content]
			if !ok {
				g = &AnswerOverview{Content: row.Content, IsRight: row.IsRight}
				grouped[row.Content] = g
				order = append(order, row.Content)
			}
			g.ChoicesNumber++
		}
	}
	out := make([]AnswerOverview, len(order))
	for i, content := range order {
		out[i] = *grouped[content]
	}
	return out
}

func buildFeedbackOverview(test *model.Test, subs []model.TestSubmission) []FeedbackOverview {
	rowsByQuestion := make(map[uint][][]model.FeedbackAnswerSubmission)
	for i := range subs {
		perQuestion := make(map[uint][]model.FeedbackAnswerSubmission)
		for _, row := range subs[i].FeedbackAnswers {
			perQuestion[row.FeedbackQuestionID] = append(perQuestion[row.FeedbackQuestionID], row)
		}
		for qid, rows := range perQuestion {
			rowsByQuestion[qid] = append(rowsByQuestion[qid], rows)
		}
	}

	out := make([]FeedbackOverview, len(test.FeedbackQuestions))
	for i, q := range test.FeedbackQuestions {
		fo := FeedbackOverview{
			QuestionID:  q.ID,
			Description: q.Description,
			Type:        q.Type,
		}

		participantRows := rowsByQuestion[q.ID]
		fo.AnsweredNumber = len(participantRows)

		if q.Type == model.QuestionText {
			order := make([]string, 0)
			grouped := make(map[string]*FeedbackAnswerOverview)
			for _, rows := range participantRows {
				for _, row := range rows {
					g, ok := grouped[row.Content]
					if !ok {
						g = &FeedbackAnswerOverview{Content: row.Content}
						grouped[row.Content] = g
						order = append(order, row.Content)
					}
					g.ChoicesNumber++
				}
			}
			fo.Answers = make([]FeedbackAnswerOverview, len(order))
			for j, content := range order {
				fo.Answers[j] = *grouped[content]
			}
		} else {
			counts := make(map[uint]int)
			for _, rows := range participantRows {
				for _, row := range rows {
					counts[row.AnswerID]++
				}
			}
			fo.Answers = make([]FeedbackAnswerOverview, len(q.Answers))
			for j, a := range q.Answers {
				content := ""
				if a.Content != nil {
					content = *a.Content
				}
				fo.Answers[j] = FeedbackAnswerOverview{
					AnswerID:      a.ID,
					Content:       content,
					ChoicesNumber: counts[a.ID],
				}
			}
		}

		out[i] = fo
	}
	return out
}

type ParticipantAnswer struct {
	AnswerID uint   `json:"answerId,omitempty"`
	Content  string `json:"content"`
	IsRight  bool   `json:"isRight"`
}

type ParticipantQuestion struct {
	QuestionID  uint                `json:"questionId"`
	Description string              `json:"description"`
	Type        model.QuestionType  `json:"type"`
	Answers     []ParticipantAnswer `json:"answers"`
}

type ParticipantFeedbackAnswer struct {
	AnswerID uint   `json:"answerId,omitempty"`
	Content  string `json:"content"`
}

type ParticipantFeedback struct {
	QuestionID  uint                        `json:"questionId"`
	Description string                      `json:"description"`
	Type        model.QuestionType          `json:"type"`
	Answers     []ParticipantFeedbackAnswer `json:"answers"`
}

type ParticipantView struct {
	TestID             uint                  `json:"testId"`
	Name               string                `json:"name"`
	Participant        *UserView             `json:"participant"`
	SubmittedAt        time.Time             `json:"submittedAt"`
	QuestionsNumber    int                   `json:"questionsNumber"`
	RightAnswersNumber int                   `json:"rightAnswersNumber"`
	// Grade is nil when no band contains the score (undefined grade).
	Grade             *string               `json:"grade"`
	Questions         []ParticipantQuestion `json:"questions"`
	FeedbackQuestions []ParticipantFeedback `json:"feedbackQuestions"`
}

// ParticipantResult returns a single participant's scored submission.
// Readable by the owner, and by the participant once the test is closed.
func (s *ResultService) ParticipantResult(testID, userID, actorID uint) (*ParticipantView, error) {
	if actorID != userID {
		// Only the owner may read someone else's result.
		if _, err := s.loadClosedTest(testID, actorID); err != nil {
			return nil, err
		}
	}

	test, err := s.Tests.FindByID(testID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrTestNotFound
		}
		return nil, err
	}
	if !test.IsClosed() {
		return nil, util.ErrResultsNotReady
	}

	sub, err := s.Subs.FindByTestAndUser(testID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrSubmissionNotFound
		}
		return nil, err
	}

	view := &ParticipantView{
		TestID:             test.ID,
		Name:               test.Name,
		Participant:        NewUserView(sub.User),
		SubmittedAt:        sub.SubmittedAt,
		QuestionsNumber:    test.QuestionsNumber,
		RightAnswersNumber: sub.RightAnswersNumber,
	}

	rowsByQuestion := make(map[uint][]model.QuestionAnswerSubmission)
	for _, row := range sub.Answers {
		rowsByQuestion[row.QuestionID] = append(rowsByQuestion[row.QuestionID], row)
	}

	var score float64
	view.Questions = make([]ParticipantQuestion, len(test.Questions))
	for i, q := range test.Questions {
		pq := ParticipantQuestion{
			QuestionID:  q.ID,
			Description: q.Description,
			Type:        q.Type,
		}
		rows := rowsByQuestion[q.ID]
		allRight := len(rows) > 0
		pq.Answers = make([]ParticipantAnswer, len(rows))
		for j, row := range rows {
			pq.Answers[j] = ParticipantAnswer{
				AnswerID: row.AnswerID,
				Content:  row.Content,
				IsRight:  row.IsRight,
			}
			if !row.IsRight {
				allRight = false
			}
		}
		if allRight {
			score += q.Weight
		}
		view.Questions[i] = pq
	}

	if label, err := s.Grades.ResolveForTest(testID, score); err == nil {
		view.Grade = &label
	} else if errors.Is(err, util.ErrNoMatchingBand) {
		logger.Log.Warn("score resolves to no grade band",
			zap.Uint("testId", testID),
			zap.Uint("userId", userID),
			zap.Float64("score", score))
	} else {
		return nil, err
	}

	feedbackRows := make(map[uint][]model.FeedbackAnswerSubmission)
	for _, row := range sub.FeedbackAnswers {
		feedbackRows[row.FeedbackQuestionID] = append(feedbackRows[row.FeedbackQuestionID], row)
	}
	view.FeedbackQuestions = make([]ParticipantFeedback, len(test.FeedbackQuestions))
	for i, q := range test.FeedbackQuestions {
		pf := ParticipantFeedback{
			QuestionID:  q.ID,
			Description: q.Description,
			Type:        q.Type,
		}
		rows := feedbackRows[q.ID]
		pf.Answers = make([]ParticipantFeedbackAnswer, len(rows))
		for j, row := range rows {
			pf.Answers[j] = ParticipantFeedbackAnswer{
				AnswerID: row.AnswerID,
				Content:  row.Content,
			}
		}
		view.FeedbackQuestions[i] = pf
	}

	return view, nil
}

// loadClosedTest checks ownership and the closed-state guard shared by
// both projections.
func (s *ResultService) loadClosedTest(testID, actorID uint) (*model.Test, error) {
	test, err := s.Tests.FindByID(testID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrTestNotFound
		}
		return nil, err
	}
	if test.OwnerID != actorID {
		return nil, util.ErrNotOwner
	}
	if !test.IsClosed() {
		return nil, util.ErrResultsNotReady
	}
	return test, nil
}
