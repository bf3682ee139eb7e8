package service

import (
	"errors"
	"time"

	"quiz_backend/internal/model"
	"quiz_backend/internal/repository"
	"quiz_backend/internal/util"

	"gorm.io/gorm"
)

// TestService owns test definitions and the open/close lifecycle.
type TestService struct {
	Repo         *repository.TestRepository
	FeedbackRepo *repository.FeedbackRepository
	Grades       *GradeService

	now func() time.Time
}

func NewTestService(repo *repository.TestRepository, feedbackRepo *repository.FeedbackRepository, grades *GradeService) *TestService {
	return &TestService{
		Repo:         repo,
		FeedbackRepo: feedbackRepo,
		Grades:       grades,
		now:          time.Now,
	}
}

type QuestionRequest struct {
	Description string  `json:"description" binding:"required"`
	Type        string  `json:"type" binding:"required"`
	Weight      float64 `json:"weight"`
	// Answers lists the candidate answers shown to participants; an empty
	// list means free text. RightAnswers names the correct subset (or, for
	// free text, the acceptable exact-match strings).
	Answers      []string `json:"answers"`
	RightAnswers []string `json:"rightAnswers"`
}

type CreateTestRequest struct {
	Name        string            `json:"name" binding:"required"`
	Description string            `json:"description"`
	Questions   []QuestionRequest `json:"questions" binding:"required"`
	Grade       GradeScaleRequest `json:"grade" binding:"required"`
}

// CreateTest validates the full definition, then persists the test with
// its questions, answer keys, grade scale and the feedback-question
// snapshot in one transaction. No row is written on any validation error.
func (s *TestService) CreateTest(ownerID uint, req CreateTestRequest) (*model.Test, error) {
	if len(req.Questions) == 0 {
		return nil, util.ErrNoQuestions
	}

	questions := make([]model.Question, 0, len(req.Questions))
	var weightSum float64
	for _, qr := range req.Questions {
		q, err := buildQuestion(qr)
		if err != nil {
			return nil, err
		}
		weightSum += q.Weight
		questions = append(questions, *q)
	}

	scale, err := s.Grades.BuildScale(req.Grade)
	if err != nil {
		return nil, err
	}
	if weightSum < scale.MinValue || weightSum > scale.MaxValue {
		return nil, util.ErrWeightGradeMismatch
	}

	// Snapshot the feedback questions that exist right now; later additions
	// do not attach retroactively.
	feedback, err := s.FeedbackRepo.ListAll()
	if err != nil {
		return nil, err
	}

	test := &model.Test{
		Name:            req.Name,
		Description:     req.Description,
		OwnerID:         ownerID,
		QuestionsNumber: len(questions),
		Questions:       questions,
		GradeScale:      scale,
	}

	if err := s.Repo.CreateTest(test, feedback); err != nil {
		return nil, err
	}
	return test, nil
}

func buildQuestion(qr QuestionRequest) (*model.Question, error) {
	qt := model.QuestionType(qr.Type)
	if !qt.Valid() {
		return nil, util.ErrInvalidQuestionType
	}

	for _, a := range qr.Answers {
		if a == "" {
			return nil, util.ErrEmptyAnswerText
		}
	}
	for _, a := range qr.RightAnswers {
		if a == "" {
			return nil, util.ErrEmptyAnswerText
		}
	}

	var answers []model.Answer
	if len(qr.Answers) > 0 {
		choices := make(map[string]bool, len(qr.Answers))
		for _, a := range qr.Answers {
			choices[a] = true
		}
		right := make(map[string]bool, len(qr.RightAnswers))
		for _, a := range qr.RightAnswers {
			if !choices[a] {
				return nil, util.ErrRightAnswerNotInChoices
			}
			right[a] = true
		}
		answers = make([]model.Answer, len(qr.Answers))
		for i, a := range qr.Answers {
			answers[i] = model.Answer{Content: a, IsRight: right[a]}
		}
	} else {
		// Free text: the right answers themselves are the acceptable strings.
		if qt != model.QuestionText {
			return nil, util.ErrAnswerKeyCount
		}
		answers = make([]model.Answer, len(qr.RightAnswers))
		for i, a := range qr.RightAnswers {
			answers[i] = model.Answer{Content: a, IsRight: true}
		}
	}

	rightCount := len(qr.RightAnswers)
	switch qt {
	case model.QuestionOne:
		if rightCount != 1 {
			return nil, util.ErrAnswerKeyCount
		}
	case model.QuestionMany:
		if rightCount < 1 {
			return nil, util.ErrAnswerKeyCount
		}
	}

	weight := qr.Weight
	if weight <= 0 {
		weight = 1
	}

	return &model.Question{
		Description: qr.Description,
		Type:        qt,
		Weight:      weight,
		Answers:     answers,
	}, nil
}

// UserView is the public projection of a user.
type UserView struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func NewUserView(u *model.User) *UserView {
	if u == nil {
		return nil
	}
	return &UserView{ID: u.ID, Name: u.Name, Email: u.Email}
}

type AnswerView struct {
	ID      uint   `json:"id"`
	Content string `json:"content"`
	// IsRight is present only in the owner's view; the answer key is never
	// leaked to participants.
	IsRight *bool `json:"isRight,omitempty"`
}

type QuestionView struct {
	ID          uint               `json:"id"`
	Description string             `json:"description"`
	Type        model.QuestionType `json:"type"`
	Weight      float64            `json:"weight"`
	Answers     []AnswerView       `json:"answers"`
}

type FeedbackAnswerView struct {
	ID      uint    `json:"id"`
	Content *string `json:"content"`
}

type FeedbackQuestionView struct {
	ID          uint                 `json:"id"`
	Description string               `json:"description"`
	Type        model.QuestionType   `json:"type"`
	Answers     []FeedbackAnswerView `json:"answers"`
}

type TestView struct {
	ID                uint                   `json:"id"`
	Name              string                 `json:"name"`
	Description       string                 `json:"description"`
	DateCreation      time.Time              `json:"dateCreation"`
	DateOpen          *time.Time             `json:"dateOpen"`
	DateClose         *time.Time             `json:"dateClose"`
	Owner             *UserView              `json:"owner"`
	QuestionsNumber   int                    `json:"questionsNumber"`
	Questions         []QuestionView         `json:"questions"`
	FeedbackQuestions []FeedbackQuestionView `json:"feedbackQuestions"`
	GradeScale        *model.GradeScale      `json:"gradeScale,omitempty"`
}

type TestSummaryView struct {
	ID           uint       `json:"id"`
	Name         string     `json:"name"`
	Description  string     `json:"description"`
	DateCreation time.Time  `json:"dateCreation"`
	DateOpen     *time.Time `json:"dateOpen"`
	DateClose    *time.Time `json:"dateClose"`
	Owner        *UserView  `json:"owner"`
}

// GetTest returns the full test view. The answer key and grade scale are
// included only for the owner.
func (s *TestService) GetTest(id, viewerID uint) (*TestView, error) {
	test, err := s.Repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrTestNotFound
		}
		return nil, err
	}

	isOwner := test.OwnerID == viewerID

	view := &TestView{
		ID:              test.ID,
		Name:            test.Name,
		Description:     test.Description,
		DateCreation:    test.CreatedAt,
		DateOpen:        test.DateOpen,
		DateClose:       test.DateClose,
		Owner:           NewUserView(test.Owner),
		QuestionsNumber: test.QuestionsNumber,
	}

	view.Questions = make([]QuestionView, len(test.Questions))
	for i, q := range test.Questions {
		qv := QuestionView{
			ID:          q.ID,
			Description: q.Description,
			Type:        q.Type,
			Weight:      q.Weight,
			Answers:     make([]AnswerView, 0, len(q.Answers)),
		}
		for _, a := range q.Answers {
			av := AnswerView{ID: a.ID, Content: a.Content}
			if isOwner {
				isRight := a.IsRight
				av.IsRight = &isRight
			} else if q.Type == model.QuestionText {
				// Free-text candidates are the answer key itself.
				continue
			}
			qv.Answers = append(qv.Answers, av)
		}
		view.Questions[i] = qv
	}

	view.FeedbackQuestions = make([]FeedbackQuestionView, len(test.FeedbackQuestions))
	for i, q := range test.FeedbackQuestions {
		fv := FeedbackQuestionView{
			ID:          q.ID,
			Description: q.Description,
			Type:        q.Type,
			Answers:     make([]FeedbackAnswerView, len(q.Answers)),
		}
		for j, a := range q.Answers {
			fv.Answers[j] = FeedbackAnswerView{ID: a.ID, Content: a.Content}
		}
		view.FeedbackQuestions[i] = fv
	}

	if isOwner {
		view.GradeScale = test.GradeScale
	}

	return view, nil
}

// ListTests returns concise summaries without question sets.
func (s *TestService) ListTests() ([]TestSummaryView, error) {
	tests, err := s.Repo.List()
	if err != nil {
		return nil, err
	}
	return summarize(tests), nil
}

// ListSubmittedByUser returns summaries of the tests a participant has
// submitted.
func (s *TestService) ListSubmittedByUser(userID uint) ([]TestSummaryView, error) {
	tests, err := s.Repo.ListSubmittedByUser(userID)
	if err != nil {
		return nil, err
	}
	return summarize(tests), nil
}

func summarize(tests []model.Test) []TestSummaryView {
	views := make([]TestSummaryView, len(tests))
	for i, t := range tests {
		views[i] = TestSummaryView{
			ID:           t.ID,
			Name:         t.Name,
			Description:  t.Description,
			DateCreation: t.CreatedAt,
			DateOpen:     t.DateOpen,
			DateClose:    t.DateClose,
			Owner:        NewUserView(t.Owner),
		}
	}
	return views
}

// DeleteTest removes a draft test with its questions, answer keys and
// grade scale. Owner-only; an opened test is part of the submission
// record and cannot be deleted.
func (s *TestService) DeleteTest(testID, actorID uint) error {
	test, err := s.Repo.FindSummaryByID(testID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrTestNotFound
		}
		return err
	}
	if test.OwnerID != actorID {
		return util.ErrNotOwner
	}
	if test.DateOpen != nil {
		return util.ErrAlreadyOpen
	}
	return s.Repo.Delete(testID)
}

// Open transitions a draft test to open. Owner-only, settable exactly
// once; the conditional update in the repository closes the race between
// concurrent opens.
func (s *TestService) Open(testID, actorID uint) error {
	test, err := s.Repo.FindSummaryByID(testID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrTestNotFound
		}
		return err
	}
	if test.OwnerID != actorID {
		return util.ErrNotOwner
	}
	if test.DateOpen != nil {
		return util.ErrAlreadyOpen
	}

	ok, err := s.Repo.MarkOpen(testID, s.now())
	if err != nil {
		return err
	}
	if !ok {
		return util.ErrAlreadyOpen
	}
	return nil
}

// Close transitions an open test to closed. Owner-only, one-way, after
// open only.
func (s *TestService) Close(testID, actorID uint) error {
	test, err := s.Repo.FindSummaryByID(testID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrTestNotFound
		}
		return err
	}
	if test.OwnerID != actorID {
		return util.ErrNotOwner
	}
	if test.DateOpen == nil {
		return util.ErrNotOpenedYet
	}
	if test.DateClose != nil {
		return util.ErrAlreadyClosed
	}

	ok, err := s.Repo.MarkClosed(testID, s.now())
	if err != nil {
		return err
	}
	if !ok {
		return util.ErrAlreadyClosed
	}
	return nil
}
