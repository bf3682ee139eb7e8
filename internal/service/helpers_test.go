package service

import (
	"testing"
	"time"

	"quiz_backend/internal/model"
	"quiz_backend/internal/repository"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	// A second pooled connection would get its own empty in-memory database.
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&model.User{},
		&model.Test{},
		&model.Question{},
		&model.Answer{},
		&model.FeedbackQuestion{},
		&model.FeedbackAnswer{},
		&model.GradeScale{},
		&model.GradeBand{},
		&model.TestSubmission{},
		&model.QuestionAnswerSubmission{},
		&model.FeedbackAnswerSubmission{},
	)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func newUser(t *testing.T, db *gorm.DB, name string) *model.User {
	t.Helper()
	user := &model.User{
		Name:     name,
		Email:    name + "@example.com",
		Password: "hashed",
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user %s: %v", name, err)
	}
	return user
}

type fixture struct {
	db     *gorm.DB
	tests  *TestService
	subs   *SubmissionService
	grades *GradeService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := newTestDB(t)
	grades := NewGradeService(repository.NewGradeRepository(db))
	tests := NewTestService(
		repository.NewTestRepository(db),
		repository.NewFeedbackRepository(db),
		grades,
	)
	subs := NewSubmissionService(
		repository.NewSubmissionRepository(db),
		repository.NewTestRepository(db),
	)
	return &fixture{db: db, tests: tests, subs: subs, grades: grades}
}

// passFailScale partitions [0, 2] into Fail = [0, 1] and Pass = [2, 2].
func passFailScale() GradeScaleRequest {
	return GradeScaleRequest{
		MinValue: 0,
		MaxValue: 2,
		Bands: []GradeBandInput{
			{LowerBound: 0, UpperBound: 1, Label: "Fail"},
			{LowerBound: 2, UpperBound: 2, Label: "Pass"},
		},
	}
}

// twoQuestionTest creates and persists a test with two single-choice
// questions ("Paris"/"London" right, "Berlin"/"Madrid" wrong) and the
// pass/fail scale.
func twoQuestionTest(t *testing.T, f *fixture, ownerID uint) *model.Test {
	t.Helper()
	test, err := f.tests.CreateTest(ownerID, CreateTestRequest{
		Name: "Capitals",
		Questions: []QuestionRequest{
			{
				Description:  "Capital of France?",
				Type:         "one",
				Answers:      []string{"Paris", "Berlin"},
				RightAnswers: []string{"Paris"},
			},
			{
				Description:  "Capital of the UK?",
				Type:         "one",
				Answers:      []string{"London", "Madrid"},
				RightAnswers: []string{"London"},
			},
		},
		Grade: passFailScale(),
	})
	if err != nil {
		t.Fatalf("create test: %v", err)
	}
	return test
}

func openTest(t *testing.T, f *fixture, testID uint) {
	t.Helper()
	ok, err := f.tests.Repo.MarkOpen(testID, time.Now().Add(-time.Minute))
	if err != nil || !ok {
		t.Fatalf("open test: ok=%v err=%v", ok, err)
	}
}

func closeTest(t *testing.T, f *fixture, testID uint) {
	t.Helper()
	ok, err := f.tests.Repo.MarkClosed(testID, time.Now())
	if err != nil || !ok {
		t.Fatalf("close test: ok=%v err=%v", ok, err)
	}
}

// answerID returns the persisted answer ID with the given content on the
// indexed question.
func answerID(t *testing.T, test *model.Test, questionIdx int, content string) uint {
	t.Helper()
	for _, a := range test.Questions[questionIdx].Answers {
		if a.Content == content {
			return a.ID
		}
	}
	t.Fatalf("answer %q not found on question %d", content, questionIdx)
	return 0
}
