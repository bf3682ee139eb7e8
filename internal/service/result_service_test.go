package service

import (
	"context"
	"errors"
	"testing"

	"quiz_backend/internal/repository"
	"quiz_backend/internal/util"
)

func newResultService(f *fixture) *ResultService {
	return NewResultService(
		repository.NewSubmissionRepository(f.db),
		repository.NewTestRepository(f.db),
		f.grades,
		nil,
	)
}

func TestOverviewAggregatesSubmissions(t *testing.T) {
	f := newFixture(t)
	results := newResultService(f)
	owner := newUser(t, f.db, "owner")
	alice := newUser(t, f.db, "alice")
	bob := newUser(t, f.db, "bob")

	test := twoQuestionTest(t, f, owner.ID)
	openTest(t, f, test.ID)

	submit := func(userID uint, first, second string) {
		t.Helper()
		_, err := f.subs.Submit(test.ID, userID, SubmitRequest{
			Questions: []QuestionSubmission{
				{QuestionID: test.Questions[0].ID, AnswerIDs: []uint{answerID(t, test, 0, first)}},
				{QuestionID: test.Questions[1].ID, AnswerIDs: []uint{answerID(t, test, 1, second)}},
			},
		})
		if err != nil {
			t.Fatalf("submit: %v", err)
		}
	}
	submit(alice.ID, "Paris", "London")
	submit(bob.ID, "Paris", "Madrid")

	closeTest(t, f, test.ID)

	view, err := results.Overview(context.Background(), test.ID, owner.ID)
	if err != nil {
		t.Fatalf("Overview: %v", err)
	}

	if view.ParticipantsNumber != 2 {
		t.Fatalf("ParticipantsNumber = %d, want 2", view.ParticipantsNumber)
	}
	if len(view.Questions) != 2 {
		t.Fatalf("got %d question overviews, want 2", len(view.Questions))
	}

	q0 := view.Questions[0]
	if q0.AnsweredNumber != 2 || q0.RightAnswersNumber != 2 {
		t.Errorf("question 0: answered=%d right=%d, want 2/2", q0.AnsweredNumber, q0.RightAnswersNumber)
	}
	q1 := view.Questions[1]
	if q1.AnsweredNumber != 2 || q1.RightAnswersNumber != 1 {
		t.Errorf("question 1: answered=%d right=%d, want 2/1", q1.AnsweredNumber, q1.RightAnswersNumber)
	}

	counts := make(map[string]int)
	for _, a := range q1.Answers {
		counts[a.Content] = a.ChoicesNumber
	}
	if counts["London"] != 1 || counts["Madrid"] != 1 {
		t.Errorf("question 1 choice counts = %v, want London:1 Madrid:1", counts)
	}
}

func TestOverviewGroupsFreeTextAnswers(t *testing.T) {
	f := newFixture(t)
	results := newResultService(f)
	owner := newUser(t, f.db, "owner")
	alice := newUser(t, f.db, "alice")
	bob := newUser(t, f.db, "bob")
	carol := newUser(t, f.db, "carol")

	test, err := f.tests.CreateTest(owner.ID, CreateTestRequest{
		Name: "Text",
		Questions: []QuestionRequest{
			{
				Description:  "Capital of France?",
				Type:         "text",
				Weight:       2,
				RightAnswers: []string{"Paris"},
			},
		},
		Grade: passFailScale(),
	})
	if err != nil {
		t.Fatalf("create test: %v", err)
	}
	openTest(t, f, test.ID)

	for userID, content := range map[uint]string{
		alice.ID: "Paris",
		bob.ID:   "Paris",
		carol.ID: "Lyon",
	} {
		_, err := f.subs.Submit(test.ID, userID, SubmitRequest{
			Questions: []QuestionSubmission{
				{QuestionID: test.Questions[0].ID, Content: content},
			},
		})
		if err != nil {
			t.Fatalf("submit %q: %v", content, err)
		}
	}
	closeTest(t, f, test.ID)

	view, err := results.Overview(context.Background(), test.ID, owner.ID)
	if err != nil {
		t.Fatalf("Overview: %v", err)
	}

	groups := make(map[string]AnswerOverview)
	for _, a := range view.Questions[0].Answers {
		groups[a.Content] = a
	}
	if len(groups) != 2 {
		t.Fatalf("got %d distinct texts, want 2: %v", len(groups), groups)
	}
	if g := groups["Paris"]; g.ChoicesNumber != 2 || !g.IsRight {
		t.Errorf("Paris group = %+v, want count 2 and right", g)
	}
	if g := groups["Lyon"]; g.ChoicesNumber != 1 || g.IsRight {
		t.Errorf("Lyon group = %+v, want count 1 and wrong", g)
	}
}

func TestOverviewAccessGuards(t *testing.T) {
	f := newFixture(t)
	results := newResultService(f)
	owner := newUser(t, f.db, "owner")
	other := newUser(t, f.db, "other")

	test := twoQuestionTest(t, f, owner.ID)
	openTest(t, f, test.ID)

	if _, err := results.Overview(context.Background(), test.ID, owner.ID); !errors.Is(err, util.ErrResultsNotReady) {
		t.Fatalf("Overview on open test error = %v, want %v", err, util.ErrResultsNotReady)
	}

	closeTest(t, f, test.ID)

	if _, err := results.Overview(context.Background(), test.ID, other.ID); !errors.Is(err, util.ErrNotOwner) {
		t.Fatalf("Overview by non-owner error = %v, want %v", err, util.ErrNotOwner)
	}
	if _, err := results.Overview(context.Background(), 9999, owner.ID); !errors.Is(err, util.ErrTestNotFound) {
		t.Fatalf("Overview of unknown test error = %v, want %v", err, util.ErrTestNotFound)
	}
}

func TestParticipantResultGrading(t *testing.T) {
	f := newFixture(t)
	results := newResultService(f)
	owner := newUser(t, f.db, "owner")
	alice := newUser(t, f.db, "alice")
	bob := newUser(t, f.db, "bob")

	test := twoQuestionTest(t, f, owner.ID)
	openTest(t, f, test.ID)

	submit := func(userID uint, first, second string) {
		t.Helper()
		_, err := f.subs.Submit(test.ID, userID, SubmitRequest{
			Questions: []QuestionSubmission{
				{QuestionID: test.Questions[0].ID, AnswerIDs: []uint{answerID(t, test, 0, first)}},
				{QuestionID: test.Questions[1].ID, AnswerIDs: []uint{answerID(t, test, 1, second)}},
			},
		})
		if err != nil {
			t.Fatalf("submit: %v", err)
		}
	}
	submit(alice.ID, "Paris", "London")
	submit(bob.ID, "Paris", "Madrid")

	// Participants cannot read results while the test is open.
	if _, err := results.ParticipantResult(test.ID, alice.ID, alice.ID); !errors.Is(err, util.ErrResultsNotReady) {
		t.Fatalf("ParticipantResult on open test error = %v, want %v", err, util.ErrResultsNotReady)
	}

	closeTest(t, f, test.ID)

	// Both questions right: weight sum 2 falls in the Pass band.
	view, err := results.ParticipantResult(test.ID, alice.ID, alice.ID)
	if err != nil {
		t.Fatalf("ParticipantResult: %v", err)
	}
	if view.RightAnswersNumber != 2 {
		t.Fatalf("RightAnswersNumber = %d, want 2", view.RightAnswersNumber)
	}
	if view.Grade == nil || *view.Grade != "Pass" {
		t.Fatalf("Grade = %v, want Pass", view.Grade)
	}

	// One right: score 1 falls in the Fail band. The owner may read it.
	view, err = results.ParticipantResult(test.ID, bob.ID, owner.ID)
	if err != nil {
		t.Fatalf("ParticipantResult as owner: %v", err)
	}
	if view.Grade == nil || *view.Grade != "Fail" {
		t.Fatalf("Grade = %v, want Fail", view.Grade)
	}

	// A participant cannot read someone else's result.
	if _, err := results.ParticipantResult(test.ID, alice.ID, bob.ID); !errors.Is(err, util.ErrNotOwner) {
		t.Fatalf("cross-participant read error = %v, want %v", err, util.ErrNotOwner)
	}

	// No submission for the owner.
	if _, err := results.ParticipantResult(test.ID, owner.ID, owner.ID); !errors.Is(err, util.ErrSubmissionNotFound) {
		t.Fatalf("missing submission error = %v, want %v", err, util.ErrSubmissionNotFound)
	}
}

func TestParticipantResultUndefinedGrade(t *testing.T) {
	f := newFixture(t)
	results := newResultService(f)
	owner := newUser(t, f.db, "owner")
	alice := newUser(t, f.db, "alice")

	// Bands leave a gap at score 1.
	test, err := f.tests.CreateTest(owner.ID, CreateTestRequest{
		Name: "Gappy",
		Questions: []QuestionRequest{
			{Description: "Q1", Type: "one", Answers: []string{"a", "b"}, RightAnswers: []string{"a"}},
			{Description: "Q2", Type: "one", Answers: []string{"c", "d"}, RightAnswers: []string{"c"}},
		},
		Grade: GradeScaleRequest{
			MinValue: 0, MaxValue: 2,
			Bands: []GradeBandInput{
				{LowerBound: 0, UpperBound: 0, Label: "Zero"},
				{LowerBound: 2, UpperBound: 2, Label: "Full"},
			},
		},
	})
	if err != nil {
		t.Fatalf("create test: %v", err)
	}
	openTest(t, f, test.ID)

	_, err = f.subs.Submit(test.ID, alice.ID, SubmitRequest{
		Questions: []QuestionSubmission{
			{QuestionID: test.Questions[0].ID, AnswerIDs: []uint{answerID(t, test, 0, "a")}},
			{QuestionID: test.Questions[1].ID, AnswerIDs: []uint{answerID(t, test, 1, "d")}},
		},
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	closeTest(t, f, test.ID)

	view, err := results.ParticipantResult(test.ID, alice.ID, alice.ID)
	if err != nil {
		t.Fatalf("ParticipantResult: %v", err)
	}
	if view.Grade != nil {
		t.Fatalf("Grade = %q, want nil for a score outside every band", *view.Grade)
	}
}
