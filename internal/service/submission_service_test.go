package service

import (
	"errors"
	"testing"
	"time"

	"quiz_backend/internal/model"
	"quiz_backend/internal/util"

	"gorm.io/gorm"
)

func TestSubmitScoresAllOrNothingPerQuestion(t *testing.T) {
	f := newFixture(t)
	owner := newUser(t, f.db, "owner")
	alice := newUser(t, f.db, "alice")
	bob := newUser(t, f.db, "bob")

	test := twoQuestionTest(t, f, owner.ID)
	openTest(t, f, test.ID)

	// Both answers right.
	sub, err := f.subs.Submit(test.ID, alice.ID, SubmitRequest{
		Questions: []QuestionSubmission{
			{QuestionID: test.Questions[0].ID, AnswerIDs: []uint{answerID(t, test, 0, "Paris")}},
			{QuestionID: test.Questions[1].ID, AnswerIDs: []uint{answerID(t, test, 1, "London")}},
		},
	})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if sub.RightAnswersNumber != 2 {
		t.Fatalf("RightAnswersNumber = %d, want 2", sub.RightAnswersNumber)
	}

	// One right, one wrong.
	sub, err = f.subs.Submit(test.ID, bob.ID, SubmitRequest{
		Questions: []QuestionSubmission{
			{QuestionID: test.Questions[0].ID, AnswerIDs: []uint{answerID(t, test, 0, "Paris")}},
			{QuestionID: test.Questions[1].ID, AnswerIDs: []uint{answerID(t, test, 1, "Madrid")}},
		},
	})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if sub.RightAnswersNumber != 1 {
		t.Fatalf("RightAnswersNumber = %d, want 1", sub.RightAnswersNumber)
	}

	// Every selected answer row freezes its is-right flag.
	stored, err := f.subs.GetSubmission(test.ID, bob.ID)
	if err != nil {
		t.Fatalf("GetSubmission: %v", err)
	}
	if len(stored.Answers) != 2 {
		t.Fatalf("got %d answer rows, want 2", len(stored.Answers))
	}
	for _, row := range stored.Answers {
		wantRight := row.Content == "Paris"
		if row.IsRight != wantRight {
			t.Errorf("answer %q IsRight = %v, want %v", row.Content, row.IsRight, wantRight)
		}
	}
}

func TestSubmitMultiChoiceOneWrongSelectionZeroesQuestion(t *testing.T) {
	f := newFixture(t)
	owner := newUser(t, f.db, "owner")
	alice := newUser(t, f.db, "alice")

	test, err := f.tests.CreateTest(owner.ID, CreateTestRequest{
		Name: "Multi",
		Questions: []QuestionRequest{
			{
				Description:  "Select the even numbers",
				Type:         "many",
				Weight:       2,
				Answers:      []string{"2", "3", "4"},
				RightAnswers: []string{"2", "4"},
			},
		},
		Grade: passFailScale(),
	})
	if err != nil {
		t.Fatalf("create test: %v", err)
	}
	openTest(t, f, test.ID)

	sub, err := f.subs.Submit(test.ID, alice.ID, SubmitRequest{
		Questions: []QuestionSubmission{
			{QuestionID: test.Questions[0].ID, AnswerIDs: []uint{
				answerID(t, test, 0, "2"),
				answerID(t, test, 0, "3"),
			}},
		},
	})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if sub.RightAnswersNumber != 0 {
		t.Fatalf("RightAnswersNumber = %d, want 0: one wrong selection zeroes the question", sub.RightAnswersNumber)
	}
}

func TestSubmitFreeTextMatching(t *testing.T) {
	f := newFixture(t)
	owner := newUser(t, f.db, "owner")
	alice := newUser(t, f.db, "alice")
	bob := newUser(t, f.db, "bob")

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

	// Exact match after trimming surrounding whitespace.
	sub, err := f.subs.Submit(test.ID, alice.ID, SubmitRequest{
		Questions: []QuestionSubmission{
			{QuestionID: test.Questions[0].ID, Content: "  Paris  "},
		},
	})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if sub.RightAnswersNumber != 1 {
		t.Fatalf("RightAnswersNumber = %d, want 1", sub.RightAnswersNumber)
	}

	// Unmatched text is stored but scores zero.
	sub, err = f.subs.Submit(test.ID, bob.ID, SubmitRequest{
		Questions: []QuestionSubmission{
			{QuestionID: test.Questions[0].ID, Content: "paris"},
		},
	})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if sub.RightAnswersNumber != 0 {
		t.Fatalf("RightAnswersNumber = %d, want 0 for case-mismatched text", sub.RightAnswersNumber)
	}
	if len(sub.Answers) != 1 || sub.Answers[0].Content != "paris" {
		t.Fatalf("submitted text not stored verbatim: %+v", sub.Answers)
	}
}

func TestSubmitRejectsInvalidPayloads(t *testing.T) {
	f := newFixture(t)
	owner := newUser(t, f.db, "owner")
	alice := newUser(t, f.db, "alice")

	test := twoQuestionTest(t, f, owner.ID)
	openTest(t, f, test.ID)

	full := func() []QuestionSubmission {
		return []QuestionSubmission{
			{QuestionID: test.Questions[0].ID, AnswerIDs: []uint{answerID(t, test, 0, "Paris")}},
			{QuestionID: test.Questions[1].ID, AnswerIDs: []uint{answerID(t, test, 1, "London")}},
		}
	}

	cases := []struct {
		name      string
		questions []QuestionSubmission
		want      error
	}{
		{
			name:      "unanswered question",
			questions: full()[:1],
			want:      util.ErrMissingAnswer,
		},
		{
			name: "question from another test",
			questions: append(full(), QuestionSubmission{
				QuestionID: 9999, AnswerIDs: []uint{1},
			}),
			want: util.ErrUnknownQuestion,
		},
		{
			name: "duplicate question entry",
			questions: append(full(), QuestionSubmission{
				QuestionID: test.Questions[0].ID,
				AnswerIDs:  []uint{answerID(t, test, 0, "Berlin")},
			}),
			want: util.ErrUnknownQuestion,
		},
		{
			name: "answer from another question",
			questions: []QuestionSubmission{
				{QuestionID: test.Questions[0].ID, AnswerIDs: []uint{answerID(t, test, 1, "London")}},
				{QuestionID: test.Questions[1].ID, AnswerIDs: []uint{answerID(t, test, 1, "London")}},
			},
			want: util.ErrUnknownAnswer,
		},
		{
			name: "empty selection",
			questions: []QuestionSubmission{
				{QuestionID: test.Questions[0].ID},
				{QuestionID: test.Questions[1].ID, AnswerIDs: []uint{answerID(t, test, 1, "London")}},
			},
			want: util.ErrMissingAnswer,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.subs.Submit(test.ID, alice.ID, SubmitRequest{Questions: tc.questions})
			if !errors.Is(err, tc.want) {
				t.Fatalf("Submit() error = %v, want %v", err, tc.want)
			}
		})
	}

	// No rejected attempt may have persisted anything.
	var count int64
	if err := f.db.Model(&model.TestSubmission{}).Count(&count).Error; err != nil {
		t.Fatalf("count submissions: %v", err)
	}
	if count != 0 {
		t.Fatalf("got %d submissions after rejected attempts, want 0", count)
	}
	var rows int64
	if err := f.db.Model(&model.QuestionAnswerSubmission{}).Count(&rows).Error; err != nil {
		t.Fatalf("count answer rows: %v", err)
	}
	if rows != 0 {
		t.Fatalf("got %d orphan answer rows, want 0", rows)
	}
}

func TestSubmitLifecycleGuards(t *testing.T) {
	f := newFixture(t)
	owner := newUser(t, f.db, "owner")
	alice := newUser(t, f.db, "alice")

	draft := twoQuestionTest(t, f, owner.ID)
	if _, err := f.subs.Submit(draft.ID, alice.ID, SubmitRequest{}); !errors.Is(err, util.ErrTestNotOpen) {
		t.Fatalf("Submit to draft error = %v, want %v", err, util.ErrTestNotOpen)
	}

	if _, err := f.subs.Submit(9999, alice.ID, SubmitRequest{}); !errors.Is(err, util.ErrTestNotFound) {
		t.Fatalf("Submit to unknown test error = %v, want %v", err, util.ErrTestNotFound)
	}

	openTest(t, f, draft.ID)
	closeTest(t, f, draft.ID)
	if _, err := f.subs.Submit(draft.ID, alice.ID, SubmitRequest{}); !errors.Is(err, util.ErrTestClosed) {
		t.Fatalf("Submit to closed test error = %v, want %v", err, util.ErrTestClosed)
	}
}

func TestSubmitRejectsFutureOpenDate(t *testing.T) {
	f := newFixture(t)
	owner := newUser(t, f.db, "owner")
	alice := newUser(t, f.db, "alice")

	test := twoQuestionTest(t, f, owner.ID)
	ok, err := f.tests.Repo.MarkOpen(test.ID, time.Now().Add(time.Hour))
	if err != nil || !ok {
		t.Fatalf("open test: ok=%v err=%v", ok, err)
	}

	// An open date ahead of the clock is stored-data corruption, not a
	// participant being early.
	_, err = f.subs.Submit(test.ID, alice.ID, SubmitRequest{
		Questions: []QuestionSubmission{
			{QuestionID: test.Questions[0].ID, AnswerIDs: []uint{answerID(t, test, 0, "Paris")}},
			{QuestionID: test.Questions[1].ID, AnswerIDs: []uint{answerID(t, test, 1, "London")}},
		},
	})
	if !errors.Is(err, util.ErrOpenDateInFuture) {
		t.Fatalf("Submit with future open date error = %v, want %v", err, util.ErrOpenDateInFuture)
	}
}

func TestSubmitOnlyOncePerParticipant(t *testing.T) {
	f := newFixture(t)
	owner := newUser(t, f.db, "owner")
	alice := newUser(t, f.db, "alice")

	test := twoQuestionTest(t, f, owner.ID)
	openTest(t, f, test.ID)

	req := SubmitRequest{
		Questions: []QuestionSubmission{
			{QuestionID: test.Questions[0].ID, AnswerIDs: []uint{answerID(t, test, 0, "Paris")}},
			{QuestionID: test.Questions[1].ID, AnswerIDs: []uint{answerID(t, test, 1, "London")}},
		},
	}

	if _, err := f.subs.Submit(test.ID, alice.ID, req); err != nil {
		t.Fatalf("first Submit: %v", err)
	}
	if _, err := f.subs.Submit(test.ID, alice.ID, req); !errors.Is(err, util.ErrAlreadySubmitted) {
		t.Fatalf("second Submit error = %v, want %v", err, util.ErrAlreadySubmitted)
	}
}

func TestDuplicateSubmissionFailsUniqueIndex(t *testing.T) {
	f := newFixture(t)
	owner := newUser(t, f.db, "owner")
	alice := newUser(t, f.db, "alice")

	test := twoQuestionTest(t, f, owner.ID)
	openTest(t, f, test.ID)

	// Two concurrent submissions can both pass the has-submitted check
	// before either insert lands. The (test_id, user_id) unique index is
	// what decides the race, so the second insert itself must fail with
	// the translated duplicate-key error that Submit maps to the
	// already-submitted conflict.
	first := &model.TestSubmission{TestID: test.ID, UserID: alice.ID, SubmittedAt: time.Now()}
	if err := f.subs.Repo.CreateWithAnswers(first); err != nil {
		t.Fatalf("first insert: %v", err)
	}

	second := &model.TestSubmission{TestID: test.ID, UserID: alice.ID, SubmittedAt: time.Now()}
	if err := f.subs.Repo.CreateWithAnswers(second); !errors.Is(err, gorm.ErrDuplicatedKey) {
		t.Fatalf("second insert error = %v, want %v", err, gorm.ErrDuplicatedKey)
	}

	var count int64
	if err := f.db.Model(&model.TestSubmission{}).Count(&count).Error; err != nil {
		t.Fatalf("count submissions: %v", err)
	}
	if count != 1 {
		t.Fatalf("got %d submissions after rejected duplicate, want 1", count)
	}
}

func TestSubmitRequiresFeedbackAnswers(t *testing.T) {
	f := newFixture(t)
	owner := newUser(t, f.db, "owner")
	alice := newUser(t, f.db, "alice")

	feedbackSvc := NewFeedbackService(f.tests.FeedbackRepo)
	if err := feedbackSvc.EnsureDefaults(); err != nil {
		t.Fatalf("seed feedback: %v", err)
	}

	test := twoQuestionTest(t, f, owner.ID)
	openTest(t, f, test.ID)

	questions := []QuestionSubmission{
		{QuestionID: test.Questions[0].ID, AnswerIDs: []uint{answerID(t, test, 0, "Paris")}},
		{QuestionID: test.Questions[1].ID, AnswerIDs: []uint{answerID(t, test, 1, "London")}},
	}

	if _, err := f.subs.Submit(test.ID, alice.ID, SubmitRequest{Questions: questions}); !errors.Is(err, util.ErrMissingAnswer) {
		t.Fatalf("Submit without feedback error = %v, want %v", err, util.ErrMissingAnswer)
	}

	reloaded, err := f.tests.Repo.FindByID(test.ID)
	if err != nil {
		t.Fatalf("reload test: %v", err)
	}
	feedback := make([]FeedbackSubmission, len(reloaded.FeedbackQuestions))
	for i, q := range reloaded.FeedbackQuestions {
		fs := FeedbackSubmission{FeedbackQuestionID: q.ID}
		if q.Type == model.QuestionText {
			fs.Content = "Great test"
		} else {
			fs.AnswerIDs = []uint{q.Answers[0].ID}
		}
		feedback[i] = fs
	}

	sub, err := f.subs.Submit(test.ID, alice.ID, SubmitRequest{
		Questions:         questions,
		FeedbackQuestions: feedback,
	})
	if err != nil {
		t.Fatalf("Submit with feedback: %v", err)
	}
	if len(sub.FeedbackAnswers) != len(feedback) {
		t.Fatalf("got %d feedback rows, want %d", len(sub.FeedbackAnswers), len(feedback))
	}
}
