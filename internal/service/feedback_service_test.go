package service

import (
	"testing"

	"quiz_backend/internal/repository"
)

func TestEnsureDefaultsIsIdempotent(t *testing.T) {
	f := newFixture(t)
	svc := NewFeedbackService(repository.NewFeedbackRepository(f.db))

	if err := svc.EnsureDefaults(); err != nil {
		t.Fatalf("first EnsureDefaults: %v", err)
	}
	first, err := svc.Repo.Count()
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if first == 0 {
		t.Fatal("no feedback questions seeded")
	}

	if err := svc.EnsureDefaults(); err != nil {
		t.Fatalf("second EnsureDefaults: %v", err)
	}
	second, err := svc.Repo.Count()
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if first != second {
		t.Fatalf("question count grew from %d to %d on reseed", first, second)
	}

	questions, err := svc.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	for _, q := range questions {
		if !q.Type.Valid() {
			t.Errorf("seeded question %q has invalid type %q", q.Description, q.Type)
		}
	}
}
