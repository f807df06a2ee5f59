package repository_test

import (
	"context"
	"testing"

	"github.com/efa2d19/dailynator/pkg/domain/interfaces"
	"github.com/efa2d19/dailynator/pkg/domain/model"
)

func runAnswerRepositoryTest(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	t.Helper()

	t.Run("ListByUser on empty store", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		answers, err := repo.Answer().ListByUser(ctx, "U404")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(answers) != 0 {
			t.Errorf("expected no answers, got %d", len(answers))
		}
	})

	t.Run("Add preserves ascending question order", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		// Written out of order on purpose.
		in := []*model.Answer{
			{UserID: "U001", QuestionID: 2, Text: "Blockers: none"},
			{UserID: "U001", QuestionID: 1, Text: "Good"},
		}
		for _, a := range in {
			if err := repo.Answer().Add(ctx, a); err != nil {
				t.Fatalf("failed to add answer: %v", err)
			}
		}

		answers, err := repo.Answer().ListByUser(ctx, "U001")
		if err != nil {
			t.Fatalf("failed to list answers: %v", err)
		}
		if len(answers) != 2 {
			t.Fatalf("expected 2 answers, got %d", len(answers))
		}
		if answers[0].QuestionID != 1 || answers[1].QuestionID != 2 {
			t.Errorf("unexpected order: %d, %d", answers[0].QuestionID, answers[1].QuestionID)
		}
	})

	t.Run("duplicate answers for one question are kept", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		for _, text := range []string{"first delivery", "second delivery"} {
			if err := repo.Answer().Add(ctx, &model.Answer{UserID: "U001", QuestionID: 1, Text: text}); err != nil {
				t.Fatalf("failed to add answer: %v", err)
			}
		}

		answers, err := repo.Answer().ListByUser(ctx, "U001")
		if err != nil {
			t.Fatalf("failed to list answers: %v", err)
		}
		if len(answers) != 2 {
			t.Fatalf("expected both duplicates, got %d", len(answers))
		}
		if answers[0].Text != "first delivery" || answers[1].Text != "second delivery" {
			t.Errorf("arrival order lost: %q, %q", answers[0].Text, answers[1].Text)
		}
	})

	t.Run("DeleteByUser clears the cycle", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		if err := repo.Answer().Add(ctx, &model.Answer{UserID: "U001", QuestionID: 1, Text: "Good"}); err != nil {
			t.Fatalf("failed to add answer: %v", err)
		}
		if err := repo.Answer().Add(ctx, &model.Answer{UserID: "U002", QuestionID: 1, Text: "Fine"}); err != nil {
			t.Fatalf("failed to add answer: %v", err)
		}

		if err := repo.Answer().DeleteByUser(ctx, "U001"); err != nil {
			t.Fatalf("failed to delete answers: %v", err)
		}

		gone, err := repo.Answer().ListByUser(ctx, "U001")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(gone) != 0 {
			t.Errorf("expected no answers for U001, got %d", len(gone))
		}

		kept, err := repo.Answer().ListByUser(ctx, "U002")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(kept) != 1 {
			t.Errorf("U002 answers should survive, got %d", len(kept))
		}
	})
}
