package repository_test

import (
	"context"
	"testing"

	"github.com/efa2d19/dailynator/pkg/domain/interfaces"
	"github.com/efa2d19/dailynator/pkg/domain/model"
	"github.com/efa2d19/dailynator/pkg/domain/types"
)

func runQuestionRepositoryTest(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	t.Helper()

	t.Run("Add allocates ascending IDs", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		first, err := repo.Question().Add(ctx, &model.Question{ChannelID: "C001", Body: "How are you?"})
		if err != nil {
			t.Fatalf("failed to add question: %v", err)
		}
		second, err := repo.Question().Add(ctx, &model.Question{ChannelID: "C001", Body: "Blockers?"})
		if err != nil {
			t.Fatalf("failed to add question: %v", err)
		}

		if first.ID.IsNone() {
			t.Error("allocated ID must not be the sentinel")
		}
		if second.ID <= first.ID {
			t.Errorf("IDs must ascend: first=%d second=%d", first.ID, second.ID)
		}
	})

	t.Run("ListByChannel returns ascending order", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		bodies := []string{"q1", "q2", "q3"}
		for _, b := range bodies {
			if _, err := repo.Question().Add(ctx, &model.Question{ChannelID: "C001", Body: b}); err != nil {
				t.Fatalf("failed to add question: %v", err)
			}
		}

		questions, err := repo.Question().ListByChannel(ctx, "C001")
		if err != nil {
			t.Fatalf("failed to list questions: %v", err)
		}
		if len(questions) != 3 {
			t.Fatalf("expected 3 questions, got %d", len(questions))
		}
		for i, q := range questions {
			if q.Body != bodies[i] {
				t.Errorf("order mismatch at %d: %s", i, q.Body)
			}
			if i > 0 && questions[i-1].ID >= q.ID {
				t.Errorf("IDs not ascending at %d", i)
			}
		}
	})

	t.Run("Delete leaves gaps, no renumbering", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		var ids []types.QuestionID
		for _, b := range []string{"q1", "q2", "q3"} {
			q, err := repo.Question().Add(ctx, &model.Question{ChannelID: "C001", Body: b})
			if err != nil {
				t.Fatalf("failed to add question: %v", err)
			}
			ids = append(ids, q.ID)
		}

		if err := repo.Question().Delete(ctx, ids[1]); err != nil {
			t.Fatalf("failed to delete question: %v", err)
		}

		questions, err := repo.Question().ListByChannel(ctx, "C001")
		if err != nil {
			t.Fatalf("failed to list questions: %v", err)
		}
		if len(questions) != 2 {
			t.Fatalf("expected 2 questions, got %d", len(questions))
		}
		if questions[0].ID != ids[0] || questions[1].ID != ids[2] {
			t.Errorf("surviving IDs changed: %d, %d", questions[0].ID, questions[1].ID)
		}

		// New questions continue the monotonic sequence past the gap.
		q4, err := repo.Question().Add(ctx, &model.Question{ChannelID: "C001", Body: "q4"})
		if err != nil {
			t.Fatalf("failed to add question: %v", err)
		}
		if q4.ID <= ids[2] {
			t.Errorf("expected ID beyond %d, got %d", ids[2], q4.ID)
		}
	})

	t.Run("DeleteByChannel removes only that channel's questions", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		if _, err := repo.Question().Add(ctx, &model.Question{ChannelID: "C001", Body: "q1"}); err != nil {
			t.Fatalf("failed to add question: %v", err)
		}
		if _, err := repo.Question().Add(ctx, &model.Question{ChannelID: "C002", Body: "other"}); err != nil {
			t.Fatalf("failed to add question: %v", err)
		}

		if err := repo.Question().DeleteByChannel(ctx, "C001"); err != nil {
			t.Fatalf("failed to delete questions: %v", err)
		}

		gone, err := repo.Question().ListByChannel(ctx, "C001")
		if err != nil {
			t.Fatalf("failed to list questions: %v", err)
		}
		if len(gone) != 0 {
			t.Errorf("expected no questions, got %d", len(gone))
		}

		kept, err := repo.Question().ListByChannel(ctx, "C002")
		if err != nil {
			t.Fatalf("failed to list questions: %v", err)
		}
		if len(kept) != 1 {
			t.Errorf("expected 1 surviving question, got %d", len(kept))
		}
	})
}
