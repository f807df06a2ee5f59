package repository_test

import (
	"context"
	"testing"

	"github.com/efa2d19/dailynator/pkg/domain/interfaces"
	"github.com/efa2d19/dailynator/pkg/domain/types"
)

func runThreadRepositoryTest(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	t.Helper()

	t.Run("Consume unknown thread returns not found", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		_, found, err := repo.Thread().Consume(ctx, "1700000000.000001")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if found {
			t.Error("unknown thread must not be found")
		}
	})

	t.Run("Consume returns the user exactly once", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		ts := types.ThreadTS("1700000000.000001")
		if err := repo.Thread().Put(ctx, ts, "U001"); err != nil {
			t.Fatalf("failed to put mapping: %v", err)
		}

		userID, found, err := repo.Thread().Consume(ctx, ts)
		if err != nil {
			t.Fatalf("failed to consume mapping: %v", err)
		}
		if !found {
			t.Fatal("expected mapping to be found")
		}
		if userID != "U001" {
			t.Errorf("expected U001, got %s", userID)
		}

		_, found, err = repo.Thread().Consume(ctx, ts)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if found {
			t.Error("second consume must return not found")
		}
	})

	t.Run("Put requires thread and user", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		if err := repo.Thread().Put(ctx, "", "U001"); err == nil {
			t.Error("expected error for empty thread timestamp")
		}
		if err := repo.Thread().Put(ctx, "1700000000.000001", ""); err == nil {
			t.Error("expected error for empty user ID")
		}
	})
}
