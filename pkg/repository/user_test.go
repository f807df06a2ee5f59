package repository_test

import (
	"context"
	"testing"

	"github.com/efa2d19/dailynator/pkg/domain/interfaces"
	"github.com/efa2d19/dailynator/pkg/domain/model"
	"github.com/efa2d19/dailynator/pkg/domain/types"
)

func runUserRepositoryTest(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	t.Helper()

	t.Run("Get unknown user returns nil without error", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		user, err := repo.User().Get(ctx, "U404")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if user != nil {
			t.Errorf("expected nil user, got %+v", user)
		}
	})

	t.Run("Put and Get round trip", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		in := &model.User{
			ID:        "U001",
			ChannelID: "C001",
			RealName:  "John Doe",
		}
		if err := repo.User().Put(ctx, in); err != nil {
			t.Fatalf("failed to put user: %v", err)
		}

		got, err := repo.User().Get(ctx, "U001")
		if err != nil {
			t.Fatalf("failed to get user: %v", err)
		}
		if got == nil {
			t.Fatal("expected user, got nil")
		}
		if got.RealName != "John Doe" || got.ChannelID != "C001" {
			t.Errorf("user mismatch: %+v", got)
		}
		if got.DailyStatus {
			t.Error("fresh user must not be in a session")
		}
	})

	t.Run("SetProgress starts and ends a session", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		if err := repo.User().Put(ctx, &model.User{ID: "U001", ChannelID: "C001", RealName: "John Doe"}); err != nil {
			t.Fatalf("failed to put user: %v", err)
		}

		if err := repo.User().SetProgress(ctx, "U001", true, 3); err != nil {
			t.Fatalf("failed to set progress: %v", err)
		}

		got, err := repo.User().Get(ctx, "U001")
		if err != nil {
			t.Fatalf("failed to get user: %v", err)
		}
		if !got.DailyStatus || got.QuestionID != 3 {
			t.Errorf("progress mismatch: %+v", got)
		}

		if err := repo.User().SetProgress(ctx, "U001", false, types.QuestionNone); err != nil {
			t.Fatalf("failed to reset progress: %v", err)
		}

		got, err = repo.User().Get(ctx, "U001")
		if err != nil {
			t.Fatalf("failed to get user: %v", err)
		}
		if got.DailyStatus || !got.QuestionID.IsNone() {
			t.Errorf("reset mismatch: %+v", got)
		}
	})

	t.Run("SetProgress on unknown user is a no-op", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		if err := repo.User().SetProgress(ctx, "U404", true, 1); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("ListByChannel filters and sorts", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		users := []*model.User{
			{ID: "U002", ChannelID: "C001", RealName: "Bob"},
			{ID: "U001", ChannelID: "C001", RealName: "Alice"},
			{ID: "U003", ChannelID: "C002", RealName: "Carol"},
		}
		for _, u := range users {
			if err := repo.User().Put(ctx, u); err != nil {
				t.Fatalf("failed to put user: %v", err)
			}
		}

		got, err := repo.User().ListByChannel(ctx, "C001")
		if err != nil {
			t.Fatalf("failed to list users: %v", err)
		}
		if len(got) != 2 {
			t.Fatalf("expected 2 users, got %d", len(got))
		}
		if got[0].ID != "U001" || got[1].ID != "U002" {
			t.Errorf("unexpected order: %s, %s", got[0].ID, got[1].ID)
		}
	})

	t.Run("DeleteByChannel removes only that channel's users", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		if err := repo.User().Put(ctx, &model.User{ID: "U001", ChannelID: "C001", RealName: "Alice"}); err != nil {
			t.Fatalf("failed to put user: %v", err)
		}
		if err := repo.User().Put(ctx, &model.User{ID: "U002", ChannelID: "C002", RealName: "Bob"}); err != nil {
			t.Fatalf("failed to put user: %v", err)
		}

		if err := repo.User().DeleteByChannel(ctx, "C001"); err != nil {
			t.Fatalf("failed to delete users: %v", err)
		}

		gone, err := repo.User().Get(ctx, "U001")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if gone != nil {
			t.Errorf("expected U001 deleted, got %+v", gone)
		}

		kept, err := repo.User().Get(ctx, "U002")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if kept == nil {
			t.Error("U002 should survive DeleteByChannel(C001)")
		}
	})
}
