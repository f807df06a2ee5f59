package repository_test

import (
	"context"
	"testing"

	"github.com/efa2d19/dailynator/pkg/domain/interfaces"
	"github.com/efa2d19/dailynator/pkg/domain/model"
)

func runChannelRepositoryTest(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	t.Helper()

	t.Run("Get unknown channel returns nil without error", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		channel, err := repo.Channel().Get(ctx, "C404")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if channel != nil {
			t.Errorf("expected nil channel, got %+v", channel)
		}
	})

	t.Run("Put and Get round trip", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		in := &model.Channel{
			ID:     "C001",
			TeamID: "T001",
			Name:   "standup",
		}
		if err := repo.Channel().Put(ctx, in); err != nil {
			t.Fatalf("failed to put channel: %v", err)
		}

		got, err := repo.Channel().Get(ctx, "C001")
		if err != nil {
			t.Fatalf("failed to get channel: %v", err)
		}
		if got == nil {
			t.Fatal("expected channel, got nil")
		}
		if got.Name != "standup" || got.TeamID != "T001" {
			t.Errorf("channel mismatch: %+v", got)
		}
		if got.HasSchedule() {
			t.Error("fresh channel must not have a schedule")
		}
	})

	t.Run("SetSchedule updates cron and timezone", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		if err := repo.Channel().Put(ctx, &model.Channel{ID: "C001", TeamID: "T001", Name: "standup"}); err != nil {
			t.Fatalf("failed to put channel: %v", err)
		}

		if err := repo.Channel().SetSchedule(ctx, "C001", "0 9 * * MON", "Europe/Berlin"); err != nil {
			t.Fatalf("failed to set schedule: %v", err)
		}

		got, err := repo.Channel().Get(ctx, "C001")
		if err != nil {
			t.Fatalf("failed to get channel: %v", err)
		}
		if got.Cron != "0 9 * * MON" || got.CronTZ != "Europe/Berlin" {
			t.Errorf("schedule mismatch: %+v", got)
		}
		if !got.HasSchedule() {
			t.Error("channel should report a configured schedule")
		}
	})

	t.Run("SetSchedule on unknown channel fails", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		if err := repo.Channel().SetSchedule(ctx, "C404", "0 9 * * *", "UTC"); err == nil {
			t.Error("expected error for unknown channel")
		}
	})

	t.Run("List returns channels sorted by ID", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		if err := repo.Channel().Put(ctx, &model.Channel{ID: "C002", TeamID: "T001", Name: "beta"}); err != nil {
			t.Fatalf("failed to put channel: %v", err)
		}
		if err := repo.Channel().Put(ctx, &model.Channel{ID: "C001", TeamID: "T001", Name: "alpha"}); err != nil {
			t.Fatalf("failed to put channel: %v", err)
		}

		channels, err := repo.Channel().List(ctx)
		if err != nil {
			t.Fatalf("failed to list channels: %v", err)
		}
		if len(channels) != 2 {
			t.Fatalf("expected 2 channels, got %d", len(channels))
		}
		if channels[0].ID != "C001" || channels[1].ID != "C002" {
			t.Errorf("unexpected order: %s, %s", channels[0].ID, channels[1].ID)
		}
	})

	t.Run("Delete removes the channel", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		if err := repo.Channel().Put(ctx, &model.Channel{ID: "C001", TeamID: "T001", Name: "standup"}); err != nil {
			t.Fatalf("failed to put channel: %v", err)
		}
		if err := repo.Channel().Delete(ctx, "C001"); err != nil {
			t.Fatalf("failed to delete channel: %v", err)
		}

		got, err := repo.Channel().Get(ctx, "C001")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != nil {
			t.Errorf("expected nil after delete, got %+v", got)
		}
	})
}
