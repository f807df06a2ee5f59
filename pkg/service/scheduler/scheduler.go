package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/robfig/cron/v3"

	"github.com/efa2d19/dailynator/pkg/domain/interfaces"
	"github.com/efa2d19/dailynator/pkg/domain/types"
	slacksvc "github.com/efa2d19/dailynator/pkg/service/slack"
	"github.com/efa2d19/dailynator/pkg/utils/logging"
)

// ErrNoScheduleConfigured is returned when an operation requires a cron
// schedule but the channel has none
var ErrNoScheduleConfigured = goerr.New("no schedule configured for channel")

// StartFunc is invoked when a channel's schedule fires
type StartFunc func(ctx context.Context, channelID types.ChannelID)

// Scheduler manages one cron entry per subscribed channel
//
// Architecture assumptions:
// - Single server instance (no distributed locking)
// - For future horizontal scaling, implement distributed locking or leader election
type Scheduler struct {
	repo         interfaces.Repository
	slackService slacksvc.Service
	startFn      StartFunc
	runner       *cron.Cron

	mu      sync.Mutex
	entries map[types.ChannelID]cron.EntryID
	started bool
}

// New creates a scheduler. startFn is called with the channel ID every time
// that channel's cron expression fires.
func New(repo interfaces.Repository, slackSvc slacksvc.Service, startFn StartFunc) *Scheduler {
	return &Scheduler{
		repo:         repo,
		slackService: slackSvc,
		startFn:      startFn,
		runner:       cron.New(),
		entries:      make(map[types.ChannelID]cron.EntryID),
	}
}

// Start begins the cron runner. Safe to call after Reconcile; idle when no
// channel has a schedule. Calling Start more than once is a no-op.
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return
	}
	s.started = true
	s.runner.Start()
	logging.Default().Info("Scheduler started")
}

// Stop stops the cron runner and waits for any running job to finish
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.started {
		return
	}
	s.started = false
	<-s.runner.Stop().Done()
	logging.Default().Info("Scheduler stopped")
}

// Reconcile aligns the cron entries with the channels stored in the
// repository. Channels with a broken or incomplete schedule get a notice
// posted and are skipped; the rest of the batch proceeds.
func (s *Scheduler) Reconcile(ctx context.Context) error {
	channels, err := s.repo.Channel().List(ctx)
	if err != nil {
		return goerr.Wrap(err, "failed to list channels for schedule reconcile")
	}

	logger := logging.From(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	seen := make(map[types.ChannelID]bool, len(channels))

	for _, ch := range channels {
		if !ch.HasSchedule() {
			if ch.Cron != "" || ch.CronTZ != "" {
				s.notifyMisconfigured(ctx, ch.ID, "Schedule needs both a cron expression and a timezone")
			}
			continue
		}

		sched, err := parseSchedule(ch.Cron, ch.CronTZ)
		if err != nil {
			logger.Warn("Skipping channel with invalid schedule",
				"channel_id", ch.ID.String(),
				"cron", ch.Cron,
				"tz", ch.CronTZ,
				"error", err.Error())
			s.notifyMisconfigured(ctx, ch.ID, fmt.Sprintf("Invalid cron expression `%s` (%s)", ch.Cron, ch.CronTZ))
			continue
		}

		if oldID, ok := s.entries[ch.ID]; ok {
			s.runner.Remove(oldID)
		}

		channelID := ch.ID
		s.entries[ch.ID] = s.runner.Schedule(sched, cron.FuncJob(func() {
			s.fire(channelID)
		}))
		seen[ch.ID] = true

		logger.Info("Scheduled daily session",
			"channel_id", ch.ID.String(),
			"cron", ch.Cron,
			"tz", ch.CronTZ)
	}

	// Drop entries for channels that were unsubscribed or lost their schedule
	for id, entryID := range s.entries {
		if !seen[id] {
			s.runner.Remove(entryID)
			delete(s.entries, id)
			logger.Info("Removed stale schedule", "channel_id", id.String())
		}
	}

	return nil
}

// SkipNext suppresses the next scheduled fire for the channel. The entry is
// reinstalled with a floor at the fire after the upcoming one, so the
// schedule stays aligned afterwards.
func (s *Scheduler) SkipNext(ctx context.Context, channelID types.ChannelID) (time.Time, error) {
	ch, err := s.repo.Channel().Get(ctx, channelID)
	if err != nil {
		return time.Time{}, goerr.Wrap(err, "failed to get channel", goerr.V("channel_id", channelID))
	}
	if ch == nil || !ch.HasSchedule() {
		return time.Time{}, goerr.Wrap(ErrNoScheduleConfigured, "cannot skip", goerr.V("channel_id", channelID))
	}

	sched, err := parseSchedule(ch.Cron, ch.CronTZ)
	if err != nil {
		return time.Time{}, goerr.Wrap(err, "stored schedule no longer parses",
			goerr.V("channel_id", channelID), goerr.V("cron", ch.Cron), goerr.V("tz", ch.CronTZ))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entryID, ok := s.entries[channelID]
	if !ok {
		return time.Time{}, goerr.Wrap(ErrNoScheduleConfigured, "channel is not scheduled", goerr.V("channel_id", channelID))
	}

	upcoming := s.runner.Entry(entryID).Next
	if upcoming.IsZero() {
		// Runner not started yet; derive the upcoming fire from the schedule
		upcoming = sched.Next(time.Now())
	}
	notBefore := sched.Next(upcoming)

	s.runner.Remove(entryID)
	id := channelID
	s.entries[channelID] = s.runner.Schedule(
		&notBeforeSchedule{inner: sched, notBefore: notBefore},
		cron.FuncJob(func() {
			s.fire(id)
		}),
	)

	logging.From(ctx).Info("Skipped next daily session",
		"channel_id", channelID.String(),
		"skipped", upcoming,
		"next", notBefore)

	return notBefore, nil
}

// fire runs one scheduled session start. Runs on the cron runner goroutine.
func (s *Scheduler) fire(channelID types.ChannelID) {
	ctx := context.Background()
	ctx = logging.With(ctx, logging.Default().With("channel_id", channelID.String()))
	s.startFn(ctx, channelID)
}

func (s *Scheduler) notifyMisconfigured(ctx context.Context, channelID types.ChannelID, detail string) {
	if s.slackService == nil {
		return
	}
	blocks := slacksvc.ErrorBlocks("Daily schedule is misconfigured", detail)
	if _, err := s.slackService.PostMessage(ctx, channelID.String(), "Daily schedule is misconfigured", blocks); err != nil {
		logging.From(ctx).Warn("Failed to notify channel about schedule misconfiguration",
			"channel_id", channelID.String(),
			"error", err.Error())
	}
}

// Validate reports whether the cron expression and timezone form a usable
// schedule
func Validate(expr, tz string) error {
	_, err := parseSchedule(expr, tz)
	return err
}

// parseSchedule parses a 5-field cron expression in the given IANA timezone
func parseSchedule(expr, tz string) (cron.Schedule, error) {
	sched, err := cron.ParseStandard(fmt.Sprintf("CRON_TZ=%s %s", tz, expr))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to parse cron expression", goerr.V("cron", expr), goerr.V("tz", tz))
	}
	return sched, nil
}

// notBeforeSchedule wraps a cron schedule with a floor. Fire times before
// notBefore collapse into notBefore, which is itself a schedule point, so
// exactly one fire is skipped.
type notBeforeSchedule struct {
	inner     cron.Schedule
	notBefore time.Time
}

func (n *notBeforeSchedule) Next(t time.Time) time.Time {
	if t.Before(n.notBefore) {
		return n.notBefore
	}
	return n.inner.Next(t)
}
