package usecase

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
	"golang.org/x/sync/errgroup"

	"github.com/efa2d19/dailynator/pkg/domain/interfaces"
	"github.com/efa2d19/dailynator/pkg/domain/model"
	"github.com/efa2d19/dailynator/pkg/domain/types"
	slacksvc "github.com/efa2d19/dailynator/pkg/service/slack"
	"github.com/efa2d19/dailynator/pkg/utils/logging"
)

// DailyUseCase runs the daily session lifecycle: starting sessions for a
// channel, collecting answers over DM, publishing reports, and routing
// thread replies back to the reporter.
type DailyUseCase struct {
	repo         interfaces.Repository
	slackService slacksvc.Service
	palette      []string
	skipTokens   []string
}

func NewDailyUseCase(repo interfaces.Repository, slackSvc slacksvc.Service, palette, skipTokens []string) *DailyUseCase {
	return &DailyUseCase{
		repo:         repo,
		slackService: slackSvc,
		palette:      palette,
		skipTokens:   skipTokens,
	}
}

// Start begins a daily session for every eligible member of the channel.
// State writes for the whole batch complete before the first DM goes out, so
// an early reply never races an unprepared user. Per-user delivery failures
// are collected; the rest of the batch still proceeds.
func (uc *DailyUseCase) Start(ctx context.Context, channelID types.ChannelID) error {
	logger := logging.From(ctx).With(
		"run_id", uuid.NewString(),
		"channel_id", channelID.String(),
	)
	ctx = logging.With(ctx, logger)

	questions, err := uc.repo.Question().ListByChannel(ctx, channelID)
	if err != nil {
		return goerr.Wrap(err, "failed to list questions", goerr.V("channel_id", channelID))
	}

	first := model.FirstQuestion(questions)
	if first == nil {
		logger.Warn("No questions configured, notifying channel")
		blocks := slacksvc.ErrorBlocks(
			"No questions are available",
			"Please, add question(s) via `/question_append <question>`",
		)
		if _, err := uc.slackService.PostMessage(ctx, channelID.String(), ":x: No questions are available", blocks); err != nil {
			return goerr.Wrap(err, "failed to notify channel about missing questions", goerr.V("channel_id", channelID))
		}
		return nil
	}

	users, err := uc.repo.User().ListByChannel(ctx, channelID)
	if err != nil {
		return goerr.Wrap(err, "failed to list channel users", goerr.V("channel_id", channelID))
	}

	eligible := uc.EligibleUsers(ctx, users)
	if len(eligible) == 0 {
		logger.Info("No eligible users, skipping session", "members", len(users))
		return nil
	}

	// Phase 1: session state for the whole batch, joined before any DM
	eg, egCtx := errgroup.WithContext(ctx)
	for _, user := range eligible {
		eg.Go(func() error {
			if err := uc.repo.User().SetProgress(egCtx, user.ID, true, first.ID); err != nil {
				return goerr.Wrap(err, "failed to set session progress", goerr.V("user_id", user.ID))
			}
			if err := uc.repo.Answer().DeleteByUser(egCtx, user.ID); err != nil {
				return goerr.Wrap(err, "failed to clear stale answers", goerr.V("user_id", user.ID))
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return goerr.Wrap(err, "failed to prepare session state", goerr.V("channel_id", channelID))
	}

	// Phase 2: first-question DMs
	var mu sync.Mutex
	var failed []types.UserID
	var wg sync.WaitGroup
	for _, user := range eligible {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := uc.sendFirstQuestion(ctx, user.ID, first.Body); err != nil {
				logger.Error("Failed to deliver session start",
					"user_id", user.ID.String(),
					"error", err.Error())
				mu.Lock()
				failed = append(failed, user.ID)
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	logger.Info("Daily session started",
		"members", len(users),
		"eligible", len(eligible),
		"failed", len(failed))

	if len(failed) > 0 {
		return goerr.New("failed to deliver session start to some users",
			goerr.V("channel_id", channelID),
			goerr.V("failed_users", failed),
			goerr.V("eligible", len(eligible)))
	}
	return nil
}

func (uc *DailyUseCase) sendFirstQuestion(ctx context.Context, userID types.UserID, question string) error {
	imChannel, err := uc.slackService.OpenIM(ctx, userID.String())
	if err != nil {
		return goerr.Wrap(err, "failed to open IM", goerr.V("user_id", userID))
	}

	blocks := slacksvc.SessionStartBlocks(
		fmt.Sprintf("Hey, <@%s>! :sun_with_face: ", userID),
		"*Daily time has come* :melting_face: ",
		question,
	)
	if _, err := uc.slackService.PostMessage(ctx, imChannel, ":robot_face: Daily has started", blocks); err != nil {
		return goerr.Wrap(err, "failed to send first question", goerr.V("user_id", userID))
	}
	return nil
}
