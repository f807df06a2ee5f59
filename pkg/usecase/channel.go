package usecase

import (
	"context"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/efa2d19/dailynator/pkg/domain/interfaces"
	"github.com/efa2d19/dailynator/pkg/domain/model"
	"github.com/efa2d19/dailynator/pkg/domain/types"
	"github.com/efa2d19/dailynator/pkg/service/scheduler"
	slacksvc "github.com/efa2d19/dailynator/pkg/service/slack"
	"github.com/efa2d19/dailynator/pkg/utils/logging"
)

// ChannelUseCase implements the channel administration commands: channel
// subscription, member sync, question list management, and the cron
// schedule.
type ChannelUseCase struct {
	repo             interfaces.Repository
	slackService     slacksvc.Service
	scheduler        ScheduleController
	defaultQuestions []string
}

func NewChannelUseCase(repo interfaces.Repository, slackSvc slacksvc.Service, sched ScheduleController, defaultQuestions []string) *ChannelUseCase {
	return &ChannelUseCase{
		repo:             repo,
		slackService:     slackSvc,
		scheduler:        sched,
		defaultQuestions: defaultQuestions,
	}
}

// Subscribe adds the channel and syncs its current members into the store.
// Returns false when the channel is already subscribed.
func (uc *ChannelUseCase) Subscribe(ctx context.Context, channelID types.ChannelID, teamID types.TeamID) (bool, error) {
	existing, err := uc.repo.Channel().Get(ctx, channelID)
	if err != nil {
		return false, goerr.Wrap(err, "failed to get channel", goerr.V("channel_id", channelID))
	}
	if existing != nil {
		return false, nil
	}

	info, err := uc.slackService.GetChannelInfo(ctx, channelID.String())
	if err != nil {
		return false, goerr.Wrap(err, "failed to get channel info", goerr.V("channel_id", channelID))
	}

	channel := &model.Channel{
		ID:     channelID,
		TeamID: teamID,
		Name:   info.Name,
	}
	if err := uc.repo.Channel().Put(ctx, channel); err != nil {
		return false, goerr.Wrap(err, "failed to save channel", goerr.V("channel_id", channelID))
	}

	for _, body := range uc.defaultQuestions {
		if _, err := uc.repo.Question().Add(ctx, &model.Question{ChannelID: channelID, Body: body}); err != nil {
			return false, goerr.Wrap(err, "failed to seed default question", goerr.V("channel_id", channelID))
		}
	}

	if _, err := uc.syncMembers(ctx, channelID); err != nil {
		return false, err
	}

	logging.From(ctx).Info("Channel subscribed",
		"channel_id", channelID.String(),
		"name", info.Name)
	return true, nil
}

// Unsubscribe removes the channel with its users and questions. Returns
// false when the channel was not subscribed. The cascade is sequenced here:
// users first, then questions, then the channel record itself.
func (uc *ChannelUseCase) Unsubscribe(ctx context.Context, channelID types.ChannelID) (bool, error) {
	existing, err := uc.repo.Channel().Get(ctx, channelID)
	if err != nil {
		return false, goerr.Wrap(err, "failed to get channel", goerr.V("channel_id", channelID))
	}
	if existing == nil {
		return false, nil
	}

	if err := uc.repo.User().DeleteByChannel(ctx, channelID); err != nil {
		return false, goerr.Wrap(err, "failed to delete channel users", goerr.V("channel_id", channelID))
	}
	if err := uc.repo.Question().DeleteByChannel(ctx, channelID); err != nil {
		return false, goerr.Wrap(err, "failed to delete channel questions", goerr.V("channel_id", channelID))
	}
	if err := uc.repo.Channel().Delete(ctx, channelID); err != nil {
		return false, goerr.Wrap(err, "failed to delete channel", goerr.V("channel_id", channelID))
	}

	if uc.scheduler != nil {
		if err := uc.scheduler.Reconcile(ctx); err != nil {
			return false, goerr.Wrap(err, "failed to drop channel schedule", goerr.V("channel_id", channelID))
		}
	}

	logging.From(ctx).Info("Channel unsubscribed", "channel_id", channelID.String())
	return true, nil
}

// RefreshUsers replaces the channel's tracked member set with the current
// Slack membership. Returns the new member count.
func (uc *ChannelUseCase) RefreshUsers(ctx context.Context, channelID types.ChannelID) (int, error) {
	existing, err := uc.repo.Channel().Get(ctx, channelID)
	if err != nil {
		return 0, goerr.Wrap(err, "failed to get channel", goerr.V("channel_id", channelID))
	}
	if existing == nil {
		return 0, goerr.Wrap(ErrNotSubscribed, "cannot refresh users", goerr.V("channel_id", channelID))
	}

	if err := uc.repo.User().DeleteByChannel(ctx, channelID); err != nil {
		return 0, goerr.Wrap(err, "failed to clear channel users", goerr.V("channel_id", channelID))
	}

	return uc.syncMembers(ctx, channelID)
}

// syncMembers pulls the channel's human members from Slack into the store
func (uc *ChannelUseCase) syncMembers(ctx context.Context, channelID types.ChannelID) (int, error) {
	members, err := uc.slackService.ListMembers(ctx, channelID.String())
	if err != nil {
		return 0, goerr.Wrap(err, "failed to list channel members", goerr.V("channel_id", channelID))
	}

	for _, memberID := range members {
		info, err := uc.slackService.GetUserInfo(ctx, memberID)
		if err != nil {
			return 0, goerr.Wrap(err, "failed to get member info", goerr.V("user_id", memberID))
		}
		user := &model.User{
			ID:         types.UserID(memberID),
			ChannelID:  channelID,
			RealName:   info.RealName,
			QuestionID: types.QuestionNone,
		}
		if err := uc.repo.User().Put(ctx, user); err != nil {
			return 0, goerr.Wrap(err, "failed to save member", goerr.V("user_id", memberID))
		}
	}

	return len(members), nil
}

// AddMember tracks a user who joined a subscribed channel. Bots are ignored.
// Returns the user's real name for the join notice, empty when skipped.
func (uc *ChannelUseCase) AddMember(ctx context.Context, channelID types.ChannelID, userID types.UserID) (string, error) {
	existing, err := uc.repo.Channel().Get(ctx, channelID)
	if err != nil {
		return "", goerr.Wrap(err, "failed to get channel", goerr.V("channel_id", channelID))
	}
	if existing == nil {
		return "", nil
	}

	info, err := uc.slackService.GetUserInfo(ctx, userID.String())
	if err != nil {
		return "", goerr.Wrap(err, "failed to get user info", goerr.V("user_id", userID))
	}
	if info.IsBot {
		return "", nil
	}

	user := &model.User{
		ID:         userID,
		ChannelID:  channelID,
		RealName:   info.RealName,
		QuestionID: types.QuestionNone,
	}
	if err := uc.repo.User().Put(ctx, user); err != nil {
		return "", goerr.Wrap(err, "failed to save member", goerr.V("user_id", userID))
	}

	return info.RealName, nil
}

// RemoveMember drops a user who left a channel. Returns the user's real name
// for the leave notice; the name is best effort.
func (uc *ChannelUseCase) RemoveMember(ctx context.Context, userID types.UserID) (string, error) {
	realName := userID.String()
	if info, err := uc.slackService.GetUserInfo(ctx, userID.String()); err == nil {
		realName = info.RealName
	}

	if err := uc.repo.User().Delete(ctx, userID); err != nil {
		return "", goerr.Wrap(err, "failed to delete member", goerr.V("user_id", userID))
	}
	return realName, nil
}

// ListQuestions returns the channel's questions in presentation order
func (uc *ChannelUseCase) ListQuestions(ctx context.Context, channelID types.ChannelID) ([]*model.Question, error) {
	questions, err := uc.repo.Question().ListByChannel(ctx, channelID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list questions", goerr.V("channel_id", channelID))
	}
	return questions, nil
}

// AddQuestion appends a question to the end of the channel's list
func (uc *ChannelUseCase) AddQuestion(ctx context.Context, channelID types.ChannelID, body string) (*model.Question, error) {
	question := &model.Question{ChannelID: channelID, Body: body}
	created, err := uc.repo.Question().Add(ctx, question)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to add question", goerr.V("channel_id", channelID))
	}
	return created, nil
}

// RemoveQuestion deletes the question at the given 1-based position of the
// live list. Returns false when the position is out of range.
func (uc *ChannelUseCase) RemoveQuestion(ctx context.Context, channelID types.ChannelID, position int) (bool, error) {
	questions, err := uc.repo.Question().ListByChannel(ctx, channelID)
	if err != nil {
		return false, goerr.Wrap(err, "failed to list questions", goerr.V("channel_id", channelID))
	}
	if position < 1 || position > len(questions) {
		return false, nil
	}

	target := questions[position-1]
	if err := uc.repo.Question().Delete(ctx, target.ID); err != nil {
		return false, goerr.Wrap(err, "failed to delete question", goerr.V("question_id", target.ID))
	}
	return true, nil
}

// SetCron stores the channel's cron expression with the invoking user's
// timezone and reinstalls the schedule
func (uc *ChannelUseCase) SetCron(ctx context.Context, channelID types.ChannelID, expr string, invokerID types.UserID) error {
	existing, err := uc.repo.Channel().Get(ctx, channelID)
	if err != nil {
		return goerr.Wrap(err, "failed to get channel", goerr.V("channel_id", channelID))
	}
	if existing == nil {
		return goerr.Wrap(ErrNotSubscribed, "cannot set schedule", goerr.V("channel_id", channelID))
	}

	info, err := uc.slackService.GetUserInfo(ctx, invokerID.String())
	if err != nil {
		return goerr.Wrap(err, "failed to resolve invoker timezone", goerr.V("user_id", invokerID))
	}
	tz := info.TZ
	if tz == "" {
		tz = "UTC"
	}

	if err := scheduler.Validate(expr, tz); err != nil {
		return goerr.Wrap(err, "invalid cron expression", goerr.V("cron", expr), goerr.V("tz", tz))
	}

	if err := uc.repo.Channel().SetSchedule(ctx, channelID, expr, tz); err != nil {
		return goerr.Wrap(err, "failed to save schedule", goerr.V("channel_id", channelID))
	}

	if uc.scheduler != nil {
		if err := uc.scheduler.Reconcile(ctx); err != nil {
			return goerr.Wrap(err, "failed to install schedule", goerr.V("channel_id", channelID))
		}
	}

	logging.From(ctx).Info("Channel schedule updated",
		"channel_id", channelID.String(),
		"cron", expr,
		"tz", tz)
	return nil
}

// SkipNext suppresses the channel's next scheduled session and returns the
// fire time that survives
func (uc *ChannelUseCase) SkipNext(ctx context.Context, channelID types.ChannelID) (time.Time, error) {
	if uc.scheduler == nil {
		return time.Time{}, goerr.Wrap(ErrSchedulerDisabled, "cannot skip schedule", goerr.V("channel_id", channelID))
	}
	return uc.scheduler.SkipNext(ctx, channelID)
}
