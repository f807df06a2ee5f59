package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/slack-go/slack"

	"github.com/efa2d19/dailynator/pkg/domain/types"
	"github.com/efa2d19/dailynator/pkg/service/scheduler"
	slacksvc "github.com/efa2d19/dailynator/pkg/service/slack"
	"github.com/efa2d19/dailynator/pkg/usecase"
	"github.com/efa2d19/dailynator/pkg/utils/async"
	"github.com/efa2d19/dailynator/pkg/utils/errutil"
	"github.com/efa2d19/dailynator/pkg/utils/logging"
)

// SlackCommandHandler handles Slack slash command requests
type SlackCommandHandler struct {
	uc       *usecase.UseCases
	slackSvc slacksvc.Service
}

// NewSlackCommandHandler creates a new Slack slash command handler
func NewSlackCommandHandler(uc *usecase.UseCases, slackSvc slacksvc.Service) *SlackCommandHandler {
	return &SlackCommandHandler{
		uc:       uc,
		slackSvc: slackSvc,
	}
}

// ServeHTTP handles slash command requests
func (h *SlackCommandHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	cmd, err := slack.SlashCommandParse(r)
	if err != nil {
		errutil.HandleHTTP(ctx, w, goerr.Wrap(err, "failed to parse slash command"), http.StatusBadRequest)
		return
	}

	// Acknowledge immediately, reply via ephemeral messages
	w.WriteHeader(http.StatusOK)

	async.Dispatch(ctx, func(ctx context.Context) error {
		if err := h.handleCommand(ctx, &cmd); err != nil {
			return goerr.Wrap(err, "failed to handle slash command",
				goerr.V("command", cmd.Command),
				goerr.V("channel_id", cmd.ChannelID),
				goerr.V("user_id", cmd.UserID))
		}
		return nil
	})
}

func (h *SlackCommandHandler) handleCommand(ctx context.Context, cmd *slack.SlashCommand) error {
	logging.From(ctx).Info("processing slash command",
		"command", cmd.Command,
		"channel_id", cmd.ChannelID,
		"user_id", cmd.UserID)

	switch cmd.Command {
	case "/channel_append":
		return h.channelAppend(ctx, cmd)
	case "/channel_pop":
		return h.channelPop(ctx, cmd)
	case "/refresh_users":
		return h.refreshUsers(ctx, cmd)
	case "/questions":
		return h.listQuestions(ctx, cmd)
	case "/question_append":
		return h.questionAppend(ctx, cmd)
	case "/question_pop":
		return h.questionPop(ctx, cmd)
	case "/cron":
		return h.setCron(ctx, cmd)
	case "/skip_cron":
		return h.skipCron(ctx, cmd)
	default:
		logging.From(ctx).Warn("unknown slash command", "command", cmd.Command)
		return nil
	}
}

func (h *SlackCommandHandler) reply(ctx context.Context, cmd *slack.SlashCommand, text string) error {
	return h.slackSvc.PostEphemeral(ctx, cmd.ChannelID, cmd.UserID, text, nil)
}

// replyBlocks sends a Block Kit ephemeral reply. The text is the notification
// fallback.
func (h *SlackCommandHandler) replyBlocks(ctx context.Context, cmd *slack.SlashCommand, text string, blocks []slack.Block) error {
	return h.slackSvc.PostEphemeral(ctx, cmd.ChannelID, cmd.UserID, text, blocks)
}

func (h *SlackCommandHandler) channelAppend(ctx context.Context, cmd *slack.SlashCommand) error {
	subscribed, err := h.uc.Channels.Subscribe(ctx, types.ChannelID(cmd.ChannelID), types.TeamID(cmd.TeamID))
	if err != nil {
		return err
	}
	if !subscribed {
		return h.reply(ctx, cmd, "I'm already here :japanese_goblin: ")
	}

	if err := h.reply(ctx, cmd, "Added channel to daily bot :blush: "); err != nil {
		return err
	}
	return h.reply(ctx, cmd, "Parsed all users to the daily bot :robot_face: ")
}

func (h *SlackCommandHandler) channelPop(ctx context.Context, cmd *slack.SlashCommand) error {
	removed, err := h.uc.Channels.Unsubscribe(ctx, types.ChannelID(cmd.ChannelID))
	if err != nil {
		return err
	}
	if !removed {
		return h.reply(ctx, cmd, "I don't do stuff here already :japanese_goblin: ")
	}

	if err := h.reply(ctx, cmd, "Deleted channel from daily bot :wave: "); err != nil {
		return err
	}
	return h.reply(ctx, cmd, "Deleted all users in the channel from the daily bot :skull_and_crossbones: ")
}

func (h *SlackCommandHandler) refreshUsers(ctx context.Context, cmd *slack.SlashCommand) error {
	if _, err := h.uc.Channels.RefreshUsers(ctx, types.ChannelID(cmd.ChannelID)); err != nil {
		if errors.Is(err, usecase.ErrNotSubscribed) {
			return h.reply(ctx, cmd, "I don't do stuff here already :japanese_goblin: ")
		}
		return err
	}
	return h.reply(ctx, cmd, "User list was updated :robot_face: ")
}

func (h *SlackCommandHandler) listQuestions(ctx context.Context, cmd *slack.SlashCommand) error {
	questions, err := h.uc.Channels.ListQuestions(ctx, types.ChannelID(cmd.ChannelID))
	if err != nil {
		return err
	}

	if len(questions) == 0 {
		return h.reply(ctx, cmd, "None is available.\nAdd some with `/question_append How are you doing`")
	}

	var sb strings.Builder
	sb.WriteString("Questions:\n")
	items := make([]string, 0, len(questions))
	for idx, q := range questions {
		fmt.Fprintf(&sb, "%d.  %s.\n", idx+1, q.Body)
		items = append(items, q.Body)
	}
	return h.replyBlocks(ctx, cmd, sb.String(), slacksvc.ListBlocks("Questions", items))
}

func (h *SlackCommandHandler) questionAppend(ctx context.Context, cmd *slack.SlashCommand) error {
	text := strings.TrimSpace(cmd.Text)
	if text == "" {
		return h.reply(ctx, cmd, "Enter the question after the command\nExample: `/question_append How are you doing`")
	}

	if _, err := h.uc.Channels.AddQuestion(ctx, types.ChannelID(cmd.ChannelID), text); err != nil {
		return err
	}
	return h.reply(ctx, cmd, "Your question has been added to the daily bot :zap: ")
}

func (h *SlackCommandHandler) questionPop(ctx context.Context, cmd *slack.SlashCommand) error {
	text := strings.TrimSpace(cmd.Text)
	if text == "" {
		return h.reply(ctx, cmd, "Enter the index after the command\nExample: `/question_pop 1`")
	}

	position, err := strconv.Atoi(text)
	if err != nil {
		return h.reply(ctx, cmd, "Enter the index of the question you want to delete\nExample: `/question_pop 1` ")
	}

	removed, err := h.uc.Channels.RemoveQuestion(ctx, types.ChannelID(cmd.ChannelID), position)
	if err != nil {
		return err
	}
	if !removed {
		return h.reply(ctx, cmd, "Enter the index of the question you want to delete\nExample: `/question_pop 1` ")
	}
	return h.reply(ctx, cmd, "Your question has been removed from the daily bot :zap: ")
}

func (h *SlackCommandHandler) setCron(ctx context.Context, cmd *slack.SlashCommand) error {
	expr := strings.TrimSpace(cmd.Text)
	if expr == "" {
		return h.reply(ctx, cmd, "Incorrect cron :cry: \nCheck the cron here\nhttps://crontab.guru/")
	}

	err := h.uc.Channels.SetCron(ctx, types.ChannelID(cmd.ChannelID), expr, types.UserID(cmd.UserID))
	switch {
	case err == nil:
		return h.reply(ctx, cmd, "Cron was updated :zap: ")
	case errors.Is(err, usecase.ErrNotSubscribed):
		return h.reply(ctx, cmd, "I don't do stuff here already :japanese_goblin: ")
	default:
		logging.From(ctx).Warn("rejected cron expression", "cron", expr, "error", err)
		return h.reply(ctx, cmd, "Incorrect cron :cry: \nCheck the cron here\nhttps://crontab.guru/")
	}
}

func (h *SlackCommandHandler) skipCron(ctx context.Context, cmd *slack.SlashCommand) error {
	next, err := h.uc.Channels.SkipNext(ctx, types.ChannelID(cmd.ChannelID))
	switch {
	case err == nil:
		text := fmt.Sprintf("Next daily was skipped. The following one is on %s :zap: ", next.Format(time.RFC1123))
		blocks := slacksvc.SuccessBlocks("Next daily was skipped",
			fmt.Sprintf("The following one is on %s", next.Format(time.RFC1123)))
		return h.replyBlocks(ctx, cmd, text, blocks)
	case errors.Is(err, scheduler.ErrNoScheduleConfigured), errors.Is(err, usecase.ErrSchedulerDisabled):
		return h.reply(ctx, cmd, "No cron is set for this channel :cry: \nSet one with `/cron 0 9 * * MON-FRI`")
	default:
		return err
	}
}
