package usecase

import (
	"context"
	"fmt"

	"github.com/m-mizutani/goerr/v2"
	goslack "github.com/slack-go/slack"

	"github.com/efa2d19/dailynator/pkg/domain/model"
	"github.com/efa2d19/dailynator/pkg/domain/types"
	slacksvc "github.com/efa2d19/dailynator/pkg/service/slack"
	"github.com/efa2d19/dailynator/pkg/utils/logging"
)

// Assemble builds the report for a user's completed cycle. The reporter's
// display name and avatar come from Slack; a failed profile lookup degrades
// to the stored name with no avatar.
func (uc *DailyUseCase) Assemble(ctx context.Context, user *model.User) (*model.Report, error) {
	answers, err := uc.repo.Answer().ListByUser(ctx, user.ID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list answers", goerr.V("user_id", user.ID))
	}

	questions, err := uc.repo.Question().ListByChannel(ctx, user.ChannelID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list questions", goerr.V("channel_id", user.ChannelID))
	}

	report := model.AssembleReport(user, questions, answers, uc.palette, uc.skipTokens)

	if info, err := uc.slackService.GetUserInfo(ctx, user.ID.String()); err != nil {
		logging.From(ctx).Warn("Failed to fetch reporter profile, using stored name",
			"user_id", user.ID.String(),
			"error", err.Error())
	} else {
		report.UserName = info.RealName
		report.IconURL = info.ImageURL
	}

	return report, nil
}

// Publish posts the report to the user's channel as the reporter, records
// the thread mapping for reply routing, and thanks the user over DM. A user
// without a channel gets nothing published and the call succeeds.
func (uc *DailyUseCase) Publish(ctx context.Context, user *model.User, report *model.Report) error {
	if user.ChannelID == "" {
		logging.From(ctx).Warn("User has no channel, discarding report", "user_id", user.ID.String())
		return nil
	}

	attachments := make([]goslack.Attachment, 0, len(report.Entries))
	for _, e := range report.Entries {
		attachments = append(attachments, slacksvc.ReportAttachment(e.Question, e.Answer, e.Color))
	}

	ts, err := uc.slackService.PostReport(ctx, user.ChannelID.String(), report.Summary(), report.UserName, report.IconURL, attachments)
	if err != nil {
		return goerr.Wrap(err, "failed to post report", goerr.V("channel_id", user.ChannelID), goerr.V("user_id", user.ID))
	}

	if err := uc.RecordThread(ctx, types.ThreadTS(ts), user.ID); err != nil {
		// The report is already out; reply routing is best effort
		logging.From(ctx).Warn("Failed to record report thread",
			"user_id", user.ID.String(),
			"thread_ts", ts,
			"error", err.Error())
	}

	imChannel, err := uc.slackService.OpenIM(ctx, user.ID.String())
	if err != nil {
		return goerr.Wrap(err, "failed to open IM for completion notice", goerr.V("user_id", user.ID))
	}
	blocks := slacksvc.SessionEndBlocks(
		fmt.Sprintf("Thanks, %s!", report.UserName),
		"",
		fmt.Sprintf("Your report was posted in <#%s>", user.ChannelID),
	)
	if _, err := uc.slackService.PostMessage(ctx, imChannel, ":tada: Daily completed", blocks); err != nil {
		return goerr.Wrap(err, "failed to send completion notice", goerr.V("user_id", user.ID))
	}

	return nil
}
