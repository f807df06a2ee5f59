package usecase

import (
	"context"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/efa2d19/dailynator/pkg/domain/model"
	"github.com/efa2d19/dailynator/pkg/domain/types"
	"github.com/efa2d19/dailynator/pkg/utils/logging"
)

// OnReply handles one DM from a user. Replies from users outside a session
// are ignored. The answer is persisted before the user's position advances,
// so a crash between the two writes leaves the answer owed again rather
// than lost.
func (uc *DailyUseCase) OnReply(ctx context.Context, userID types.UserID, text string) error {
	logger := logging.From(ctx)

	user, err := uc.repo.User().Get(ctx, userID)
	if err != nil {
		return goerr.Wrap(err, "failed to get user", goerr.V("user_id", userID))
	}
	if user == nil || !user.InSession() {
		return nil
	}

	questions, err := uc.repo.Question().ListByChannel(ctx, user.ChannelID)
	if err != nil {
		return goerr.Wrap(err, "failed to list questions", goerr.V("channel_id", user.ChannelID))
	}

	answeredID := user.QuestionID
	if answeredID.IsNone() {
		if first := model.FirstQuestion(questions); first != nil {
			answeredID = first.ID
		}
	} else if model.ResolveOwed(questions, answeredID) == nil {
		logger.Warn("Owed question no longer exists, closing out session",
			"user_id", userID.String(),
			"question_id", answeredID.String())
	}

	answer := &model.Answer{
		UserID:     userID,
		QuestionID: answeredID,
		Text:       text,
		CreatedAt:  time.Now(),
	}
	if err := uc.repo.Answer().Add(ctx, answer); err != nil {
		return goerr.Wrap(err, "failed to save answer", goerr.V("user_id", userID))
	}

	next, ok := model.NextQuestion(questions, user.QuestionID)
	if !ok {
		return uc.finish(ctx, user)
	}

	if err := uc.repo.User().SetProgress(ctx, userID, true, next.ID); err != nil {
		return goerr.Wrap(err, "failed to advance session", goerr.V("user_id", userID))
	}

	imChannel, err := uc.slackService.OpenIM(ctx, userID.String())
	if err != nil {
		return goerr.Wrap(err, "failed to open IM", goerr.V("user_id", userID))
	}
	if _, err := uc.slackService.PostMessage(ctx, imChannel, next.Body, nil); err != nil {
		return goerr.Wrap(err, "failed to send next question", goerr.V("user_id", userID))
	}

	return nil
}

// finish closes out a completed session: the user leaves the session first,
// then the report is published and the cycle's answers are removed.
func (uc *DailyUseCase) finish(ctx context.Context, user *model.User) error {
	if err := uc.repo.User().SetProgress(ctx, user.ID, false, types.QuestionNone); err != nil {
		return goerr.Wrap(err, "failed to close session", goerr.V("user_id", user.ID))
	}

	report, err := uc.Assemble(ctx, user)
	if err != nil {
		return goerr.Wrap(err, "failed to assemble report", goerr.V("user_id", user.ID))
	}

	if err := uc.Publish(ctx, user, report); err != nil {
		return goerr.Wrap(err, "failed to publish report", goerr.V("user_id", user.ID))
	}

	if err := uc.repo.Answer().DeleteByUser(ctx, user.ID); err != nil {
		return goerr.Wrap(err, "failed to delete cycle answers", goerr.V("user_id", user.ID))
	}

	return nil
}
