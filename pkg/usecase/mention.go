package usecase

import (
	"context"
	"fmt"

	"github.com/m-mizutani/goerr/v2"

	"github.com/efa2d19/dailynator/pkg/domain/types"
)

// RecordThread maps a posted report message to its author
func (uc *DailyUseCase) RecordThread(ctx context.Context, threadTS types.ThreadTS, userID types.UserID) error {
	if err := uc.repo.Thread().Put(ctx, threadTS, userID); err != nil {
		return goerr.Wrap(err, "failed to record thread mapping", goerr.V("thread_ts", threadTS), goerr.V("user_id", userID))
	}
	return nil
}

// ConsumeThread returns the author of the report thread at most once; later
// calls for the same thread find nothing
func (uc *DailyUseCase) ConsumeThread(ctx context.Context, threadTS types.ThreadTS) (types.UserID, bool, error) {
	userID, found, err := uc.repo.Thread().Consume(ctx, threadTS)
	if err != nil {
		return "", false, goerr.Wrap(err, "failed to consume thread mapping", goerr.V("thread_ts", threadTS))
	}
	return userID, found, nil
}

// HandleThreadReply notifies a reporter about the first reply under their
// report. Unknown threads and the reporter's own replies are ignored.
func (uc *DailyUseCase) HandleThreadReply(ctx context.Context, channelID types.ChannelID, threadTS types.ThreadTS, replierID types.UserID) error {
	reporter, found, err := uc.ConsumeThread(ctx, threadTS)
	if err != nil {
		return err
	}
	if !found || reporter == replierID {
		return nil
	}

	text := fmt.Sprintf("<@%s> you have a reply to your report :eyes: ", reporter)
	if err := uc.slackService.PostThreadMessage(ctx, channelID.String(), threadTS.String(), text); err != nil {
		return goerr.Wrap(err, "failed to post thread mention",
			goerr.V("channel_id", channelID),
			goerr.V("thread_ts", threadTS),
			goerr.V("reporter", reporter))
	}
	return nil
}
