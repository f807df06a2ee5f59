package usecase

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/efa2d19/dailynator/pkg/domain/model"
	"github.com/efa2d19/dailynator/pkg/utils/logging"
)

// EligibleUsers filters channel members by their Do Not Disturb status: a
// member is included only while the current time is before the start of
// their next DND window. A failed lookup excludes that member and never
// aborts the rest of the batch. The input order is preserved.
func (uc *DailyUseCase) EligibleUsers(ctx context.Context, users []*model.User) []*model.User {
	logger := logging.From(ctx)
	now := time.Now()

	include := make([]bool, len(users))

	eg, egCtx := errgroup.WithContext(ctx)
	for i, user := range users {
		eg.Go(func() error {
			nextDND, err := uc.slackService.GetDNDNextStart(egCtx, user.ID.String())
			if err != nil {
				logger.Warn("DND lookup failed, excluding user from session",
					"user_id", user.ID.String(),
					"error", err.Error())
				return nil
			}
			// The DND start is an absolute instant; a zero value means no
			// upcoming window
			include[i] = nextDND.IsZero() || now.Before(nextDND)
			return nil
		})
	}
	_ = eg.Wait()

	eligible := make([]*model.User, 0, len(users))
	for i, user := range users {
		if include[i] {
			eligible = append(eligible, user)
		}
	}
	return eligible
}
