package interfaces

import (
	"context"

	"github.com/efa2d19/dailynator/pkg/domain/model"
	"github.com/efa2d19/dailynator/pkg/domain/types"
)

// ChannelRepository provides persistence for subscribed channels
type ChannelRepository interface {
	// Put saves a channel (upsert)
	Put(ctx context.Context, channel *model.Channel) error

	// Get retrieves a channel by ID. Returns (nil, nil) when unknown.
	Get(ctx context.Context, id types.ChannelID) (*model.Channel, error)

	// List retrieves all subscribed channels
	List(ctx context.Context) ([]*model.Channel, error)

	// Delete removes a channel. Unknown IDs are a no-op.
	Delete(ctx context.Context, id types.ChannelID) error

	// SetSchedule updates the channel's cron expression and timezone
	SetSchedule(ctx context.Context, id types.ChannelID, cron, tz string) error
}
