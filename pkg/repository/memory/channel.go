package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/efa2d19/dailynator/pkg/domain/interfaces"
	"github.com/efa2d19/dailynator/pkg/domain/model"
	"github.com/efa2d19/dailynator/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

type channelRepository struct {
	mu       sync.RWMutex
	channels map[types.ChannelID]*model.Channel
}

var _ interfaces.ChannelRepository = &channelRepository{}

func newChannelRepository() *channelRepository {
	return &channelRepository{
		channels: make(map[types.ChannelID]*model.Channel),
	}
}

func copyChannel(c *model.Channel) *model.Channel {
	copied := *c
	return &copied
}

func (r *channelRepository) Put(ctx context.Context, channel *model.Channel) error {
	if channel == nil {
		return goerr.New("channel is nil")
	}
	if err := channel.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.channels[channel.ID] = copyChannel(channel)
	return nil
}

func (r *channelRepository) Get(ctx context.Context, id types.ChannelID) (*model.Channel, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	channel, exists := r.channels[id]
	if !exists {
		return nil, nil
	}
	return copyChannel(channel), nil
}

func (r *channelRepository) List(ctx context.Context) ([]*model.Channel, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*model.Channel, 0, len(r.channels))
	for _, c := range r.channels {
		result = append(result, copyChannel(c))
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result, nil
}

func (r *channelRepository) Delete(ctx context.Context, id types.ChannelID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.channels, id)
	return nil
}

func (r *channelRepository) SetSchedule(ctx context.Context, id types.ChannelID, cron, tz string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	channel, exists := r.channels[id]
	if !exists {
		return goerr.New("channel not found", goerr.V("channel_id", id))
	}

	channel.Cron = cron
	channel.CronTZ = tz
	return nil
}
