package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/efa2d19/dailynator/pkg/domain/interfaces"
	"github.com/efa2d19/dailynator/pkg/domain/model"
	"github.com/efa2d19/dailynator/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const channelsCollection = "channels"

type channelRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

var _ interfaces.ChannelRepository = &channelRepository{}

func newChannelRepository(client *firestore.Client) *channelRepository {
	return &channelRepository{
		client: client,
	}
}

// channelDoc is the Firestore persistence model
type channelDoc struct {
	ID     string `firestore:"id"`
	TeamID string `firestore:"team_id"`
	Name   string `firestore:"name"`
	Cron   string `firestore:"cron"`
	CronTZ string `firestore:"cron_tz"`
}

func (r *channelRepository) collection() *firestore.CollectionRef {
	if r.collectionPrefix != "" {
		return r.client.Collection(r.collectionPrefix + "_" + channelsCollection)
	}
	return r.client.Collection(channelsCollection)
}

func (r *channelRepository) toDoc(c *model.Channel) *channelDoc {
	return &channelDoc{
		ID:     string(c.ID),
		TeamID: string(c.TeamID),
		Name:   c.Name,
		Cron:   c.Cron,
		CronTZ: c.CronTZ,
	}
}

func (r *channelRepository) fromDoc(doc *channelDoc) *model.Channel {
	return &model.Channel{
		ID:     types.ChannelID(doc.ID),
		TeamID: types.TeamID(doc.TeamID),
		Name:   doc.Name,
		Cron:   doc.Cron,
		CronTZ: doc.CronTZ,
	}
}

func (r *channelRepository) Put(ctx context.Context, channel *model.Channel) error {
	if channel == nil {
		return goerr.New("channel is nil")
	}
	if err := channel.Validate(); err != nil {
		return err
	}

	_, err := r.collection().Doc(string(channel.ID)).Set(ctx, r.toDoc(channel))
	if err != nil {
		return goerr.Wrap(err, "failed to save channel", goerr.V("channel_id", channel.ID))
	}
	return nil
}

func (r *channelRepository) Get(ctx context.Context, id types.ChannelID) (*model.Channel, error) {
	snap, err := r.collection().Doc(string(id)).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, nil
		}
		return nil, goerr.Wrap(err, "failed to get channel", goerr.V("channel_id", id))
	}

	var doc channelDoc
	if err := snap.DataTo(&doc); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal channel", goerr.V("channel_id", id))
	}

	return r.fromDoc(&doc), nil
}

func (r *channelRepository) List(ctx context.Context) ([]*model.Channel, error) {
	iter := r.collection().OrderBy("id", firestore.Asc).Documents(ctx)
	defer iter.Stop()

	var channels []*model.Channel
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate channels")
		}

		var doc channelDoc
		if err := snap.DataTo(&doc); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal channel", goerr.V("docID", snap.Ref.ID))
		}

		channels = append(channels, r.fromDoc(&doc))
	}

	return channels, nil
}

func (r *channelRepository) Delete(ctx context.Context, id types.ChannelID) error {
	if _, err := r.collection().Doc(string(id)).Delete(ctx); err != nil {
		return goerr.Wrap(err, "failed to delete channel", goerr.V("channel_id", id))
	}
	return nil
}

func (r *channelRepository) SetSchedule(ctx context.Context, id types.ChannelID, cron, tz string) error {
	_, err := r.collection().Doc(string(id)).Update(ctx, []firestore.Update{
		{Path: "cron", Value: cron},
		{Path: "cron_tz", Value: tz},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return goerr.New("channel not found", goerr.V("channel_id", id))
		}
		return goerr.Wrap(err, "failed to update channel schedule", goerr.V("channel_id", id))
	}
	return nil
}
