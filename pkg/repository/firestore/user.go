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

const usersCollection = "users"

// Firestore batch write limit
const batchLimit = 500

type userRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

var _ interfaces.UserRepository = &userRepository{}

func newUserRepository(client *firestore.Client) *userRepository {
	return &userRepository{
		client: client,
	}
}

// userDoc is the Firestore persistence model
type userDoc struct {
	ID          string `firestore:"id"`
	ChannelID   string `firestore:"channel_id"`
	RealName    string `firestore:"real_name"`
	DailyStatus bool   `firestore:"daily_status"`
	QuestionID  int64  `firestore:"q_idx"`
}

func (r *userRepository) collection() *firestore.CollectionRef {
	if r.collectionPrefix != "" {
		return r.client.Collection(r.collectionPrefix + "_" + usersCollection)
	}
	return r.client.Collection(usersCollection)
}

func (r *userRepository) toDoc(u *model.User) *userDoc {
	return &userDoc{
		ID:          string(u.ID),
		ChannelID:   string(u.ChannelID),
		RealName:    u.RealName,
		DailyStatus: u.DailyStatus,
		QuestionID:  int64(u.QuestionID),
	}
}

func (r *userRepository) fromDoc(doc *userDoc) *model.User {
	return &model.User{
		ID:          types.UserID(doc.ID),
		ChannelID:   types.ChannelID(doc.ChannelID),
		RealName:    doc.RealName,
		DailyStatus: doc.DailyStatus,
		QuestionID:  types.QuestionID(doc.QuestionID),
	}
}

func (r *userRepository) Put(ctx context.Context, user *model.User) error {
	if user == nil {
		return goerr.New("user is nil")
	}
	if err := user.Validate(); err != nil {
		return err
	}

	_, err := r.collection().Doc(string(user.ID)).Set(ctx, r.toDoc(user))
	if err != nil {
		return goerr.Wrap(err, "failed to save user", goerr.V("user_id", user.ID))
	}
	return nil
}

func (r *userRepository) Get(ctx context.Context, id types.UserID) (*model.User, error) {
	snap, err := r.collection().Doc(string(id)).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, nil
		}
		return nil, goerr.Wrap(err, "failed to get user", goerr.V("user_id", id))
	}

	var doc userDoc
	if err := snap.DataTo(&doc); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal user", goerr.V("user_id", id))
	}

	return r.fromDoc(&doc), nil
}

func (r *userRepository) ListByChannel(ctx context.Context, channelID types.ChannelID) ([]*model.User, error) {
	iter := r.collection().
		Where("channel_id", "==", string(channelID)).
		OrderBy("id", firestore.Asc).
		Documents(ctx)
	defer iter.Stop()

	var users []*model.User
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate users", goerr.V("channel_id", channelID))
		}

		var doc userDoc
		if err := snap.DataTo(&doc); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal user", goerr.V("docID", snap.Ref.ID))
		}

		users = append(users, r.fromDoc(&doc))
	}

	return users, nil
}

func (r *userRepository) Delete(ctx context.Context, id types.UserID) error {
	if _, err := r.collection().Doc(string(id)).Delete(ctx); err != nil {
		return goerr.Wrap(err, "failed to delete user", goerr.V("user_id", id))
	}
	return nil
}

func (r *userRepository) DeleteByChannel(ctx context.Context, channelID types.ChannelID) error {
	iter := r.collection().Where("channel_id", "==", string(channelID)).Documents(ctx)
	defer iter.Stop()

	writer := r.client.BulkWriter(ctx)

	count := 0
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return goerr.Wrap(err, "failed to iterate users for delete", goerr.V("channel_id", channelID))
		}

		if _, err := writer.Delete(snap.Ref); err != nil {
			return goerr.Wrap(err, "failed to enqueue user delete", goerr.V("docID", snap.Ref.ID))
		}

		count++
		if count%batchLimit == 0 {
			writer.Flush()
		}
	}

	writer.End()
	return nil
}

func (r *userRepository) SetProgress(ctx context.Context, id types.UserID, dailyStatus bool, questionID types.QuestionID) error {
	_, err := r.collection().Doc(string(id)).Update(ctx, []firestore.Update{
		{Path: "daily_status", Value: dailyStatus},
		{Path: "q_idx", Value: int64(questionID)},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil
		}
		return goerr.Wrap(err, "failed to update user progress", goerr.V("user_id", id))
	}
	return nil
}
