package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/efa2d19/dailynator/pkg/domain/interfaces"
	"github.com/efa2d19/dailynator/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const threadsCollection = "daily_threads"

type threadRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

var _ interfaces.ThreadRepository = &threadRepository{}

func newThreadRepository(client *firestore.Client) *threadRepository {
	return &threadRepository{
		client: client,
	}
}

// threadDoc is the Firestore persistence model
type threadDoc struct {
	ThreadTS string `firestore:"thread_ts"`
	UserID   string `firestore:"user_id"`
}

func (r *threadRepository) collection() *firestore.CollectionRef {
	if r.collectionPrefix != "" {
		return r.client.Collection(r.collectionPrefix + "_" + threadsCollection)
	}
	return r.client.Collection(threadsCollection)
}

func (r *threadRepository) Put(ctx context.Context, threadTS types.ThreadTS, userID types.UserID) error {
	if err := threadTS.Validate(); err != nil {
		return err
	}
	if err := userID.Validate(); err != nil {
		return goerr.Wrap(err, "invalid thread mapping", goerr.V("thread_ts", threadTS))
	}

	doc := &threadDoc{
		ThreadTS: string(threadTS),
		UserID:   string(userID),
	}
	if _, err := r.collection().Doc(string(threadTS)).Set(ctx, doc); err != nil {
		return goerr.Wrap(err, "failed to save thread mapping", goerr.V("thread_ts", threadTS))
	}
	return nil
}

// Consume reads and deletes the mapping in one transaction so concurrent
// replies to the same thread resolve the author at most once.
func (r *threadRepository) Consume(ctx context.Context, threadTS types.ThreadTS) (types.UserID, bool, error) {
	var userID types.UserID
	found := false

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		ref := r.collection().Doc(string(threadTS))
		snap, err := tx.Get(ref)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return nil
			}
			return goerr.Wrap(err, "failed to get thread mapping")
		}

		var doc threadDoc
		if err := snap.DataTo(&doc); err != nil {
			return goerr.Wrap(err, "failed to unmarshal thread mapping")
		}

		userID = types.UserID(doc.UserID)
		found = true

		return tx.Delete(ref)
	})
	if err != nil {
		return "", false, goerr.Wrap(err, "failed to consume thread mapping", goerr.V("thread_ts", threadTS))
	}

	return userID, found, nil
}
