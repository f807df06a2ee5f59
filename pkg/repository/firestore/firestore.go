package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/efa2d19/dailynator/pkg/domain/interfaces"
	"github.com/m-mizutani/goerr/v2"
)

// Firestore is the Firestore-backed Repository implementation
type Firestore struct {
	client   *firestore.Client
	channel  *channelRepository
	user     *userRepository
	question *questionRepository
	answer   *answerRepository
	thread   *threadRepository
}

var _ interfaces.Repository = &Firestore{}

type Option func(*Firestore)

// WithCollectionPrefix prefixes all collection names, so multiple bot
// deployments can share one database.
func WithCollectionPrefix(prefix string) Option {
	return func(f *Firestore) {
		f.channel.collectionPrefix = prefix
		f.user.collectionPrefix = prefix
		f.question.collectionPrefix = prefix
		f.answer.collectionPrefix = prefix
		f.thread.collectionPrefix = prefix
	}
}

// New creates a Firestore repository. The caller owns Close.
func New(ctx context.Context, projectID, databaseID string, opts ...Option) (*Firestore, error) {
	var client *firestore.Client
	var err error
	if databaseID != "" {
		client, err = firestore.NewClientWithDatabase(ctx, projectID, databaseID)
	} else {
		client, err = firestore.NewClient(ctx, projectID)
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create firestore client", goerr.V("projectID", projectID))
	}

	f := &Firestore{
		client:   client,
		channel:  newChannelRepository(client),
		user:     newUserRepository(client),
		question: newQuestionRepository(client),
		answer:   newAnswerRepository(client),
		thread:   newThreadRepository(client),
	}

	for _, opt := range opts {
		opt(f)
	}

	return f, nil
}

func (f *Firestore) Channel() interfaces.ChannelRepository {
	return f.channel
}

func (f *Firestore) User() interfaces.UserRepository {
	return f.user
}

func (f *Firestore) Question() interfaces.QuestionRepository {
	return f.question
}

func (f *Firestore) Answer() interfaces.AnswerRepository {
	return f.answer
}

func (f *Firestore) Thread() interfaces.ThreadRepository {
	return f.thread
}

func (f *Firestore) Close() error {
	if f.client != nil {
		return f.client.Close()
	}
	return nil
}
