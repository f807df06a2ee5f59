package memory

import (
	"context"
	"sync"

	"github.com/efa2d19/dailynator/pkg/domain/interfaces"
	"github.com/efa2d19/dailynator/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

type threadRepository struct {
	mu      sync.Mutex
	threads map[types.ThreadTS]types.UserID
}

var _ interfaces.ThreadRepository = &threadRepository{}

func newThreadRepository() *threadRepository {
	return &threadRepository{
		threads: make(map[types.ThreadTS]types.UserID),
	}
}

func (r *threadRepository) Put(ctx context.Context, threadTS types.ThreadTS, userID types.UserID) error {
	if err := threadTS.Validate(); err != nil {
		return err
	}
	if err := userID.Validate(); err != nil {
		return goerr.Wrap(err, "invalid thread mapping", goerr.V("thread_ts", threadTS))
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.threads[threadTS] = userID
	return nil
}

func (r *threadRepository) Consume(ctx context.Context, threadTS types.ThreadTS) (types.UserID, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	userID, exists := r.threads[threadTS]
	if !exists {
		return "", false, nil
	}

	delete(r.threads, threadTS)
	return userID, true, nil
}
