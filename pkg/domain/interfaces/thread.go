package interfaces

import (
	"context"

	"github.com/efa2d19/dailynator/pkg/domain/types"
)

// ThreadRepository stores the one-shot mapping between a posted report
// message and its author, used to route later thread replies back to them.
type ThreadRepository interface {
	// Put records the mapping for a freshly posted report
	Put(ctx context.Context, threadTS types.ThreadTS, userID types.UserID) error

	// Consume looks up the mapping and deletes it when found. The second
	// return value is false when the thread is unknown, which includes a
	// mapping that was already consumed.
	Consume(ctx context.Context, threadTS types.ThreadTS) (types.UserID, bool, error)
}
