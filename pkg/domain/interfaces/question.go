package interfaces

import (
	"context"

	"github.com/efa2d19/dailynator/pkg/domain/model"
	"github.com/efa2d19/dailynator/pkg/domain/types"
)

// QuestionRepository provides persistence for a channel's ordered question
// list. Question IDs are allocated monotonically by the repository and are
// never reused or renumbered.
type QuestionRepository interface {
	// Add stores a new question and returns it with the allocated ID
	Add(ctx context.Context, question *model.Question) (*model.Question, error)

	// ListByChannel retrieves a channel's questions in ascending ID order
	ListByChannel(ctx context.Context, channelID types.ChannelID) ([]*model.Question, error)

	// Delete removes exactly one question. Positions of the remaining
	// questions are unchanged. Unknown IDs are a no-op.
	Delete(ctx context.Context, id types.QuestionID) error

	// DeleteByChannel removes all questions belonging to a channel
	DeleteByChannel(ctx context.Context, channelID types.ChannelID) error
}
