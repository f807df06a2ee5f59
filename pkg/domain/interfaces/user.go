package interfaces

import (
	"context"

	"github.com/efa2d19/dailynator/pkg/domain/model"
	"github.com/efa2d19/dailynator/pkg/domain/types"
)

// UserRepository provides persistence for tracked channel members
type UserRepository interface {
	// Put saves a user (upsert)
	Put(ctx context.Context, user *model.User) error

	// Get retrieves a user by ID. Returns (nil, nil) when unknown.
	Get(ctx context.Context, id types.UserID) (*model.User, error)

	// ListByChannel retrieves all users belonging to a channel
	ListByChannel(ctx context.Context, channelID types.ChannelID) ([]*model.User, error)

	// Delete removes a user. Unknown IDs are a no-op.
	Delete(ctx context.Context, id types.UserID) error

	// DeleteByChannel removes all users belonging to a channel
	DeleteByChannel(ctx context.Context, channelID types.ChannelID) error

	// SetProgress updates the user's session status and owed question in
	// one write. Unknown IDs are a no-op.
	SetProgress(ctx context.Context, id types.UserID, dailyStatus bool, questionID types.QuestionID) error
}
