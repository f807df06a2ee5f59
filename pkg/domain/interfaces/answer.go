package interfaces

import (
	"context"

	"github.com/efa2d19/dailynator/pkg/domain/model"
	"github.com/efa2d19/dailynator/pkg/domain/types"
)

// AnswerRepository provides persistence for the answers accumulated during a
// session. Answers are append-only within a cycle; duplicates for the same
// question are kept as-is.
type AnswerRepository interface {
	// Add appends one answer
	Add(ctx context.Context, answer *model.Answer) error

	// ListByUser retrieves a user's answers in ascending question ID order
	ListByUser(ctx context.Context, userID types.UserID) ([]*model.Answer, error)

	// DeleteByUser removes all answers of a user's current cycle
	DeleteByUser(ctx context.Context, userID types.UserID) error
}
