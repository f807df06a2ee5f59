package model

import (
	"github.com/efa2d19/dailynator/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

// User represents a channel member tracked by the daily bot. A user belongs
// to exactly one channel at a time.
type User struct {
	ID        types.UserID
	ChannelID types.ChannelID
	RealName  string

	// DailyStatus is true while the user is mid-session.
	DailyStatus bool

	// QuestionID is the question the user owes an answer to next. While
	// DailyStatus is true, QuestionNone means the session was just
	// started and resolves to the channel's first question.
	QuestionID types.QuestionID
}

// Validate checks the required user fields
func (u *User) Validate() error {
	if err := u.ID.Validate(); err != nil {
		return goerr.Wrap(err, "invalid user")
	}
	if err := u.ChannelID.Validate(); err != nil {
		return goerr.Wrap(err, "invalid user", goerr.V("user_id", u.ID))
	}
	return nil
}

// InSession reports whether the user is currently mid-session
func (u *User) InSession() bool {
	return u.DailyStatus
}
