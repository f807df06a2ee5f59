package types

import (
	"strconv"

	"github.com/m-mizutani/goerr/v2"
)

// ChannelID represents a unique identifier for a Slack channel
type ChannelID string

// String returns the string representation of the channel ID
func (id ChannelID) String() string {
	return string(id)
}

// Validate checks if the channel ID is non-empty
func (id ChannelID) Validate() error {
	if id == "" {
		return goerr.New("channel ID is required")
	}
	return nil
}

// TeamID represents a unique identifier for a Slack workspace
type TeamID string

// String returns the string representation of the team ID
func (id TeamID) String() string {
	return string(id)
}

// UserID represents a unique identifier for a Slack user
type UserID string

// String returns the string representation of the user ID
func (id UserID) String() string {
	return string(id)
}

// Validate checks if the user ID is non-empty
func (id UserID) Validate() error {
	if id == "" {
		return goerr.New("user ID is required")
	}
	return nil
}

// QuestionID identifies a question. IDs are allocated monotonically by the
// repository and define the presentation order of a channel's questions.
// Deleting a question never renumbers the others.
type QuestionID int64

// QuestionNone is the sentinel for "not pointing at any question". A user in
// an active session with QuestionNone has just been started and owes an
// answer to the channel's first question.
const QuestionNone QuestionID = 0

// String returns the decimal representation of the question ID
func (id QuestionID) String() string {
	return strconv.FormatInt(int64(id), 10)
}

// IsNone reports whether the ID is the "no question" sentinel
func (id QuestionID) IsNone() bool {
	return id == QuestionNone
}

// ThreadTS represents a Slack message timestamp. Slack uses it in place of a
// message ID, and thread replies carry the root message's timestamp.
type ThreadTS string

// String returns the string representation of the thread timestamp
func (ts ThreadTS) String() string {
	return string(ts)
}

// Validate checks if the thread timestamp is non-empty
func (ts ThreadTS) Validate() error {
	if ts == "" {
		return goerr.New("thread timestamp is required")
	}
	return nil
}
