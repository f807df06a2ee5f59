package slack

import (
	"context"
	"time"

	"github.com/slack-go/slack"
)

// Service provides the Slack API surface the daily bot needs
type Service interface {
	// ListMembers retrieves the member IDs of a channel, excluding bots
	// and deleted accounts
	ListMembers(ctx context.Context, channelID string) ([]string, error)

	// GetUserInfo retrieves user information for the given user ID
	GetUserInfo(ctx context.Context, userID string) (*User, error)

	// GetChannelInfo retrieves channel information for the given channel ID
	GetChannelInfo(ctx context.Context, channelID string) (*Channel, error)

	// GetDNDNextStart retrieves the start of the user's next Do Not Disturb
	// window. A zero time means the user has no upcoming DND window.
	GetDNDNextStart(ctx context.Context, userID string) (time.Time, error)

	// OpenIM opens (or resumes) a direct message conversation with the user
	// and returns its channel ID
	OpenIM(ctx context.Context, userID string) (string, error)

	// PostMessage posts a Block Kit message to a channel and returns the
	// message timestamp. The text parameter is used as a fallback for
	// notifications.
	PostMessage(ctx context.Context, channelID string, text string, blocks []slack.Block) (string, error)

	// PostReport posts attachment-based report messages to a channel under
	// the reporter's name and avatar. Returns the message timestamp.
	PostReport(ctx context.Context, channelID string, text string, username string, iconURL string, attachments []slack.Attachment) (string, error)

	// PostThreadMessage posts a plain text reply into an existing thread
	PostThreadMessage(ctx context.Context, channelID string, threadTS string, text string) error

	// PostEphemeral posts a message only the given user can see. Blocks are
	// optional; text is the fallback when they are present.
	PostEphemeral(ctx context.Context, channelID string, userID string, text string, blocks []slack.Block) error
}

// Channel represents a Slack channel
type Channel struct {
	ID      string
	Name    string
	Creator string
}

// User represents a Slack user
type User struct {
	ID       string
	Name     string
	RealName string
	TZ       string
	ImageURL string
	IsBot    bool
}
