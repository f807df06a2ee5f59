package slack

import (
	"context"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/slack-go/slack"
)

// client implements Service interface
type client struct {
	api *slack.Client
}

// New creates a new Slack service with the provided bot token
func New(token string) (Service, error) {
	if token == "" {
		return nil, goerr.New("Slack bot token is required")
	}

	return &client{
		api: slack.New(token),
	}, nil
}

// ListMembers retrieves the member IDs of a channel, excluding bots and
// deleted accounts
func (c *client) ListMembers(ctx context.Context, channelID string) ([]string, error) {
	var memberIDs []string
	var cursor string

	for {
		params := &slack.GetUsersInConversationParameters{
			ChannelID: channelID,
			Limit:     100,
			Cursor:    cursor,
		}

		members, nextCursor, err := c.api.GetUsersInConversationContext(ctx, params)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to get conversation members", goerr.V("channel_id", channelID))
		}
		memberIDs = append(memberIDs, members...)

		if nextCursor == "" {
			break
		}
		cursor = nextCursor
	}

	result := make([]string, 0, len(memberIDs))
	for _, id := range memberIDs {
		user, err := c.api.GetUserInfoContext(ctx, id)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to get member info", goerr.V("user_id", id))
		}
		if user.IsBot || user.Deleted {
			continue
		}
		result = append(result, id)
	}

	return result, nil
}

// GetUserInfo retrieves user information for the given user ID
func (c *client) GetUserInfo(ctx context.Context, userID string) (*User, error) {
	user, err := c.api.GetUserInfoContext(ctx, userID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get user info", goerr.V("user_id", userID))
	}

	return &User{
		ID:       user.ID,
		Name:     user.Name,
		RealName: user.RealName,
		TZ:       user.TZ,
		ImageURL: user.Profile.Image48,
		IsBot:    user.IsBot,
	}, nil
}

// GetChannelInfo retrieves channel information for the given channel ID
func (c *client) GetChannelInfo(ctx context.Context, channelID string) (*Channel, error) {
	info, err := c.api.GetConversationInfoContext(ctx, &slack.GetConversationInfoInput{
		ChannelID: channelID,
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get channel info", goerr.V("channel_id", channelID))
	}

	return &Channel{
		ID:      info.ID,
		Name:    info.Name,
		Creator: info.Creator,
	}, nil
}

// GetDNDNextStart retrieves the start of the user's next DND window
func (c *client) GetDNDNextStart(ctx context.Context, userID string) (time.Time, error) {
	status, err := c.api.GetDNDInfoContext(ctx, &userID)
	if err != nil {
		return time.Time{}, goerr.Wrap(err, "failed to get DND info", goerr.V("user_id", userID))
	}

	if status.NextStartTimestamp == 0 {
		return time.Time{}, nil
	}
	return time.Unix(int64(status.NextStartTimestamp), 0), nil
}

// OpenIM opens a direct message conversation with the user
func (c *client) OpenIM(ctx context.Context, userID string) (string, error) {
	channel, _, _, err := c.api.OpenConversationContext(ctx, &slack.OpenConversationParameters{
		Users: []string{userID},
	})
	if err != nil {
		return "", goerr.Wrap(err, "failed to open IM conversation", goerr.V("user_id", userID))
	}

	return channel.ID, nil
}

// PostMessage posts a Block Kit message to a channel
func (c *client) PostMessage(ctx context.Context, channelID string, text string, blocks []slack.Block) (string, error) {
	opts := []slack.MsgOption{
		slack.MsgOptionText(text, false),
	}
	if len(blocks) > 0 {
		opts = append(opts, slack.MsgOptionBlocks(blocks...))
	}

	_, ts, err := c.api.PostMessageContext(ctx, channelID, opts...)
	if err != nil {
		return "", goerr.Wrap(err, "failed to post message", goerr.V("channel_id", channelID))
	}

	return ts, nil
}

// PostReport posts report attachments to a channel as the reporter
func (c *client) PostReport(ctx context.Context, channelID string, text string, username string, iconURL string, attachments []slack.Attachment) (string, error) {
	opts := []slack.MsgOption{
		slack.MsgOptionText(text, false),
		slack.MsgOptionAttachments(attachments...),
		slack.MsgOptionUsername(username),
		slack.MsgOptionIconURL(iconURL),
	}

	_, ts, err := c.api.PostMessageContext(ctx, channelID, opts...)
	if err != nil {
		return "", goerr.Wrap(err, "failed to post report", goerr.V("channel_id", channelID))
	}

	return ts, nil
}

// PostThreadMessage posts a plain text reply into an existing thread
func (c *client) PostThreadMessage(ctx context.Context, channelID string, threadTS string, text string) error {
	_, _, err := c.api.PostMessageContext(ctx, channelID,
		slack.MsgOptionText(text, false),
		slack.MsgOptionTS(threadTS),
	)
	if err != nil {
		return goerr.Wrap(err, "failed to post thread reply", goerr.V("channel_id", channelID), goerr.V("thread_ts", threadTS))
	}

	return nil
}

// PostEphemeral posts a message only the given user can see
func (c *client) PostEphemeral(ctx context.Context, channelID string, userID string, text string, blocks []slack.Block) error {
	options := []slack.MsgOption{
		slack.MsgOptionText(text, false),
	}
	if len(blocks) > 0 {
		options = append(options, slack.MsgOptionBlocks(blocks...))
	}

	_, err := c.api.PostEphemeralContext(ctx, channelID, userID, options...)
	if err != nil {
		return goerr.Wrap(err, "failed to post ephemeral message", goerr.V("channel_id", channelID), goerr.V("user_id", userID))
	}

	return nil
}
