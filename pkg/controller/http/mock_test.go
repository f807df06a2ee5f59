package http_test

import (
	"context"
	"fmt"
	"sync"
	"time"

	goslack "github.com/slack-go/slack"

	"github.com/efa2d19/dailynator/pkg/service/slack"
)

type postedMessage struct {
	Channel string
	User    string
	Text    string
	Blocks  []goslack.Block
}

// mockSlackService is a mock implementation of slack.Service for testing
type mockSlackService struct {
	mu sync.Mutex

	members map[string][]string
	users   map[string]*slack.User

	messages      []postedMessage
	threadReplies []postedMessage
	ephemerals    []postedMessage

	tsCounter int
}

func newMockSlackService() *mockSlackService {
	return &mockSlackService{
		members: make(map[string][]string),
		users:   make(map[string]*slack.User),
	}
}

func (m *mockSlackService) ListMembers(ctx context.Context, channelID string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.members[channelID], nil
}

func (m *mockSlackService) GetUserInfo(ctx context.Context, userID string) (*slack.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.users[userID]; ok {
		return u, nil
	}
	return &slack.User{ID: userID, RealName: "User " + userID}, nil
}

func (m *mockSlackService) GetChannelInfo(ctx context.Context, channelID string) (*slack.Channel, error) {
	return &slack.Channel{ID: channelID, Name: "daily", Creator: "U000"}, nil
}

func (m *mockSlackService) GetDNDNextStart(ctx context.Context, userID string) (time.Time, error) {
	return time.Time{}, nil
}

func (m *mockSlackService) OpenIM(ctx context.Context, userID string) (string, error) {
	return "D" + userID, nil
}

func (m *mockSlackService) PostMessage(ctx context.Context, channelID string, text string, blocks []goslack.Block) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = append(m.messages, postedMessage{Channel: channelID, Text: text, Blocks: blocks})
	m.tsCounter++
	return fmt.Sprintf("1700000000.%06d", m.tsCounter), nil
}

func (m *mockSlackService) PostReport(ctx context.Context, channelID string, text string, username string, iconURL string, attachments []goslack.Attachment) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tsCounter++
	return fmt.Sprintf("1700000000.%06d", m.tsCounter), nil
}

func (m *mockSlackService) PostThreadMessage(ctx context.Context, channelID string, threadTS string, text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.threadReplies = append(m.threadReplies, postedMessage{Channel: channelID, Text: text})
	return nil
}

func (m *mockSlackService) PostEphemeral(ctx context.Context, channelID string, userID string, text string, blocks []goslack.Block) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ephemerals = append(m.ephemerals, postedMessage{Channel: channelID, User: userID, Text: text, Blocks: blocks})
	return nil
}

func (m *mockSlackService) ephemeralTexts() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	texts := make([]string, 0, len(m.ephemerals))
	for _, msg := range m.ephemerals {
		texts = append(texts, msg.Text)
	}
	return texts
}
