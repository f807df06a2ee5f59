package usecase_test

import (
	"context"
	"fmt"
	"sync"
	"time"

	goslack "github.com/slack-go/slack"

	"github.com/efa2d19/dailynator/pkg/domain/types"
	"github.com/efa2d19/dailynator/pkg/service/slack"
)

type postedMessage struct {
	Channel string
	Text    string
	Blocks  []goslack.Block
}

type postedReport struct {
	Channel     string
	Text        string
	Username    string
	IconURL     string
	Attachments []goslack.Attachment
}

// mockSlackService is a mock implementation of slack.Service for testing
type mockSlackService struct {
	mu sync.Mutex

	members map[string][]string
	users   map[string]*slack.User
	dnd     map[string]time.Time
	dndErr  map[string]error

	messages      []postedMessage
	reports       []postedReport
	threadReplies []postedMessage
	ephemerals    []postedMessage

	tsCounter int
}

func newMockSlackService() *mockSlackService {
	return &mockSlackService{
		members: make(map[string][]string),
		users:   make(map[string]*slack.User),
		dnd:     make(map[string]time.Time),
		dndErr:  make(map[string]error),
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
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.dndErr[userID]; err != nil {
		return time.Time{}, err
	}
	return m.dnd[userID], nil
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
	m.reports = append(m.reports, postedReport{
		Channel: channelID, Text: text, Username: username, IconURL: iconURL, Attachments: attachments,
	})
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
	m.ephemerals = append(m.ephemerals, postedMessage{Channel: channelID, Text: text})
	return nil
}

func (m *mockSlackService) messagesTo(channelID string) []postedMessage {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []postedMessage
	for _, msg := range m.messages {
		if msg.Channel == channelID {
			out = append(out, msg)
		}
	}
	return out
}

// mockScheduler is a mock implementation of usecase.ScheduleController
type mockScheduler struct {
	mu              sync.Mutex
	reconcileCalled int
	skipNextFn      func(ctx context.Context, channelID types.ChannelID) (time.Time, error)
}

func (m *mockScheduler) Reconcile(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reconcileCalled++
	return nil
}

func (m *mockScheduler) SkipNext(ctx context.Context, channelID types.ChannelID) (time.Time, error) {
	if m.skipNextFn != nil {
		return m.skipNextFn(ctx, channelID)
	}
	return time.Time{}, nil
}
