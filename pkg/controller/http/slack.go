package http

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/slack-go/slack/slackevents"

	"github.com/efa2d19/dailynator/pkg/domain/types"
	slacksvc "github.com/efa2d19/dailynator/pkg/service/slack"
	"github.com/efa2d19/dailynator/pkg/usecase"
	"github.com/efa2d19/dailynator/pkg/utils/async"
	"github.com/efa2d19/dailynator/pkg/utils/errutil"
	"github.com/efa2d19/dailynator/pkg/utils/logging"
	"github.com/efa2d19/dailynator/pkg/utils/safe"
)

// contextKey is a custom type for context keys to avoid collisions
type contextKey string

const slackBodyKey contextKey = "slack_body"

// verifySlackSignature verifies the Slack request signature
// This is a pure function that can be used independently for testing
func verifySlackSignature(signingSecret, timestamp, signature string, body []byte) error {
	if timestamp == "" {
		return goerr.New("missing timestamp")
	}

	if signature == "" {
		return goerr.New("missing signature")
	}

	// Check timestamp to prevent replay attacks (within 5 minutes)
	ts, err := strconv.ParseInt(timestamp, 10, 64)
	if err != nil {
		return goerr.Wrap(err, "invalid timestamp")
	}

	now := time.Now().Unix()
	if now-ts > 60*5 {
		return goerr.New("timestamp too old", goerr.V("timestamp", timestamp), goerr.V("now", now))
	}

	// Compute expected signature
	baseString := fmt.Sprintf("v0:%s:%s", timestamp, body)
	mac := hmac.New(sha256.New, []byte(signingSecret))
	if _, err := mac.Write([]byte(baseString)); err != nil {
		return goerr.Wrap(err, "failed to compute HMAC")
	}
	expectedSignature := "v0=" + hex.EncodeToString(mac.Sum(nil))

	// Compare signatures
	if !hmac.Equal([]byte(expectedSignature), []byte(signature)) {
		return goerr.New("signature mismatch")
	}

	return nil
}

// SlackSignatureMiddleware creates a middleware that verifies Slack request signatures
func SlackSignatureMiddleware(signingSecret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			// Read body
			body, err := io.ReadAll(r.Body)
			if err != nil {
				errutil.HandleHTTP(ctx, w, goerr.Wrap(err, "failed to read request body"), http.StatusBadRequest)
				return
			}
			defer func() {
				if err := r.Body.Close(); err != nil {
					logger := logging.From(ctx)
					logger.Error("failed to close request body", "error", err)
				}
			}()

			// Get headers
			timestamp := r.Header.Get("X-Slack-Request-Timestamp")
			signature := r.Header.Get("X-Slack-Signature")

			// Verify signature
			if err := verifySlackSignature(signingSecret, timestamp, signature, body); err != nil {
				errutil.HandleHTTP(ctx, w, goerr.Wrap(err, "slack signature verification failed"), http.StatusUnauthorized)
				return
			}

			// Store body in context for later use and restore it to the request
			ctx = context.WithValue(ctx, slackBodyKey, body)
			r.Body = io.NopCloser(bytes.NewBuffer(body))

			// Call next handler
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SlackEventHandler handles Slack Events API webhook requests
type SlackEventHandler struct {
	uc       *usecase.UseCases
	slackSvc slacksvc.Service
}

// NewSlackEventHandler creates a new Slack event handler
func NewSlackEventHandler(uc *usecase.UseCases, slackSvc slacksvc.Service) *SlackEventHandler {
	return &SlackEventHandler{
		uc:       uc,
		slackSvc: slackSvc,
	}
}

// ServeHTTP handles Slack webhook requests
func (h *SlackEventHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	// Read body (already verified by middleware)
	body, err := io.ReadAll(r.Body)
	if err != nil {
		errutil.HandleHTTP(ctx, w, goerr.Wrap(err, "failed to read request body"), http.StatusBadRequest)
		return
	}

	// Parse event
	eventsAPIEvent, err := slackevents.ParseEvent(json.RawMessage(body), slackevents.OptionNoVerifyToken())
	if err != nil {
		errutil.HandleHTTP(ctx, w, goerr.Wrap(err, "failed to parse slack event"), http.StatusBadRequest)
		return
	}

	// Handle different event types
	switch eventsAPIEvent.Type {
	case slackevents.URLVerification:
		// URL Verification challenge
		var resp *slackevents.ChallengeResponse
		if err := json.Unmarshal(body, &resp); err != nil {
			errutil.HandleHTTP(ctx, w, goerr.Wrap(err, "failed to unmarshal challenge"), http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusOK)
		safe.Write(ctx, w, []byte(resp.Challenge))
		return

	case slackevents.CallbackEvent:
		// Return 200 immediately to satisfy Slack's 3-second timeout requirement
		w.WriteHeader(http.StatusOK)

		// Process event asynchronously
		async.Dispatch(ctx, func(ctx context.Context) error {
			if err := h.handleCallbackEvent(ctx, &eventsAPIEvent); err != nil {
				return goerr.Wrap(err, "failed to handle slack event")
			}
			return nil
		})

	default:
		// Unknown event type, log and return 200
		logger := logging.From(ctx)
		logger.Warn("unknown slack event type", "type", eventsAPIEvent.Type)
		w.WriteHeader(http.StatusOK)
	}
}

func (h *SlackEventHandler) handleCallbackEvent(ctx context.Context, event *slackevents.EventsAPIEvent) error {
	switch ev := event.InnerEvent.Data.(type) {
	case *slackevents.MessageEvent:
		return h.handleMessage(ctx, ev)

	case *slackevents.MemberJoinedChannelEvent:
		return h.handleMemberJoined(ctx, ev)

	case *slackevents.MemberLeftChannelEvent:
		return h.handleMemberLeft(ctx, ev)

	default:
		logging.From(ctx).Debug("ignoring slack event", "type", event.InnerEvent.Type)
		return nil
	}
}

func (h *SlackEventHandler) handleMessage(ctx context.Context, ev *slackevents.MessageEvent) error {
	// Bot echoes and edits/deletes carry a bot ID or subtype. Skip them so the
	// bot never answers its own questions.
	if ev.BotID != "" || ev.SubType != "" || ev.User == "" {
		return nil
	}

	if ev.ChannelType == "im" {
		return h.uc.Daily.OnReply(ctx, types.UserID(ev.User), ev.Text)
	}

	// A threaded message in a channel may be a reply to a posted report
	if ev.ThreadTimeStamp != "" && ev.ThreadTimeStamp != ev.TimeStamp {
		return h.uc.Daily.HandleThreadReply(ctx,
			types.ChannelID(ev.Channel),
			types.ThreadTS(ev.ThreadTimeStamp),
			types.UserID(ev.User))
	}

	return nil
}

func (h *SlackEventHandler) handleMemberJoined(ctx context.Context, ev *slackevents.MemberJoinedChannelEvent) error {
	realName, err := h.uc.Channels.AddMember(ctx, types.ChannelID(ev.Channel), types.UserID(ev.User))
	if err != nil {
		return goerr.Wrap(err, "failed to add member", goerr.V("user_id", ev.User))
	}
	if realName == "" {
		return nil
	}

	text := fmt.Sprintf("User `%s` joined and was added to daily bot :kangaroo: ", realName)
	return h.notifyCreator(ctx, ev.Channel, text)
}

func (h *SlackEventHandler) handleMemberLeft(ctx context.Context, ev *slackevents.MemberLeftChannelEvent) error {
	realName, err := h.uc.Channels.RemoveMember(ctx, types.UserID(ev.User))
	if err != nil {
		return goerr.Wrap(err, "failed to remove member", goerr.V("user_id", ev.User))
	}

	text := fmt.Sprintf("User `%s` left and was removed from daily bot :cry: ", realName)
	return h.notifyCreator(ctx, ev.Channel, text)
}

// notifyCreator sends an ephemeral notice to the channel creator
func (h *SlackEventHandler) notifyCreator(ctx context.Context, channelID, text string) error {
	info, err := h.slackSvc.GetChannelInfo(ctx, channelID)
	if err != nil {
		return goerr.Wrap(err, "failed to get channel info", goerr.V("channel_id", channelID))
	}

	if err := h.slackSvc.PostEphemeral(ctx, channelID, info.Creator, text, nil); err != nil {
		return goerr.Wrap(err, "failed to notify channel creator", goerr.V("channel_id", channelID))
	}
	return nil
}
