// Package webhook is the HTTP ingress for platform events. It verifies the
// webhook signature, decodes the JSON event envelope into the core inbound
// model and fans each event out to the registered handler.
package webhook

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/eoss-th/linebrain/core"
	"github.com/eoss-th/linebrain/logging"
)

// Handler receives decoded platform events. The Bot facade implements it.
type Handler interface {
	HandleMessage(ctx context.Context, ev core.MessageEvent) error
	HandleFollow(ctx context.Context, ev core.FollowEvent) error
	HandleUnfollow(ctx context.Context, ev core.UnfollowEvent) error
	HandleJoin(ctx context.Context, ev core.JoinEvent) error
	HandleLeave(ctx context.Context, ev core.LeaveEvent) error
}

type payload struct {
	Destination string         `json:"destination"`
	Events      []eventPayload `json:"events"`
}

type eventPayload struct {
	Type       string          `json:"type"`
	ReplyToken string          `json:"replyToken"`
	Timestamp  int64           `json:"timestamp"`
	Source     sourcePayload   `json:"source"`
	Message    *messagePayload `json:"message"`
}

type sourcePayload struct {
	Type    string `json:"type"`
	UserID  string `json:"userId"`
	GroupID string `json:"groupId"`
	RoomID  string `json:"roomId"`
}

type messagePayload struct {
	ID        string `json:"id"`
	Type      string `json:"type"`
	Text      string `json:"text"`
	PackageID string `json:"packageId"`
	StickerID string `json:"stickerId"`
}

// NewRouter builds a gin engine exposing POST /callback. channelSecret
// enables signature verification; empty disables it (local development
// only).
func NewRouter(h Handler, channelSecret string, logger logging.Logger) *gin.Engine {
	if logger == nil {
		logger = logging.NoOpLogger{}
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.POST("/callback", callback(h, channelSecret, logger))
	return r
}

func callback(h Handler, channelSecret string, logger logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable body"})
			return
		}

		if channelSecret != "" && !validSignature(channelSecret, body, c.GetHeader("X-Line-Signature")) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid signature"})
			return
		}

		var p payload
		if err := json.Unmarshal(body, &p); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "malformed payload"})
			return
		}

		// A failing event must not abort the batch: a non-2xx answer makes
		// the platform redeliver every event in it, re-running side effects
		// that already completed.
		for _, ev := range p.Events {
			if err := dispatchEvent(c.Request.Context(), h, ev); err != nil {
				logger.Error("webhook event failed", "type", ev.Type, "error", err)
			}
		}
		c.Status(http.StatusOK)
	}
}

func validSignature(secret string, body []byte, signature string) bool {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	expected := base64.StdEncoding.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

// dispatchEvent routes one decoded event. Unrecognized event and message
// types are acknowledged and dropped, per the platform webhook contract.
func dispatchEvent(ctx context.Context, h Handler, ev eventPayload) error {
	src := decodeSource(ev.Source)
	ts := time.UnixMilli(ev.Timestamp)

	switch ev.Type {
	case "message":
		content := decodeMessage(ev.Message)
		if content == nil {
			return nil
		}
		return h.HandleMessage(ctx, core.MessageEvent{
			ReplyToken: ev.ReplyToken,
			Source:     src,
			Message:    content,
			Timestamp:  ts,
		})
	case "follow":
		return h.HandleFollow(ctx, core.FollowEvent{ReplyToken: ev.ReplyToken, Source: src, Timestamp: ts})
	case "unfollow":
		return h.HandleUnfollow(ctx, core.UnfollowEvent{Source: src, Timestamp: ts})
	case "join":
		return h.HandleJoin(ctx, core.JoinEvent{ReplyToken: ev.ReplyToken, Source: src, Timestamp: ts})
	case "leave":
		return h.HandleLeave(ctx, core.LeaveEvent{Source: src, Timestamp: ts})
	default:
		return nil
	}
}

func decodeSource(s sourcePayload) core.Source {
	switch s.Type {
	case "group":
		return core.GroupSource{GroupID: s.GroupID, User: s.UserID}
	case "room":
		return core.RoomSource{RoomID: s.RoomID, User: s.UserID}
	default:
		return core.UserSource{ID: s.UserID}
	}
}

func decodeMessage(m *messagePayload) core.MessageContent {
	if m == nil {
		return nil
	}
	switch m.Type {
	case "text":
		return core.TextContent{Text: m.Text}
	case "sticker":
		return core.StickerContent{PackageID: m.PackageID, StickerID: m.StickerID}
	case "image":
		return core.ImageContent{ID: m.ID}
	case "audio":
		return core.AudioContent{ID: m.ID}
	case "video":
		return core.VideoContent{ID: m.ID}
	default:
		return nil
	}
}
