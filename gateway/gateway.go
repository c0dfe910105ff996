// Package gateway is the entry point for inbound platform messages. It
// resolves the sender's reasoning-engine session (creating it lazily with a
// greeting push and wake-up handshake), normalizes the message into the
// directive text the engine parses, and replies with the rendered result.
package gateway

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/eoss-th/linebrain/core"
	"github.com/eoss-th/linebrain/logging"
	"github.com/eoss-th/linebrain/profile"
	"github.com/eoss-th/linebrain/render"
	"github.com/eoss-th/linebrain/session"
)

// GreetingDirective is pushed to a participant right before their session is
// created.
const GreetingDirective = render.TagSticker + "1:405"

// placeholderReply is sent when the engine or normalization fails, before
// the error propagates to the event handler.
const placeholderReply = "..."

// Gateway owns the session and profile caches and drives the inbound
// message flow end to end.
type Gateway struct {
	engine   core.ReasoningEngine
	client   core.PlatformClient
	sessions *session.Store
	profiles *profile.Cache
	blobs    core.BlobStore
	renderer *render.Renderer
	logger   logging.Logger

	wg sync.WaitGroup
}

// New wires a Gateway. A nil logger disables logging.
func New(engine core.ReasoningEngine, client core.PlatformClient, sessions *session.Store, profiles *profile.Cache, blobs core.BlobStore, renderer *render.Renderer, logger logging.Logger) *Gateway {
	if logger == nil {
		logger = logging.NoOpLogger{}
	}
	return &Gateway{
		engine:   engine,
		client:   client,
		sessions: sessions,
		profiles: profiles,
		blobs:    blobs,
		renderer: renderer,
		logger:   logger,
	}
}

// Profiles exposes the profile cache shared with the dispatcher.
func (g *Gateway) Profiles() *profile.Cache { return g.profiles }

// Wait blocks until in-flight profile fetches complete. Intended for
// graceful shutdown and tests.
func (g *Gateway) Wait() { g.wg.Wait() }

// ResolveSession returns the sender's session, creating it on first
// contact. Creation pushes the greeting sticker and runs the wake-up
// handshake exactly once per participant, even under concurrent first
// messages.
func (g *Gateway) ResolveSession(ctx context.Context, senderID string) (core.ReasoningSession, error) {
	return g.sessions.GetOrCreate(senderID, func() (core.ReasoningSession, error) {
		if err := g.client.PushMessage(ctx, senderID, g.renderer.Render(GreetingDirective)); err != nil {
			return nil, fmt.Errorf("greeting push to %s: %w", senderID, err)
		}
		sess, err := g.engine.NewSession(ctx)
		if err != nil {
			return nil, fmt.Errorf("create session for %s: %w", senderID, err)
		}
		if err := sess.Wake(ctx); err != nil {
			return nil, fmt.Errorf("wake session for %s: %w", senderID, err)
		}
		if bl, ok := g.logger.(*logging.BotLogger); ok {
			bl.WithSender(senderID).Info("session created")
		} else {
			g.logger.Info("session created", "sender_id", senderID)
		}
		return sess, nil
	})
}

// HandleMessage processes one inbound message event: resolve session,
// trigger the profile fetch, normalize, parse, reply. Engine and
// normalization failures reply with a literal placeholder before the error
// is returned.
func (g *Gateway) HandleMessage(ctx context.Context, ev core.MessageEvent) error {
	sess, err := g.ResolveSession(ctx, ev.Source.SenderID())
	if err != nil {
		return err
	}

	g.fetchProfile(ctx, ev.Source.UserID())

	text, err := g.normalize(ctx, ev)
	if err != nil {
		g.replyPlaceholder(ctx, ev.ReplyToken)
		return fmt.Errorf("normalize message: %w", err)
	}

	directive, err := sess.Parse(ctx, core.NewMessageObject(ev, text))
	if err != nil {
		g.replyPlaceholder(ctx, ev.ReplyToken)
		return fmt.Errorf("engine parse: %w", err)
	}

	if err := g.client.ReplyMessage(ctx, ev.ReplyToken, g.renderer.Render(directive)); err != nil {
		return fmt.Errorf("reply: %w", err)
	}
	return nil
}

// fetchProfile issues a fire-and-forget profile fetch when the user has no
// cached profile. Failures leave the cache empty; there is no retry.
func (g *Gateway) fetchProfile(ctx context.Context, userID string) {
	if userID == "" {
		return
	}
	if _, ok := g.profiles.Get(userID); ok {
		return
	}
	// The inbound context is request-scoped and cancelled once the webhook
	// handler returns; the fetch must outlive it.
	fetchCtx := context.WithoutCancel(ctx)
	g.wg.Add(1)
	go func() {
		defer g.wg.Done()
		p, err := g.client.GetProfile(fetchCtx, userID)
		if err != nil {
			g.logger.Debug("profile fetch failed", "user_id", userID, "error", err)
			return
		}
		g.profiles.Put(p)
	}()
}

// normalize flattens an inbound message into the single text representation
// the engine parses. Media content is fetched and persisted to blob storage
// so the directive can reference a stable URL.
func (g *Gateway) normalize(ctx context.Context, ev core.MessageEvent) (string, error) {
	switch m := ev.Message.(type) {
	case core.TextContent:
		return m.Text, nil
	case core.StickerContent:
		return render.TagSticker + m.PackageID + ":" + m.StickerID, nil
	case core.ImageContent:
		url, err := g.saveContent(ctx, m.ID, "jpg")
		if err != nil {
			return "", err
		}
		return render.TagImage + url, nil
	case core.AudioContent:
		url, err := g.saveContent(ctx, m.ID, "mp4")
		if err != nil {
			return "", err
		}
		return render.TagAudio + url, nil
	case core.VideoContent:
		url, err := g.saveContent(ctx, m.ID, "mp4")
		if err != nil {
			return "", err
		}
		return render.TagVideo + url, nil
	default:
		return "", nil
	}
}

// saveContent streams the message media into blob storage and returns its
// public URL.
func (g *Gateway) saveContent(ctx context.Context, messageID, ext string) (string, error) {
	body, err := g.client.GetMessageContent(ctx, messageID)
	if err != nil {
		return "", fmt.Errorf("get message content %s: %w", messageID, err)
	}
	defer body.Close()

	name := time.Now().UTC().Format("2006-01-02T15:04:05") + "-" + uuid.NewString() + "." + ext
	url, err := g.blobs.Save(ctx, name, body)
	if err != nil {
		return "", fmt.Errorf("save content %s: %w", name, err)
	}
	return url, nil
}

func (g *Gateway) replyPlaceholder(ctx context.Context, replyToken string) {
	if err := g.client.ReplyMessage(ctx, replyToken, core.TextMessage{Text: placeholderReply}); err != nil {
		g.logger.Warn("placeholder reply failed", "error", err)
	}
}
