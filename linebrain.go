// Package linebrain provides a high-level façade over the boundary layer
// between a chat platform and the EOSS reasoning engine. Most applications
// interact with this package by:
//  1. Creating a Bot via New() with a reasoning engine and platform client
//     (optionally overriding the default in-memory stores)
//  2. Starting the lifecycle dispatcher with Start()
//  3. Feeding it platform events, typically through webhook.NewRouter
//
// The façade delegates inbound messages to gateway.Gateway, lifecycle
// notifications to dispatch.Dispatcher and follow/join bookkeeping to
// textlog.Logger while keeping setup ergonomics concise. All defaults are
// safe for local development and testing; production deployments supply
// durable stores and a structured logger.
package linebrain

import (
	"context"

	"github.com/eoss-th/linebrain/admin"
	"github.com/eoss-th/linebrain/blob"
	"github.com/eoss-th/linebrain/core"
	"github.com/eoss-th/linebrain/dispatch"
	"github.com/eoss-th/linebrain/gateway"
	"github.com/eoss-th/linebrain/logging"
	"github.com/eoss-th/linebrain/profile"
	"github.com/eoss-th/linebrain/render"
	"github.com/eoss-th/linebrain/session"
	"github.com/eoss-th/linebrain/textlog"
	"github.com/eoss-th/linebrain/textstore"
)

// Options configures the Bot instance.
type Options struct {
	// Name is the bot name; it prefixes the admin list and log blob names.
	Name string

	// LineID is the bot's platform account id used in add-me deep links.
	// Empty falls back to the dispatcher default.
	LineID string

	// TextStore holds the admin list and lifecycle logs (defaults to an
	// in-memory implementation).
	TextStore core.TextStore

	// BlobStore persists fetched media (defaults to an in-memory
	// implementation).
	BlobStore core.BlobStore

	// Logger (defaults to NoOp logger if nil).
	Logger logging.Logger
}

// Bot aggregates the gateway, dispatcher and lifecycle logs behind the
// webhook handler interface.
type Bot struct {
	opts       Options
	engine     core.ReasoningEngine
	gateway    *gateway.Gateway
	dispatcher *dispatch.Dispatcher
	logs       *textlog.Logger
	admins     *admin.Registry
}

// New creates a Bot wired to the given reasoning engine and platform
// client. Any unset service is initialized with an in-memory
// implementation.
func New(engine core.ReasoningEngine, client core.PlatformClient, optFns ...func(o *Options)) *Bot {
	opts := Options{
		Name:      "eoss",
		TextStore: textstore.NewInMemoryStore(),
		BlobStore: blob.NewInMemoryStore(blob.DefaultBaseURL),
		Logger:    logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	// A BotLogger gets a component-scoped child per subsystem; any other
	// Logger is shared as-is.
	renderLog, gatewayLog, dispatchLog, textlogLog := opts.Logger, opts.Logger, opts.Logger, opts.Logger
	if bl, ok := opts.Logger.(*logging.BotLogger); ok {
		renderLog = bl.WithComponent("render")
		gatewayLog = bl.WithComponent("gateway")
		dispatchLog = bl.WithComponent("dispatch")
		textlogLog = bl.WithComponent("textlog")
	}

	renderer := render.New(renderLog)
	profiles := profile.NewCache()
	sessions := session.NewStore()
	admins := admin.NewRegistry(opts.TextStore, opts.Name)

	return &Bot{
		opts:       opts,
		engine:     engine,
		gateway:    gateway.New(engine, client, sessions, profiles, opts.BlobStore, renderer, gatewayLog),
		dispatcher: dispatch.New(client, renderer, profiles, admins, opts.LineID, dispatchLog),
		logs:       textlog.NewLogger(opts.TextStore, client, opts.Name, textlogLog),
		admins:     admins,
	}
}

// Start runs the lifecycle dispatcher over the engine's notification
// channel until ctx is cancelled or the engine closes the channel.
func (b *Bot) Start(ctx context.Context) {
	go b.dispatcher.Run(ctx, b.engine.Events())
}

// Admins exposes the admin registry.
func (b *Bot) Admins() *admin.Registry { return b.admins }

// Wait blocks until in-flight asynchronous work (profile fetches, follow
// log appends) completes.
func (b *Bot) Wait() {
	b.gateway.Wait()
	b.logs.Wait()
}

// HandleMessage forwards an inbound message event to the gateway.
func (b *Bot) HandleMessage(ctx context.Context, ev core.MessageEvent) error {
	return b.gateway.HandleMessage(ctx, ev)
}

// HandleFollow records the follow in the lifecycle log.
func (b *Bot) HandleFollow(ctx context.Context, ev core.FollowEvent) error {
	return b.logs.LogFollow(ctx, ev)
}

// HandleUnfollow records the unfollow in the lifecycle log.
func (b *Bot) HandleUnfollow(ctx context.Context, ev core.UnfollowEvent) error {
	return b.logs.LogUnfollow(ctx, ev)
}

// HandleJoin records the join in the lifecycle log.
func (b *Bot) HandleJoin(ctx context.Context, ev core.JoinEvent) error {
	return b.logs.LogJoin(ctx, ev)
}

// HandleLeave records the leave in the lifecycle log.
func (b *Bot) HandleLeave(ctx context.Context, ev core.LeaveEvent) error {
	return b.logs.LogLeave(ctx, ev)
}
