// Package dispatch routes reasoning-engine lifecycle notifications to
// concrete outbound actions: pushing rendered directives, leaving group or
// room conversations and mutating the admin registry.
package dispatch

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/eoss-th/linebrain/admin"
	"github.com/eoss-th/linebrain/core"
	"github.com/eoss-th/linebrain/logging"
	"github.com/eoss-th/linebrain/profile"
	"github.com/eoss-th/linebrain/render"
)

// DefaultLineID is the URL-escaped platform account id used in the add-me
// deep link when none is configured.
const DefaultLineID = "%40nhj5856v"

const addFriendURL = "https://line.me/R/ti/p/"

// Dispatcher consumes lifecycle notifications and performs their side
// effects. It keeps no state of its own; each notification is handled to
// completion and discarded.
//
// Failure semantics: push failures propagate to the caller unretried;
// conversation leave is best-effort, its failures are logged and swallowed.
type Dispatcher struct {
	client   core.PlatformClient
	renderer *render.Renderer
	profiles *profile.Cache
	admins   *admin.Registry
	lineID   string
	logger   logging.Logger
}

// New creates a Dispatcher. lineID is the bot's platform account id
// ("@" prefixed); empty falls back to DefaultLineID.
func New(client core.PlatformClient, renderer *render.Renderer, profiles *profile.Cache, admins *admin.Registry, lineID string, logger logging.Logger) *Dispatcher {
	if logger == nil {
		logger = logging.NoOpLogger{}
	}
	return &Dispatcher{
		client:   client,
		renderer: renderer,
		profiles: profiles,
		admins:   admins,
		lineID:   lineID,
		logger:   logger,
	}
}

// Run consumes notifications until the channel closes or the context is
// cancelled. Handler errors abort only the failing notification; the loop
// keeps draining.
func (d *Dispatcher) Run(ctx context.Context, events <-chan core.NodeEvent) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			start := time.Now()
			err := d.Handle(ctx, ev)
			if dl, ok := d.logger.(logging.DispatchLogger); ok {
				dl.LogDispatch(ev.Kind.String(), time.Since(start), err)
			} else if err != nil {
				d.logger.Error("dispatch failed", "kind", ev.Kind.String(), "error", err)
			}
		}
	}
}

// Handle performs the side effect for one notification.
func (d *Dispatcher) Handle(ctx context.Context, ev core.NodeEvent) error {
	switch ev.Kind {
	case core.NodeLeave:
		return d.handleLeave(ctx, ev.Message)
	case core.NodeLateReply:
		return d.handleLateReply(ctx, ev.Message)
	case core.NodeReservedWords:
		return d.handleReservedWords(ctx, ev.Message)
	case core.NodeRegisterAdmin:
		return d.handleRegisterAdmin(ctx, ev.Message)
	case core.NodeRecursive:
		return d.push(ctx, ev.Message.SenderID(), ev.Message.String())
	default:
		d.logger.Warn("unknown node event", "kind", int(ev.Kind))
		return nil
	}
}

// handleLeave says goodbye with an add-me deep link, then abandons the
// originating group or room conversation.
func (d *Dispatcher) handleLeave(ctx context.Context, msg core.MessageObject) error {
	displayName := d.profiles.DisplayName(msg.UserID(), "! ")

	lineID := d.lineID
	if lineID == "" {
		lineID = DefaultLineID
	} else {
		lineID = strings.ReplaceAll(lineID, "@", "%40")
	}

	if err := d.push(ctx, msg.SenderID(), displayName+msg.String()+addFriendURL+lineID); err != nil {
		return err
	}

	if src, ok := msg.SourceEvent(); ok {
		d.leaveConversation(ctx, src)
	}
	return nil
}

// handleLateReply pushes each non-empty line of the body as an independent
// message, preserving order.
func (d *Dispatcher) handleLateReply(ctx context.Context, msg core.MessageObject) error {
	for _, line := range strings.Split(msg.String(), "\n") {
		if line == "" {
			continue
		}
		if err := d.push(ctx, msg.SenderID(), line); err != nil {
			return err
		}
	}
	return nil
}

func (d *Dispatcher) handleReservedWords(ctx context.Context, msg core.MessageObject) error {
	displayName := d.profiles.DisplayName(msg.UserID(), "?")
	return d.push(ctx, msg.SenderID(), msg.String()+"เหรอฮะ"+" "+displayName)
}

// handleRegisterAdmin treats the body as a target display name, resolves it
// against the profile cache and grants admin rights when found. An unknown
// name never mutates the registry.
func (d *Dispatcher) handleRegisterAdmin(ctx context.Context, msg core.MessageObject) error {
	senderID := msg.SenderID()
	displayName := msg.String()

	userID, ok := d.profiles.FindByDisplayName(displayName)
	if !ok {
		return d.push(ctx, senderID, "ไม่พบรายชื่อ "+displayName+" ในนี้")
	}

	if err := d.admins.Register(ctx, userID); err != nil {
		return fmt.Errorf("register admin %s: %w", userID, err)
	}
	return d.push(ctx, senderID, "ยินดีด้วย "+displayName+" ได้ถูกเพิ่มเป็นผู้ดูแลแล้ว!")
}

// leaveConversation invokes the leave action for group and room sources and
// no-ops otherwise. Failures are logged and swallowed.
func (d *Dispatcher) leaveConversation(ctx context.Context, ev core.MessageEvent) {
	var err error
	switch src := ev.Source.(type) {
	case core.GroupSource:
		err = d.client.LeaveGroup(ctx, src.GroupID)
	case core.RoomSource:
		err = d.client.LeaveRoom(ctx, src.RoomID)
	default:
		return
	}
	if err != nil {
		d.logger.Warn("leave conversation failed", "sender_id", ev.Source.SenderID(), "error", err)
	}
}

func (d *Dispatcher) push(ctx context.Context, to, directive string) error {
	start := time.Now()
	err := d.client.PushMessage(ctx, to, d.renderer.Render(directive))
	if pl, ok := d.logger.(logging.PushLogger); ok {
		pl.LogPush(to, 1, time.Since(start), err)
	}
	if err != nil {
		return fmt.Errorf("push to %s: %w", to, err)
	}
	return nil
}
