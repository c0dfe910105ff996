package testutil

import (
	"time"

	"github.com/eoss-th/linebrain/core"
)

// MessageEventBuilder provides a fluent helper for constructing inbound
// message events in tests.
// Example:
//
//	ev := NewMessageEventBuilder().FromUser("U1").Text("hi").Build()
//
// Chain only the parts you need; sensible defaults are applied.
type MessageEventBuilder struct {
	replyToken string
	source     core.Source
	content    core.MessageContent
	timestamp  time.Time
}

// NewMessageEventBuilder creates a builder with a default user source and
// reply token.
func NewMessageEventBuilder() *MessageEventBuilder {
	return &MessageEventBuilder{
		replyToken: "reply-token",
		source:     core.UserSource{ID: "U-default"},
		timestamp:  time.Now(),
	}
}

// ReplyToken overrides the reply token (chainable).
func (b *MessageEventBuilder) ReplyToken(t string) *MessageEventBuilder {
	b.replyToken = t
	return b
}

// FromUser sets a one-to-one conversation source (chainable).
func (b *MessageEventBuilder) FromUser(userID string) *MessageEventBuilder {
	b.source = core.UserSource{ID: userID}
	return b
}

// FromGroup sets a group conversation source (chainable).
func (b *MessageEventBuilder) FromGroup(groupID, userID string) *MessageEventBuilder {
	b.source = core.GroupSource{GroupID: groupID, User: userID}
	return b
}

// FromRoom sets a room conversation source (chainable).
func (b *MessageEventBuilder) FromRoom(roomID, userID string) *MessageEventBuilder {
	b.source = core.RoomSource{RoomID: roomID, User: userID}
	return b
}

// Text sets a plain text payload (chainable).
func (b *MessageEventBuilder) Text(t string) *MessageEventBuilder {
	b.content = core.TextContent{Text: t}
	return b
}

// Sticker sets a sticker payload (chainable).
func (b *MessageEventBuilder) Sticker(packageID, stickerID string) *MessageEventBuilder {
	b.content = core.StickerContent{PackageID: packageID, StickerID: stickerID}
	return b
}

// Image sets an image payload referencing a fetchable message id (chainable).
func (b *MessageEventBuilder) Image(id string) *MessageEventBuilder {
	b.content = core.ImageContent{ID: id}
	return b
}

// Audio sets an audio payload referencing a fetchable message id (chainable).
func (b *MessageEventBuilder) Audio(id string) *MessageEventBuilder {
	b.content = core.AudioContent{ID: id}
	return b
}

// Video sets a video payload referencing a fetchable message id (chainable).
func (b *MessageEventBuilder) Video(id string) *MessageEventBuilder {
	b.content = core.VideoContent{ID: id}
	return b
}

// Build constructs the core.MessageEvent value.
func (b *MessageEventBuilder) Build() core.MessageEvent {
	return core.MessageEvent{
		ReplyToken: b.replyToken,
		Source:     b.source,
		Message:    b.content,
		Timestamp:  b.timestamp,
	}
}

// NewNodeEvent assembles a lifecycle notification with the standard routing
// attributes.
func NewNodeEvent(kind core.NodeEventKind, userID, senderID, body string) core.NodeEvent {
	return core.NodeEvent{
		Kind: kind,
		Message: core.BuildMessageObject(map[string]any{
			core.AttrUserID:   userID,
			core.AttrSenderID: senderID,
			core.AttrText:     body,
		}),
	}
}
