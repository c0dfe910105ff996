package core

import "time"

// Source identifies where an inbound event originated. The sender identity
// keys sessions (the conversation: user, group or room) while the user
// identity keys profiles (always the individual user, may be empty in
// groups/rooms when the user has not consented to id sharing).
type Source interface {
	// SenderID returns the conversation identity messages are pushed to.
	SenderID() string
	// UserID returns the individual user identity, possibly empty.
	UserID() string
}

// UserSource is a one-to-one conversation source.
type UserSource struct {
	ID string
}

func (s UserSource) SenderID() string { return s.ID }

func (s UserSource) UserID() string { return s.ID }

// GroupSource is a group conversation source.
type GroupSource struct {
	GroupID string
	User    string
}

func (s GroupSource) SenderID() string { return s.GroupID }

func (s GroupSource) UserID() string { return s.User }

// RoomSource is a multi-person room conversation source.
type RoomSource struct {
	RoomID string
	User   string
}

func (s RoomSource) SenderID() string { return s.RoomID }

func (s RoomSource) UserID() string { return s.User }

// MessageContent is the closed set of inbound message payloads the gateway
// can normalize into directive text.
type MessageContent interface{ isMessageContent() }

// TextContent is a plain text message payload.
type TextContent struct {
	Text string
}

func (TextContent) isMessageContent() {}

// StickerContent identifies a sticker sent by the user.
type StickerContent struct {
	PackageID string
	StickerID string
}

func (StickerContent) isMessageContent() {}

// ImageContent references image bytes retrievable by message id.
type ImageContent struct {
	ID string
}

func (ImageContent) isMessageContent() {}

// AudioContent references audio bytes retrievable by message id.
type AudioContent struct {
	ID string
}

func (AudioContent) isMessageContent() {}

// VideoContent references video bytes retrievable by message id.
type VideoContent struct {
	ID string
}

func (VideoContent) isMessageContent() {}

// MessageEvent is an inbound message from the platform.
type MessageEvent struct {
	ReplyToken string
	Source     Source
	Message    MessageContent
	Timestamp  time.Time
}

// FollowEvent fires when a user adds the bot as a friend.
type FollowEvent struct {
	ReplyToken string
	Source     Source
	Timestamp  time.Time
}

// UnfollowEvent fires when a user blocks the bot.
type UnfollowEvent struct {
	Source    Source
	Timestamp time.Time
}

// JoinEvent fires when the bot is invited into a group or room.
type JoinEvent struct {
	ReplyToken string
	Source     Source
	Timestamp  time.Time
}

// LeaveEvent fires when the bot is removed from a group or room.
type LeaveEvent struct {
	Source    Source
	Timestamp time.Time
}
