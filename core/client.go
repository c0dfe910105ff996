package core

import (
	"context"
	"io"
)

// PlatformClient is the messaging SDK surface the boundary layer calls.
// Implementations wrap the actual chat platform API; the in-repo fake in
// internal/testutil records calls for tests.
//
// Reply and push calls are blocking and awaited by their caller; failures
// are returned unretried. GetMessageContent streams raw media bytes for a
// previously received message id; the caller owns closing the reader.
type PlatformClient interface {
	GetProfile(ctx context.Context, userID string) (Profile, error)
	ReplyMessage(ctx context.Context, replyToken string, messages ...OutgoingMessage) error
	PushMessage(ctx context.Context, to string, messages ...OutgoingMessage) error
	LeaveGroup(ctx context.Context, groupID string) error
	LeaveRoom(ctx context.Context, roomID string) error
	GetMessageContent(ctx context.Context, messageID string) (io.ReadCloser, error)
}
