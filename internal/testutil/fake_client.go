package testutil

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/eoss-th/linebrain/core"
)

// Push records one PushMessage call.
type Push struct {
	To       string
	Messages []core.OutgoingMessage
}

// Reply records one ReplyMessage call.
type Reply struct {
	ReplyToken string
	Messages   []core.OutgoingMessage
}

// FakeClient is a recording core.PlatformClient. Zero value is usable; set
// the Err fields to force failures.
type FakeClient struct {
	mu sync.Mutex

	Profiles map[string]core.Profile
	Content  map[string][]byte

	ProfileErr    error
	PushErr       error
	ReplyErr      error
	LeaveGroupErr error
	LeaveRoomErr  error

	Pushes     []Push
	Replies    []Reply
	LeftGroups []string
	LeftRooms  []string
}

var _ core.PlatformClient = (*FakeClient)(nil)

// GetProfile returns the configured profile or ProfileErr.
func (f *FakeClient) GetProfile(ctx context.Context, userID string) (core.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.ProfileErr != nil {
		return core.Profile{}, f.ProfileErr
	}
	p, ok := f.Profiles[userID]
	if !ok {
		return core.Profile{}, fmt.Errorf("no profile for %s", userID)
	}
	return p, nil
}

// ReplyMessage records the reply or returns ReplyErr.
func (f *FakeClient) ReplyMessage(ctx context.Context, replyToken string, messages ...core.OutgoingMessage) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.ReplyErr != nil {
		return f.ReplyErr
	}
	f.Replies = append(f.Replies, Reply{ReplyToken: replyToken, Messages: messages})
	return nil
}

// PushMessage records the push or returns PushErr.
func (f *FakeClient) PushMessage(ctx context.Context, to string, messages ...core.OutgoingMessage) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.PushErr != nil {
		return f.PushErr
	}
	f.Pushes = append(f.Pushes, Push{To: to, Messages: messages})
	return nil
}

// LeaveGroup records the group id or returns LeaveGroupErr.
func (f *FakeClient) LeaveGroup(ctx context.Context, groupID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.LeaveGroupErr != nil {
		return f.LeaveGroupErr
	}
	f.LeftGroups = append(f.LeftGroups, groupID)
	return nil
}

// LeaveRoom records the room id or returns LeaveRoomErr.
func (f *FakeClient) LeaveRoom(ctx context.Context, roomID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.LeaveRoomErr != nil {
		return f.LeaveRoomErr
	}
	f.LeftRooms = append(f.LeftRooms, roomID)
	return nil
}

// GetMessageContent streams the configured bytes for the message id.
func (f *FakeClient) GetMessageContent(ctx context.Context, messageID string) (io.ReadCloser, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, ok := f.Content[messageID]
	if !ok {
		return nil, fmt.Errorf("no content for %s", messageID)
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

// PushedTexts flattens recorded pushes into the directive texts of their
// text messages, for compact assertions.
func (f *FakeClient) PushedTexts() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []string
	for _, p := range f.Pushes {
		for _, m := range p.Messages {
			if t, ok := m.(core.TextMessage); ok {
				out = append(out, t.Text)
			}
		}
	}
	return out
}

// PushCount returns the number of recorded pushes.
func (f *FakeClient) PushCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.Pushes)
}
