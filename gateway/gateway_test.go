package gateway

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eoss-th/linebrain/blob"
	"github.com/eoss-th/linebrain/core"
	"github.com/eoss-th/linebrain/internal/testutil"
	"github.com/eoss-th/linebrain/logging"
	"github.com/eoss-th/linebrain/profile"
	"github.com/eoss-th/linebrain/render"
	"github.com/eoss-th/linebrain/session"
)

func newGateway(t *testing.T, engine *testutil.ScriptedEngine, client *testutil.FakeClient) *Gateway {
	t.Helper()
	return New(
		engine,
		client,
		session.NewStore(),
		profile.NewCache(),
		blob.NewInMemoryStore("https://blobs.test/"),
		render.New(nil),
		logging.NoOpLogger{},
	)
}

func TestHandleMessage_RepliesWithRenderedDirective(t *testing.T) {
	engine := testutil.NewScriptedEngine(func(msg core.MessageObject) (string, error) {
		return "STICKER1:405", nil
	})
	client := &testutil.FakeClient{}
	g := newGateway(t, engine, client)

	ev := testutil.NewMessageEventBuilder().FromUser("U1").ReplyToken("tok").Text("hello").Build()
	require.NoError(t, g.HandleMessage(context.Background(), ev))

	require.Len(t, client.Replies, 1)
	assert.Equal(t, "tok", client.Replies[0].ReplyToken)
	assert.Equal(t, core.StickerMessage{PackageID: "1", StickerID: "405"}, client.Replies[0].Messages[0])
}

func TestHandleMessage_FirstContactPushesGreetingAndWakesOnce(t *testing.T) {
	engine := testutil.NewScriptedEngine(nil)
	client := &testutil.FakeClient{}
	g := newGateway(t, engine, client)

	ev := testutil.NewMessageEventBuilder().FromUser("U1").Text("hi").Build()
	require.NoError(t, g.HandleMessage(context.Background(), ev))
	require.NoError(t, g.HandleMessage(context.Background(), ev))

	assert.Equal(t, 1, engine.SessionCount())
	assert.Equal(t, 1, engine.WakeCount())

	require.Equal(t, 1, client.PushCount())
	assert.Equal(t, core.StickerMessage{PackageID: "1", StickerID: "405"}, client.Pushes[0].Messages[0])
}

func TestHandleMessage_ConcurrentFirstContactCreatesOneSession(t *testing.T) {
	engine := testutil.NewScriptedEngine(nil)
	client := &testutil.FakeClient{}
	g := newGateway(t, engine, client)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ev := testutil.NewMessageEventBuilder().FromUser("U1").Text("hi").Build()
			_ = g.HandleMessage(context.Background(), ev)
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, engine.SessionCount())
	assert.Equal(t, 1, engine.WakeCount())
	assert.Equal(t, 1, client.PushCount())
}

func TestHandleMessage_NormalizesSticker(t *testing.T) {
	var got string
	engine := testutil.NewScriptedEngine(func(msg core.MessageObject) (string, error) {
		got = msg.String()
		return "ok", nil
	})
	g := newGateway(t, engine, &testutil.FakeClient{})

	ev := testutil.NewMessageEventBuilder().FromUser("U1").Sticker("11537", "52002734").Build()
	require.NoError(t, g.HandleMessage(context.Background(), ev))

	assert.Equal(t, "STICKER11537:52002734", got)
}

func TestHandleMessage_NormalizesImageThroughBlobStore(t *testing.T) {
	var got string
	engine := testutil.NewScriptedEngine(func(msg core.MessageObject) (string, error) {
		got = msg.String()
		return "ok", nil
	})
	client := &testutil.FakeClient{Content: map[string][]byte{"M1": []byte("jpegbytes")}}
	g := newGateway(t, engine, client)

	ev := testutil.NewMessageEventBuilder().FromUser("U1").Image("M1").Build()
	require.NoError(t, g.HandleMessage(context.Background(), ev))

	assert.True(t, strings.HasPrefix(got, "IMAGEhttps://blobs.test/"), "got %q", got)
	assert.True(t, strings.HasSuffix(got, ".jpg"), "got %q", got)
}

func TestHandleMessage_NormalizesAudioAndVideo(t *testing.T) {
	var got string
	engine := testutil.NewScriptedEngine(func(msg core.MessageObject) (string, error) {
		got = msg.String()
		return "ok", nil
	})
	client := &testutil.FakeClient{Content: map[string][]byte{"M2": []byte("media")}}
	g := newGateway(t, engine, client)

	ev := testutil.NewMessageEventBuilder().FromUser("U1").Audio("M2").Build()
	require.NoError(t, g.HandleMessage(context.Background(), ev))
	assert.True(t, strings.HasPrefix(got, "AUDIO"), "got %q", got)
	assert.True(t, strings.HasSuffix(got, ".mp4"), "got %q", got)

	ev = testutil.NewMessageEventBuilder().FromUser("U1").Video("M2").Build()
	require.NoError(t, g.HandleMessage(context.Background(), ev))
	assert.True(t, strings.HasPrefix(got, "VIDEO"), "got %q", got)
}

func TestHandleMessage_EngineFailureRepliesPlaceholder(t *testing.T) {
	engine := testutil.NewScriptedEngine(func(msg core.MessageObject) (string, error) {
		return "", errors.New("brain offline")
	})
	client := &testutil.FakeClient{}
	g := newGateway(t, engine, client)

	ev := testutil.NewMessageEventBuilder().FromUser("U1").ReplyToken("tok").Text("hi").Build()
	err := g.HandleMessage(context.Background(), ev)

	assert.Error(t, err)
	require.Len(t, client.Replies, 1)
	assert.Equal(t, core.TextMessage{Text: "..."}, client.Replies[0].Messages[0])
}

func TestHandleMessage_GreetingPushFailureAborts(t *testing.T) {
	engine := testutil.NewScriptedEngine(nil)
	client := &testutil.FakeClient{PushErr: errors.New("push down")}
	g := newGateway(t, engine, client)

	ev := testutil.NewMessageEventBuilder().FromUser("U1").Text("hi").Build()
	err := g.HandleMessage(context.Background(), ev)

	assert.Error(t, err)
	assert.Equal(t, 0, engine.SessionCount())
}

func TestHandleMessage_FetchesProfileAsynchronously(t *testing.T) {
	engine := testutil.NewScriptedEngine(nil)
	client := &testutil.FakeClient{Profiles: map[string]core.Profile{
		"U1": {UserID: "U1", DisplayName: "สมชาย"},
	}}
	g := newGateway(t, engine, client)

	ev := testutil.NewMessageEventBuilder().FromUser("U1").Text("hi").Build()
	require.NoError(t, g.HandleMessage(context.Background(), ev))
	g.Wait()

	name := g.Profiles().DisplayName("U1", "")
	assert.Equal(t, "สมชาย", name)
}

// cancelAwareClient blocks GetProfile until released, failing first if the
// caller's context is cancelled, the way an HTTP-backed client would.
type cancelAwareClient struct {
	*testutil.FakeClient
	release chan struct{}
}

func (c *cancelAwareClient) GetProfile(ctx context.Context, userID string) (core.Profile, error) {
	select {
	case <-ctx.Done():
		return core.Profile{}, ctx.Err()
	case <-c.release:
		return c.FakeClient.GetProfile(ctx, userID)
	}
}

func TestHandleMessage_ProfileFetchSurvivesRequestCancellation(t *testing.T) {
	engine := testutil.NewScriptedEngine(nil)
	client := &cancelAwareClient{
		FakeClient: &testutil.FakeClient{Profiles: map[string]core.Profile{
			"U1": {UserID: "U1", DisplayName: "สมชาย"},
		}},
		release: make(chan struct{}),
	}
	g := New(
		engine,
		client,
		session.NewStore(),
		profile.NewCache(),
		blob.NewInMemoryStore("https://blobs.test/"),
		render.New(nil),
		logging.NoOpLogger{},
	)

	ctx, cancel := context.WithCancel(context.Background())
	ev := testutil.NewMessageEventBuilder().FromUser("U1").Text("hi").Build()
	require.NoError(t, g.HandleMessage(ctx, ev))

	// The webhook handler returning cancels the request context before the
	// background fetch completes.
	cancel()
	close(client.release)
	g.Wait()

	assert.Equal(t, "สมชาย", g.Profiles().DisplayName("U1", ""))
}

func TestHandleMessage_ProfileFetchFailureLeavesCacheEmpty(t *testing.T) {
	engine := testutil.NewScriptedEngine(nil)
	client := &testutil.FakeClient{ProfileErr: errors.New("not found")}
	g := newGateway(t, engine, client)

	ev := testutil.NewMessageEventBuilder().FromUser("U1").Text("hi").Build()
	require.NoError(t, g.HandleMessage(context.Background(), ev))
	g.Wait()

	_, ok := g.Profiles().Get("U1")
	assert.False(t, ok)
}
