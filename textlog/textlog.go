// Package textlog appends follow/unfollow/join/leave records to named text
// blobs owned by a collaborator store. Lines are tab-separated:
//
//	timestamp \t identity [\t displayName \t pictureUrl]
//
// The timestamp layout is yyyy/MMM/dd HH:ss:mm in the Thai locale. The
// hour:second:minute field order is inherited from the legacy deployment
// and kept so existing logs stay parseable.
package textlog

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/eoss-th/linebrain/core"
	"github.com/eoss-th/linebrain/logging"
)

var thaiMonths = [12]string{
	"ม.ค.", "ก.พ.", "มี.ค.", "เม.ย.", "พ.ค.", "มิ.ย.",
	"ก.ค.", "ส.ค.", "ก.ย.", "ต.ค.", "พ.ย.", "ธ.ค.",
}

// FormatTimestamp renders t in the log timestamp layout.
func FormatTimestamp(t time.Time) string {
	return fmt.Sprintf("%04d/%s/%02d %02d:%02d:%02d",
		t.Year(), thaiMonths[t.Month()-1], t.Day(),
		t.Hour(), t.Second(), t.Minute())
}

// Logger appends lifecycle records for one bot to its text blobs.
type Logger struct {
	store  core.TextStore
	client core.PlatformClient
	name   string
	now    func() time.Time
	log    logging.Logger

	wg sync.WaitGroup
}

// NewLogger creates a Logger for the bot name. The platform client is only
// used to resolve profiles for follow records.
func NewLogger(store core.TextStore, client core.PlatformClient, botName string, log logging.Logger) *Logger {
	if log == nil {
		log = logging.NoOpLogger{}
	}
	return &Logger{store: store, client: client, name: botName, now: time.Now, log: log}
}

// Wait blocks until in-flight asynchronous appends complete. Intended for
// graceful shutdown and tests.
func (l *Logger) Wait() { l.wg.Wait() }

// LogUnfollow appends "timestamp \t userId" to the unfollow log.
func (l *Logger) LogUnfollow(ctx context.Context, ev core.UnfollowEvent) error {
	name := l.name + ".unfollow.txt"
	content, err := l.store.Read(ctx, name)
	if err != nil {
		return fmt.Errorf("read unfollow log: %w", err)
	}
	line := FormatTimestamp(l.now()) + "\t" + ev.Source.UserID() + "\n"
	if err := l.store.Write(ctx, name, content+line); err != nil {
		return fmt.Errorf("append unfollow log: %w", err)
	}
	return nil
}

// LogFollow appends a follow record. The user profile is fetched
// asynchronously; the record degrades to the bare user id when the fetch
// fails. The append happens on a background goroutine so the caller never
// blocks on the profile round trip.
func (l *Logger) LogFollow(ctx context.Context, ev core.FollowEvent) error {
	name := l.name + ".follow.txt"
	content, err := l.store.Read(ctx, name)
	if err != nil {
		return fmt.Errorf("read follow log: %w", err)
	}

	userID := ev.Source.UserID()
	// The inbound context is request-scoped and cancelled once the webhook
	// handler returns; the profile fetch and append must outlive it.
	appendCtx := context.WithoutCancel(ctx)
	l.wg.Add(1)
	go func() {
		defer l.wg.Done()
		ts := FormatTimestamp(l.now())

		line := ts + "\t" + userID
		if p, err := l.client.GetProfile(appendCtx, userID); err == nil {
			line = ts + "\t" + p.UserID + "\t" + p.DisplayName + "\t" + p.PictureURL
		}
		if err := l.store.Write(appendCtx, name, content+"\n"+line+"\n"); err != nil {
			l.log.Error("append follow log", "error", err)
		}
	}()
	return nil
}

// LogJoin appends "timestamp \t groupOrRoomId" to the join log.
func (l *Logger) LogJoin(ctx context.Context, ev core.JoinEvent) error {
	return l.appendConversation(ctx, l.name+".join.txt", ev.Source)
}

// LogLeave appends "timestamp \t groupOrRoomId" to the leave log.
func (l *Logger) LogLeave(ctx context.Context, ev core.LeaveEvent) error {
	return l.appendConversation(ctx, l.name+".leave.txt", ev.Source)
}

func (l *Logger) appendConversation(ctx context.Context, name string, src core.Source) error {
	content, err := l.store.Read(ctx, name)
	if err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}

	var line string
	switch s := src.(type) {
	case core.RoomSource:
		line = FormatTimestamp(l.now()) + "\t" + s.RoomID
	case core.GroupSource:
		line = FormatTimestamp(l.now()) + "\t" + s.GroupID
	}
	if err := l.store.Write(ctx, name, content+line+"\n"); err != nil {
		return fmt.Errorf("append %s: %w", name, err)
	}
	return nil
}
