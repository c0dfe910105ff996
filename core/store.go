package core

import (
	"context"
	"io"
)

// TextStore holds named append-only text blobs: the admin list and the
// follow/unfollow/join/leave logs. The boundary reads the full blob,
// appends, and writes the full blob back; no partial-append guarantee is
// assumed. Reading a name that was never written returns "" and no error.
type TextStore interface {
	Read(ctx context.Context, name string) (string, error)
	Write(ctx context.Context, name, content string) error
}

// BlobStore persists fetched media bytes and returns a public URL the
// directive language can reference.
type BlobStore interface {
	Save(ctx context.Context, name string, r io.Reader) (string, error)
}
