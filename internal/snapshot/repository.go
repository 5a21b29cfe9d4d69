// Package snapshot persists the last successfully fetched feed listing so a
// cold start can show something before the network answers.
//
// Only raw file contents are stored; posts are re-parsed on load, keeping
// the parser the single source of truth for derived fields.
package snapshot

import (
	"context"
	"time"
)

// StoredFile is one raw feed file as last seen on the remote store.
type StoredFile struct {
	FileName   string
	RawContent string
}

// Repository holds at most one snapshot, replaced wholesale.
type Repository interface {
	// Replace atomically swaps the whole snapshot for files.
	Replace(ctx context.Context, files []StoredFile, fetchedAt time.Time) error
	// Load returns the stored files (newest file name first) and the time
	// of the fetch that produced them. An empty snapshot is (nil, zero, nil).
	Load(ctx context.Context) ([]StoredFile, time.Time, error)
}
