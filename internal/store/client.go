// Package store implements the remote content store client: optimistic-
// concurrency file I/O against a GitHub repository used as a headless CMS
// backend.
//
// The client is a thin primitive. Every call either fully succeeds with a
// fresh version token (the file's content sha) or fails with one typed
// reason from internal/common. No retries happen here; retry policy belongs
// to callers.
package store

import "context"

// RemoteFile is a file read from the store, decoded from the transport
// encoding into text. SHA is the version token required to update the file.
type RemoteFile struct {
	Path    string
	Content string
	SHA     string
}

// FileInfo describes one entry of a directory listing.
type FileInfo struct {
	Name string
	Path string
	SHA  string
	Size int64
	Type string
}

// WriteResult reports a successful create or update.
type WriteResult struct {
	Path    string
	SHA     string
	HTMLURL string
}

// Client is the read/write primitive used by the publishing and feed layers.
//
// Contract:
//   - ReadFile returns common.ErrNotFound when the path does not exist.
//   - WriteFile creates the file when sha is empty and updates it otherwise;
//     a stale sha fails with common.ErrVersionConflict and must not
//     overwrite the remote state.
//   - ListDir lists a directory one page at a time (1-based page index).
//
// All methods honor context cancellation.
type Client interface {
	ReadFile(ctx context.Context, path string) (*RemoteFile, error)
	WriteFile(ctx context.Context, path, content, sha, message string) (*WriteResult, error)
	ListDir(ctx context.Context, dir string, page, perPage int) ([]FileInfo, error)
}
