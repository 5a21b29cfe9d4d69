package feed

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/dmitrijs2005/gitpress/internal/common"
	"github.com/dmitrijs2005/gitpress/internal/logging"
	"github.com/dmitrijs2005/gitpress/internal/store"
)

// Fetcher reads the feed directory from the remote store and parses its
// files into posts. Transient network failures on reads are retried with
// bounded exponential backoff; the store client itself stays retry-free.
type Fetcher struct {
	client   store.Client
	dir      string
	pageSize int
	log      logging.Logger
}

func NewFetcher(client store.Client, dir string, pageSize int, log logging.Logger) *Fetcher {
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &Fetcher{client: client, dir: dir, pageSize: pageSize, log: log}
}

// Fetch returns the newest posts from the feed directory, at most pageSize
// of them, sorted newest first.
//
// Per-file parse failures are skipped and logged; the fetch only fails as a
// whole when the listing itself fails or when not a single file parses.
func (f *Fetcher) Fetch(ctx context.Context) ([]Post, error) {
	var entries []store.FileInfo
	err := f.withRetry(ctx, func(ctx context.Context) error {
		var err error
		entries, err = f.client.ListDir(ctx, f.dir, 0, 0)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", f.dir, err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.Type == "file" && strings.HasSuffix(e.Name, ".md") {
			names = append(names, e.Name)
		}
	}
	// Chronologically prefixed names: newest last in ascending order.
	sort.Sort(sort.Reverse(sort.StringSlice(names)))
	if f.pageSize > 0 && len(names) > f.pageSize {
		names = names[:f.pageSize]
	}

	posts := make([]Post, 0, len(names))
	for _, name := range names {
		post, err := f.fetchOne(ctx, name)
		if err != nil {
			f.log.Warn(ctx, "skipping feed file", "file", name, "error", err)
			continue
		}
		posts = append(posts, *post)
	}

	if len(posts) == 0 && len(names) > 0 {
		return nil, fmt.Errorf("%w: none of %d files parsed", common.ErrParse, len(names))
	}

	SortPosts(posts)
	return posts, nil
}

// FetchOne reads and parses a single post by file name, for detail views.
func (f *Fetcher) FetchOne(ctx context.Context, fileName string) (*Post, error) {
	return f.fetchOne(ctx, fileName)
}

func (f *Fetcher) fetchOne(ctx context.Context, fileName string) (*Post, error) {
	var rf *store.RemoteFile
	err := f.withRetry(ctx, func(ctx context.Context) error {
		var err error
		rf, err = f.client.ReadFile(ctx, f.dir+"/"+fileName)
		return err
	})
	if err != nil {
		return nil, err
	}
	return ParsePost(fileName, rf.Content)
}

// withRetry retries fn on transport failures only. Reads are safe to rerun;
// typed store errors other than ErrNetwork surface immediately.
func (f *Fetcher) withRetry(ctx context.Context, fn func(ctx context.Context) error) error {
	b := retry.WithMaxRetries(2, retry.NewExponential(200*time.Millisecond))
	return retry.Do(ctx, b, func(ctx context.Context) error {
		err := fn(ctx)
		if errors.Is(err, common.ErrNetwork) {
			return retry.RetryableError(err)
		}
		return err
	})
}
