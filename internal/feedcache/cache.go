// Package feedcache decouples "show something immediately" from "get the
// latest truth". It owns the last-known post listing, serves it without
// blocking, and coordinates at most one outstanding refresh whose lifetime
// is independent of the caller that triggered it.
package feedcache

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/gitpress/internal/feed"
	"github.com/dmitrijs2005/gitpress/internal/logging"
	"github.com/dmitrijs2005/gitpress/internal/snapshot"
)

// Fetcher is the listing source. *feed.Fetcher satisfies it.
type Fetcher interface {
	Fetch(ctx context.Context) ([]feed.Post, error)
}

// Cache holds the feed listing. Once it has data it never reverts to empty:
// a failed refresh leaves the previous listing untouched, and a successful
// one replaces it wholesale.
type Cache struct {
	fetcher Fetcher
	snap    snapshot.Repository // optional; nil disables persistence
	log     logging.Logger

	mu            sync.Mutex
	posts         []feed.Post
	lastFetchedAt time.Time
	loadedOnce    bool
	snapTried     bool
	gen           uint64
	cancel        context.CancelFunc
}

func New(fetcher Fetcher, snap snapshot.Repository, log logging.Logger) *Cache {
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &Cache{fetcher: fetcher, snap: snap, log: log}
}

// Posts returns the current listing (possibly stale, possibly empty).
func (c *Cache) Posts() []feed.Post {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.posts
}

// LastFetchedAt reports when the listing was last replaced from the network.
func (c *Cache) LastFetchedAt() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastFetchedAt
}

// Load returns posts for display. With warm data and force false the cached
// listing comes back immediately and a detached refresh runs in the
// background, its failure logged rather than surfaced over valid content.
// With force true the call waits for a fresh fetch. Either way an error is
// only returned while the cache holds nothing at all.
func (c *Cache) Load(ctx context.Context, force bool) ([]feed.Post, error) {
	c.warmFromSnapshot(ctx)

	c.mu.Lock()
	cached := c.posts
	hasData := cached != nil
	c.mu.Unlock()

	if hasData && !force {
		done := c.startRefresh(ctx)
		go func() {
			if err := <-done; err != nil {
				c.log.Warn(context.WithoutCancel(ctx), "background refresh failed", "error", err)
			}
		}()
		return cached, nil
	}

	err := c.awaitRefresh(ctx)
	c.mu.Lock()
	posts := c.posts
	c.mu.Unlock()

	if err != nil {
		if posts != nil {
			c.log.Warn(ctx, "refresh failed, serving cached listing", "error", err)
			return posts, nil
		}
		return nil, err
	}
	return posts, nil
}

// Refresh supersedes any in-flight refresh and waits for its own result.
// The underlying work is detached from ctx: tearing the caller down does
// not stop the fetch, which still completes and updates the cache for the
// next observer.
func (c *Cache) Refresh(ctx context.Context) error {
	return c.awaitRefresh(ctx)
}

func (c *Cache) awaitRefresh(ctx context.Context) error {
	done := c.startRefresh(ctx)
	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		// The refresh keeps running; only the wait is abandoned.
		return ctx.Err()
	}
}

// startRefresh cancels the previous in-flight refresh and launches a new
// one detached from the caller's cancellation. Only the newest generation
// may commit its result, so a superseded fetch that limps home late cannot
// overwrite a newer listing.
func (c *Cache) startRefresh(ctx context.Context) <-chan error {
	c.mu.Lock()
	if c.cancel != nil {
		c.cancel()
	}
	c.gen++
	gen := c.gen
	rctx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	c.cancel = cancel
	c.mu.Unlock()

	done := make(chan error, 1)
	go func() {
		defer cancel()
		posts, err := c.fetcher.Fetch(rctx)
		if err != nil {
			done <- err
			return
		}
		c.commit(rctx, gen, posts)
		done <- nil
	}()
	return done
}

func (c *Cache) commit(ctx context.Context, gen uint64, posts []feed.Post) {
	c.mu.Lock()
	if gen != c.gen {
		c.mu.Unlock()
		c.log.Debug(ctx, "discarding superseded refresh result", "generation", gen)
		return
	}
	c.posts = posts
	c.lastFetchedAt = time.Now()
	c.loadedOnce = true
	c.cancel = nil
	c.mu.Unlock()

	c.persist(ctx, posts)
}

func (c *Cache) persist(ctx context.Context, posts []feed.Post) {
	if c.snap == nil {
		return
	}
	files := make([]snapshot.StoredFile, 0, len(posts))
	for _, p := range posts {
		files = append(files, snapshot.StoredFile{FileName: p.FileName, RawContent: p.RawContent})
	}
	if err := c.snap.Replace(ctx, files, time.Now()); err != nil {
		c.log.Warn(ctx, "persisting feed snapshot failed", "error", err)
	}
}

// warmFromSnapshot seeds an empty cache from the persisted snapshot, once.
// Snapshot data counts as stale cached content: it is shown immediately but
// never blocks or replaces a fetch that already succeeded.
func (c *Cache) warmFromSnapshot(ctx context.Context) {
	c.mu.Lock()
	skip := c.snap == nil || c.snapTried || c.posts != nil
	c.snapTried = true
	c.mu.Unlock()
	if skip {
		return
	}

	files, fetchedAt, err := c.snap.Load(ctx)
	if err != nil {
		c.log.Warn(ctx, "loading feed snapshot failed", "error", err)
		return
	}
	if len(files) == 0 {
		return
	}

	posts := make([]feed.Post, 0, len(files))
	for _, f := range files {
		post, err := feed.ParsePost(f.FileName, f.RawContent)
		if err != nil {
			c.log.Warn(ctx, "skipping snapshot file", "file", f.FileName, "error", err)
			continue
		}
		posts = append(posts, *post)
	}
	if len(posts) == 0 {
		return
	}
	feed.SortPosts(posts)

	c.mu.Lock()
	if c.posts == nil && !c.loadedOnce {
		c.posts = posts
		c.lastFetchedAt = fetchedAt
	}
	c.mu.Unlock()
}
