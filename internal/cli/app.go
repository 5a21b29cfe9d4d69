package cli

import (
	"bufio"
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/dmitrijs2005/gitpress/internal/config"
	"github.com/dmitrijs2005/gitpress/internal/content"
	"github.com/dmitrijs2005/gitpress/internal/creds"
	"github.com/dmitrijs2005/gitpress/internal/feed"
	"github.com/dmitrijs2005/gitpress/internal/feedcache"
	"github.com/dmitrijs2005/gitpress/internal/images"
	"github.com/dmitrijs2005/gitpress/internal/logging"
	"github.com/dmitrijs2005/gitpress/internal/publish"
	"github.com/dmitrijs2005/gitpress/internal/snapshot"
	"github.com/dmitrijs2005/gitpress/internal/store"

	_ "modernc.org/sqlite"
)

// feedSource is the slice of the feed cache the REPL needs.
type feedSource interface {
	Load(ctx context.Context, force bool) ([]feed.Post, error)
	Posts() []feed.Post
	LastFetchedAt() time.Time
}

type publisher interface {
	Publish(ctx context.Context, kind content.Kind, meta content.Metadata, body string) (*publish.Result, error)
}

type uploader interface {
	UploadMany(ctx context.Context, items [][]byte) images.BatchResult
}

type App struct {
	config    *config.Config
	creds     creds.Store
	feed      feedSource
	publisher publisher
	uploader  uploader
	reader    *bufio.Reader
	db        *sql.DB
}

func NewApp(c *config.Config) (*App, error) {

	ctx := context.Background()
	logger := logging.NewDefault(slog.LevelWarn)

	credStore, err := creds.NewFileStore(c.TokenPath)
	if err != nil {
		return nil, err
	}

	httpClient := &http.Client{Timeout: c.RequestTimeout}
	contentClient := store.NewGitHub(c.APIBaseURL, c.Owner, c.ContentRepo, c.Branch, credStore, httpClient)
	imageClient := store.NewGitHub(c.APIBaseURL, c.Owner, c.ImageRepo, c.ImageBranch, credStore, httpClient)

	// The snapshot database is a convenience cache. If it cannot be opened
	// the app still works, it just starts with an empty feed.
	var snapRepo snapshot.Repository
	db, err := snapshot.InitDatabase(ctx, c.SnapshotPath)
	if err != nil {
		logger.Warn(ctx, "snapshot database unavailable", "path", c.SnapshotPath, "error", err)
	} else {
		snapRepo = snapshot.NewSQLiteRepository(db)
	}

	fetcher := feed.NewFetcher(contentClient, c.FeedDir, c.FeedPageSize, logger)
	cache := feedcache.New(fetcher, snapRepo, logger)

	return &App{
		config:    c,
		creds:     credStore,
		feed:      cache,
		publisher: publish.NewService(contentClient, c, credStore, logger),
		uploader:  images.NewService(imageClient, c, logger),
		reader:    bufio.NewReader(os.Stdin),
		db:        db,
	}, nil
}

func (a *App) Run(ctx context.Context) {
	if a.db != nil {
		defer a.db.Close()
	}
	a.Root(ctx)
}

func (a *App) isConfigured() bool {
	return a.config.ValidateContent() == nil
}
