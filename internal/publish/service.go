// Package publish turns an edit session into a single remote write against
// the content repository.
package publish

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/gitpress/internal/common"
	"github.com/dmitrijs2005/gitpress/internal/config"
	"github.com/dmitrijs2005/gitpress/internal/content"
	"github.com/dmitrijs2005/gitpress/internal/creds"
	"github.com/dmitrijs2005/gitpress/internal/frontmatter"
	"github.com/dmitrijs2005/gitpress/internal/logging"
	"github.com/dmitrijs2005/gitpress/internal/store"
)

// Result reports a successful publish.
type Result struct {
	FilePath string
	URL      string
	Action   string
}

// fileNameLayout yields sortable, second-precision generated file names.
const fileNameLayout = "2006-01-02-150405"

type Service struct {
	client store.Client
	cfg    *config.Config
	creds  creds.Store
	log    logging.Logger
	now    func() time.Time
}

func NewService(client store.Client, cfg *config.Config, credStore creds.Store, log logging.Logger) *Service {
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &Service{client: client, cfg: cfg, creds: credStore, log: log, now: time.Now}
}

// Publish assembles the final document for the kind and creates it in the
// content repository. Publishing always creates a new file; it never edits
// an existing post.
//
// Preconditions checked before any network call: repository settings and
// credential must be configured, a blog post needs a title, and every kind
// except gallery needs a non-empty body. A version conflict (two publishes
// racing on the same generated name within one second) surfaces to the
// caller unretried, so duplicate content is never published silently.
func (s *Service) Publish(ctx context.Context, kind content.Kind, meta content.Metadata, body string) (*Result, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: unknown content kind %q", common.ErrValidation, kind)
	}

	if err := s.cfg.ValidateContent(); err != nil {
		return nil, err
	}
	token, err := s.creds.Get()
	if err != nil {
		return nil, err
	}
	if token == "" || token == common.TokenPlaceholder {
		return nil, fmt.Errorf("%w: missing access token", common.ErrNotConfigured)
	}

	if kind == content.KindBlog && strings.TrimSpace(meta.Title) == "" {
		return nil, fmt.Errorf("%w: a blog post needs a title", common.ErrValidation)
	}
	if kind != content.KindGallery && strings.TrimSpace(body) == "" {
		return nil, fmt.Errorf("%w: empty body", common.ErrValidation)
	}

	var finalContent string
	if kind == content.KindGallery {
		// Gallery bodies are already structured data; no block is prepended.
		finalContent = body
	} else {
		finalContent = frontmatter.Encode(meta, kind) + body
	}

	fileName := s.fileName(kind, meta)
	path := kind.PathPrefix() + "/" + fileName

	log := s.log.With("request_id", uuid.NewString(), "kind", string(kind), "path", path)
	log.Info(ctx, "publishing")

	res, err := s.client.WriteFile(ctx, path, finalContent, "", "gitpress: publish "+fileName)
	if err != nil {
		log.Error(ctx, "publish failed", "error", err)
		return nil, err
	}

	log.Info(ctx, "published", "sha", res.SHA)
	return &Result{FilePath: res.Path, URL: res.HTMLURL, Action: "created"}, nil
}

// fileName derives the generated file name: a title slug for blog posts,
// a sortable timestamp for everything else (and for blogs whose titles
// produce an empty slug).
func (s *Service) fileName(kind content.Kind, meta content.Metadata) string {
	if kind == content.KindBlog {
		if slug := slugify(meta.Title); slug != "" {
			return slug + kind.Extension()
		}
	}
	return s.now().Format(fileNameLayout) + kind.Extension()
}

// slugify lowercases and joins letter/digit runs with single hyphens.
// Non-Latin letters are kept so CJK titles still produce usable names.
func slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	prev := false
	for _, r := range s {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r):
			b.WriteRune(r)
			prev = false
		default:
			if !prev && b.Len() > 0 {
				b.WriteByte('-')
				prev = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}
