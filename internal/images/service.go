// Package images normalizes raw bitmaps and publishes them to the
// image-hosting repository serving as the CDN origin.
package images

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"math"
	"sync/atomic"
	"time"

	_ "image/gif"
	_ "image/png"

	"github.com/google/uuid"
	"github.com/sethvargo/go-retry"
	"golang.org/x/image/draw"

	"github.com/dmitrijs2005/gitpress/internal/common"
	"github.com/dmitrijs2005/gitpress/internal/config"
	"github.com/dmitrijs2005/gitpress/internal/logging"
	"github.com/dmitrijs2005/gitpress/internal/store"
)

// UploadResult describes one stored image. Created once per successful
// upload, never mutated.
type UploadResult struct {
	StoredPath string
	PublicURL  string
	SHA        string
}

// BatchResult reports a sequential multi-image upload. Failed items leave a
// gap in URLs but are counted in Requested; callers decide whether partial
// success is acceptable.
type BatchResult struct {
	URLs      []string
	Requested int
	Succeeded int
}

type Service struct {
	client store.Client
	cfg    *config.Config
	log    logging.Logger
	now    func() time.Time
	seq    atomic.Uint32
}

// NewService wires the image pipeline to the client of the image-hosting
// repository (not the content repository).
func NewService(client store.Client, cfg *config.Config, log logging.Logger) *Service {
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &Service{client: client, cfg: cfg, log: log, now: time.Now}
}

// Upload normalizes one bitmap and writes it to the image repository.
//
// The pipeline is: decode, proportional downscale so neither dimension
// exceeds the configured maximum, JPEG re-encode at the fixed configured
// quality, then a size-ceiling check. No progressive re-compression is
// attempted: an oversized result fails with ErrTooLarge once.
func (s *Service) Upload(ctx context.Context, data []byte) (*UploadResult, error) {
	if err := s.cfg.ValidateImages(); err != nil {
		return nil, err
	}

	encoded, err := s.process(data)
	if err != nil {
		return nil, err
	}

	path := s.storagePath()
	log := s.log.With("path", path, "bytes", len(encoded))
	log.Info(ctx, "uploading image")

	var res *store.WriteResult
	// The write is create-only, so rerunning it after a dropped connection
	// cannot clobber anything; other failures surface immediately.
	b := retry.WithMaxRetries(2, retry.NewExponential(300*time.Millisecond))
	err = retry.Do(ctx, b, func(ctx context.Context) error {
		var werr error
		res, werr = s.client.WriteFile(ctx, path, string(encoded), "", "gitpress: upload "+path)
		if errors.Is(werr, common.ErrNetwork) {
			return retry.RetryableError(werr)
		}
		return werr
	})
	if err != nil {
		log.Error(ctx, "image upload failed", "error", err)
		return nil, err
	}

	return &UploadResult{StoredPath: res.Path, PublicURL: s.PublicURL(res.Path), SHA: res.SHA}, nil
}

// UploadMany uploads images one at a time, in order, continuing past
// individual failures. Sequential on purpose: it bounds remote-store rate
// pressure and keeps user-visible progress monotonic.
func (s *Service) UploadMany(ctx context.Context, items [][]byte) BatchResult {
	batch := s.log.With("batch_id", uuid.NewString(), "count", len(items))
	batch.Info(ctx, "starting batch upload")

	result := BatchResult{Requested: len(items)}
	for i, data := range items {
		res, err := s.Upload(ctx, data)
		if err != nil {
			batch.Warn(ctx, "batch item failed", "index", i, "error", err)
			continue
		}
		result.URLs = append(result.URLs, res.PublicURL)
		result.Succeeded++
	}

	batch.Info(ctx, "batch upload done", "succeeded", result.Succeeded)
	return result
}

// process decodes, downscales and re-encodes the bitmap.
func (s *Service) process(data []byte) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: decode image: %v", common.ErrValidation, err)
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	scale := math.Min(1, math.Min(
		float64(s.cfg.MaxImageWidth)/float64(w),
		float64(s.cfg.MaxImageHeight)/float64(h),
	))
	if scale < 1 {
		nw := int(math.Round(float64(w) * scale))
		nh := int(math.Round(float64(h) * scale))
		if nw < 1 {
			nw = 1
		}
		if nh < 1 {
			nh = 1
		}
		dst := image.NewRGBA(image.Rect(0, 0, nw, nh))
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
		img = dst
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: s.cfg.ImageQuality}); err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}

	if s.cfg.MaxImageBytes > 0 && buf.Len() > s.cfg.MaxImageBytes {
		return nil, fmt.Errorf("%w: %d bytes over %d ceiling", common.ErrTooLarge, buf.Len(), s.cfg.MaxImageBytes)
	}
	return buf.Bytes(), nil
}

// storagePath derives a deterministic path from the upload timestamp plus an
// in-process sequence number that disambiguates same-second uploads.
func (s *Service) storagePath() string {
	seq := s.seq.Add(1)
	return fmt.Sprintf("%s/%s-%d.jpg", s.cfg.ImagePathPrefix, s.now().Format("20060102150405"), seq)
}

// PublicURL synthesizes the CDN URL for a stored path. Pure string
// templating, no network call. Unknown CDN modes fall back to the raw
// store host.
func (s *Service) PublicURL(path string) string {
	c := s.cfg
	switch c.CDNMode {
	case "jsdelivr":
		return fmt.Sprintf("https://cdn.jsdelivr.net/gh/%s/%s@%s/%s", c.Owner, c.ImageRepo, c.ImageBranch, path)
	case "statically":
		return fmt.Sprintf("https://cdn.statically.io/gh/%s/%s/%s/%s", c.Owner, c.ImageRepo, c.ImageBranch, path)
	default:
		return fmt.Sprintf("https://raw.githubusercontent.com/%s/%s/%s/%s", c.Owner, c.ImageRepo, c.ImageBranch, path)
	}
}
