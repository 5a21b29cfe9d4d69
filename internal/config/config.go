package config

import (
	"time"

	"github.com/dmitrijs2005/gitpress/internal/common"
)

// Config holds runtime settings for the GitPress CLI.
//
// The content repository holds the published posts; the image repository is
// a separate repo serving as the CDN origin for uploaded photos.
type Config struct {
	// Content repository.
	Owner       string
	ContentRepo string
	Branch      string

	// Image-hosting repository.
	ImageRepo       string
	ImageBranch     string
	ImagePathPrefix string
	CDNMode         string

	// Image normalization limits.
	MaxImageWidth  int
	MaxImageHeight int
	ImageQuality   int
	MaxImageBytes  int

	// Transport.
	APIBaseURL     string
	RequestTimeout time.Duration

	// Feed listing.
	FeedDir      string
	FeedPageSize int

	// Local persistence.
	SnapshotPath string
	TokenPath    string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.Branch = "main"
	c.ImageBranch = "master"
	c.ImagePathPrefix = "images"
	c.CDNMode = "jsdelivr"
	c.MaxImageWidth = 1920
	c.MaxImageHeight = 1080
	c.ImageQuality = 85
	c.MaxImageBytes = 5 * 1024 * 1024
	c.APIBaseURL = "https://api.github.com"
	c.RequestTimeout = 30 * time.Second
	c.FeedDir = "src/content/essays"
	c.FeedPageSize = 20
	c.SnapshotPath = "gitpress.db"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}

const (
	placeholderOwner = "YOUR_GITHUB_USERNAME"
	placeholderRepo  = "YOUR_CONTENT_REPO"
	placeholderImage = "YOUR_IMAGE_REPO"
)

// ValidateContent reports whether the content repository settings are usable.
// Placeholder values from sample configs count as missing.
func (c *Config) ValidateContent() error {
	if c.Owner == "" || c.Owner == placeholderOwner {
		return common.ErrNotConfigured
	}
	if c.ContentRepo == "" || c.ContentRepo == placeholderRepo {
		return common.ErrNotConfigured
	}
	return nil
}

// ValidateImages reports whether the image-hosting settings are usable.
func (c *Config) ValidateImages() error {
	if err := c.ValidateContent(); err != nil {
		return err
	}
	if c.ImageRepo == "" || c.ImageRepo == placeholderImage {
		return common.ErrNotConfigured
	}
	return nil
}
