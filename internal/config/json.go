package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/gitpress/internal/flagx"
	"github.com/dmitrijs2005/gitpress/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It relies on
// timex.Duration so JSON can specify the request timeout either as a string
// like "30s" or as integer nanoseconds. After parsing, non-zero values are
// copied into the runtime Config.
type JsonConfig struct {
	Owner           string         `json:"owner"`
	ContentRepo     string         `json:"content_repo"`
	Branch          string         `json:"branch"`
	ImageRepo       string         `json:"image_repo"`
	ImageBranch     string         `json:"image_branch"`
	ImagePathPrefix string         `json:"image_path_prefix"`
	CDNMode         string         `json:"cdn_mode"`
	MaxImageWidth   int            `json:"max_image_width"`
	MaxImageHeight  int            `json:"max_image_height"`
	ImageQuality    int            `json:"image_quality"`
	MaxImageBytes   int            `json:"max_image_bytes"`
	APIBaseURL      string         `json:"api_base_url"`
	RequestTimeout  timex.Duration `json:"request_timeout"`
	FeedDir         string         `json:"feed_dir"`
	FeedPageSize    int            `json:"feed_page_size"`
	SnapshotPath    string         `json:"snapshot_path"`
	TokenPath       string         `json:"token_path"`
}

// parseJson overlays Config with values loaded from a JSON file selected via
// the -c or -config flags. Missing file path means no JSON is loaded. Only
// fields present in the file override existing values. Panics on read or
// unmarshal errors (caller should recover if desired).
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	setString(&cfg.Owner, jc.Owner)
	setString(&cfg.ContentRepo, jc.ContentRepo)
	setString(&cfg.Branch, jc.Branch)
	setString(&cfg.ImageRepo, jc.ImageRepo)
	setString(&cfg.ImageBranch, jc.ImageBranch)
	setString(&cfg.ImagePathPrefix, jc.ImagePathPrefix)
	setString(&cfg.CDNMode, jc.CDNMode)
	setInt(&cfg.MaxImageWidth, jc.MaxImageWidth)
	setInt(&cfg.MaxImageHeight, jc.MaxImageHeight)
	setInt(&cfg.ImageQuality, jc.ImageQuality)
	setInt(&cfg.MaxImageBytes, jc.MaxImageBytes)
	setString(&cfg.APIBaseURL, jc.APIBaseURL)
	if jc.RequestTimeout.Duration != 0 {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	setString(&cfg.FeedDir, jc.FeedDir)
	setInt(&cfg.FeedPageSize, jc.FeedPageSize)
	setString(&cfg.SnapshotPath, jc.SnapshotPath)
	setString(&cfg.TokenPath, jc.TokenPath)
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func setInt(dst *int, v int) {
	if v != 0 {
		*dst = v
	}
}
