package content

import "time"

// Metadata is the mutable draft record of an edit session. The meaning of
// each field depends on the active Kind; nothing is validated until the
// codec serializes it.
type Metadata struct {
	Title       string
	Categories  string // comma-separated
	PubDate     string
	Description string
	Date        string // gallery entries use a bare date instead of PubDate
}

const (
	DateLayout     = "2006-01-02"
	DateTimeLayout = "2006-01-02 15:04:05"
)

// Reset returns the kind-specific defaults for a fresh edit session started
// at now. Switching kinds always goes through Reset.
func Reset(kind Kind, now time.Time) Metadata {
	switch kind {
	case KindBlog:
		return Metadata{Categories: "Daily", PubDate: now.Format(DateLayout)}
	case KindEssay:
		return Metadata{PubDate: now.Format(DateTimeLayout)}
	case KindGallery:
		return Metadata{Date: now.Format(DateLayout)}
	}
	return Metadata{}
}
