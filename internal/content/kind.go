// Package content defines the three post shapes the engine can publish and
// the mutable metadata draft attached to an edit session.
package content

// Kind is the closed set of supported post shapes. Exactly one kind is
// active per edit session.
type Kind string

const (
	// KindBlog is a titled post with categories and a date-only pubDate.
	KindBlog Kind = "blog"
	// KindEssay is a short untitled note with a date-time pubDate.
	KindEssay Kind = "essay"
	// KindGallery is a photo entry whose body is already structured data;
	// it carries no front-matter block.
	KindGallery Kind = "gallery"
)

// PathPrefix is the storage directory for the kind inside the content repo.
func (k Kind) PathPrefix() string {
	switch k {
	case KindBlog:
		return "src/content/posts"
	case KindEssay:
		return "src/content/essays"
	case KindGallery:
		return "src/content/photos"
	}
	return ""
}

// Extension is the file extension (with dot) for generated file names.
func (k Kind) Extension() string {
	if k == KindGallery {
		return ".json"
	}
	return ".md"
}

func (k Kind) Valid() bool {
	return k == KindBlog || k == KindEssay || k == KindGallery
}
