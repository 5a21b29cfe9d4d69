// Package feed turns raw content-store files into structured post records
// and fetches the ordered listing shown to the user.
package feed

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/dmitrijs2005/gitpress/internal/common"
	"github.com/dmitrijs2005/gitpress/internal/content"
	"github.com/dmitrijs2005/gitpress/internal/frontmatter"
)

// Post is one content item of the feed. Records are immutable once
// constructed; a refresh replaces them, never mutates them in place.
type Post struct {
	FileName      string
	Title         string
	Categories    []string
	PubDate       time.Time
	Description   string
	Body          string
	RawContent    string
	Preview       string
	FirstImageURL string
	HasImage      bool
}

// previewPlaceholder is shown when a body consists of images only.
const previewPlaceholder = "[image]"

var (
	imageRe      = regexp.MustCompile(`!\[[^\]]*\]\(([^)]*)\)`)
	linkRe       = regexp.MustCompile(`\[([^\]]*)\]\([^)]*\)`)
	whitespaceRe = regexp.MustCompile(`\s+`)
	fileNameDate = regexp.MustCompile(`(\d{4}-\d{2}-\d{2})-(\d{2})(\d{2})(\d{2})`)
)

// ParsePost builds a Post from one file's name and raw content.
//
// The publish date is resolved in priority order: the metadata date field
// (date-time or date-only form), then a YYYY-MM-DD-HHMMSS segment embedded
// in the file name. When neither yields a date the file is unparseable and
// the caller is expected to skip it. A missing front-matter title means an
// absent title; no heading is extracted from the body.
func ParsePost(fileName, raw string) (*Post, error) {
	fields, body := frontmatter.Decode(raw)

	pubDate, ok := resolveDate(fields, fileName)
	if !ok {
		return nil, fmt.Errorf("%w: no publish date in %s", common.ErrParse, fileName)
	}

	preview, firstImage, hasImage := extractPreview(body)

	var categories []string
	if c := fields[frontmatter.FieldCategories]; c != "" {
		for _, part := range strings.Split(c, ",") {
			if part = strings.TrimSpace(part); part != "" {
				categories = append(categories, part)
			}
		}
	}

	return &Post{
		FileName:      fileName,
		Title:         fields[frontmatter.FieldTitle],
		Categories:    categories,
		PubDate:       pubDate,
		Description:   fields[frontmatter.FieldDescription],
		Body:          body,
		RawContent:    raw,
		Preview:       preview,
		FirstImageURL: firstImage,
		HasImage:      hasImage,
	}, nil
}

func resolveDate(fields map[string]string, fileName string) (time.Time, bool) {
	for _, key := range []string{frontmatter.FieldPubDate, frontmatter.FieldDate} {
		v := fields[key]
		if v == "" {
			continue
		}
		for _, layout := range []string{content.DateTimeLayout, content.DateLayout} {
			if t, err := time.ParseInLocation(layout, v, time.Local); err == nil {
				return t, true
			}
		}
	}

	if m := fileNameDate.FindStringSubmatch(fileName); m != nil {
		v := fmt.Sprintf("%s %s:%s:%s", m[1], m[2], m[3], m[4])
		if t, err := time.ParseInLocation(content.DateTimeLayout, v, time.Local); err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}

// extractPreview strips image embeds entirely, collapses links to their
// label, and normalizes all whitespace to single spaces. An image-only body
// yields a fixed placeholder.
func extractPreview(body string) (preview, firstImage string, hasImage bool) {
	if m := imageRe.FindStringSubmatch(body); m != nil {
		firstImage = m[1]
		hasImage = true
	}

	text := imageRe.ReplaceAllString(body, "")
	text = linkRe.ReplaceAllString(text, "$1")
	text = whitespaceRe.ReplaceAllString(text, " ")
	text = strings.TrimSpace(text)

	if text == "" && hasImage {
		text = previewPlaceholder
	}
	return text, firstImage, hasImage
}

// SortPosts orders posts newest first. File names carry a chronological
// prefix, so they serve as a stable descending tie-break.
func SortPosts(posts []Post) {
	sort.SliceStable(posts, func(i, j int) bool {
		if !posts[i].PubDate.Equal(posts[j].PubDate) {
			return posts[i].PubDate.After(posts[j].PubDate)
		}
		return posts[i].FileName > posts[j].FileName
	})
}
