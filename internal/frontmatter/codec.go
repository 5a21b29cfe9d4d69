// Package frontmatter maps between a structured metadata record and the
// delimited text block that prefixes a post file.
//
// The dialect is the narrow one the site generator consumes, not full YAML:
// "key: value" lines between two "---" delimiters, categories as a
// bracketed quoted list, dates always double-quoted. Decoding is tolerant
// (quotes and brackets are stripped, unknown keys kept); encoding emits
// lines only for non-empty fields in a kind-specific order.
package frontmatter

import (
	"strings"

	"github.com/dmitrijs2005/gitpress/internal/content"
)

const delimiter = "---"

// Field names as they appear in the block.
const (
	FieldTitle       = "title"
	FieldCategories  = "categories"
	FieldPubDate     = "pubDate"
	FieldDescription = "description"
	FieldDate        = "date"
)

// Decode splits raw text into metadata fields and body. When the text does
// not begin with a delimiter line the whole input is the body and the field
// map is empty. Leading blank lines are trimmed from the body.
func Decode(raw string) (map[string]string, string) {
	fields := map[string]string{}

	lines := strings.Split(raw, "\n")
	if len(lines) == 0 || strings.TrimSpace(lines[0]) != delimiter {
		return fields, raw
	}

	closing := -1
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == delimiter {
			closing = i
			break
		}
	}
	if closing == -1 {
		// Unterminated block: treat everything as body.
		return fields, raw
	}

	for _, line := range lines[1:closing] {
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		fields[key] = normalizeValue(strings.TrimSpace(value))
	}

	body := lines[closing+1:]
	for len(body) > 0 && strings.TrimSpace(body[0]) == "" {
		body = body[1:]
	}
	return fields, strings.Join(body, "\n")
}

// Encode produces the leading block for the metadata restricted to the
// kind's field set. An empty result means no block at all; callers must not
// prepend empty delimiters. Gallery bodies are emitted as-is upstream, so
// the gallery kind never yields a block.
func Encode(m content.Metadata, kind content.Kind) string {
	var lines []string

	switch kind {
	case content.KindBlog:
		if m.Title != "" {
			lines = append(lines, FieldTitle+": "+m.Title)
		}
		if cats := splitCategories(m.Categories); len(cats) > 0 {
			quoted := make([]string, len(cats))
			for i, c := range cats {
				quoted[i] = `"` + c + `"`
			}
			lines = append(lines, FieldCategories+": ["+strings.Join(quoted, ", ")+"]")
		}
		if m.PubDate != "" {
			lines = append(lines, FieldPubDate+`: "`+m.PubDate+`"`)
		}
	case content.KindEssay:
		if m.PubDate != "" {
			lines = append(lines, FieldPubDate+`: "`+m.PubDate+`"`)
		}
	case content.KindGallery:
		// No block by design.
	}

	if len(lines) == 0 {
		return ""
	}
	return delimiter + "\n" + strings.Join(lines, "\n") + "\n" + delimiter + "\n\n"
}

// normalizeValue strips surrounding quotes and flattens a bracketed list
// into its comma-joined canonical form.
func normalizeValue(v string) string {
	if strings.HasPrefix(v, "[") && strings.HasSuffix(v, "]") {
		inner := v[1 : len(v)-1]
		parts := splitCategories(inner)
		return strings.Join(parts, ", ")
	}
	return stripQuotes(v)
}

func stripQuotes(v string) string {
	if len(v) >= 2 && v[0] == '"' && v[len(v)-1] == '"' {
		return v[1 : len(v)-1]
	}
	if len(v) >= 2 && v[0] == '\'' && v[len(v)-1] == '\'' {
		return v[1 : len(v)-1]
	}
	return v
}

// splitCategories splits a comma-separated list, trimming whitespace and
// quotes, dropping empties.
func splitCategories(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = stripQuotes(strings.TrimSpace(part))
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
