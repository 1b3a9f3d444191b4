// Package article converts a single web article into a portable Markdown
// document with locally saved images. It locates the article body inside an
// arbitrary page, prunes navigation, ads and scripts, and renders the rest as
// Markdown with escaped text, fenced code blocks and downloaded images.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, sqlite/, trafilatura/).
package article

import (
	"net/url"
	"strings"
	"time"
)

// Meta describes the exported article. URL is given by the caller; the
// remaining fields are filled progressively by extraction, and only when
// they are still empty.
type Meta struct {
	URL         string     `json:"url"`
	Title       string     `json:"title"`
	Author      string     `json:"author"`
	PublishedAt *time.Time `json:"publishedAt"`
}

// Validate returns an error if the metadata contains invalid fields.
func (m *Meta) Validate() error {
	if m == nil || strings.TrimSpace(m.URL) == "" {
		return Errorf(EINVALID, "article URL required")
	}
	return nil
}

// Merge fills empty fields of m from other. Fields already set are kept.
func (m *Meta) Merge(other *Meta) {
	if other == nil {
		return
	}
	if m.Title == "" {
		m.Title = other.Title
	}
	if m.Author == "" {
		m.Author = other.Author
	}
	if m.PublishedAt == nil && other.PublishedAt != nil {
		t := *other.PublishedAt
		m.PublishedAt = &t
	}
}

// Complete reports whether every extractable field is set.
func (m *Meta) Complete() bool {
	return m.Title != "" && m.Author != "" && m.PublishedAt != nil
}

// NormalizeURL trims the raw URL and prefixes "https://" when it has no
// http or https scheme. The result must have a host.
func NormalizeURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", Errorf(EINVALID, "URL required")
	}

	lower := strings.ToLower(raw)
	if !strings.HasPrefix(lower, "http://") && !strings.HasPrefix(lower, "https://") {
		raw = "https://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", Errorf(EINVALID, "invalid URL %q: %v", raw, err)
	}
	if u.Host == "" {
		return "", Errorf(EINVALID, "invalid URL %q: missing host", raw)
	}
	return u.String(), nil
}
