package goquery

import (
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	article "github.com/alfishe/article-exporter"
	"golang.org/x/net/html"
)

// Ensure MetaExtractor implements article.MetaExtractor at compile time.
var _ article.MetaExtractor = (*MetaExtractor)(nil)

// TitleSelectors are tried in order; the first text longer than five runes
// becomes the title.
var TitleSelectors = []Predicate{
	Tag("h1"),
	HasClass("article-title"),
	HasClass("post-title"),
	HasClass("entry-title"),
	HasClass("title"),
	AllOf(Tag("meta"), AttrEquals("property", "og:title")),
	AllOf(Tag("meta"), AttrEquals("name", "twitter:title")),
	Tag("title"),
}

// AuthorSelectors are tried in order; the first cleaned text longer than
// two runes becomes the author.
var AuthorSelectors = []Predicate{
	HasClass("post-author-name"),
	HasClass("author-name"),
	HasClass("byline"),
	HasClass("author"),
	HasClass("post-author"),
	HasClass("entry-author"),
	AttrEquals("rel", "author"),
	AttrEquals("property", "author"),
	AttrEquals("name", "author"),
	ClassContains("author"),
	ClassContains("byline"),
}

// DateSelectors locate the publication timestamp.
var DateSelectors = []Predicate{
	AllOf(Tag("meta"), AttrEquals("property", "article:published_time")),
	AllOf(Tag("meta"), AttrEquals("itemprop", "datePublished")),
	AllOf(Tag("time"), HasAttr("datetime")),
}

const (
	minTitleLen  = 5
	minAuthorLen = 2
)

var (
	bylinePrefixRe = regexp.MustCompile(`^(by|By|BY)\s+`)
	bylineDashRe   = regexp.MustCompile(`^\s*[-–—]\s*`)
)

// MetaExtractor reads title, author and publication date from common
// article markup.
type MetaExtractor struct{}

// NewMetaExtractor creates a new MetaExtractor.
func NewMetaExtractor() *MetaExtractor {
	return &MetaExtractor{}
}

// ExtractMeta returns the metadata found in rawHTML. Fields that cannot be
// found are left empty.
func (e *MetaExtractor) ExtractMeta(rawHTML string, pageURL string) (*article.Meta, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, article.Errorf(article.EINVALID, "failed to parse HTML: %v", err)
	}

	return &article.Meta{
		URL:         pageURL,
		Title:       Title(doc),
		Author:      Author(doc),
		PublishedAt: PublishedAt(doc),
	}, nil
}

// Title returns the first plausible title in doc, or "".
func Title(doc *goquery.Document) string {
	for _, m := range TitleSelectors {
		sel := doc.FindMatcher(m).First()
		if sel.Length() == 0 {
			continue
		}
		if title := elementText(sel.Nodes[0]); utf8.RuneCountInString(title) > minTitleLen {
			return title
		}
	}
	return ""
}

// Author returns the first plausible author name in doc, or "". A leading
// "by" and dashes are stripped.
func Author(doc *goquery.Document) string {
	for _, m := range AuthorSelectors {
		sel := doc.FindMatcher(m).First()
		if sel.Length() == 0 {
			continue
		}
		author := elementText(sel.Nodes[0])
		if utf8.RuneCountInString(author) <= minAuthorLen {
			continue
		}
		author = bylinePrefixRe.ReplaceAllString(author, "")
		author = bylineDashRe.ReplaceAllString(author, "")
		if utf8.RuneCountInString(author) > minAuthorLen {
			return author
		}
	}
	return ""
}

// PublishedAt returns the first parseable publication time in doc, or nil.
func PublishedAt(doc *goquery.Document) *time.Time {
	for _, m := range DateSelectors {
		var found *time.Time
		doc.FindMatcher(m).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
			n := sel.Nodes[0]
			raw := attr(n, "content")
			if Tag("time").Match(n) {
				raw = attr(n, "datetime")
			}
			if t, ok := parseDate(raw); ok {
				found = &t
				return false
			}
			return true
		})
		if found != nil {
			return found
		}
	}
	return nil
}

var dateLayouts = []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"}

func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// elementText is the trimmed text of an element. Meta tags contribute their
// content attribute.
func elementText(n *html.Node) string {
	if Tag("meta").Match(n) {
		return CollapseWhitespace(attr(n, "content"))
	}
	return plainText(n)
}
