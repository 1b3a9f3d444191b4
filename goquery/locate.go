package goquery

import "github.com/PuerkitoBio/goquery"

// MinContentLength is the normalized text length a selector match must
// exceed to be accepted as the article body.
const MinContentLength = 200

// ContentSelectors lists common article containers in priority order.
// An earlier selector wins over a later one whenever both qualify.
var ContentSelectors = []Predicate{
	Tag("article"),
	HasClass("article-content"),
	HasClass("post-content"),
	HasClass("entry-content"),
	HasClass("content"),
	HasClass("article-body"),
	HasClass("post-body"),
	HasClass("entry-body"),
	HasClass("article-text"),
	HasClass("post-text"),
	HasClass("entry-text"),
	Tag("main"),
	AttrEquals("role", "main"),
	ID("main"),
	ID("content"),
	HasClass("main"),
}

// Locate selects the subtree most likely to hold the article body.
//
// The first match of each content selector is tried in order and returned
// as soon as its text is longer than MinContentLength. Otherwise the div or
// section with the most text wins, first in document order on ties. Locate
// returns nil only when the document has no div or section at all.
func Locate(doc *goquery.Document) *goquery.Selection {
	for _, m := range ContentSelectors {
		sel := doc.FindMatcher(m).First()
		if sel.Length() > 0 && TextLength(sel) > MinContentLength {
			return sel
		}
	}

	var best *goquery.Selection
	bestLen := -1
	doc.FindMatcher(Tag("div", "section")).Each(func(_ int, sel *goquery.Selection) {
		if n := TextLength(sel); n > bestLen {
			best = sel
			bestLen = n
		}
	})
	return best
}

// LocateOrBody is Locate with the caller fallback applied: the body
// element, then the whole document.
func LocateOrBody(doc *goquery.Document) *goquery.Selection {
	if sel := Locate(doc); sel != nil {
		return sel
	}
	if body := doc.FindMatcher(Tag("body")).First(); body.Length() > 0 {
		return body
	}
	return doc.Selection
}
