package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// UnwantedSelectors lists regions removed from the article subtree.
// Class patterns match anywhere in the class attribute, so "ad" also
// removes "ad-slot" and "sidebar-ads".
var UnwantedSelectors = []Predicate{
	Tag("nav", "header", "footer", "aside"),
	ClassContains("ad"),
	ClassContains("social"),
	ClassContains("share"),
	ClassContains("comment"),
	ClassContains("nav"),
	ClassContains("menu"),
	ClassContains("sidebar"),
	ClassContains("related"),
	ClassContains("recommended"),
	Tag(skippedTags...),
}

// skippedTags never produce Markdown.
var skippedTags = []string{"script", "style", "noscript", "iframe", "form"}

func skipTag(n *html.Node) bool {
	for _, t := range skippedTags {
		if strings.EqualFold(n.Data, t) {
			return true
		}
	}
	return false
}

// Sanitize removes every descendant of sel matching UnwantedSelectors,
// together with its subtree. Each selector works on a snapshot of its
// current matches, so removal order does not matter. Running Sanitize again
// on the result is a no-op.
func Sanitize(sel *goquery.Selection) {
	for _, m := range UnwantedSelectors {
		sel.FindMatcher(m).Remove()
	}
}
