// Package goquery implements article content extraction and Markdown
// rendering on top of github.com/PuerkitoBio/goquery.
//
// Selectors are predicate values rather than CSS strings, so matching needs
// no runtime parsing. Every Predicate satisfies goquery.Matcher and can be
// passed to FindMatcher, ChildrenMatcher and friends.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Ensure Predicate implements goquery.Matcher at compile time.
var _ goquery.Matcher = Predicate(nil)

// Predicate reports whether an element node matches.
// Non-element nodes never match.
type Predicate func(n *html.Node) bool

// Match reports whether n is an element accepted by p.
func (p Predicate) Match(n *html.Node) bool {
	return n != nil && n.Type == html.ElementNode && p(n)
}

// MatchAll returns n and its descendants that match, in document order.
func (p Predicate) MatchAll(n *html.Node) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(cur *html.Node) {
		if p.Match(cur) {
			out = append(out, cur)
		}
		for c := cur.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return out
}

// Filter returns the nodes that match.
func (p Predicate) Filter(nodes []*html.Node) []*html.Node {
	var out []*html.Node
	for _, n := range nodes {
		if p.Match(n) {
			out = append(out, n)
		}
	}
	return out
}

// Tag matches elements with any of the given tag names.
func Tag(names ...string) Predicate {
	return func(n *html.Node) bool {
		for _, name := range names {
			if strings.EqualFold(n.Data, name) {
				return true
			}
		}
		return false
	}
}

// HasClass matches elements whose class list contains token exactly.
func HasClass(token string) Predicate {
	return func(n *html.Node) bool {
		for _, c := range strings.Fields(attr(n, "class")) {
			if c == token {
				return true
			}
		}
		return false
	}
}

// ClassContains matches elements whose class attribute contains substr
// anywhere, ignoring case.
func ClassContains(substr string) Predicate {
	substr = strings.ToLower(substr)
	return func(n *html.Node) bool {
		return strings.Contains(strings.ToLower(attr(n, "class")), substr)
	}
}

// ID matches the element with the given id attribute.
func ID(id string) Predicate {
	return AttrEquals("id", id)
}

// AttrEquals matches elements whose attribute key equals value.
func AttrEquals(key, value string) Predicate {
	return func(n *html.Node) bool {
		v, ok := attrOK(n, key)
		return ok && v == value
	}
}

// HasAttr matches elements carrying the attribute key.
func HasAttr(key string) Predicate {
	return func(n *html.Node) bool {
		_, ok := attrOK(n, key)
		return ok
	}
}

// AnyOf matches elements accepted by at least one predicate.
func AnyOf(preds ...Predicate) Predicate {
	return func(n *html.Node) bool {
		for _, p := range preds {
			if p(n) {
				return true
			}
		}
		return false
	}
}

// AllOf matches elements accepted by every predicate.
func AllOf(preds ...Predicate) Predicate {
	return func(n *html.Node) bool {
		for _, p := range preds {
			if !p(n) {
				return false
			}
		}
		return true
	}
}

func attr(n *html.Node, key string) string {
	v, _ := attrOK(n, key)
	return v
}

func attrOK(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Namespace == "" && strings.EqualFold(a.Key, key) {
			return a.Val, true
		}
	}
	return "", false
}
