package goquery

import (
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

var mdEscaper = strings.NewReplacer(`*`, `\*`, `_`, `\_`, `#`, `\#`)

// EscapeMarkdown backslash-escapes the Markdown metacharacters '*', '_'
// and '#' in literal text.
func EscapeMarkdown(s string) string {
	return mdEscaper.Replace(s)
}

// CollapseWhitespace replaces every whitespace run with a single space and
// trims the ends.
func CollapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// TextLength returns the rune count of the selection's visible text with
// whitespace collapsed.
func TextLength(sel *goquery.Selection) int {
	n := 0
	for _, node := range sel.Nodes {
		n += utf8.RuneCountInString(CollapseWhitespace(visibleText(node)))
	}
	return n
}

// rawText concatenates every text node under n verbatim.
func rawText(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(cur *html.Node) {
		if cur.Type == html.TextNode {
			b.WriteString(cur.Data)
			return
		}
		for c := cur.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

// visibleText is rawText without script, style and other skipped elements.
func visibleText(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(cur *html.Node) {
		switch cur.Type {
		case html.TextNode:
			b.WriteString(cur.Data)
			return
		case html.ElementNode:
			if skipTag(cur) {
				return
			}
		}
		for c := cur.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

// plainText joins the trimmed visible text pieces under n with single
// spaces, collapsing whitespace. The result is not escaped.
func plainText(n *html.Node) string {
	var pieces []string
	var walk func(*html.Node)
	walk = func(cur *html.Node) {
		switch cur.Type {
		case html.TextNode:
			if s := strings.TrimSpace(cur.Data); s != "" {
				pieces = append(pieces, s)
			}
			return
		case html.ElementNode:
			if skipTag(cur) {
				return
			}
		}
		for c := cur.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return CollapseWhitespace(strings.Join(pieces, " "))
}

// inlineText is plainText with Markdown metacharacters escaped.
func inlineText(n *html.Node) string {
	return EscapeMarkdown(plainText(n))
}

// longestRun returns the length of the longest run of r in s.
func longestRun(s string, r rune) int {
	longest, cur := 0, 0
	for _, c := range s {
		if c == r {
			cur++
			if cur > longest {
				longest = cur
			}
			continue
		}
		cur = 0
	}
	return longest
}
