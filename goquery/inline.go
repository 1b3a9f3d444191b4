package goquery

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// inline renders nodes as a single line of inline Markdown with whitespace
// collapsed.
func (w *walker) inline(nodes ...*html.Node) string {
	var b strings.Builder
	for _, n := range nodes {
		w.inlineNode(&b, n)
	}
	return CollapseWhitespace(b.String())
}

func (w *walker) inlineNode(b *strings.Builder, n *html.Node) {
	switch n.Type {
	case html.TextNode:
		b.WriteString(EscapeMarkdown(n.Data))
		return
	case html.ElementNode:
	default:
		return
	}

	if skipTag(n) {
		return
	}

	switch strings.ToLower(n.Data) {
	case "strong", "b":
		wrap(b, visibleText(n), inlineText(n), "**")
	case "em", "i":
		wrap(b, visibleText(n), inlineText(n), "*")
	case "code":
		raw := visibleText(n)
		if text := CollapseWhitespace(raw); text != "" {
			writeSpaced(b, raw, CodeSpan(EscapeMarkdown(text)))
		}
	case "img":
		b.WriteString(w.materialize(n))
	case "a":
		if len(Tag("img").MatchAll(n)) > 0 {
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				w.inlineNode(b, c)
			}
			return
		}
		b.WriteString(inlineText(n))
	case "br", "wbr":
		b.WriteByte(' ')
	default:
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			w.inlineNode(b, c)
		}
	}
}

// wrap writes text between delimiters. Whitespace at the edges of the raw
// element text moves outside the delimiters. Empty emphasis is dropped.
func wrap(b *strings.Builder, raw, text, delim string) {
	if text == "" {
		if raw != "" {
			b.WriteByte(' ')
		}
		return
	}
	writeSpaced(b, raw, delim+text+delim)
}

func writeSpaced(b *strings.Builder, raw, s string) {
	if first, _ := utf8.DecodeRuneInString(raw); unicode.IsSpace(first) {
		b.WriteByte(' ')
	}
	b.WriteString(s)
	if last, _ := utf8.DecodeLastRuneInString(raw); unicode.IsSpace(last) {
		b.WriteByte(' ')
	}
}

// tableEscaper also escapes the cell separator.
var tableEscaper = strings.NewReplacer(`*`, `\*`, `_`, `\_`, `#`, `\#`, `|`, `\|`)

// table renders a <table> through the table converter. The element is
// cloned and its text escaped first, so the converter runs without its own
// escaping. It reports false when the table holds images or no conversion
// is possible; the caller then renders the contents as blocks, so images
// still reach the materializer.
func (w *walker) table(n *html.Node) (string, bool) {
	if w.tables == nil || len(Tag("img").MatchAll(n)) > 0 {
		return "", false
	}

	clone := goquery.NewDocumentFromNode(n).Selection.Clone()
	for _, node := range clone.Nodes {
		escapeText(node)
	}
	src, err := goquery.OuterHtml(clone)
	if err != nil {
		return "", false
	}

	md, err := w.tables.Convert(src)
	if err != nil {
		return "", false
	}
	md = strings.TrimSpace(md)
	return md, md != ""
}

func escapeText(n *html.Node) {
	if n.Type == html.TextNode {
		n.Data = tableEscaper.Replace(n.Data)
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		escapeText(c)
	}
}
