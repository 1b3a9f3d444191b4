package goquery

import (
	"context"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	article "github.com/alfishe/article-exporter"
	"golang.org/x/net/html"
)

// Ensure Renderer implements article.Renderer at compile time.
var _ article.Renderer = (*Renderer)(nil)

// Renderer converts article HTML into Markdown.
type Renderer struct {
	tables article.Converter
}

// RendererOption configures a Renderer.
type RendererOption func(*Renderer)

// WithTableConverter renders <table> elements through c instead of
// flattening them. The converter receives the table with its text already
// escaped.
func WithTableConverter(c article.Converter) RendererOption {
	return func(r *Renderer) {
		r.tables = c
	}
}

// NewRenderer creates a new Renderer.
func NewRenderer(opts ...RendererOption) *Renderer {
	r := &Renderer{}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render parses a full page, locates the article body (falling back to
// <body>), sanitizes it and renders it as Markdown.
func (r *Renderer) Render(ctx context.Context, rawHTML string, rc *article.RenderContext) (string, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return "", article.Errorf(article.EINVALID, "empty HTML input")
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return "", article.Errorf(article.EINVALID, "failed to parse HTML: %v", err)
	}

	root := LocateOrBody(doc)
	Sanitize(root)
	return r.RenderSelection(ctx, root, rc), nil
}

// RenderSelection walks the children of sel depth-first and returns the
// Markdown. Blocks are separated by a single blank line and the result is
// trimmed. Code block contents are emitted verbatim.
func (r *Renderer) RenderSelection(ctx context.Context, sel *goquery.Selection, rc *article.RenderContext) string {
	w := &walker{ctx: ctx, rc: rc, tables: r.tables}
	for _, n := range sel.Nodes {
		w.blocks(n)
	}
	return strings.TrimSpace(strings.Join(w.lines, "\n"))
}

// walker holds the state of one render pass.
type walker struct {
	ctx    context.Context
	rc     *article.RenderContext
	tables article.Converter
	lines  []string
}

// emit appends lines. A blank line directly after another blank line, or
// at the start, is dropped.
func (w *walker) emit(lines ...string) {
	for _, ln := range lines {
		if ln == "" && (len(w.lines) == 0 || w.lines[len(w.lines)-1] == "") {
			continue
		}
		w.lines = append(w.lines, ln)
	}
}

// blocks renders the children of n. Consecutive inline children form an
// implicit paragraph.
func (w *walker) blocks(n *html.Node) {
	var run []*html.Node
	flush := func() {
		if len(run) == 0 {
			return
		}
		if s := w.inline(run...); s != "" {
			w.emit(s, "")
		}
		run = run[:0]
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if isInline(c) {
			run = append(run, c)
			continue
		}
		flush()
		w.block(c)
	}
	flush()
}

// block renders one block-level node.
func (w *walker) block(n *html.Node) {
	if n.Type != html.ElementNode {
		if n.Type == html.DocumentNode {
			w.blocks(n)
		}
		return
	}

	switch tag := strings.ToLower(n.Data); tag {
	case "h1", "h2", "h3", "h4", "h5", "h6":
		level := int(tag[1] - '0')
		w.emit(strings.Repeat("#", level)+" "+inlineText(n), "")

	case "p":
		if s := w.inline(children(n)...); s != "" {
			w.emit(s, "")
		}

	case "ul", "ol":
		w.list(n, tag == "ol")

	case "pre":
		w.emit(newCodeBlock(n).fencedLines()...)

	case "blockquote":
		w.blockquote(n)

	case "table":
		if md, ok := w.table(n); ok {
			w.emit(md, "")
			return
		}
		w.blocks(n)

	case "head", "title", "meta", "link", "template":

	default:
		if skipTag(n) {
			return
		}
		w.blocks(n)
	}
}

// list renders the direct <li> children of a list. Ordered items are
// numbered from 1 in document order.
func (w *walker) list(n *html.Node, ordered bool) {
	idx := 1
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if !Tag("li").Match(c) {
			continue
		}
		prefix := "- "
		if ordered {
			prefix = strconv.Itoa(idx) + ". "
		}
		w.emit(prefix + w.inline(children(c)...))
		idx++
	}
	w.emit("")
}

func (w *walker) blockquote(n *html.Node) {
	inner := w.inline(children(n)...)
	for _, ln := range strings.Split(inner, "\n") {
		if ln == "" {
			w.emit(">")
			continue
		}
		w.emit("> " + ln)
	}
	w.emit("")
}

// inlineTags are rendered by the inline rules when they appear directly
// inside a container.
var inlineTags = map[string]bool{
	"a": true, "abbr": true, "b": true, "bdi": true, "bdo": true, "big": true,
	"br": true, "cite": true, "code": true, "data": true, "del": true,
	"dfn": true, "em": true, "font": true, "i": true, "img": true,
	"ins": true, "kbd": true, "label": true, "mark": true, "q": true,
	"s": true, "samp": true, "small": true, "span": true, "strike": true,
	"strong": true, "sub": true, "sup": true, "time": true, "tt": true,
	"u": true, "var": true, "wbr": true,
}

func isInline(n *html.Node) bool {
	switch n.Type {
	case html.TextNode, html.CommentNode:
		return true
	case html.ElementNode:
		return inlineTags[strings.ToLower(n.Data)] || skipTag(n)
	}
	return false
}

func children(n *html.Node) []*html.Node {
	var out []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		out = append(out, c)
	}
	return out
}
