package goquery

import (
	"net/url"
	"path"
	"strconv"
	"strings"

	article "github.com/alfishe/article-exporter"
	"golang.org/x/net/html"
)

// MinImageSize is the smallest accepted declared width or height. Smaller
// images are treated as tracking pixels and icons.
const MinImageSize = 32

// DefaultAltText is used when an image has no alt attribute.
const DefaultAltText = "image"

// imageExts lists the accepted image file extensions.
var imageExts = map[string]bool{
	".webp": true,
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".svg":  true,
}

// ImageCandidate decides whether an <img> element should be downloaded.
// It returns the resolved source and alt text, or false when the element
// has no usable source, an unsupported extension, an ad-like class or a
// declared dimension below MinImageSize.
func ImageCandidate(img *html.Node, baseURL string) (*article.ImageRef, bool) {
	src := strings.TrimSpace(attr(img, "src"))
	if src == "" {
		src = strings.TrimSpace(attr(img, "data-src"))
	}
	if src == "" {
		return nil, false
	}

	resolved, err := resolveImageURL(baseURL, src)
	if err != nil {
		return nil, false
	}
	if !imageExts[strings.ToLower(path.Ext(resolved.Path))] {
		return nil, false
	}

	if strings.Contains(strings.ToLower(attr(img, "class")), "ad") {
		return nil, false
	}

	for _, key := range []string{"width", "height"} {
		v, err := strconv.Atoi(strings.TrimSpace(attr(img, key)))
		if err == nil && v > 0 && v < MinImageSize {
			return nil, false
		}
	}

	alt := strings.TrimSpace(attr(img, "alt"))
	if alt == "" {
		alt = DefaultAltText
	}

	return &article.ImageRef{
		ResolvedURL: resolved.String(),
		AltText:     alt,
	}, true
}

func resolveImageURL(base, ref string) (*url.URL, error) {
	r, err := url.Parse(ref)
	if err != nil {
		return nil, err
	}
	if base == "" {
		return r, nil
	}
	b, err := url.Parse(base)
	if err != nil {
		return nil, err
	}
	return b.ResolveReference(r), nil
}

// materialize downloads an accepted image and returns its Markdown
// reference on its own line. Rejected or failed images render as nothing.
func (w *walker) materialize(img *html.Node) string {
	rc := w.rc
	if rc == nil || rc.NoImages || rc.Images == nil {
		return ""
	}

	ref, ok := ImageCandidate(img, rc.BaseURL)
	if !ok {
		return ""
	}

	filename, err := rc.Images.SaveImage(w.ctx, rc, ref.ResolvedURL)
	if err != nil {
		return ""
	}
	ref.LocalFilename = filename

	return "![" + EscapeMarkdown(ref.AltText) + "](" + ref.LocalFilename + ")\n"
}
