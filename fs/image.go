package fs

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	article "github.com/alfishe/article-exporter"
)

// DefaultImageExt is used when the source URL has no file extension.
const DefaultImageExt = ".png"

var unsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9._-]`)

// Ensure ImageStore implements article.ImageStore at compile time.
var _ article.ImageStore = (*ImageStore)(nil)

// ImageStore downloads images into the export folder as img_NNN.ext.
type ImageStore struct {
	downloader article.Downloader
}

// NewImageStore creates a new ImageStore that fetches bytes with d.
func NewImageStore(d article.Downloader) *ImageStore {
	return &ImageStore{downloader: d}
}

// SaveImage picks the next img_NNN name not present in rc.Dir, downloads
// src into it and advances rc.ImageCounter. A failed download leaves no
// file behind and does not advance the counter.
func (s *ImageStore) SaveImage(ctx context.Context, rc *article.RenderContext, src string) (string, error) {
	ext := ImageExt(src)

	idx := rc.ImageCounter + 1
	var f *os.File
	var name string
	for {
		name = fmt.Sprintf("img_%03d%s", idx, ext)
		var err error
		f, err = os.OpenFile(filepath.Join(rc.Dir, name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
		if err == nil {
			break
		}
		if !errors.Is(err, os.ErrExist) {
			return "", article.Errorf(article.EFILESYSTEM, "failed to create image file: %v", err)
		}
		idx++
	}

	dest := f.Name()
	_, err := s.downloader.Download(ctx, src, f)
	if cerr := f.Close(); err == nil && cerr != nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(dest)
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", article.Errorf(article.EIMAGE, "failed to download image %s: %v", src, err)
	}

	rc.ImageCounter = idx
	return name, nil
}

// ImageExt returns the sanitized extension of the last path segment of
// src, or DefaultImageExt.
func ImageExt(src string) string {
	p := src
	if u, err := url.Parse(src); err == nil {
		p = u.Path
	}
	if i := strings.LastIndex(p, "/"); i >= 0 {
		p = p[i+1:]
	}
	base := unsafeFilenameChars.ReplaceAllString(p, "_")
	if ext := filepath.Ext(base); ext != "" && ext != base {
		return ext
	}
	return DefaultImageExt
}
