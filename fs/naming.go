// Package fs provides file-based storage for exported articles.
package fs

import (
	"net/url"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	article "github.com/alfishe/article-exporter"
	"golang.org/x/text/unicode/norm"
)

// MaxTitleLength is the rune budget for the title part of a folder name.
const MaxTitleLength = 32

// maxIDLength caps the URL-derived id part of a folder name.
const maxIDLength = 40

// Untitled is used when a title has no usable characters.
const Untitled = "untitled"

var (
	nonIDChars = regexp.MustCompile(`[^A-Za-z0-9-]`)

	folderReplacer = strings.NewReplacer(
		"<", "(",
		">", ")",
		"|", "-",
		":", "-",
		`"`, "'",
		"*", "x",
		"?", "",
		`\`, "-",
		"/", "-",
		"\x00", "",
		"\t", " ",
		"\n", " ",
		"\r", " ",
		"\f", " ",
		"\v", " ",
	)
)

// FolderName returns the export folder name for meta:
// <YYYYMMDD>-<id>-<title>.
func FolderName(meta *article.Meta, now time.Time) string {
	title := Untitled
	if meta.Title != "" {
		title = SafeFolderName(meta.Title, MaxTitleLength)
	}
	return now.Format("20060102") + "-" + IDFromURL(meta.URL) + "-" + title
}

// IDFromURL derives a short ASCII identifier from the URL path, falling
// back to the host. It never returns an empty string.
func IDFromURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "u"
	}

	raw := strings.ReplaceAll(strings.Trim(u.Path, "/"), "/", "-")
	if raw == "" {
		raw = u.Host
	}
	raw = nonIDChars.ReplaceAllString(raw, "")
	if len(raw) > maxIDLength {
		raw = raw[:maxIDLength]
	}
	if raw == "" {
		return "u"
	}
	return raw
}

// SafeFolderName turns text into a filesystem-safe name of at most
// maxLen runes. Reserved characters are replaced, control characters
// dropped and whitespace collapsed; non-ASCII letters are kept in NFC form.
// Long names are cut at a word boundary. When even the first word does not
// fit, the name is cut at maxLen runes.
func SafeFolderName(text string, maxLen int) string {
	s := folderReplacer.Replace(norm.NFC.String(strings.TrimSpace(text)))
	s = strings.Map(func(r rune) rune {
		if r < 32 {
			return -1
		}
		return r
	}, s)
	s = strings.Join(strings.Fields(s), " ")

	if utf8.RuneCountInString(s) > maxLen {
		var result string
		for _, word := range strings.Fields(s) {
			if utf8.RuneCountInString(result+" "+word) > maxLen {
				break
			}
			result = strings.TrimSpace(result + " " + word)
		}
		if result == "" {
			result = string([]rune(s)[:maxLen])
		}
		s = result
	}

	s = strings.TrimSpace(s)
	if s == "" {
		return Untitled
	}
	return s
}
