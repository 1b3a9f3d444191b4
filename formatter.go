package article

import (
	"regexp"
	"strings"
)

var bracketLineRe = regexp.MustCompile(`^\s*[\[\]]+\s*$`)

// FormatDocument assembles the final article document: a title heading, a
// metadata list, a horizontal rule and the rendered body.
func FormatDocument(meta *Meta, body string) string {
	title := strings.TrimSpace(meta.Title)
	if title == "" {
		title = "Untitled"
	}

	lines := []string{"# " + title}

	var parts []string
	if meta.Author != "" {
		parts = append(parts, "Author: "+meta.Author)
	}
	if meta.PublishedAt != nil {
		parts = append(parts, "Published: "+meta.PublishedAt.Format("2006-01-02 15:04"))
	}
	if meta.URL != "" {
		parts = append(parts, "Original URL: ["+meta.URL+"]("+meta.URL+")")
	}
	if len(parts) > 0 {
		lines = append(lines, "")
		for _, p := range parts {
			lines = append(lines, "- "+p)
		}
		lines = append(lines, "", "---")
	}
	lines = append(lines, "", strings.TrimSpace(body))

	content := strings.TrimSpace(strings.Join(lines, "\n")) + "\n"
	return CleanupMarkdown(content) + "\n"
}

// CleanupMarkdown drops lines made only of '[' and ']' characters, collapses
// runs of blank lines to a single blank line and trims the result. Lines
// inside fenced code blocks are kept verbatim.
func CleanupMarkdown(content string) string {
	var cleaned []string
	fence := ""
	for _, ln := range strings.Split(content, "\n") {
		if fence != "" {
			cleaned = append(cleaned, ln)
			if closesFence(ln, fence) {
				fence = ""
			}
			continue
		}
		if bracketLineRe.MatchString(ln) {
			continue
		}
		if ln == "" && (len(cleaned) == 0 || cleaned[len(cleaned)-1] == "") {
			continue
		}
		if f := openingFence(ln); f != "" {
			fence = f
		}
		cleaned = append(cleaned, ln)
	}
	return strings.TrimSpace(strings.Join(cleaned, "\n"))
}

// openingFence returns the backtick run that opens a fenced code block on
// ln, or "". A line with more backticks after the run is an inline code
// span, not a fence.
func openingFence(ln string) string {
	trimmed := strings.TrimLeft(ln, " ")
	rest := strings.TrimLeft(trimmed, "`")
	n := len(trimmed) - len(rest)
	if n < 3 || strings.Contains(rest, "`") {
		return ""
	}
	return trimmed[:n]
}

// closesFence reports whether ln is a closing fence for fence: only
// backticks, at least as many as the opening run.
func closesFence(ln, fence string) bool {
	trimmed := strings.TrimSpace(ln)
	return len(trimmed) >= len(fence) && strings.Trim(trimmed, "`") == ""
}
