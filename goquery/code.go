package goquery

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

// codeBlock is the raw text of a <pre> element and its detected language.
type codeBlock struct {
	text     string
	language string
}

var langClassRe = regexp.MustCompile(`^(?:language|lang)[-_]([a-z0-9+#]+)$`)

// languageAttrs are checked, in order, on both the <pre> and the nested <code>.
var languageAttrs = []string{"data-lang", "data-language", "lang", "language"}

// languageAliases normalizes language hints to fence info strings.
var languageAliases = map[string]string{
	"js": "javascript", "jsx": "jsx", "javascript": "javascript",
	"ts": "typescript", "tsx": "tsx", "typescript": "typescript",
	"py": "python", "python": "python",
	"rb": "ruby", "ruby": "ruby",
	"php": "php",
	"java": "java", "kotlin": "kotlin", "swift": "swift",
	"c": "c", "cpp": "cpp", "c++": "cpp", "cc": "cpp", "hpp": "cpp",
	"cs": "csharp", "c#": "csharp", "csharp": "csharp",
	"go": "go", "golang": "go",
	"rs": "rust", "rust": "rust",
	"sh": "bash", "bash": "bash", "zsh": "bash", "shell": "bash", "console": "bash",
	"yaml": "yaml", "yml": "yaml", "json": "json", "toml": "toml", "ini": "ini",
	"html": "html", "xml": "xml", "css": "css", "scss": "scss", "less": "less",
	"sql": "sql", "graphql": "graphql", "proto": "protobuf", "protobuf": "protobuf",
	"dockerfile": "dockerfile", "docker": "dockerfile",
	"make": "makefile", "makefile": "makefile", "cmake": "cmake",
	"gradle": "gradle", "groovy": "groovy",
	"lua": "lua", "r": "r", "matlab": "matlab", "perl": "perl",
	"ps": "powershell", "ps1": "powershell", "powershell": "powershell",
	"hcl": "hcl", "terraform": "hcl",
}

// newCodeBlock reads a <pre> element. The text comes verbatim from the
// first nested <code>, or from the <pre> itself.
func newCodeBlock(pre *html.Node) codeBlock {
	var inner *html.Node
	if code := Tag("code").MatchAll(pre); len(code) > 0 {
		inner = code[0]
	}

	src := pre
	if inner != nil {
		src = inner
	}
	return codeBlock{
		text:     rawText(src),
		language: detectLanguage(pre, inner),
	}
}

// detectLanguage inspects class tokens and language attributes on the
// <pre> and then the <code> element. It returns "" when nothing matches.
func detectLanguage(nodes ...*html.Node) string {
	var candidates []string
	for _, n := range nodes {
		if n == nil {
			continue
		}
		for _, c := range strings.Fields(attr(n, "class")) {
			candidates = append(candidates, strings.ToLower(c))
		}
		for _, key := range languageAttrs {
			if v := attr(n, key); v != "" {
				candidates = append(candidates, strings.ToLower(v))
			}
		}
	}

	for _, token := range candidates {
		if token == "hljs" {
			continue
		}
		if m := langClassRe.FindStringSubmatch(token); m != nil {
			if alias, ok := languageAliases[m[1]]; ok {
				return alias
			}
			return m[1]
		}
		if alias, ok := languageAliases[strings.Trim(token, ".#")]; ok {
			return alias
		}
	}
	return ""
}

// Fence returns the code fence for text: one backtick longer than the
// longest backtick run inside it, and never shorter than three.
func Fence(text string) string {
	return strings.Repeat("`", max(3, longestRun(text, '`')+1))
}

// fencedLines renders the block as Markdown lines ending with a blank line.
func (b codeBlock) fencedLines() []string {
	text := strings.TrimRight(b.text, "\n")
	fence := Fence(text)
	return []string{fence + b.language, text, fence, ""}
}

// CodeSpan wraps text in a backtick span one backtick longer than the
// longest run inside it. Text that starts or ends with a backtick is padded
// with a space so the delimiters stay unambiguous.
func CodeSpan(text string) string {
	delim := strings.Repeat("`", max(1, longestRun(text, '`')+1))
	if strings.HasPrefix(text, "`") || strings.HasSuffix(text, "`") {
		text = " " + text + " "
	}
	return delim + text + delim
}
