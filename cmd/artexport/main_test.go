package main_test

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	article "github.com/alfishe/article-exporter"
	main "github.com/alfishe/article-exporter/cmd/artexport"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const articleHTML = `<html><head><title>Page</title></head><body>
<nav><a href="/">Home</a> <a href="/about">About</a></nav>
<article>
<h1>Testing Exports</h1>
<p>This paragraph talks about *stars* and _underscores_ in a sentence that is long
enough to make the article element win the content search on its own, which needs
more than two hundred characters of visible text in total to qualify.</p>
<img src="/img/photo.png" alt="A photo">
<pre><code class="language-go">fmt.Println("hi")</code></pre>
</article>
<footer>Copyright</footer>
</body></html>`

var pngBytes = []byte("\x89PNG\r\n\x1a\nfake image payload")

// newSite serves an article at /post/1 and an image at /img/photo.png.
func newSite(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/post/1", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(articleHTML))
	})
	mux.HandleFunc("/img/photo.png", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(pngBytes)
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

// newMain returns a Main that ignores the user's configuration file.
func newMain() *main.Main {
	m := main.NewMain()
	m.ConfigPaths = nil
	return m
}

// exportedFolder extracts the folder path from the success line.
func exportedFolder(t *testing.T, stdout string) string {
	t.Helper()
	const prefix = "Article exported to: "
	for _, line := range strings.Split(stdout, "\n") {
		if strings.HasPrefix(line, prefix) {
			return strings.TrimPrefix(line, prefix)
		}
	}
	t.Fatalf("no export line in output: %q", stdout)
	return ""
}

func TestMain_Run_Help(t *testing.T) {
	t.Parallel()

	var stdout, stderr bytes.Buffer

	err := newMain().Run(context.Background(), []string{"--help"}, &stdout, &stderr)

	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "artexport")
	assert.Contains(t, stdout.String(), "--no-images")
}

func TestMain_Run_NoArgs(t *testing.T) {
	t.Parallel()

	var stdout, stderr bytes.Buffer

	err := newMain().Run(context.Background(), []string{}, &stdout, &stderr)

	require.Error(t, err)
	assert.Equal(t, article.EINVALID, article.ErrorCode(err))
}

func TestMain_Run_Export(t *testing.T) {
	t.Parallel()

	t.Run("writes article and images", func(t *testing.T) {
		t.Parallel()

		server := newSite(t)
		out := t.TempDir()
		var stdout, stderr bytes.Buffer

		err := newMain().Run(context.Background(),
			[]string{server.URL + "/post/1", "-o", out, "-d", "0"}, &stdout, &stderr)
		require.NoError(t, err, stderr.String())

		folder := exportedFolder(t, stdout.String())
		assert.Equal(t, out, filepath.Dir(folder))
		assert.True(t, strings.HasSuffix(folder, "-post-1-Testing Exports"), folder)

		md, err := os.ReadFile(filepath.Join(folder, article.ArticleFilename))
		require.NoError(t, err)
		content := string(md)
		assert.True(t, strings.HasPrefix(content, "# Testing Exports\n"))
		assert.Contains(t, content, "- Original URL: ["+server.URL+"/post/1]("+server.URL+"/post/1)")
		assert.Contains(t, content, `\*stars\*`)
		assert.Contains(t, content, `\_underscores\_`)
		assert.Contains(t, content, "![A photo](img_001.png)")
		assert.Contains(t, content, "```go\nfmt.Println(\"hi\")\n```")
		assert.NotContains(t, content, "Copyright")
		assert.NotContains(t, content, "About")

		img, err := os.ReadFile(filepath.Join(folder, "img_001.png"))
		require.NoError(t, err)
		assert.Equal(t, pngBytes, img)
	})

	t.Run("skips images with --no-images", func(t *testing.T) {
		t.Parallel()

		server := newSite(t)
		out := t.TempDir()
		var stdout, stderr bytes.Buffer

		err := newMain().Run(context.Background(),
			[]string{server.URL + "/post/1", "-o", out, "-d", "0", "--no-images"}, &stdout, &stderr)
		require.NoError(t, err)

		folder := exportedFolder(t, stdout.String())
		md, err := os.ReadFile(filepath.Join(folder, article.ArticleFilename))
		require.NoError(t, err)
		assert.NotContains(t, string(md), "![")
		assert.NoFileExists(t, filepath.Join(folder, "img_001.png"))
	})

	t.Run("title flag overrides extracted title", func(t *testing.T) {
		t.Parallel()

		server := newSite(t)
		out := t.TempDir()
		var stdout, stderr bytes.Buffer

		err := newMain().Run(context.Background(),
			[]string{server.URL + "/post/1", "-o", out, "-d", "0", "--no-images", "--title", "Chosen Name"},
			&stdout, &stderr)
		require.NoError(t, err)

		folder := exportedFolder(t, stdout.String())
		assert.True(t, strings.HasSuffix(folder, "-Chosen Name"), folder)
	})

	t.Run("verbose prints markdown path", func(t *testing.T) {
		t.Parallel()

		server := newSite(t)
		out := t.TempDir()
		var stdout, stderr bytes.Buffer

		err := newMain().Run(context.Background(),
			[]string{server.URL + "/post/1", "-o", out, "-d", "0", "-v"}, &stdout, &stderr)
		require.NoError(t, err)

		folder := exportedFolder(t, stdout.String())
		assert.Contains(t, stdout.String(), "Markdown file: "+filepath.Join(folder, article.ArticleFilename))
		assert.Contains(t, stdout.String(), "Images saved: 1")
		assert.Contains(t, stderr.String(), "level=INFO")
	})

	t.Run("reports fetch failure", func(t *testing.T) {
		t.Parallel()

		server := newSite(t)
		out := t.TempDir()
		var stdout, stderr bytes.Buffer

		err := newMain().Run(context.Background(),
			[]string{server.URL + "/missing", "-o", out, "-d", "0"}, &stdout, &stderr)

		require.Error(t, err)
		assert.Equal(t, article.EFETCH, article.ErrorCode(err))
		entries, readErr := os.ReadDir(out)
		require.NoError(t, readErr)
		assert.Empty(t, entries)
	})

	t.Run("requests a failing page once", func(t *testing.T) {
		t.Parallel()

		var hits atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			hits.Add(1)
			w.WriteHeader(http.StatusNotFound)
		}))
		t.Cleanup(server.Close)
		var stdout, stderr bytes.Buffer

		err := newMain().Run(context.Background(),
			[]string{server.URL + "/gone", "-o", t.TempDir(), "-d", "0"}, &stdout, &stderr)

		require.Error(t, err)
		assert.Contains(t, article.ErrorMessage(err), "HTTP 404")
		assert.Equal(t, int32(1), hits.Load())
	})

	t.Run("returns cancellation", func(t *testing.T) {
		t.Parallel()

		server := newSite(t)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		var stdout, stderr bytes.Buffer

		err := newMain().Run(ctx,
			[]string{server.URL + "/post/1", "-o", t.TempDir()}, &stdout, &stderr)

		require.ErrorIs(t, err, context.Canceled)
	})
}

func TestMain_Run_History(t *testing.T) {
	t.Parallel()

	t.Run("lists recorded exports", func(t *testing.T) {
		t.Parallel()

		server := newSite(t)
		dir := t.TempDir()
		catalog := filepath.Join(dir, "catalog", "exports.db")
		var stdout, stderr bytes.Buffer

		err := newMain().Run(context.Background(),
			[]string{server.URL + "/post/1", "-o", filepath.Join(dir, "out"), "-d", "0", "--no-images", "--catalog", catalog},
			&stdout, &stderr)
		require.NoError(t, err)
		folder := exportedFolder(t, stdout.String())

		stdout.Reset()
		err = newMain().Run(context.Background(),
			[]string{"--history", "--catalog", catalog}, &stdout, &stderr)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "Testing Exports")
		assert.Contains(t, stdout.String(), folder)
		assert.Contains(t, stdout.String(), server.URL+"/post/1")
	})

	t.Run("reports empty catalog", func(t *testing.T) {
		t.Parallel()

		var stdout, stderr bytes.Buffer

		err := newMain().Run(context.Background(),
			[]string{"--history", "--catalog", filepath.Join(t.TempDir(), "exports.db")}, &stdout, &stderr)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "No exports recorded.")
	})

	t.Run("requires catalog", func(t *testing.T) {
		t.Parallel()

		var stdout, stderr bytes.Buffer

		err := newMain().Run(context.Background(), []string{"--history"}, &stdout, &stderr)

		require.Error(t, err)
		assert.Equal(t, article.EINVALID, article.ErrorCode(err))
	})
}
