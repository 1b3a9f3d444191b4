package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	article "github.com/alfishe/article-exporter"
	"github.com/alfishe/article-exporter/export"
	"github.com/alfishe/article-exporter/fs"
	"github.com/alfishe/article-exporter/goquery"
	"github.com/alfishe/article-exporter/htmltomarkdown"
	arthttp "github.com/alfishe/article-exporter/http"
	"github.com/alfishe/article-exporter/readability"
	artslog "github.com/alfishe/article-exporter/slog"
	"github.com/alfishe/article-exporter/sqlite"
	"github.com/alfishe/article-exporter/trafilatura"
)

// ExitCancelled is the exit status after SIGINT or SIGTERM.
const ExitCancelled = 130

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		stop()
		if errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, "export cancelled")
			os.Exit(ExitCancelled)
		}
		fmt.Fprintf(os.Stderr, "error: %s\n", errorText(err))
		os.Exit(1)
	}
}

// errorText returns the message of an application error and the full
// error text otherwise.
func errorText(err error) string {
	var e *article.Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// Main represents the program.
type Main struct {
	// ConfigPaths are YAML files read for flag defaults, lowest priority
	// first. Set before calling Run().
	ConfigPaths []string

	// Catalog database, opened only when --catalog is set.
	DB *sqlite.DB
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		ConfigPaths: defaultConfigPaths(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("artexport"),
		kong.Description("Export a web article to Markdown with local images"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
		kong.Configuration(YAMLLoader, m.ConfigPaths...),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return article.Errorf(article.EINVALID, "no URL provided. Run 'artexport --help' for usage")
	}

	if len(args) == 1 && (args[0] == "--help" || args[0] == "-h" || args[0] == "help") {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	if _, err := parser.Parse(args); err != nil {
		return article.Errorf(article.EINVALID, "%v", err)
	}

	level := slog.LevelWarn
	if cli.Verbose {
		level = slog.LevelInfo
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
		Logger: logger,
	}

	if cli.Catalog != "" {
		m.DB = sqlite.NewDB(cli.Catalog)
		if err := m.DB.Open(ctx); err != nil {
			fmt.Fprintln(stderr, "Hint: Set ARTEXPORT_CATALOG or --catalog to use a different catalog path")
			return fmt.Errorf("failed to open catalog at %q: %w", cli.Catalog, err)
		}
		defer m.Close()
		deps.Catalog = artslog.NewLoggingCatalog(sqlite.NewCatalogService(m.DB), logger)
	}

	if cli.History {
		cmd := &HistoryCmd{URL: cli.URL, Limit: cli.Limit}
		return cmd.Run(deps)
	}

	if cli.URL == "" {
		return article.Errorf(article.EINVALID, "URL required")
	}

	deps.Exporter = m.newExporter(cli, deps)
	defer deps.Exporter.Fetcher.Close()

	cmd := &ExportCmd{
		URL:     cli.URL,
		Title:   cli.Title,
		Author:  cli.Author,
		Verbose: cli.Verbose,
	}
	return cmd.Run(deps)
}

// newExporter wires the export pipeline from the parsed flags.
func (m *Main) newExporter(cli *CLI, deps *Dependencies) *export.Exporter {
	timeout := seconds(cli.Timeout)
	if timeout <= 0 {
		timeout = arthttp.DefaultFetchTimeout
	}
	delay := seconds(cli.Delay)

	httpFetcher := arthttp.NewFetcher(arthttp.WithTimeout(timeout))
	downloader := export.NewLimitedDownloader(
		artslog.NewLoggingDownloader(httpFetcher, deps.Logger), delay)

	return &export.Exporter{
		Fetcher: artslog.NewLoggingFetcher(httpFetcher, deps.Logger),
		Meta: export.MetaChain{
			goquery.NewMetaExtractor(),
			readability.NewMetaExtractor(),
			trafilatura.NewMetaExtractor(),
		},
		Renderer: goquery.NewRenderer(goquery.WithTableConverter(htmltomarkdown.NewConverter())),
		Store:    fs.NewStore(cli.Output),
		Images:   artslog.NewLoggingImageStore(fs.NewImageStore(downloader), deps.Logger),
		Catalog:  deps.Catalog,
		Logger:   deps.Logger,
		Delay:    delay,
		NoImages: cli.NoImages,
	}
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}

// defaultConfigPaths returns the per-user configuration file location.
func defaultConfigPaths() []string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return nil
	}
	return []string{filepath.Join(dir, "artexport", "config.yaml")}
}
