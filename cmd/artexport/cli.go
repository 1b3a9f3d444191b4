package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/alecthomas/kong"
	article "github.com/alfishe/article-exporter"
	"github.com/alfishe/article-exporter/export"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx      context.Context
	Stdout   io.Writer
	Stderr   io.Writer
	Logger   *slog.Logger
	Exporter *export.Exporter
	Catalog  article.Catalog
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	URL      string          `arg:"" optional:"" help:"Article URL (https:// is added when no scheme is given)"`
	Output   string          `short:"o" default:"./articles" env:"ARTEXPORT_OUTPUT" help:"Directory that receives export folders"`
	Timeout  float64         `short:"t" default:"30" help:"Request timeout in seconds"`
	Delay    float64         `short:"d" default:"0.5" help:"Delay before the page request and between image requests, in seconds"`
	NoImages bool            `name:"no-images" help:"Do not download images"`
	Verbose  bool            `short:"v" help:"Log requests and saved images"`
	Title    string          `help:"Article title (skips title extraction)"`
	Author   string          `help:"Article author (skips author extraction)"`
	Catalog  string          `env:"ARTEXPORT_CATALOG" help:"SQLite file recording finished exports"`
	History  bool            `help:"List exports recorded in the catalog instead of exporting"`
	Limit    int             `default:"20" help:"Maximum entries shown by --history"`
	Config   kong.ConfigFlag `help:"YAML file with flag defaults"`
}

// ExportCmd exports a single article.
type ExportCmd struct {
	URL     string
	Title   string
	Author  string
	Verbose bool
}

// HistoryCmd lists catalog entries, optionally for one URL.
type HistoryCmd struct {
	URL   string
	Limit int
}
