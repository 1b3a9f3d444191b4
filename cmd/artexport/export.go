package main

import (
	"fmt"

	article "github.com/alfishe/article-exporter"
)

// Run executes the export command.
func (c *ExportCmd) Run(deps *Dependencies) error {
	meta := &article.Meta{
		URL:    c.URL,
		Title:  c.Title,
		Author: c.Author,
	}

	res, err := deps.Exporter.Export(deps.Ctx, meta)
	if err != nil {
		return err
	}

	fmt.Fprintf(deps.Stdout, "Article exported to: %s\n", res.Folder)
	if c.Verbose {
		fmt.Fprintf(deps.Stdout, "Markdown file: %s\n", res.MarkdownPath)
		fmt.Fprintf(deps.Stdout, "Images saved: %d\n", res.ImageCount)
	}
	return nil
}
