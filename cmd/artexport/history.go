package main

import (
	"fmt"
	"time"

	article "github.com/alfishe/article-exporter"
)

// Run executes the history command.
func (c *HistoryCmd) Run(deps *Dependencies) error {
	if deps.Catalog == nil {
		return article.Errorf(article.EINVALID, "--history requires --catalog or ARTEXPORT_CATALOG")
	}

	filter := article.ExportFilter{Limit: c.Limit}
	if c.URL != "" {
		u, err := article.NormalizeURL(c.URL)
		if err != nil {
			return err
		}
		filter.SourceURL = &u
	}

	recs, err := deps.Catalog.FindExports(deps.Ctx, filter)
	if err != nil {
		return err
	}

	if len(recs) == 0 {
		fmt.Fprintln(deps.Stdout, "No exports recorded.")
		return nil
	}

	for _, r := range recs {
		title := r.Title
		if title == "" {
			title = "Untitled"
		}
		fmt.Fprintf(deps.Stdout, "%s  %s  %s  %s\n",
			r.ExportedAt.Local().Format(time.DateTime), title, r.Folder, r.SourceURL)
	}
	return nil
}
