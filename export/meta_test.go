package export_test

import (
	"errors"
	"testing"
	"time"

	article "github.com/alfishe/article-exporter"
	"github.com/alfishe/article-exporter/export"
	"github.com/alfishe/article-exporter/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func metaFn(m *article.Meta, err error) *mock.MetaExtractor {
	return &mock.MetaExtractor{
		ExtractMetaFn: func(html, pageURL string) (*article.Meta, error) {
			return m, err
		},
	}
}

func TestMetaChain(t *testing.T) {
	t.Parallel()

	t.Run("later extractors fill only empty fields", func(t *testing.T) {
		t.Parallel()

		chain := export.MetaChain{
			metaFn(&article.Meta{Title: "First Title"}, nil),
			metaFn(&article.Meta{Title: "Second Title", Author: "Ann"}, nil),
		}

		m, err := chain.ExtractMeta("<html></html>", "https://example.com/a")

		require.NoError(t, err)
		assert.Equal(t, "https://example.com/a", m.URL)
		assert.Equal(t, "First Title", m.Title)
		assert.Equal(t, "Ann", m.Author)
	})

	t.Run("stops once complete", func(t *testing.T) {
		t.Parallel()

		published := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
		chain := export.MetaChain{
			metaFn(&article.Meta{Title: "T", Author: "A", PublishedAt: &published}, nil),
			&mock.MetaExtractor{
				ExtractMetaFn: func(html, pageURL string) (*article.Meta, error) {
					t.Error("should not run after metadata is complete")
					return nil, nil
				},
			},
		}

		m, err := chain.ExtractMeta("", "https://example.com/a")

		require.NoError(t, err)
		assert.True(t, m.Complete())
	})

	t.Run("ignores failing extractor", func(t *testing.T) {
		t.Parallel()

		chain := export.MetaChain{
			metaFn(nil, errors.New("no metadata")),
			metaFn(&article.Meta{Author: "Bob"}, nil),
		}

		m, err := chain.ExtractMeta("", "https://example.com/a")

		require.NoError(t, err)
		assert.Equal(t, "Bob", m.Author)
	})

	t.Run("returns error when every extractor fails", func(t *testing.T) {
		t.Parallel()

		chain := export.MetaChain{
			metaFn(nil, errors.New("first")),
			metaFn(nil, errors.New("second")),
		}

		m, err := chain.ExtractMeta("", "https://example.com/a")

		require.EqualError(t, err, "first")
		assert.Equal(t, "https://example.com/a", m.URL)
	})
}
