package atlascrape_test

import (
	"testing"
	"time"

	"github.com/connexin/atlascrape"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearch(t *testing.T) {
	t.Parallel()

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("is case-insensitive", func(t *testing.T) {
		t.Parallel()

		docs := []*atlascrape.Document{
			{ID: "1", SourceType: atlascrape.SourceConfluence, Content: "migrated from confluence last year"},
		}

		got := atlascrape.Search(docs, "CONFLUENCE")
		require.Len(t, got, 1)
		assert.Equal(t, "1", got[0].ID)
	})

	t.Run("title matches rank above content-only matches", func(t *testing.T) {
		t.Parallel()

		docs := []*atlascrape.Document{
			{ID: "content", SourceType: atlascrape.SourceJira, Title: "Unrelated", Content: "mentions salesforce once", IndexedAt: base.Add(time.Hour)},
			{ID: "title", SourceType: atlascrape.SourceConfluence, Title: "Salesforce Migration", Content: "", IndexedAt: base},
		}

		got := atlascrape.Search(docs, "salesforce")
		require.Len(t, got, 2)
		assert.Equal(t, "title", got[0].ID)
		assert.Equal(t, "content", got[1].ID)
	})

	t.Run("ties broken by indexed_at descending", func(t *testing.T) {
		t.Parallel()

		docs := []*atlascrape.Document{
			{ID: "older", SourceType: atlascrape.SourceJira, Title: "OLT rollout", IndexedAt: base},
			{ID: "newer", SourceType: atlascrape.SourceJira, Title: "OLT upgrade", IndexedAt: base.Add(time.Hour)},
		}

		got := atlascrape.Search(docs, "olt")
		require.Len(t, got, 2)
		assert.Equal(t, "newer", got[0].ID)
		assert.Equal(t, "older", got[1].ID)
	})

	t.Run("returns nothing when no document matches", func(t *testing.T) {
		t.Parallel()

		docs := []*atlascrape.Document{
			{ID: "1", SourceType: atlascrape.SourceConfluence, Title: "A", Content: "B"},
		}

		assert.Empty(t, atlascrape.Search(docs, "zzz"))
	})
}
