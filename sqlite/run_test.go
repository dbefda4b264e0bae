package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/connexin/atlascrape"
	"github.com/connexin/atlascrape/sqlite"
)

func TestCatalog_RecordRun(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	started := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("round trip", func(t *testing.T) {
		t.Parallel()

		catalog := sqlite.NewCatalog(mustOpenDB(t))

		run := &atlascrape.Run{
			ID:              "run-1",
			StartedAt:       started,
			FinishedAt:      started.Add(30 * time.Second),
			ConfluenceCount: 12,
			JiraCount:       40,
			Failed:          2,
		}
		require.NoError(t, catalog.RecordRun(ctx, run))

		runs, err := catalog.FindRuns(ctx)
		require.NoError(t, err)
		require.Len(t, runs, 1)
		assert.Equal(t, "run-1", runs[0].ID)
		assert.True(t, runs[0].StartedAt.Equal(started))
		assert.True(t, runs[0].FinishedAt.Equal(started.Add(30*time.Second)))
		assert.Equal(t, 12, runs[0].ConfluenceCount)
		assert.Equal(t, 40, runs[0].JiraCount)
		assert.Equal(t, 2, runs[0].Failed)
	})

	t.Run("newest first", func(t *testing.T) {
		t.Parallel()

		catalog := sqlite.NewCatalog(mustOpenDB(t))

		require.NoError(t, catalog.RecordRun(ctx, &atlascrape.Run{
			ID: "older", StartedAt: started, FinishedAt: started,
		}))
		require.NoError(t, catalog.RecordRun(ctx, &atlascrape.Run{
			ID: "newer", StartedAt: started.Add(time.Hour), FinishedAt: started.Add(time.Hour),
		}))

		runs, err := catalog.FindRuns(ctx)
		require.NoError(t, err)
		require.Len(t, runs, 2)
		assert.Equal(t, "newer", runs[0].ID)
		assert.Equal(t, "older", runs[1].ID)
	})

	t.Run("rejects run without ID", func(t *testing.T) {
		t.Parallel()

		catalog := sqlite.NewCatalog(mustOpenDB(t))

		err := catalog.RecordRun(ctx, &atlascrape.Run{StartedAt: started, FinishedAt: started})
		require.Error(t, err)
		assert.Equal(t, atlascrape.EINVALID, atlascrape.ErrorCode(err))
	})
}
