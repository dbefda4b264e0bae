package sqlite

import (
	"context"
	"time"

	"github.com/connexin/atlascrape"
)

// RecordRun persists a run record.
func (c *Catalog) RecordRun(ctx context.Context, run *atlascrape.Run) error {
	if err := run.Validate(); err != nil {
		return err
	}

	_, err := c.db.ExecContext(ctx, `
		INSERT INTO runs (id, started_at, finished_at, confluence_count, jira_count, failed)
		VALUES (?, ?, ?, ?, ?, ?)
	`, run.ID, run.StartedAt.Format(time.RFC3339Nano), run.FinishedAt.Format(time.RFC3339Nano),
		run.ConfluenceCount, run.JiraCount, run.Failed)

	return err
}

// FindRuns retrieves all recorded runs, newest first.
func (c *Catalog) FindRuns(ctx context.Context) ([]*atlascrape.Run, error) {
	rows, err := c.db.QueryContext(ctx, `
		SELECT id, started_at, finished_at, confluence_count, jira_count, failed
		FROM runs
		ORDER BY started_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []*atlascrape.Run
	for rows.Next() {
		var run atlascrape.Run
		var startedAt, finishedAt string

		if err := rows.Scan(&run.ID, &startedAt, &finishedAt,
			&run.ConfluenceCount, &run.JiraCount, &run.Failed); err != nil {
			return nil, err
		}

		if run.StartedAt, err = parseRFC3339(startedAt, "started_at"); err != nil {
			return nil, err
		}
		if run.FinishedAt, err = parseRFC3339(finishedAt, "finished_at"); err != nil {
			return nil, err
		}

		runs = append(runs, &run)
	}

	return runs, rows.Err()
}
