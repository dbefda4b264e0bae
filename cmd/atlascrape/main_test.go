package main_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/connexin/atlascrape"
	main "github.com/connexin/atlascrape/cmd/atlascrape"
	"github.com/connexin/atlascrape/fs"
)

// testContext returns a background context for tests.
func testContext() context.Context {
	return context.Background()
}

func newTestMain(t *testing.T) *main.Main {
	t.Helper()

	m := main.NewMain()
	m.DBPath = filepath.Join(t.TempDir(), "test.db")
	return m
}

func TestRun_HelpFlag(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		args []string
	}{
		{"--help flag", []string{"--help"}},
		{"-h flag", []string{"-h"}},
		{"help command", []string{"help"}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			m := newTestMain(t)
			stdout := &bytes.Buffer{}
			stderr := &bytes.Buffer{}

			err := m.Run(testContext(), tt.args, stdout, stderr)

			require.NoError(t, err)
			assert.Contains(t, stdout.String(), "Usage: atlascrape")
			assert.Contains(t, stdout.String(), "Commands:")
			assert.Empty(t, stderr.String())
		})
	}
}

func TestRun_NoArgs(t *testing.T) {
	t.Parallel()

	m := newTestMain(t)
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	err := m.Run(testContext(), []string{}, stdout, stderr)

	require.Error(t, err)
	assert.Contains(t, stdout.String(), "Usage: atlascrape")
}

func TestRun_HelpWithoutCreatingDB(t *testing.T) {
	t.Parallel()

	dbPath := filepath.Join(t.TempDir(), "should-not-exist.db")
	m := main.NewMain()
	m.DBPath = dbPath

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	err := m.Run(testContext(), []string{"--help"}, stdout, stderr)

	require.NoError(t, err)
	_, statErr := os.Stat(dbPath)
	assert.True(t, os.IsNotExist(statErr), "database file should not be created for --help")
}

// confluenceHandler serves a two page hierarchy: root 100 with child 101.
func confluenceHandler(t *testing.T) http.Handler {
	t.Helper()

	mux := http.NewServeMux()
	page := func(id, title, body string, children ...string) {
		mux.HandleFunc("/wiki/rest/api/content/"+id, func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]any{
				"id":    id,
				"title": title,
				"body":  map[string]any{"storage": map[string]any{"value": body}},
				"space": map[string]any{"key": "OPS"},
			})
		})
		mux.HandleFunc("/wiki/rest/api/content/"+id+"/child/page", func(w http.ResponseWriter, r *http.Request) {
			results := make([]map[string]any, 0, len(children))
			for _, child := range children {
				results = append(results, map[string]any{"id": child})
			}
			json.NewEncoder(w).Encode(map[string]any{
				"results": results,
				"size":    len(results),
			})
		})
	}
	page("100", "Network Runbook", "<p>Reset the router first.</p>", "101")
	page("101", "Escalation", "<p>Call the on-call engineer.</p>")
	return mux
}

// jiraHandler serves a single issue search result.
func jiraHandler(t *testing.T) http.Handler {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/rest/api/2/search", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"startAt":    0,
			"maxResults": 50,
			"total":      1,
			"issues": []map[string]any{{
				"key": "OPS-1",
				"fields": map[string]any{
					"summary":     "Router keeps rebooting",
					"description": "Observed three reboots overnight.",
					"issuetype":   map[string]any{"name": "Bug"},
					"status":      map[string]any{"name": "Open"},
					"project":     map[string]any{"key": "OPS"},
				},
			}},
		})
	})
	return mux
}

func TestRun_ScrapeSearchRuns(t *testing.T) {
	t.Parallel()

	confluence := httptest.NewServer(confluenceHandler(t))
	defer confluence.Close()
	jira := httptest.NewServer(jiraHandler(t))
	defer jira.Close()

	outputDir := t.TempDir()
	dbPath := filepath.Join(t.TempDir(), "test.db")

	scrapeArgs := []string{
		"scrape",
		"--confluence-url", confluence.URL,
		"--confluence-username", "user@example.com",
		"--confluence-api-key", "token",
		"--confluence-page-id", "100",
		"--jira-url", jira.URL,
		"--jira-username", "user@example.com",
		"--jira-api-key", "token",
		"--jql", "project = OPS",
		"--output-dir", outputDir,
		"--rate-limit", "1000",
	}

	m := main.NewMain()
	m.DBPath = dbPath
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	require.NoError(t, m.Run(testContext(), scrapeArgs, stdout, stderr))
	assert.Contains(t, stdout.String(), "Scraped 2 Confluence pages and 1 Jira issues")

	// All three artifacts exist and the merged one has both sources.
	merged, err := fs.ReadDocuments(filepath.Join(outputDir, atlascrape.ArtifactMerged))
	require.NoError(t, err)
	require.Len(t, merged, 3)
	_, err = os.Stat(filepath.Join(outputDir, atlascrape.ArtifactConfluence))
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(outputDir, atlascrape.ArtifactJira))
	require.NoError(t, err)

	t.Run("search finds scraped documents", func(t *testing.T) {
		m := main.NewMain()
		m.DBPath = dbPath
		stdout := &bytes.Buffer{}

		err := m.Run(testContext(), []string{"search", "router", "--output-dir", outputDir}, stdout, &bytes.Buffer{})

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "2 documents match")
		assert.Contains(t, stdout.String(), "OPS-1: Router keeps rebooting")
		assert.Contains(t, stdout.String(), "Network Runbook")
	})

	t.Run("runs lists the recorded run", func(t *testing.T) {
		m := main.NewMain()
		m.DBPath = dbPath
		stdout := &bytes.Buffer{}

		err := m.Run(testContext(), []string{"runs"}, stdout, &bytes.Buffer{})

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "confluence=2 jira=1 failed=0")
	})
}

func TestRun_ScrapeRequiresSource(t *testing.T) {
	t.Parallel()

	m := newTestMain(t)
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	err := m.Run(testContext(), []string{"scrape", "--output-dir", t.TempDir()}, stdout, stderr)

	require.Error(t, err)
	assert.Equal(t, atlascrape.EINVALID, atlascrape.ErrorCode(err))
}

func TestRun_SearchWithoutArtifacts(t *testing.T) {
	t.Parallel()

	m := newTestMain(t)
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	err := m.Run(testContext(), []string{"search", "anything", "--output-dir", t.TempDir()}, stdout, stderr)

	require.Error(t, err)
	assert.Equal(t, atlascrape.ENOTFOUND, atlascrape.ErrorCode(err))
	assert.Contains(t, stderr.String(), "Run 'atlascrape scrape' first")
}

func TestRun_RunsEmpty(t *testing.T) {
	t.Parallel()

	m := newTestMain(t)
	stdout := &bytes.Buffer{}

	err := m.Run(testContext(), []string{"runs"}, stdout, &bytes.Buffer{})

	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "No runs recorded")
}
