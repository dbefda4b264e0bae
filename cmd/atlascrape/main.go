package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"

	"github.com/connexin/atlascrape"
	"github.com/connexin/atlascrape/fs"
	"github.com/connexin/atlascrape/goquery"
	atlashttp "github.com/connexin/atlascrape/http"
	"github.com/connexin/atlascrape/scrape"
	atlaslog "github.com/connexin/atlascrape/slog"
	"github.com/connexin/atlascrape/sqlite"
)

func main() {
	// Credentials are conventionally kept in a .env file next to the
	// binary; a missing file is fine.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// SQLite database backing the catalog.
	DB *sqlite.DB

	// Catalog for end-to-end testing.
	Catalog atlascrape.Catalog
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
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
	logger := slog.New(slog.NewTextHandler(stderr, nil))

	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
		Logger: logger,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("atlascrape"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'atlascrape --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	// Open database
	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set ATLASCRAPE_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	defer m.Close()

	m.Catalog = sqlite.NewCatalog(m.DB)
	deps.DB = m.DB
	deps.Catalog = m.Catalog

	if cmd == "scrape" {
		scraper, err := buildScraper(&cli.Scrape, m.Catalog, logger)
		if err != nil {
			return err
		}
		deps.Scraper = scraper
	}

	return kongCtx.Run(deps)
}

// buildScraper wires the HTTP services for the sources the scrape
// command will actually use, validating their credentials up front.
func buildScraper(c *ScrapeCmd, catalog atlascrape.Catalog, logger *slog.Logger) (*scrape.Scraper, error) {
	if !c.confluenceActive() && !c.jiraActive() {
		return nil, atlascrape.Errorf(atlascrape.EINVALID,
			"nothing to scrape: provide a Confluence page ID or a Jira query")
	}

	s := &scrape.Scraper{
		Writer:  atlaslog.NewLoggingArtifactWriter(fs.NewWriter(c.OutputDir), logger),
		Catalog: catalog,
	}

	if c.confluenceActive() {
		cfg := atlashttp.Config{
			BaseURL:  c.ConfluenceURL,
			Username: c.ConfluenceUsername,
			APIKey:   c.ConfluenceAPIKey,
		}
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("confluence: %w", err)
		}
		service := atlashttp.NewConfluenceService(cfg, atlashttp.WithRateLimit(c.RateLimit))
		s.Pages = atlaslog.NewLoggingPageSource(service, logger)
		s.Extractor = goquery.NewExtractor()
		s.ConfluenceBaseURL = c.ConfluenceURL
	}

	if c.jiraActive() {
		cfg := atlashttp.Config{
			BaseURL:  c.JiraURL,
			Username: c.JiraUsername,
			APIKey:   c.JiraAPIKey,
		}
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("jira: %w", err)
		}
		service := atlashttp.NewJiraService(cfg, atlashttp.WithRateLimit(c.RateLimit))
		s.Issues = atlaslog.NewLoggingIssueSource(service, logger)
		s.JiraBaseURL = c.JiraURL
	}

	return s, nil
}

func defaultDBPath() string {
	if path := os.Getenv("ATLASCRAPE_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "atlascrape.db"
	}
	dir := filepath.Join(home, ".atlascrape")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "atlascrape.db")
}
