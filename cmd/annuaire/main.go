package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/lmertens/annuaire"
	"github.com/lmertens/annuaire/gemini"
	"github.com/lmertens/annuaire/googleplaces"
	"github.com/lmertens/annuaire/goquery"
	annuairehttp "github.com/lmertens/annuaire/http"
	"github.com/lmertens/annuaire/rod"
	"github.com/lmertens/annuaire/scrape"
	annuaireslog "github.com/lmertens/annuaire/slog"
	"github.com/lmertens/annuaire/sqlite"
	"github.com/lmertens/annuaire/yaml"
	"google.golang.org/genai"
)

func main() {
	ctx := context.Background()

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

	// Config file path. Set before calling Run().
	ConfigPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Services for end-to-end testing.
	SurveyService annuaire.SurveyService
	PlaceService  annuaire.PlaceService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath:     defaultDBPath(),
		ConfigPath: defaultConfigPath(),
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
	// Initialize dependencies struct for Kong binding
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	// Create Kong parser with dependency binding
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("annuaire"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	// Handle help flags using Kong
	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'annuaire --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	// Parse arguments first to know which command and its flags
	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	// Load tuning config (missing file yields defaults)
	cfg, err := yaml.Load(m.ConfigPath)
	if err != nil {
		return err
	}
	deps.Config = cfg

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	if cli.Verbose {
		logger = slog.New(slog.NewTextHandler(stderr, nil))
	}

	// Open database
	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set ANNUAIRE_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	defer m.Close()

	// Wire core services into dependencies
	m.SurveyService = sqlite.NewSurveyService(m.DB)
	m.PlaceService = sqlite.NewPlaceService(m.DB)
	deps.DB = m.DB
	deps.Surveys = m.SurveyService
	deps.Places = m.PlaceService

	// Wire command-specific dependencies based on command
	if cmd == "scrape" {
		apiKey := os.Getenv("GOOGLE_API_KEY")
		if apiKey == "" {
			fmt.Fprintln(stderr, "GOOGLE_API_KEY environment variable not set. Get an API key in the Google Cloud console")
			return fmt.Errorf("GOOGLE_API_KEY not set")
		}

		var searcher annuaire.PlaceSearcher = googleplaces.NewSearcher(apiKey,
			googleplaces.WithPageTokenDelay(cfg.PageTokenDelay()))
		if cli.Verbose {
			searcher = annuaireslog.NewLoggingPlaceSearcher(searcher, logger)
		}

		concurrency := cli.Scrape.Concurrency
		if concurrency <= 0 {
			concurrency = cfg.Concurrency
		}

		deps.Scraper = &scrape.Scraper{
			Searcher:    searcher,
			Places:      m.PlaceService,
			RateLimiter: scrape.NewHostLimiter(cfg.QPS),
			Ruleset:     cfg.RulesetFor(annuaire.Category(cli.Scrape.Category)),
			Concurrency: concurrency,
		}
	}

	if cmd == "enrich" {
		var fetcher annuaire.Fetcher
		if cli.Enrich.Browser {
			f, err := rod.NewFetcher()
			if err != nil {
				fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed")
				return fmt.Errorf("failed to start browser: %w", err)
			}
			fetcher = f
		} else {
			fetcher = annuairehttp.NewFetcher()
		}
		defer fetcher.Close()

		if cli.Verbose {
			fetcher = annuaireslog.NewLoggingFetcher(fetcher, logger)
		}

		concurrency := cli.Enrich.Concurrency
		if concurrency <= 0 {
			concurrency = cfg.Concurrency
		}

		deps.Enricher = &scrape.Enricher{
			Places:      m.PlaceService,
			Fetcher:     fetcher,
			Contacts:    goquery.NewContactExtractor(),
			RateLimiter: scrape.NewHostLimiter(cfg.QPS),
			Concurrency: concurrency,
		}
	}

	if cmd == "classify" {
		apiKey := os.Getenv("GEMINI_API_KEY")
		if apiKey == "" {
			fmt.Fprintln(stderr, "GEMINI_API_KEY environment variable not set. Get an API key at https://aistudio.google.com/apikey")
			return fmt.Errorf("GEMINI_API_KEY not set. Get a key at https://aistudio.google.com/apikey")
		}

		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  apiKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Check your GEMINI_API_KEY is valid")
			return fmt.Errorf("failed to connect to Gemini API: %w", err)
		}

		deps.Classifier = gemini.NewClassifier(client)
	}

	return kongCtx.Run(deps)
}

func defaultDBPath() string {
	if path := os.Getenv("ANNUAIRE_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "annuaire.db"
	}
	dir := filepath.Join(home, ".annuaire")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "annuaire.db")
}

func defaultConfigPath() string {
	if path := os.Getenv("ANNUAIRE_CONFIG"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.yaml"
	}
	return filepath.Join(home, ".annuaire", "config.yaml")
}
