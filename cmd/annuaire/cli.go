package main

import (
	"context"
	"io"

	"github.com/lmertens/annuaire"
	"github.com/lmertens/annuaire/scrape"
	"github.com/lmertens/annuaire/sqlite"
	"github.com/lmertens/annuaire/yaml"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx        context.Context
	Stdout     io.Writer
	Stderr     io.Writer
	DB         *sqlite.DB
	Config     *yaml.Config
	Surveys    annuaire.SurveyService
	Places     annuaire.PlaceService
	Scraper    *scrape.Scraper
	Enricher   *scrape.Enricher
	Classifier annuaire.Classifier
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool `short:"v" help:"Enable debug logging to stderr"`

	Scrape   ScrapeCmd   `cmd:"" help:"Create a survey and scrape places for it"`
	Surveys  SurveysCmd  `cmd:"" help:"List all surveys"`
	Places   PlacesCmd   `cmd:"" help:"List places of a survey"`
	Export   ExportCmd   `cmd:"" help:"Export a survey's places to CSV"`
	Import   ImportCmd   `cmd:"" help:"Import places from a CSV into a survey"`
	Certify  CertifyCmd  `cmd:"" help:"Flag places found in a certified-operator registry"`
	Enrich   EnrichCmd   `cmd:"" help:"Extract contact details from place websites"`
	Classify ClassifyCmd `cmd:"" help:"Categorize unclassified places with Gemini"`
	Delete   DeleteCmd   `cmd:"" help:"Delete a survey and its places"`
	Stats    StatsCmd    `cmd:"" help:"Show per-category and per-city counts for a survey"`
}

// ScrapeCmd is the "scrape" subcommand.
type ScrapeCmd struct {
	Name         string   `arg:"" help:"Survey name"`
	CitiesFile   string   `help:"File with one city per line"`
	KeywordsFile string   `help:"File with one search keyword per line"`
	City         []string `help:"City to query (repeatable)"`
	Keyword      []string `short:"k" help:"Search keyword (repeatable)"`
	Category     string   `short:"c" default:"producer" enum:"producer,shop,market,unknown" help:"Ruleset category"`
	Concurrency  int      `help:"Concurrent query limit (default from config)"`
	Update       bool     `short:"u" help:"Re-scrape an existing survey, refreshing changed places"`
	Force        bool     `short:"f" help:"Delete an existing survey with the same name first"`
}

// SurveysCmd is the "surveys" subcommand.
type SurveysCmd struct{}

// PlacesCmd is the "places" subcommand.
type PlacesCmd struct {
	Name      string `arg:"" help:"Survey name"`
	Category  string `short:"c" help:"Filter by category"`
	City      string `help:"Filter by city"`
	Certified bool   `help:"Only certified places"`
	Full      bool   `help:"Show full place details"`
}

// ExportCmd is the "export" subcommand.
type ExportCmd struct {
	Name   string `arg:"" help:"Survey name"`
	Output string `short:"o" required:"" help:"Destination CSV file"`
	Full   bool   `help:"Include contact, category and certification columns"`
}

// ImportCmd is the "import" subcommand.
type ImportCmd struct {
	Name string `arg:"" help:"Survey name (created if missing)"`
	File string `arg:"" help:"CSV file to import"`
}

// CertifyCmd is the "certify" subcommand.
type CertifyCmd struct {
	Name string `arg:"" help:"Survey name"`
	File string `arg:"" help:"Operator registry XML file"`
}

// EnrichCmd is the "enrich" subcommand.
type EnrichCmd struct {
	Name        string `arg:"" help:"Survey name"`
	Browser     bool   `short:"b" help:"Render websites in a headless browser"`
	Concurrency int    `help:"Concurrent fetch limit (default from config)"`
}

// ClassifyCmd is the "classify" subcommand.
type ClassifyCmd struct {
	Name string `arg:"" help:"Survey name"`
}

// DeleteCmd is the "delete" subcommand.
type DeleteCmd struct {
	Name  string `arg:"" help:"Survey name"`
	Force bool   `help:"Confirm deletion"`
}

// StatsCmd is the "stats" subcommand.
type StatsCmd struct {
	Name string `arg:"" help:"Survey name"`
}
