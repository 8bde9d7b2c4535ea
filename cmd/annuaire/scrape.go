package main

import (
	"fmt"
	"strings"

	"github.com/lmertens/annuaire"
	"github.com/lmertens/annuaire/fs"
	"github.com/lmertens/annuaire/scrape"
)

// Run executes the scrape command.
func (c *ScrapeCmd) Run(deps *Dependencies) error {
	cities, keywords, err := c.loadLists()
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", annuaire.ErrorMessage(err))
		return err
	}
	if len(keywords) == 0 {
		fmt.Fprintf(deps.Stderr, "error: no keywords given. Use --keyword or --keywords-file.\n")
		return annuaire.Errorf(annuaire.EINVALID, "no keywords given")
	}

	survey, err := c.resolveSurvey(deps, cities, keywords)
	if err != nil {
		return err
	}

	progress := func(event scrape.ProgressEvent) {
		switch event.Type {
		case scrape.ProgressStarted:
			fmt.Fprintf(deps.Stdout, "  Running %d queries\n", event.Total)
		case scrape.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "  skip %s: %v\n", scrape.Truncate(event.Query, 60), event.Error)
		case scrape.ProgressFinished:
			// Summary printed after the scrape completes
		}
	}

	result, err := deps.Scraper.ScrapeSurvey(deps.Ctx, survey, progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error scraping: %v\n", err)
		return err
	}

	fmt.Fprintf(deps.Stdout, "  Saved %s (%d updated, %d duplicates, %d excluded, %d failed)\n",
		scrape.FormatCount(result.Saved), result.Updated, result.Duplicates, result.Excluded, result.Failed)

	return nil
}

// loadLists merges list files and repeated flags into the city and keyword
// sets for the survey.
func (c *ScrapeCmd) loadLists() (cities, keywords []string, err error) {
	cities = append(cities, c.City...)
	if c.CitiesFile != "" {
		fromFile, err := fs.ReadList(c.CitiesFile)
		if err != nil {
			return nil, nil, err
		}
		cities = append(cities, fromFile...)
	}

	keywords = append(keywords, c.Keyword...)
	if c.KeywordsFile != "" {
		fromFile, err := fs.ReadList(c.KeywordsFile)
		if err != nil {
			return nil, nil, err
		}
		keywords = append(keywords, fromFile...)
	}

	return cities, keywords, nil
}

// resolveSurvey finds or creates the survey to scrape into. An existing
// survey is an error unless --update reuses it or --force replaces it.
func (c *ScrapeCmd) resolveSurvey(deps *Dependencies, cities, keywords []string) (*annuaire.Survey, error) {
	existing, err := deps.Surveys.FindSurveys(deps.Ctx, annuaire.SurveyFilter{Name: &c.Name})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", annuaire.ErrorMessage(err))
		return nil, err
	}

	if len(existing) > 0 {
		if c.Update {
			fmt.Fprintf(deps.Stdout, "Updating survey %q\n", c.Name)
			return existing[0], nil
		}
		if !c.Force {
			fmt.Fprintf(deps.Stderr, "error: survey %q already exists. Use --update to re-scrape it or --force to replace it.\n", c.Name)
			return nil, annuaire.Errorf(annuaire.ECONFLICT, "survey %q already exists", c.Name)
		}
		if err := deps.Surveys.DeleteSurvey(deps.Ctx, existing[0].ID); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", annuaire.ErrorMessage(err))
			return nil, err
		}
	}

	survey := &annuaire.Survey{
		Name:     c.Name,
		Category: annuaire.Category(c.Category),
		Cities:   strings.Join(cities, "\n"),
		Keywords: strings.Join(keywords, "\n"),
	}
	if err := deps.Surveys.CreateSurvey(deps.Ctx, survey); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", annuaire.ErrorMessage(err))
		return nil, err
	}

	fmt.Fprintf(deps.Stdout, "Created survey %q (%s)\n", c.Name, survey.ID)
	return survey, nil
}
