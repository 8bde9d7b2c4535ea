package main

import (
	"fmt"

	"github.com/lmertens/annuaire/scrape"
)

// Run executes the enrich command.
func (c *EnrichCmd) Run(deps *Dependencies) error {
	survey, err := findSurvey(deps, c.Name)
	if err != nil {
		return err
	}

	progress := func(event scrape.ProgressEvent) {
		switch event.Type {
		case scrape.ProgressStarted:
			fmt.Fprintf(deps.Stdout, "  Fetching %d websites\n", event.Total)
		case scrape.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "  skip %s: %v\n", scrape.Truncate(event.Query, 60), event.Error)
		}
	}

	result, err := deps.Enricher.EnrichSurvey(deps.Ctx, survey.ID, progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error enriching: %v\n", err)
		return err
	}

	if result.Eligible == 0 {
		fmt.Fprintln(deps.Stdout, "No places with a website left to enrich.")
		return nil
	}

	fmt.Fprintf(deps.Stdout, "  Enriched %d of %d places (%d without contact details, %d failed)\n",
		result.Enriched, result.Eligible, result.Empty, result.Failed)
	return nil
}
