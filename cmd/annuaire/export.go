package main

import (
	"fmt"

	"github.com/lmertens/annuaire"
	"github.com/lmertens/annuaire/csv"
	"github.com/lmertens/annuaire/scrape"
)

// Run executes the export command.
func (c *ExportCmd) Run(deps *Dependencies) error {
	survey, err := findSurvey(deps, c.Name)
	if err != nil {
		return err
	}

	places, err := deps.Places.FindPlaces(deps.Ctx, annuaire.PlaceFilter{SurveyID: &survey.ID})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", annuaire.ErrorMessage(err))
		return err
	}

	exporter := csv.NewExporter(c.Output, c.Full)
	for _, p := range places {
		if err := exporter.Save(deps.Ctx, p); err != nil {
			_ = exporter.Abort()
			fmt.Fprintf(deps.Stderr, "error writing %s: %v\n", c.Output, err)
			return err
		}
	}
	if err := exporter.Commit(); err != nil {
		_ = exporter.Abort()
		fmt.Fprintf(deps.Stderr, "error writing %s: %v\n", c.Output, err)
		return err
	}

	fmt.Fprintf(deps.Stdout, "Exported %s to %s\n", scrape.FormatCount(len(places)), c.Output)
	return nil
}
