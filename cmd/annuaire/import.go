package main

import (
	"fmt"
	"os"

	"github.com/lmertens/annuaire"
	"github.com/lmertens/annuaire/csv"
	"github.com/lmertens/annuaire/scrape"
)

// Run executes the import command.
func (c *ImportCmd) Run(deps *Dependencies) error {
	f, err := os.Open(c.File)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: cannot open %s: %v\n", c.File, err)
		return err
	}
	defer f.Close()

	places, err := csv.ReadPlaces(f)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", annuaire.ErrorMessage(err))
		return err
	}

	survey, err := c.findOrCreateSurvey(deps)
	if err != nil {
		return err
	}

	var imported, skipped, failed int
	for _, p := range places {
		p.SurveyID = survey.ID
		if p.PlaceRef == "" {
			// Rows exported without a place_ref dedupe on what identifies
			// them to a human: name and address.
			p.PlaceRef = "fp:" + scrape.Fingerprint(p.Name, p.Address, 0, 0)
		}
		if p.MapsURL == "" && !isFingerprintRef(p.PlaceRef) {
			p.MapsURL = annuaire.BuildMapsURL(p.PlaceRef)
		}

		err := deps.Places.CreatePlace(deps.Ctx, p)
		switch {
		case err == nil:
			imported++
		case annuaire.ErrorCode(err) == annuaire.ECONFLICT:
			skipped++
		default:
			failed++
			fmt.Fprintf(deps.Stderr, "  skip %s: %s\n", p.Name, annuaire.ErrorMessage(err))
		}
	}

	fmt.Fprintf(deps.Stdout, "Imported %s into %q (%d duplicates skipped, %d failed)\n",
		scrape.FormatCount(imported), c.Name, skipped, failed)
	return nil
}

func (c *ImportCmd) findOrCreateSurvey(deps *Dependencies) (*annuaire.Survey, error) {
	surveys, err := deps.Surveys.FindSurveys(deps.Ctx, annuaire.SurveyFilter{Name: &c.Name})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", annuaire.ErrorMessage(err))
		return nil, err
	}
	if len(surveys) > 0 {
		return surveys[0], nil
	}

	survey := &annuaire.Survey{
		Name:     c.Name,
		Keywords: "imported",
	}
	if err := deps.Surveys.CreateSurvey(deps.Ctx, survey); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", annuaire.ErrorMessage(err))
		return nil, err
	}
	fmt.Fprintf(deps.Stdout, "Created survey %q (%s)\n", c.Name, survey.ID)
	return survey, nil
}

func isFingerprintRef(ref string) bool {
	return len(ref) > 3 && ref[:3] == "fp:"
}
