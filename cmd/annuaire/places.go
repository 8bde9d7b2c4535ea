package main

import (
	"fmt"

	"github.com/lmertens/annuaire"
)

// Run executes the places command.
func (c *PlacesCmd) Run(deps *Dependencies) error {
	survey, err := findSurvey(deps, c.Name)
	if err != nil {
		return err
	}

	filter := annuaire.PlaceFilter{SurveyID: &survey.ID}
	if c.Category != "" {
		category := annuaire.Category(c.Category)
		filter.Category = &category
	}
	if c.City != "" {
		filter.City = &c.City
	}
	if c.Certified {
		certified := true
		filter.Certified = &certified
	}

	places, err := deps.Places.FindPlaces(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", annuaire.ErrorMessage(err))
		return err
	}

	if len(places) == 0 {
		fmt.Fprintf(deps.Stdout, "No places found for survey %q.\n", c.Name)
		return nil
	}

	if c.Full {
		fmt.Fprintln(deps.Stdout, annuaire.FormatPlaces(places))
		return nil
	}

	fmt.Fprintf(deps.Stdout, "Places for %s (%d total):\n\n", c.Name, len(places))
	for i, p := range places {
		marker := ""
		if p.Certified {
			marker = "  [bio]"
		}
		fmt.Fprintf(deps.Stdout, "  %d. %s (%s)%s\n     %s\n", i+1, p.Name, p.Category, marker, p.Address)
	}

	return nil
}
