package main

import (
	"fmt"

	"github.com/lmertens/annuaire"
)

// Run executes the classify command.
func (c *ClassifyCmd) Run(deps *Dependencies) error {
	survey, err := findSurvey(deps, c.Name)
	if err != nil {
		return err
	}

	unknown := annuaire.CategoryUnknown
	places, err := deps.Places.FindPlaces(deps.Ctx, annuaire.PlaceFilter{
		SurveyID: &survey.ID,
		Category: &unknown,
	})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", annuaire.ErrorMessage(err))
		return err
	}

	if len(places) == 0 {
		fmt.Fprintln(deps.Stdout, "No unclassified places in this survey.")
		return nil
	}

	categories, err := deps.Classifier.Classify(deps.Ctx, places)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error classifying: %v\n", err)
		return err
	}

	var classified int
	for _, p := range places {
		category, ok := categories[p.ID]
		if !ok || category == annuaire.CategoryUnknown {
			continue
		}
		if _, err := deps.Places.UpdatePlace(deps.Ctx, p.ID, annuaire.PlaceUpdate{Category: &category}); err != nil {
			fmt.Fprintf(deps.Stderr, "  skip %s: %s\n", p.Name, annuaire.ErrorMessage(err))
			continue
		}
		classified++
	}

	fmt.Fprintf(deps.Stdout, "Classified %d of %d places\n", classified, len(places))
	return nil
}
