package main

import (
	"fmt"

	"github.com/lmertens/annuaire"
)

// Run executes the surveys command.
func (c *SurveysCmd) Run(deps *Dependencies) error {
	surveys, err := deps.Surveys.FindSurveys(deps.Ctx, annuaire.SurveyFilter{})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", annuaire.ErrorMessage(err))
		return err
	}

	if len(surveys) == 0 {
		fmt.Fprintln(deps.Stdout, "No surveys found. Use 'annuaire scrape' to create one.")
		return nil
	}

	for _, s := range surveys {
		fmt.Fprintf(deps.Stdout, "%s  %s  %s  (%d cities, %d keywords)\n",
			s.ID, s.Name, s.Category, len(s.CityList()), len(s.KeywordList()))
	}

	return nil
}

// findSurvey resolves a survey by name, with a user-facing error when it
// does not exist.
func findSurvey(deps *Dependencies, name string) (*annuaire.Survey, error) {
	surveys, err := deps.Surveys.FindSurveys(deps.Ctx, annuaire.SurveyFilter{Name: &name})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", annuaire.ErrorMessage(err))
		return nil, err
	}
	if len(surveys) == 0 {
		fmt.Fprintf(deps.Stderr, "error: survey %q not found. Use 'annuaire surveys' to see available surveys.\n", name)
		return nil, annuaire.Errorf(annuaire.ENOTFOUND, "survey %q not found", name)
	}
	return surveys[0], nil
}
