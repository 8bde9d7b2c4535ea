package main

import (
	"fmt"

	"github.com/lmertens/annuaire"
)

// Run executes the delete command.
func (c *DeleteCmd) Run(deps *Dependencies) error {
	if !c.Force {
		fmt.Fprintf(deps.Stderr, "error: use --force to confirm deletion\n")
		return annuaire.Errorf(annuaire.EINVALID, "use --force to confirm deletion")
	}

	survey, err := findSurvey(deps, c.Name)
	if err != nil {
		return err
	}

	if err := deps.Surveys.DeleteSurvey(deps.Ctx, survey.ID); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", annuaire.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Deleted survey %q\n", survey.Name)
	return nil
}
