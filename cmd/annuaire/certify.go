package main

import (
	"fmt"
	"os"

	"github.com/lmertens/annuaire"
	"github.com/lmertens/annuaire/etree"
)

// Run executes the certify command.
func (c *CertifyCmd) Run(deps *Dependencies) error {
	survey, err := findSurvey(deps, c.Name)
	if err != nil {
		return err
	}

	f, err := os.Open(c.File)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: cannot open %s: %v\n", c.File, err)
		return err
	}
	defer f.Close()

	operators, err := etree.ParseOperators(f)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", annuaire.ErrorMessage(err))
		return err
	}

	index := annuaire.NewOperatorIndex(operators)
	fmt.Fprintf(deps.Stdout, "  Loaded %d registry operators\n", index.Len())

	places, err := deps.Places.FindPlaces(deps.Ctx, annuaire.PlaceFilter{SurveyID: &survey.ID})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", annuaire.ErrorMessage(err))
		return err
	}

	var flagged, already int
	for _, p := range places {
		op := index.Match(p)
		if op == nil {
			continue
		}
		if p.Certified {
			already++
			continue
		}
		certified := true
		if _, err := deps.Places.UpdatePlace(deps.Ctx, p.ID, annuaire.PlaceUpdate{Certified: &certified}); err != nil {
			fmt.Fprintf(deps.Stderr, "  skip %s: %s\n", p.Name, annuaire.ErrorMessage(err))
			continue
		}
		flagged++
	}

	fmt.Fprintf(deps.Stdout, "  Flagged %d of %d places as certified (%d already flagged)\n",
		flagged, len(places), already)
	return nil
}
