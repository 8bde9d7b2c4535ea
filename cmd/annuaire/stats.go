package main

import (
	"fmt"
	"sort"

	"github.com/lmertens/annuaire"
)

// Run executes the stats command.
func (c *StatsCmd) Run(deps *Dependencies) error {
	survey, err := findSurvey(deps, c.Name)
	if err != nil {
		return err
	}

	places, err := deps.Places.FindPlaces(deps.Ctx, annuaire.PlaceFilter{SurveyID: &survey.ID})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", annuaire.ErrorMessage(err))
		return err
	}

	if len(places) == 0 {
		fmt.Fprintf(deps.Stdout, "No places found for survey %q.\n", c.Name)
		return nil
	}

	byCategory := make(map[annuaire.Category]int)
	byCity := make(map[string]int)
	var certified, withContact int
	for _, p := range places {
		byCategory[p.Category]++
		if p.City != "" {
			byCity[p.City]++
		}
		if p.Certified {
			certified++
		}
		if p.Email != "" || p.Phone != "" {
			withContact++
		}
	}

	fmt.Fprintf(deps.Stdout, "%s: %d places (%d certified, %d with contact details)\n\n",
		survey.Name, len(places), certified, withContact)

	fmt.Fprintln(deps.Stdout, "By category:")
	for _, category := range []annuaire.Category{
		annuaire.CategoryProducer,
		annuaire.CategoryShop,
		annuaire.CategoryMarket,
		annuaire.CategoryUnknown,
	} {
		if byCategory[category] == 0 {
			continue
		}
		fmt.Fprintf(deps.Stdout, "  %-10s %d\n", category, byCategory[category])
	}

	cities := make([]string, 0, len(byCity))
	for city := range byCity {
		cities = append(cities, city)
	}
	sort.Strings(cities)

	fmt.Fprintln(deps.Stdout, "\nBy city:")
	for _, city := range cities {
		fmt.Fprintf(deps.Stdout, "  %-24s %d\n", city, byCity[city])
	}

	return nil
}
