package annuaire

import "strings"

// Ruleset decides whether a search candidate belongs in the catalog.
// A candidate is excluded first (type or name blocklist), then must match
// an include rule: either one of the include types or a name keyword.
// An empty include set accepts every non-excluded candidate.
type Ruleset struct {
	Category Category

	// IncludeTypes accepts candidates carrying any of these upstream types.
	IncludeTypes []string

	// IncludeNameKeywords accepts candidates whose name contains any of
	// these substrings (case-insensitive). The matched keyword is recorded
	// on the place.
	IncludeNameKeywords []string

	// ExcludeTypes rejects candidates carrying any of these types,
	// regardless of include rules.
	ExcludeTypes []string

	// ExcludeNameKeywords rejects candidates whose name contains any of
	// these substrings (case-insensitive).
	ExcludeNameKeywords []string
}

// Match reports whether the candidate passes the ruleset. When the match
// comes from a name keyword, that keyword is returned; type matches return
// the matching type.
func (r *Ruleset) Match(c Candidate) (matched string, ok bool) {
	if r == nil {
		return "", true
	}

	name := strings.ToLower(c.Name)

	for _, kw := range r.ExcludeNameKeywords {
		if strings.Contains(name, strings.ToLower(kw)) {
			return "", false
		}
	}
	for _, t := range c.Types {
		for _, excl := range r.ExcludeTypes {
			if t == excl {
				return "", false
			}
		}
	}

	if len(r.IncludeTypes) == 0 && len(r.IncludeNameKeywords) == 0 {
		return "", true
	}

	for _, t := range c.Types {
		for _, incl := range r.IncludeTypes {
			if t == incl {
				return t, true
			}
		}
	}
	for _, kw := range r.IncludeNameKeywords {
		if strings.Contains(name, strings.ToLower(kw)) {
			return kw, true
		}
	}

	return "", false
}

// DefaultExclusions are types and name words that consistently produce
// false positives in francophone queries ("marché" also matches tribunals
// via "palais de justice" listings).
func DefaultExclusions() (types, nameKeywords []string) {
	return []string{"courthouse", "local_government_office"},
		[]string{"tribunal", "palais"}
}

// RulesetFor returns the built-in ruleset for a category. CategoryUnknown
// (and any unrecognized value) yields a ruleset with exclusions only.
func RulesetFor(category Category) *Ruleset {
	exclTypes, exclNames := DefaultExclusions()
	r := &Ruleset{
		Category:            category,
		ExcludeTypes:        exclTypes,
		ExcludeNameKeywords: exclNames,
	}

	switch category {
	case CategoryProducer:
		r.IncludeTypes = []string{"farm", "farmers_market"}
		r.IncludeNameKeywords = []string{
			"maraicher", "maraîcher",
			"miellerie",
			"apiculteur",
			"élevage",
			"fermier",
			"volaille",
			"marché fermier",
			"producteur",
			"ferme",
		}
	case CategoryShop:
		r.IncludeTypes = []string{"grocery_or_supermarket", "store", "food", "health"}
		r.IncludeNameKeywords = []string{"bio", "vrac", "épicerie", "magasin"}
	case CategoryMarket:
		r.IncludeTypes = []string{"farmers_market", "market"}
		r.IncludeNameKeywords = []string{"marché", "halle"}
	}

	return r
}
