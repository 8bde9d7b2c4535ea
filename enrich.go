package annuaire

import "context"

// Contact holds details extracted from a place's own website.
type Contact struct {
	Email string
	Phone string
}

// Empty returns true if no contact detail was found.
func (c *Contact) Empty() bool {
	return c == nil || (c.Email == "" && c.Phone == "")
}

// Enricher extracts contact details from a place's website HTML.
type Enricher interface {
	// Enrich parses the HTML document and returns any contact details
	// found. baseURL is the URL the document was fetched from, used to
	// resolve relative links. A page with no contact details returns an
	// empty Contact, not an error.
	Enrich(html string, baseURL string) (*Contact, error)
}

// Classifier assigns categories to places that no ruleset matched.
type Classifier interface {
	// Classify returns a category per place ID. Places the classifier
	// cannot decide on are omitted from the result.
	Classify(ctx context.Context, places []*Place) (map[string]Category, error)
}
