package mock

import (
	"context"

	"github.com/lmertens/annuaire"
)

var _ annuaire.Enricher = (*Enricher)(nil)

// Enricher is a mock implementation of annuaire.Enricher.
type Enricher struct {
	EnrichFn func(html string, baseURL string) (*annuaire.Contact, error)
}

func (e *Enricher) Enrich(html string, baseURL string) (*annuaire.Contact, error) {
	return e.EnrichFn(html, baseURL)
}

var _ annuaire.Classifier = (*Classifier)(nil)

// Classifier is a mock implementation of annuaire.Classifier.
type Classifier struct {
	ClassifyFn func(ctx context.Context, places []*annuaire.Place) (map[string]annuaire.Category, error)
}

func (c *Classifier) Classify(ctx context.Context, places []*annuaire.Place) (map[string]annuaire.Category, error) {
	return c.ClassifyFn(ctx, places)
}
