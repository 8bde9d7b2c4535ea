package scrape

import (
	"context"
	"fmt"
	"net/url"
	"sync/atomic"

	"github.com/lmertens/annuaire"
	"golang.org/x/sync/errgroup"
)

// Enricher orchestrates contact enrichment: it fetches the website of each
// place that has one and extracts email and phone details from the page.
type Enricher struct {
	Places      annuaire.PlaceService
	Fetcher     annuaire.Fetcher
	Contacts    annuaire.Enricher
	RateLimiter annuaire.HostLimiter
	Concurrency int
}

// EnrichResult holds the outcome of an enrichment operation.
type EnrichResult struct {
	Eligible int
	Enriched int
	Empty    int
	Failed   int
}

// enrichOutcome holds the outcome of enriching a single place.
type enrichOutcome struct {
	place   *annuaire.Place
	contact *annuaire.Contact
	err     error
}

// EnrichSurvey fetches the website of every place in the survey that has
// one but no contact details yet, and stores whatever emails and phone
// numbers the pages reveal.
func (e *Enricher) EnrichSurvey(ctx context.Context, surveyID string, progress ProgressFunc) (*EnrichResult, error) {
	places, err := e.Places.FindPlaces(ctx, annuaire.PlaceFilter{SurveyID: &surveyID})
	if err != nil {
		return nil, fmt.Errorf("load places: %w", err)
	}

	var eligible []*annuaire.Place
	for _, p := range places {
		if p.Website == "" {
			continue
		}
		if p.Email != "" && p.Phone != "" {
			continue
		}
		eligible = append(eligible, p)
	}

	res := &EnrichResult{Eligible: len(eligible)}
	if len(eligible) == 0 {
		if progress != nil {
			progress(ProgressEvent{Type: ProgressFinished})
		}
		return res, nil
	}

	concurrency := e.Concurrency
	if concurrency <= 0 {
		concurrency = 4
	}

	outcomeCh := make(chan enrichOutcome, len(eligible))

	var completed atomic.Int64
	total := len(eligible)

	if progress != nil {
		progress(ProgressEvent{
			Type:  ProgressStarted,
			Total: total,
		})
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	go func() {
		for _, p := range eligible {
			p := p
			g.Go(func() error {
				contact, err := e.enrichPlace(gctx, p)
				outcomeCh <- enrichOutcome{place: p, contact: contact, err: err}
				return nil
			})
		}
		_ = g.Wait()
		close(outcomeCh)
	}()

	for outcome := range outcomeCh {
		completed.Add(1)

		if outcome.err != nil {
			res.Failed++
			if progress != nil {
				progress(ProgressEvent{
					Type:      ProgressFailed,
					Completed: int(completed.Load()),
					Total:     total,
					Query:     outcome.place.Website,
					Error:     outcome.err,
				})
			}
			continue
		}

		if outcome.contact.Empty() {
			res.Empty++
		} else {
			upd := annuaire.PlaceUpdate{}
			if outcome.contact.Email != "" && outcome.place.Email == "" {
				upd.Email = &outcome.contact.Email
			}
			if outcome.contact.Phone != "" && outcome.place.Phone == "" {
				upd.Phone = &outcome.contact.Phone
			}
			if _, err := e.Places.UpdatePlace(ctx, outcome.place.ID, upd); err != nil {
				res.Failed++
				continue
			}
			res.Enriched++
		}

		if progress != nil {
			progress(ProgressEvent{
				Type:      ProgressCompleted,
				Completed: int(completed.Load()),
				Total:     total,
				Query:     outcome.place.Website,
			})
		}
	}

	if progress != nil {
		progress(ProgressEvent{
			Type:      ProgressFinished,
			Completed: total,
			Total:     total,
		})
	}

	return res, nil
}

// enrichPlace fetches one place's website and extracts contact details.
func (e *Enricher) enrichPlace(ctx context.Context, place *annuaire.Place) (*annuaire.Contact, error) {
	siteURL, err := url.Parse(place.Website)
	if err != nil {
		return nil, annuaire.Errorf(annuaire.EINVALID, "invalid website URL %q", place.Website)
	}

	if e.RateLimiter != nil {
		if err := e.RateLimiter.Wait(ctx, siteURL.Host); err != nil {
			return nil, err
		}
	}

	html, err := e.Fetcher.Fetch(ctx, place.Website)
	if err != nil {
		return nil, err
	}

	return e.Contacts.Enrich(html, place.Website)
}
