// Package scrape provides survey scraping orchestration.
// It coordinates text searches, candidate filtering, deduplication, and
// storage of catalog places.
package scrape

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/lmertens/annuaire"
	"golang.org/x/sync/errgroup"
)

// searchHost is the rate-limiting key for Places API requests.
const searchHost = "maps.googleapis.com"

// Scraper orchestrates the scraping of a survey's city and keyword grid.
type Scraper struct {
	Searcher    annuaire.PlaceSearcher
	Places      annuaire.PlaceService
	RateLimiter annuaire.HostLimiter
	Ruleset     *annuaire.Ruleset
	Concurrency int
	RetryDelays []time.Duration
}

// Result holds the outcome of a scrape operation.
type Result struct {
	Queries    int
	Found      int
	Saved      int
	Updated    int
	Duplicates int
	Excluded   int
	Failed     int
}

// ProgressEvent reports progress during a scrape operation.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	Query     string
	Found     int
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting scrape progress.
type ProgressFunc func(event ProgressEvent)

// query is one cell of the cities x keywords grid.
type query struct {
	text    string
	city    string
	keyword string
}

// queryResult holds the outcome of running a single search query.
type queryResult struct {
	position   int
	query      query
	candidates []annuaire.Candidate
	err        error
}

// existing tracks a previously stored place so re-scrapes can detect
// upstream changes.
type existing struct {
	id   string
	hash string
}

// ScrapeSurvey runs every query of the survey's grid and saves matching
// candidates as places. Candidates already stored are updated when their
// content fingerprint changed and counted as duplicates otherwise.
// The progress callback, if provided, receives events as scraping proceeds.
func (s *Scraper) ScrapeSurvey(ctx context.Context, survey *annuaire.Survey, progress ProgressFunc) (*Result, error) {
	queries := buildQueries(survey)
	if len(queries) == 0 {
		return nil, annuaire.Errorf(annuaire.EINVALID, "survey %q has no keywords to query", survey.Name)
	}

	ruleset := s.Ruleset
	if ruleset == nil {
		ruleset = annuaire.RulesetFor(survey.Category)
	}

	// Seed the dedup index with places from previous runs so re-scraping a
	// survey updates rather than conflicts.
	stored, err := s.Places.FindPlaces(ctx, annuaire.PlaceFilter{SurveyID: &survey.ID})
	if err != nil {
		return nil, fmt.Errorf("load existing places: %w", err)
	}
	index := NewIndex(uint(len(stored) + len(queries)*20))
	known := make(map[string]existing, len(stored))
	for _, p := range stored {
		index.Add(p.PlaceRef)
		known[p.PlaceRef] = existing{id: p.ID, hash: p.ContentHash}
	}

	concurrency := s.Concurrency
	if concurrency <= 0 {
		concurrency = 4
	}

	resultCh := make(chan queryResult, len(queries))

	var completed atomic.Int64
	total := len(queries)

	if progress != nil {
		progress(ProgressEvent{
			Type:  ProgressStarted,
			Total: total,
		})
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	go func() {
		for i, q := range queries {
			i, q := i, q
			g.Go(func() error {
				result := s.runQuery(gctx, i, q)
				resultCh <- result
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	// Collect results in grid order so saved places are deterministic
	// regardless of worker scheduling.
	results := make([]queryResult, len(queries))
	var failedCount int
	for result := range resultCh {
		completed.Add(1)
		results[result.position] = result

		if result.err != nil {
			failedCount++
			if progress != nil {
				progress(ProgressEvent{
					Type:      ProgressFailed,
					Completed: int(completed.Load()),
					Total:     total,
					Query:     result.query.text,
					Error:     result.err,
				})
			}
		} else if progress != nil {
			progress(ProgressEvent{
				Type:      ProgressCompleted,
				Completed: int(completed.Load()),
				Total:     total,
				Query:     result.query.text,
				Found:     len(result.candidates),
			})
		}
	}

	res := &Result{
		Queries: total,
		Failed:  failedCount,
	}

	for _, result := range results {
		if result.err != nil {
			continue
		}
		for _, cand := range result.candidates {
			res.Found++

			matched, ok := ruleset.Match(cand)
			if !ok {
				res.Excluded++
				continue
			}

			hash := Fingerprint(cand.Name, cand.Address, cand.Rating, cand.Reviews)

			if index.Seen(cand.PlaceRef) {
				prev, ok := known[cand.PlaceRef]
				if !ok || prev.hash == hash {
					res.Duplicates++
					continue
				}
				if err := s.refresh(ctx, prev.id, cand, hash); err != nil {
					res.Failed++
					continue
				}
				known[cand.PlaceRef] = existing{id: prev.id, hash: hash}
				res.Updated++
				continue
			}

			place := buildPlace(survey, result.query, cand, matched, ruleset.Category, hash)
			if err := s.Places.CreatePlace(ctx, place); err != nil {
				if annuaire.ErrorCode(err) == annuaire.ECONFLICT {
					res.Duplicates++
				} else {
					res.Failed++
				}
				continue
			}
			index.Add(cand.PlaceRef)
			known[cand.PlaceRef] = existing{id: place.ID, hash: hash}
			res.Saved++
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

// runQuery rate-limits and runs a single search query with retry.
func (s *Scraper) runQuery(ctx context.Context, position int, q query) queryResult {
	result := queryResult{
		position: position,
		query:    q,
	}

	if s.RateLimiter != nil {
		if err := s.RateLimiter.Wait(ctx, searchHost); err != nil {
			result.err = err
			return result
		}
	}

	delays := s.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays
	}
	candidates, err := SearchWithRetryDelays(ctx, s.Searcher, q.text, delays)
	if err != nil {
		result.err = err
		return result
	}

	result.candidates = candidates
	return result
}

// buildQueries expands the survey into its full query grid. A survey
// without cities queries each keyword on its own.
func buildQueries(survey *annuaire.Survey) []query {
	cities := survey.CityList()
	keywords := survey.KeywordList()

	if len(cities) == 0 {
		queries := make([]query, 0, len(keywords))
		for _, kw := range keywords {
			queries = append(queries, query{text: kw, keyword: kw})
		}
		return queries
	}

	queries := make([]query, 0, len(cities)*len(keywords))
	for _, city := range cities {
		for _, kw := range keywords {
			queries = append(queries, query{
				text:    kw + " in " + city,
				city:    city,
				keyword: kw,
			})
		}
	}
	return queries
}

// buildPlace converts a matched candidate into a place for storage.
func buildPlace(survey *annuaire.Survey, q query, cand annuaire.Candidate, matched string, category annuaire.Category, hash string) *annuaire.Place {
	postal, city := annuaire.ParseAddress(cand.Address)

	keyword := matched
	if keyword == "" {
		keyword = q.keyword
	}

	return &annuaire.Place{
		SurveyID:       survey.ID,
		PlaceRef:       cand.PlaceRef,
		Category:       category,
		Name:           cand.Name,
		Address:        cand.Address,
		City:           city,
		PostalCode:     postal,
		Rating:         cand.Rating,
		Reviews:        cand.Reviews,
		Types:          cand.Types,
		MapsURL:        annuaire.BuildMapsURL(cand.PlaceRef),
		MatchedKeyword: keyword,
		QueryCity:      q.city,
		Website:        cand.Website,
		ContentHash:    hash,
	}
}

// refresh updates a stored place with the candidate's current listing data.
func (s *Scraper) refresh(ctx context.Context, id string, cand annuaire.Candidate, hash string) error {
	postal, city := annuaire.ParseAddress(cand.Address)
	upd := annuaire.PlaceUpdate{
		Name:        &cand.Name,
		Address:     &cand.Address,
		Rating:      &cand.Rating,
		Reviews:     &cand.Reviews,
		ContentHash: &hash,
	}
	if city != "" {
		upd.City = &city
		upd.PostalCode = &postal
	}
	if len(cand.Types) > 0 {
		upd.Types = cand.Types
	}
	if cand.Website != "" {
		upd.Website = &cand.Website
	}
	_, err := s.Places.UpdatePlace(ctx, id, upd)
	return err
}
