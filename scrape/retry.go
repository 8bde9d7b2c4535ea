package scrape

import (
	"context"
	"time"

	"github.com/lmertens/annuaire"
)

// DefaultRetryDelays is the default backoff schedule for failed searches.
var DefaultRetryDelays = []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}

// SearchWithRetryDelays runs a text search, retrying transient failures
// according to the given backoff schedule. Validation errors are returned
// immediately since retrying them cannot help.
func SearchWithRetryDelays(ctx context.Context, searcher annuaire.PlaceSearcher, query string, delays []time.Duration) ([]annuaire.Candidate, error) {
	var lastErr error
	for attempt := 0; attempt <= len(delays); attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(delays[attempt-1]):
			}
		}

		candidates, err := searcher.TextSearch(ctx, query)
		if err == nil {
			return candidates, nil
		}
		if annuaire.ErrorCode(err) == annuaire.EINVALID {
			return nil, err
		}
		if ctx.Err() != nil {
			return nil, err
		}
		lastErr = err
	}
	return nil, lastErr
}
