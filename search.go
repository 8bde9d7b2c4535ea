package annuaire

import "context"

// Candidate represents one raw search result before classification and
// deduplication have been applied.
type Candidate struct {
	PlaceRef string
	Name     string
	Address  string
	Rating   float64
	Reviews  int
	Types    []string
	Website  string
}

// PlaceSearcher runs free-text place searches against an upstream API.
// Implementations hide pagination, page-token activation delays, and API
// status handling.
type PlaceSearcher interface {
	// TextSearch returns all results for the query across result pages.
	// An empty result set is success, not an error. Quota exhaustion is
	// reported as ERATELIMIT.
	TextSearch(ctx context.Context, query string) ([]Candidate, error)
}

// HostLimiter provides per-host rate limiting.
type HostLimiter interface {
	// Wait blocks until the rate limit allows a request to the host.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, host string) error
}

// Fetcher retrieves rendered HTML from URLs.
// Implementations may use browser automation to handle JavaScript-rendered
// content.
type Fetcher interface {
	// Fetch retrieves the HTML document at the URL.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases any resources held by the fetcher.
	Close() error
}
