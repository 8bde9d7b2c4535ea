// Package googleplaces implements annuaire.PlaceSearcher on top of the
// Google Places Text Search API.
package googleplaces

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/lmertens/annuaire"
)

// DefaultBaseURL is the production Text Search endpoint.
const DefaultBaseURL = "https://maps.googleapis.com/maps/api/place/textsearch/json"

// DefaultPageTokenDelay is how long to wait before using a freshly issued
// next_page_token. Tokens become valid server-side a short moment after
// they are returned; 2.1s is the empirically safe delay.
const DefaultPageTokenDelay = 2100 * time.Millisecond

// Ensure Searcher implements annuaire.PlaceSearcher at compile time.
var _ annuaire.PlaceSearcher = (*Searcher)(nil)

// Searcher runs text searches against the Places API, following pagination
// until the last page. Safe for concurrent use.
type Searcher struct {
	apiKey         string
	baseURL        string
	client         *http.Client
	pageTokenDelay time.Duration
}

// Option configures a Searcher.
type Option func(*Searcher)

// WithBaseURL overrides the API endpoint. Used by tests to point at a
// local server.
func WithBaseURL(u string) Option {
	return func(s *Searcher) {
		s.baseURL = u
	}
}

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(s *Searcher) {
		s.client = c
	}
}

// WithPageTokenDelay overrides the pagination token activation delay.
// Tests set this to zero.
func WithPageTokenDelay(d time.Duration) Option {
	return func(s *Searcher) {
		s.pageTokenDelay = d
	}
}

// NewSearcher creates a Searcher authenticated with apiKey.
func NewSearcher(apiKey string, opts ...Option) *Searcher {
	s := &Searcher{
		apiKey:         apiKey,
		baseURL:        DefaultBaseURL,
		client:         &http.Client{Timeout: 30 * time.Second},
		pageTokenDelay: DefaultPageTokenDelay,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// response mirrors the Text Search JSON payload.
type response struct {
	Results []struct {
		PlaceID          string   `json:"place_id"`
		Name             string   `json:"name"`
		FormattedAddress string   `json:"formatted_address"`
		Rating           float64  `json:"rating"`
		UserRatingsTotal int      `json:"user_ratings_total"`
		Types            []string `json:"types"`
	} `json:"results"`
	Status        string `json:"status"`
	ErrorMessage  string `json:"error_message"`
	NextPageToken string `json:"next_page_token"`
}

// TextSearch returns all results for the query across result pages.
func (s *Searcher) TextSearch(ctx context.Context, query string) ([]annuaire.Candidate, error) {
	if query == "" {
		return nil, annuaire.Errorf(annuaire.EINVALID, "search query required")
	}

	params := url.Values{}
	params.Set("query", query)
	params.Set("key", s.apiKey)

	var candidates []annuaire.Candidate
	for {
		page, err := s.fetchPage(ctx, params)
		if err != nil {
			return nil, err
		}

		for _, r := range page.Results {
			candidates = append(candidates, annuaire.Candidate{
				PlaceRef: r.PlaceID,
				Name:     r.Name,
				Address:  r.FormattedAddress,
				Rating:   r.Rating,
				Reviews:  r.UserRatingsTotal,
				Types:    r.Types,
			})
		}

		if page.NextPageToken == "" {
			return candidates, nil
		}

		// A fresh token is not yet valid; wait before requesting the
		// next page.
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(s.pageTokenDelay):
		}

		params = url.Values{}
		params.Set("pagetoken", page.NextPageToken)
		params.Set("key", s.apiKey)
	}
}

func (s *Searcher) fetchPage(ctx context.Context, params url.Values) (*response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d from places API", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var page response
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, fmt.Errorf("decoding places response: %w", err)
	}

	if err := statusError(page.Status, page.ErrorMessage); err != nil {
		return nil, err
	}

	return &page, nil
}

// statusError maps the API status field onto application error codes.
// ZERO_RESULTS is success: an empty page, not a failure.
func statusError(status, message string) error {
	switch status {
	case "OK", "ZERO_RESULTS":
		return nil
	case "OVER_QUERY_LIMIT":
		return annuaire.Errorf(annuaire.ERATELIMIT, "places API quota exhausted")
	case "REQUEST_DENIED", "INVALID_REQUEST":
		if message == "" {
			message = status
		}
		return annuaire.Errorf(annuaire.EINVALID, "places API rejected request: %s", message)
	default:
		return annuaire.Errorf(annuaire.EINTERNAL, "places API status %s: %s", status, message)
	}
}
