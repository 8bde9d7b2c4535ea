package mock

import (
	"context"

	"github.com/lmertens/annuaire"
)

var _ annuaire.PlaceSearcher = (*PlaceSearcher)(nil)

// PlaceSearcher is a mock implementation of annuaire.PlaceSearcher.
type PlaceSearcher struct {
	TextSearchFn func(ctx context.Context, query string) ([]annuaire.Candidate, error)
}

func (s *PlaceSearcher) TextSearch(ctx context.Context, query string) ([]annuaire.Candidate, error) {
	return s.TextSearchFn(ctx, query)
}

var _ annuaire.HostLimiter = (*HostLimiter)(nil)

// HostLimiter is a mock implementation of annuaire.HostLimiter.
type HostLimiter struct {
	WaitFn func(ctx context.Context, host string) error
}

func (l *HostLimiter) Wait(ctx context.Context, host string) error {
	return l.WaitFn(ctx, host)
}
