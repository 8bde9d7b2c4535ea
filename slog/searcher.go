package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/lmertens/annuaire"
)

// Ensure LoggingPlaceSearcher implements annuaire.PlaceSearcher.
var _ annuaire.PlaceSearcher = (*LoggingPlaceSearcher)(nil)

// LoggingPlaceSearcher wraps a PlaceSearcher with debug logging.
type LoggingPlaceSearcher struct {
	next   annuaire.PlaceSearcher
	logger *slog.Logger
}

// NewLoggingPlaceSearcher creates a new LoggingPlaceSearcher.
func NewLoggingPlaceSearcher(next annuaire.PlaceSearcher, logger *slog.Logger) *LoggingPlaceSearcher {
	return &LoggingPlaceSearcher{next: next, logger: logger}
}

// TextSearch delegates to the wrapped searcher and logs the operation.
func (s *LoggingPlaceSearcher) TextSearch(ctx context.Context, query string) (candidates []annuaire.Candidate, err error) {
	defer func(begin time.Time) {
		s.logger.Info("text search",
			"query", query,
			"count", len(candidates),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.TextSearch(ctx, query)
}
