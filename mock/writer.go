package mock

import (
	"context"

	"github.com/lmertens/annuaire"
)

var _ annuaire.PlaceWriter = (*PlaceWriter)(nil)

// PlaceWriter is a mock implementation of annuaire.PlaceWriter.
type PlaceWriter struct {
	SaveFn   func(ctx context.Context, place *annuaire.Place) error
	CommitFn func() error
	AbortFn  func() error
}

func (w *PlaceWriter) Save(ctx context.Context, place *annuaire.Place) error {
	return w.SaveFn(ctx, place)
}

func (w *PlaceWriter) Commit() error {
	return w.CommitFn()
}

func (w *PlaceWriter) Abort() error {
	return w.AbortFn()
}
