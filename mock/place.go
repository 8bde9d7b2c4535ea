package mock

import (
	"context"

	"github.com/lmertens/annuaire"
)

var _ annuaire.PlaceService = (*PlaceService)(nil)

// PlaceService is a mock implementation of annuaire.PlaceService.
type PlaceService struct {
	CreatePlaceFn          func(ctx context.Context, place *annuaire.Place) error
	FindPlaceByIDFn        func(ctx context.Context, id string) (*annuaire.Place, error)
	FindPlacesFn           func(ctx context.Context, filter annuaire.PlaceFilter) ([]*annuaire.Place, error)
	UpdatePlaceFn          func(ctx context.Context, id string, upd annuaire.PlaceUpdate) (*annuaire.Place, error)
	DeletePlacesBySurveyFn func(ctx context.Context, surveyID string) error
}

func (s *PlaceService) CreatePlace(ctx context.Context, place *annuaire.Place) error {
	return s.CreatePlaceFn(ctx, place)
}

func (s *PlaceService) FindPlaceByID(ctx context.Context, id string) (*annuaire.Place, error) {
	return s.FindPlaceByIDFn(ctx, id)
}

func (s *PlaceService) FindPlaces(ctx context.Context, filter annuaire.PlaceFilter) ([]*annuaire.Place, error) {
	return s.FindPlacesFn(ctx, filter)
}

func (s *PlaceService) UpdatePlace(ctx context.Context, id string, upd annuaire.PlaceUpdate) (*annuaire.Place, error) {
	return s.UpdatePlaceFn(ctx, id, upd)
}

func (s *PlaceService) DeletePlacesBySurvey(ctx context.Context, surveyID string) error {
	return s.DeletePlacesBySurveyFn(ctx, surveyID)
}
