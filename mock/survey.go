package mock

import (
	"context"

	"github.com/lmertens/annuaire"
)

var _ annuaire.SurveyService = (*SurveyService)(nil)

// SurveyService is a mock implementation of annuaire.SurveyService.
type SurveyService struct {
	CreateSurveyFn   func(ctx context.Context, survey *annuaire.Survey) error
	FindSurveyByIDFn func(ctx context.Context, id string) (*annuaire.Survey, error)
	FindSurveysFn    func(ctx context.Context, filter annuaire.SurveyFilter) ([]*annuaire.Survey, error)
	UpdateSurveyFn   func(ctx context.Context, id string, upd annuaire.SurveyUpdate) (*annuaire.Survey, error)
	DeleteSurveyFn   func(ctx context.Context, id string) error
}

func (s *SurveyService) CreateSurvey(ctx context.Context, survey *annuaire.Survey) error {
	return s.CreateSurveyFn(ctx, survey)
}

func (s *SurveyService) FindSurveyByID(ctx context.Context, id string) (*annuaire.Survey, error) {
	return s.FindSurveyByIDFn(ctx, id)
}

func (s *SurveyService) FindSurveys(ctx context.Context, filter annuaire.SurveyFilter) ([]*annuaire.Survey, error) {
	return s.FindSurveysFn(ctx, filter)
}

func (s *SurveyService) UpdateSurvey(ctx context.Context, id string, upd annuaire.SurveyUpdate) (*annuaire.Survey, error) {
	return s.UpdateSurveyFn(ctx, id, upd)
}

func (s *SurveyService) DeleteSurvey(ctx context.Context, id string) error {
	return s.DeleteSurveyFn(ctx, id)
}
