package annuaire

import (
	"context"
	"strings"
	"time"
)

// Survey represents one scraping campaign: a named set of cities and
// keywords queried together. Places belong to exactly one survey.
type Survey struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Category Category `json:"category"`

	// Cities and Keywords are newline-joined lists, mirroring the
	// cities.txt / keywords.txt input files they are loaded from.
	Cities   string `json:"cities"`
	Keywords string `json:"keywords"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Validate returns an error if the survey contains invalid fields.
func (s *Survey) Validate() error {
	if s.Name == "" {
		return Errorf(EINVALID, "survey name required")
	}
	if len(s.KeywordList()) == 0 {
		return Errorf(EINVALID, "survey requires at least one keyword")
	}
	if s.Category != "" && !s.Category.Valid() {
		return Errorf(EINVALID, "unknown category %q", s.Category)
	}
	return nil
}

// CityList returns the survey's cities as a slice, skipping blank lines.
func (s *Survey) CityList() []string {
	return splitLines(s.Cities)
}

// KeywordList returns the survey's keywords as a slice, skipping blank lines.
func (s *Survey) KeywordList() []string {
	return splitLines(s.Keywords)
}

func splitLines(s string) []string {
	var out []string
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		out = append(out, line)
	}
	return out
}

// SurveyService represents a service for managing surveys.
type SurveyService interface {
	// CreateSurvey creates a new survey.
	CreateSurvey(ctx context.Context, survey *Survey) error

	// FindSurveyByID retrieves a survey by ID.
	// Returns ENOTFOUND if the survey does not exist.
	FindSurveyByID(ctx context.Context, id string) (*Survey, error)

	// FindSurveys retrieves surveys matching the filter.
	FindSurveys(ctx context.Context, filter SurveyFilter) ([]*Survey, error)

	// UpdateSurvey updates an existing survey.
	// Returns ENOTFOUND if the survey does not exist.
	UpdateSurvey(ctx context.Context, id string, upd SurveyUpdate) (*Survey, error)

	// DeleteSurvey permanently removes a survey and all associated places.
	// Returns ENOTFOUND if the survey does not exist.
	DeleteSurvey(ctx context.Context, id string) error
}

// SurveyFilter represents a filter for FindSurveys.
type SurveyFilter struct {
	ID   *string `json:"id"`
	Name *string `json:"name"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// SurveyUpdate represents fields that can be updated on a survey.
type SurveyUpdate struct {
	Name     *string   `json:"name"`
	Category *Category `json:"category"`
	Cities   *string   `json:"cities"`
	Keywords *string   `json:"keywords"`
}
