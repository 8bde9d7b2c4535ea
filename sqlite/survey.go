package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lmertens/annuaire"
)

// Compile-time interface verification.
var _ annuaire.SurveyService = (*SurveyService)(nil)

// SurveyService implements annuaire.SurveyService using SQLite.
type SurveyService struct {
	db *DB
}

// NewSurveyService creates a new SurveyService.
func NewSurveyService(db *DB) *SurveyService {
	return &SurveyService{db: db}
}

// CreateSurvey creates a new survey.
func (s *SurveyService) CreateSurvey(ctx context.Context, survey *annuaire.Survey) error {
	if err := survey.Validate(); err != nil {
		return err
	}

	survey.ID = uuid.New().String()
	now := time.Now().UTC()
	survey.CreatedAt = now
	survey.UpdatedAt = now

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO surveys (id, name, category, cities, keywords, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, survey.ID, survey.Name, string(survey.Category), survey.Cities, survey.Keywords,
		survey.CreatedAt.Format(time.RFC3339), survey.UpdatedAt.Format(time.RFC3339))

	if err != nil && strings.Contains(err.Error(), "UNIQUE") {
		return annuaire.Errorf(annuaire.ECONFLICT, "survey %q already exists", survey.Name)
	}

	return err
}

// FindSurveyByID retrieves a survey by ID.
func (s *SurveyService) FindSurveyByID(ctx context.Context, id string) (*annuaire.Survey, error) {
	var survey annuaire.Survey
	var category, createdAt, updatedAt string

	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, category, cities, keywords, created_at, updated_at
		FROM surveys
		WHERE id = ?
	`, id).Scan(&survey.ID, &survey.Name, &category, &survey.Cities, &survey.Keywords,
		&createdAt, &updatedAt)

	if err == sql.ErrNoRows {
		return nil, annuaire.Errorf(annuaire.ENOTFOUND, "survey not found")
	}
	if err != nil {
		return nil, err
	}

	survey.Category = annuaire.Category(category)
	if survey.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
		return nil, err
	}
	if survey.UpdatedAt, err = parseRFC3339(updatedAt, "updated_at"); err != nil {
		return nil, err
	}

	return &survey, nil
}

// FindSurveys retrieves surveys matching the filter.
func (s *SurveyService) FindSurveys(ctx context.Context, filter annuaire.SurveyFilter) ([]*annuaire.Survey, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, name, category, cities, keywords, created_at, updated_at FROM surveys WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.Name != nil {
		query.WriteString(" AND name = ?")
		args = append(args, *filter.Name)
	}

	query.WriteString(" ORDER BY created_at DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var surveys []*annuaire.Survey
	for rows.Next() {
		var survey annuaire.Survey
		var category, createdAt, updatedAt string

		if err := rows.Scan(&survey.ID, &survey.Name, &category, &survey.Cities, &survey.Keywords,
			&createdAt, &updatedAt); err != nil {
			return nil, err
		}

		survey.Category = annuaire.Category(category)
		if survey.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
			return nil, err
		}
		if survey.UpdatedAt, err = parseRFC3339(updatedAt, "updated_at"); err != nil {
			return nil, err
		}

		surveys = append(surveys, &survey)
	}

	return surveys, rows.Err()
}

// UpdateSurvey updates an existing survey.
func (s *SurveyService) UpdateSurvey(ctx context.Context, id string, upd annuaire.SurveyUpdate) (*annuaire.Survey, error) {
	survey, err := s.FindSurveyByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if upd.Name != nil {
		survey.Name = *upd.Name
	}
	if upd.Category != nil {
		survey.Category = *upd.Category
	}
	if upd.Cities != nil {
		survey.Cities = *upd.Cities
	}
	if upd.Keywords != nil {
		survey.Keywords = *upd.Keywords
	}

	if err := survey.Validate(); err != nil {
		return nil, err
	}

	survey.UpdatedAt = time.Now().UTC()

	_, err = s.db.ExecContext(ctx, `
		UPDATE surveys
		SET name = ?, category = ?, cities = ?, keywords = ?, updated_at = ?
		WHERE id = ?
	`, survey.Name, string(survey.Category), survey.Cities, survey.Keywords,
		survey.UpdatedAt.Format(time.RFC3339), id)

	if err != nil {
		return nil, err
	}

	return survey, nil
}

// DeleteSurvey permanently removes a survey. Places cascade.
func (s *SurveyService) DeleteSurvey(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM surveys WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return annuaire.Errorf(annuaire.ENOTFOUND, "survey not found")
	}

	return nil
}
