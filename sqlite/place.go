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
var _ annuaire.PlaceService = (*PlaceService)(nil)

// PlaceService implements annuaire.PlaceService using SQLite.
type PlaceService struct {
	db *DB
}

// NewPlaceService creates a new PlaceService.
func NewPlaceService(db *DB) *PlaceService {
	return &PlaceService{db: db}
}

const placeColumns = `id, survey_id, place_ref, category, name, address, city, postal_code,
	rating, reviews, types, maps_url, matched_keyword, query_city,
	website, email, phone, certified, content_hash, fetched_at`

// CreatePlace creates a new place.
func (s *PlaceService) CreatePlace(ctx context.Context, place *annuaire.Place) error {
	if err := place.Validate(); err != nil {
		return err
	}

	place.ID = uuid.New().String()
	if place.FetchedAt.IsZero() {
		place.FetchedAt = time.Now().UTC()
	}
	if place.Category == "" {
		place.Category = annuaire.CategoryUnknown
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO places (`+placeColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, place.ID, place.SurveyID, place.PlaceRef, string(place.Category), place.Name,
		place.Address, place.City, place.PostalCode, place.Rating, place.Reviews,
		annuaire.JoinTypes(place.Types), place.MapsURL, place.MatchedKeyword, place.QueryCity,
		place.Website, place.Email, place.Phone, boolToInt(place.Certified),
		place.ContentHash, place.FetchedAt.Format(time.RFC3339))

	if err != nil && strings.Contains(err.Error(), "UNIQUE") {
		return annuaire.Errorf(annuaire.ECONFLICT, "place %q already catalogued in this survey", place.PlaceRef)
	}

	return err
}

// FindPlaceByID retrieves a place by ID.
func (s *PlaceService) FindPlaceByID(ctx context.Context, id string) (*annuaire.Place, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+placeColumns+` FROM places WHERE id = ?
	`, id)

	place, err := scanPlace(row.Scan)
	if err == sql.ErrNoRows {
		return nil, annuaire.Errorf(annuaire.ENOTFOUND, "place not found")
	}
	if err != nil {
		return nil, err
	}

	return place, nil
}

// FindPlaces retrieves places matching the filter, ordered by name.
func (s *PlaceService) FindPlaces(ctx context.Context, filter annuaire.PlaceFilter) ([]*annuaire.Place, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT " + placeColumns + " FROM places WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.SurveyID != nil {
		query.WriteString(" AND survey_id = ?")
		args = append(args, *filter.SurveyID)
	}
	if filter.PlaceRef != nil {
		query.WriteString(" AND place_ref = ?")
		args = append(args, *filter.PlaceRef)
	}
	if filter.Category != nil {
		query.WriteString(" AND category = ?")
		args = append(args, string(*filter.Category))
	}
	if filter.City != nil {
		query.WriteString(" AND city = ?")
		args = append(args, *filter.City)
	}
	if filter.Certified != nil {
		query.WriteString(" AND certified = ?")
		args = append(args, boolToInt(*filter.Certified))
	}

	query.WriteString(" ORDER BY name ASC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var places []*annuaire.Place
	for rows.Next() {
		place, err := scanPlace(rows.Scan)
		if err != nil {
			return nil, err
		}
		places = append(places, place)
	}

	return places, rows.Err()
}

// UpdatePlace updates an existing place.
func (s *PlaceService) UpdatePlace(ctx context.Context, id string, upd annuaire.PlaceUpdate) (*annuaire.Place, error) {
	place, err := s.FindPlaceByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if upd.Category != nil {
		place.Category = *upd.Category
	}
	if upd.Name != nil {
		place.Name = *upd.Name
	}
	if upd.Address != nil {
		place.Address = *upd.Address
	}
	if upd.City != nil {
		place.City = *upd.City
	}
	if upd.PostalCode != nil {
		place.PostalCode = *upd.PostalCode
	}
	if upd.Rating != nil {
		place.Rating = *upd.Rating
	}
	if upd.Reviews != nil {
		place.Reviews = *upd.Reviews
	}
	if upd.Types != nil {
		place.Types = upd.Types
	}
	if upd.MatchedKeyword != nil {
		place.MatchedKeyword = *upd.MatchedKeyword
	}
	if upd.Website != nil {
		place.Website = *upd.Website
	}
	if upd.Email != nil {
		place.Email = *upd.Email
	}
	if upd.Phone != nil {
		place.Phone = *upd.Phone
	}
	if upd.Certified != nil {
		place.Certified = *upd.Certified
	}
	if upd.ContentHash != nil {
		place.ContentHash = *upd.ContentHash
	}

	if err := place.Validate(); err != nil {
		return nil, err
	}

	_, err = s.db.ExecContext(ctx, `
		UPDATE places
		SET category = ?, name = ?, address = ?, city = ?, postal_code = ?,
			rating = ?, reviews = ?, types = ?, matched_keyword = ?,
			website = ?, email = ?, phone = ?, certified = ?, content_hash = ?
		WHERE id = ?
	`, string(place.Category), place.Name, place.Address, place.City, place.PostalCode,
		place.Rating, place.Reviews, annuaire.JoinTypes(place.Types), place.MatchedKeyword,
		place.Website, place.Email, place.Phone, boolToInt(place.Certified), place.ContentHash, id)

	if err != nil {
		return nil, err
	}

	return place, nil
}

// DeletePlacesBySurvey removes all places for a survey.
func (s *PlaceService) DeletePlacesBySurvey(ctx context.Context, surveyID string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM places WHERE survey_id = ?", surveyID)
	return err
}

// scanPlace scans one place row using the placeColumns order.
func scanPlace(scan func(dest ...any) error) (*annuaire.Place, error) {
	var place annuaire.Place
	var category, types, fetchedAt string
	var certified int

	if err := scan(&place.ID, &place.SurveyID, &place.PlaceRef, &category, &place.Name,
		&place.Address, &place.City, &place.PostalCode, &place.Rating, &place.Reviews,
		&types, &place.MapsURL, &place.MatchedKeyword, &place.QueryCity,
		&place.Website, &place.Email, &place.Phone, &certified,
		&place.ContentHash, &fetchedAt); err != nil {
		return nil, err
	}

	place.Category = annuaire.Category(category)
	place.Types = annuaire.SplitTypes(types)
	place.Certified = certified != 0

	var err error
	if place.FetchedAt, err = parseRFC3339(fetchedAt, "fetched_at"); err != nil {
		return nil, err
	}

	return &place, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
