package csv

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"github.com/lmertens/annuaire"
)

// ReadPlaces parses a catalog CSV into places. The header row determines
// the column mapping, so column order and optional columns are free;
// unknown columns are ignored. A file with neither a place_ref nor a name
// column is EINVALID, since rows could not be deduplicated or identified.
//
// Rating/reviews parse failures are tolerated as zero values rather than
// failing the whole import; hand-edited spreadsheets are the norm here.
func ReadPlaces(r io.Reader) ([]*annuaire.Place, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return nil, annuaire.Errorf(annuaire.EINVALID, "empty CSV input")
	}
	if err != nil {
		return nil, err
	}

	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.TrimSpace(strings.ToLower(name))] = i
	}

	if _, hasRef := col["place_ref"]; !hasRef {
		if _, hasName := col["name"]; !hasName {
			return nil, annuaire.Errorf(annuaire.EINVALID, "CSV must have a place_ref or name column")
		}
	}

	field := func(rec []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}

	var places []*annuaire.Place
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		p := &annuaire.Place{
			PlaceRef:       field(rec, "place_ref"),
			Name:           field(rec, "name"),
			Address:        field(rec, "address"),
			City:           field(rec, "city"),
			PostalCode:     field(rec, "postal_code"),
			Types:          annuaire.SplitTypes(field(rec, "types")),
			MapsURL:        field(rec, "maps_url"),
			MatchedKeyword: field(rec, "matched_keyword"),
			Website:        field(rec, "website"),
			Email:          field(rec, "email"),
			Phone:          field(rec, "phone"),
		}
		if v := field(rec, "rating"); v != "" {
			if rating, err := strconv.ParseFloat(v, 64); err == nil {
				p.Rating = rating
			}
		}
		if v := field(rec, "reviews"); v != "" {
			if reviews, err := strconv.Atoi(v); err == nil {
				p.Reviews = reviews
			}
		}
		if v := field(rec, "category"); v != "" {
			p.Category = annuaire.Category(v)
		}
		if v := field(rec, "certified"); v != "" {
			p.Certified = v == "true" || v == "1" || v == "oui"
		}
		if p.City == "" && p.PostalCode == "" && p.Address != "" {
			p.PostalCode, p.City = annuaire.ParseAddress(p.Address)
		}

		places = append(places, p)
	}

	return places, nil
}
