// Package csv provides CSV export and import of catalog places.
// The column layout matches the files produced by the project's original
// collection scripts, so existing spreadsheets keep working.
package csv

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"

	"github.com/lmertens/annuaire"
)

// Columns is the export column order. It is stable: downstream consumers
// index by position as well as by header.
var Columns = []string{
	"name",
	"address",
	"city",
	"postal_code",
	"rating",
	"reviews",
	"types",
	"maps_url",
	"matched_keyword",
}

// FullColumns extends Columns with the fields added since the first
// generation of the catalog. Used when exporting with --full.
var FullColumns = append(append([]string{}, Columns...),
	"place_ref",
	"category",
	"website",
	"email",
	"phone",
	"certified",
)

// Ensure Exporter implements annuaire.PlaceWriter at compile time.
var _ annuaire.PlaceWriter = (*Exporter)(nil)

// Exporter writes places to a CSV file with atomic update semantics.
// Rows are staged in a temporary file next to the destination; Commit
// renames it into place, Abort removes it. The destination is never left
// half-written.
type Exporter struct {
	path string
	full bool

	file *os.File
	w    *csv.Writer
}

// NewExporter creates an Exporter targeting path. When full is true the
// extended column set is written.
func NewExporter(path string, full bool) *Exporter {
	return &Exporter{path: path, full: full}
}

func (e *Exporter) tempPath() string {
	return e.path + ".tmp"
}

// Save stages one place. The header row is written lazily on first call.
func (e *Exporter) Save(ctx context.Context, place *annuaire.Place) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if e.file == nil {
		if err := os.MkdirAll(filepath.Dir(e.path), 0755); err != nil {
			return err
		}
		f, err := os.Create(e.tempPath())
		if err != nil {
			return err
		}
		e.file = f
		e.w = csv.NewWriter(f)

		header := Columns
		if e.full {
			header = FullColumns
		}
		if err := e.w.Write(header); err != nil {
			return err
		}
	}

	return e.w.Write(e.record(place))
}

func (e *Exporter) record(p *annuaire.Place) []string {
	rec := []string{
		p.Name,
		p.Address,
		p.City,
		p.PostalCode,
		formatRating(p.Rating),
		formatReviews(p.Reviews),
		annuaire.JoinTypes(p.Types),
		p.MapsURL,
		p.MatchedKeyword,
	}
	if e.full {
		rec = append(rec,
			p.PlaceRef,
			string(p.Category),
			p.Website,
			p.Email,
			p.Phone,
			strconv.FormatBool(p.Certified),
		)
	}
	return rec
}

// Commit flushes staged rows and atomically moves the file into place.
// Committing with no saved rows writes a header-only file.
func (e *Exporter) Commit() error {
	if e.file == nil {
		// Nothing staged; still produce a header-only export.
		if err := os.MkdirAll(filepath.Dir(e.path), 0755); err != nil {
			return err
		}
		f, err := os.Create(e.tempPath())
		if err != nil {
			return err
		}
		e.file = f
		e.w = csv.NewWriter(f)
		header := Columns
		if e.full {
			header = FullColumns
		}
		if err := e.w.Write(header); err != nil {
			f.Close()
			return err
		}
	}

	e.w.Flush()
	if err := e.w.Error(); err != nil {
		e.file.Close()
		return err
	}
	if err := e.file.Close(); err != nil {
		return err
	}
	e.file = nil

	return os.Rename(e.tempPath(), e.path)
}

// Abort discards staged rows and removes the temporary file.
func (e *Exporter) Abort() error {
	if e.file != nil {
		e.file.Close()
		e.file = nil
	}
	err := os.Remove(e.tempPath())
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// formatRating renders a rating the way the source API does: at most one
// decimal, empty when unrated.
func formatRating(r float64) string {
	if r == 0 {
		return ""
	}
	return strconv.FormatFloat(r, 'f', -1, 64)
}

func formatReviews(n int) string {
	if n == 0 {
		return ""
	}
	return strconv.Itoa(n)
}
