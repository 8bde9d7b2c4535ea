// Package annuaire provides a CLI-based catalog builder for organic and
// local producers, shops and markets in a francophone region. It scrapes
// place data from the Google Places API, classifies and deduplicates the
// results, stores them in SQLite grouped into surveys, and exports the
// catalog as CSV.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, googleplaces/, goquery/).
package annuaire
