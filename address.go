package annuaire

import (
	"regexp"
	"strings"
	"unicode"
)

// addressRe matches the ", 5000 Namur" segment of a formatted address.
// Four digits cover Belgian and Swiss postal codes, five cover French ones.
var addressRe = regexp.MustCompile(`,\s*(\d{4,5})\s+([^,]+)`)

// ParseAddress extracts the postal code and city from a formatted address
// like "Rue de Fer 12, 5000 Namur, Belgique". Addresses without a postal
// segment yield empty strings, never an error.
func ParseAddress(address string) (postalCode, city string) {
	m := addressRe.FindStringSubmatch(address)
	if m == nil {
		return "", ""
	}
	return strings.TrimSpace(m[1]), strings.TrimSpace(m[2])
}

// BuildMapsURL returns the Google Maps deep link for a place reference.
func BuildMapsURL(placeRef string) string {
	return "https://www.google.com/maps/place/?q=place_id:" + placeRef
}

// Slugify turns a city name into a filesystem-safe slug: lowercase, with
// every non-alphanumeric rune replaced by an underscore.
// "Namur, Belgium" becomes "namur__belgium".
func Slugify(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(unicode.ToLower(r))
		} else {
			b.WriteRune('_')
		}
	}
	return b.String()
}
