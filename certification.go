package annuaire

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// CertifiedOperator represents one entry of an Open Data registry of
// certified organic operators.
type CertifiedOperator struct {
	Name       string
	PostalCode string
	City       string
	Activities []string
}

// OperatorIndex matches catalog places against a certified-operator
// registry. Matching is by normalized name within the same postal code;
// registries and the Places API rarely agree on exact spelling.
type OperatorIndex struct {
	byPostal map[string][]*CertifiedOperator
}

// NewOperatorIndex builds an index over the given operators.
func NewOperatorIndex(operators []*CertifiedOperator) *OperatorIndex {
	idx := &OperatorIndex{byPostal: make(map[string][]*CertifiedOperator)}
	for _, op := range operators {
		idx.byPostal[op.PostalCode] = append(idx.byPostal[op.PostalCode], op)
	}
	return idx
}

// Match returns the registry operator corresponding to the place, or nil.
// A place without a postal code never matches.
func (idx *OperatorIndex) Match(place *Place) *CertifiedOperator {
	if place.PostalCode == "" {
		return nil
	}
	want := NormalizeName(place.Name)
	if want == "" {
		return nil
	}
	for _, op := range idx.byPostal[place.PostalCode] {
		got := NormalizeName(op.Name)
		if got == want || strings.Contains(got, want) || strings.Contains(want, got) {
			return op
		}
	}
	return nil
}

// Len returns the number of indexed operators.
func (idx *OperatorIndex) Len() int {
	n := 0
	for _, ops := range idx.byPostal {
		n += len(ops)
	}
	return n
}

// NormalizeName lowercases a business name, strips diacritics and legal
// suffixes (sprl, sa, sc, asbl, sas, sarl), and collapses whitespace so
// that "La Ferme du Hayon SPRL" and "ferme du hayon" compare equal.
func NormalizeName(name string) string {
	decomposed := norm.NFD.String(strings.ToLower(name))
	var b strings.Builder
	b.Grow(len(decomposed))
	for _, r := range decomposed {
		if unicode.Is(unicode.Mn, r) {
			continue // combining mark left over from decomposition
		}
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		} else {
			b.WriteRune(' ')
		}
	}

	words := strings.Fields(b.String())
	out := words[:0]
	for _, w := range words {
		switch w {
		case "sprl", "srl", "sa", "sc", "asbl", "sas", "sarl":
			continue
		}
		out = append(out, w)
	}
	return strings.Join(out, " ")
}
