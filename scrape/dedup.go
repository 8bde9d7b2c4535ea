package scrape

import (
	"strconv"

	"github.com/cespare/xxhash/v2"
	"github.com/lmertens/annuaire/bloom"
)

// Index tracks place refs already processed during a run. A bloom filter
// answers the common miss case cheaply and an exact set backs it up, so
// membership answers are never wrong.
type Index struct {
	filter *bloom.Filter
	seen   map[string]struct{}
}

// NewIndex creates an Index sized for the expected number of refs.
func NewIndex(expected uint) *Index {
	if expected == 0 {
		expected = 1
	}
	return &Index{
		filter: bloom.NewFilter(expected, 0.01),
		seen:   make(map[string]struct{}),
	}
}

// Seen reports whether the ref has been added to the index.
func (idx *Index) Seen(ref string) bool {
	if !idx.filter.Test(ref) {
		return false
	}
	_, ok := idx.seen[ref]
	return ok
}

// Add records the ref in the index.
func (idx *Index) Add(ref string) {
	idx.filter.Add(ref)
	idx.seen[ref] = struct{}{}
}

// Len returns the number of refs recorded.
func (idx *Index) Len() int {
	return len(idx.seen)
}

// Fingerprint computes a stable content hash over the fields of a place
// that the Places API can change between runs. A changed fingerprint on a
// known ref means the listing was updated upstream.
func Fingerprint(name, address string, rating float64, reviews int) string {
	h := xxhash.New()
	h.WriteString(name)
	h.WriteString("\x00")
	h.WriteString(address)
	h.WriteString("\x00")
	h.WriteString(strconv.FormatFloat(rating, 'f', -1, 64))
	h.WriteString("\x00")
	h.WriteString(strconv.Itoa(reviews))
	return strconv.FormatUint(h.Sum64(), 16)
}
