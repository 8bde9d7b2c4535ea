// Package bloom provides probabilistic membership checks used to cheaply
// pre-screen place references before hitting exact storage.
package bloom

import "github.com/bits-and-blooms/bloom/v3"

// Filter wraps a Bloom filter keyed on place references.
// A negative Test answer is definitive; a positive answer must be confirmed
// against an exact index.
type Filter struct {
	f *bloom.BloomFilter
}

// NewFilter creates a new Bloom filter sized for n expected entries
// with the given false positive rate.
func NewFilter(n uint, fpRate float64) *Filter {
	return &Filter{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// Add records a place reference in the filter.
func (f *Filter) Add(ref string) {
	f.f.AddString(ref)
}

// Test returns true if the reference might have been added.
// False positives are possible; false negatives are not.
func (f *Filter) Test(ref string) bool {
	return f.f.TestString(ref)
}

// EstimatedCount returns the approximate number of entries in the filter.
func (f *Filter) EstimatedCount() uint {
	return uint(f.f.ApproximatedSize())
}
