package bloom

import (
	"fmt"
	"math"

	"github.com/bits-and-blooms/bloom/v3"
)

const (
	// memory budget of a persisted filter and the fixed header it carries
	maxMemoryBytes = 8156
	headerBytes    = 76
)

// Filter is a probabilistic set of identities registered in one tournament.
// Test never reports a false negative, so a negative answer lets callers skip
// the authoritative lookup.
type Filter struct {
	inner *bloom.BloomFilter
}

// ValidPrecision reports whether p is an acceptable false-positive rate.
func ValidPrecision(p float64) bool {
	return p > 0 && p <= 1 && !math.IsNaN(p)
}

// MaxItems is the largest number of items a filter can hold at precision p
// without exceeding the memory budget.
func MaxItems(precision float64) uint64 {
	slices := math.Ceil(math.Log2(1 / precision))
	if slices < 1 {
		slices = 1
	}
	return uint64(math.Floor(float64(maxMemoryBytes-headerBytes) * 8 * math.Ln2 / slices))
}

// New sizes a filter for capacity items at the given false-positive rate.
func New(capacity uint64, precision float64) (*Filter, error) {
	if !ValidPrecision(precision) {
		return nil, fmt.Errorf("invalid false precision %v", precision)
	}
	if capacity == 0 {
		capacity = 1
	}
	return &Filter{inner: bloom.NewWithEstimates(uint(capacity), precision)}, nil
}

// Decode restores a filter persisted with Encode.
func Decode(data []byte) (*Filter, error) {
	inner := &bloom.BloomFilter{}
	if err := inner.GobDecode(data); err != nil {
		return nil, fmt.Errorf("failed to decode bloom filter: %w", err)
	}
	return &Filter{inner: inner}, nil
}

func (f *Filter) Encode() ([]byte, error) {
	return f.inner.GobEncode()
}

// MaybeContains is false only if key was never added.
func (f *Filter) MaybeContains(key []byte) bool {
	return f.inner.Test(key)
}

func (f *Filter) Add(key []byte) {
	f.inner.Add(key)
}

// Cap returns the size of the underlying bit set.
func (f *Filter) Cap() uint {
	return f.inner.Cap()
}
