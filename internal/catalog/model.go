// Package catalog stores the shoes offered by the shop.
package catalog

import "slices"

// Shoe is one catalog row.
type Shoe struct {
	ID    int64   `db:"id"`
	Name  string  `db:"name"`
	Brand string  `db:"brand"`
	Size  float64 `db:"size"`
	Price int64   `db:"price"`
	// Image is an optional URL; nil when the row has none.
	Image *string `db:"image"`
}

// NewShoe carries the fields of a shoe that is not stored yet.
type NewShoe struct {
	Name  string  `db:"name"`
	Brand string  `db:"brand"`
	Size  float64 `db:"size"`
	Price int64   `db:"price"`
	Image *string `db:"image"`
}

// Filter narrows a query. An empty set places no constraint on its field;
// non-empty sets combine conjunctively.
type Filter struct {
	Brands []string
	Sizes  []float64
}

// Match reports whether s passes the filter.
func (f Filter) Match(s Shoe) bool {
	if len(f.Brands) > 0 && !slices.Contains(f.Brands, s.Brand) {
		return false
	}
	if len(f.Sizes) > 0 && !slices.Contains(normalizeSizes(f.Sizes), NormalizeSize(s.Size)) {
		return false
	}
	return true
}

// NormalizeSize rounds v to the single precision of the REAL column so values
// typed by users compare equal to values read back from the store.
func NormalizeSize(v float64) float64 {
	return float64(float32(v))
}

func normalizeSizes(in []float64) []float64 {
	out := make([]float64, len(in))
	for i, v := range in {
		out[i] = NormalizeSize(v)
	}
	return out
}
