package session

import (
	"slices"
	"strconv"

	"github.com/m3rciful/sneakerbot/internal/catalog"
)

// Filter holds the brands and sizes a user narrowed the catalog to, in the
// order they were selected.
type Filter struct {
	Brands []string
	Sizes  []float64
}

// ToggleBrand adds brand when absent and removes it otherwise. It reports
// whether the brand is selected afterwards.
func (f *Filter) ToggleBrand(brand string) bool {
	if i := slices.Index(f.Brands, brand); i >= 0 {
		f.Brands = slices.Delete(f.Brands, i, i+1)
		return false
	}
	f.Brands = append(f.Brands, brand)
	return true
}

// ToggleSize adds size when absent and removes it otherwise. It reports
// whether the size is selected afterwards.
func (f *Filter) ToggleSize(size float64) bool {
	size = catalog.NormalizeSize(size)
	if i := slices.Index(f.Sizes, size); i >= 0 {
		f.Sizes = slices.Delete(f.Sizes, i, i+1)
		return false
	}
	f.Sizes = append(f.Sizes, size)
	return true
}

// HasBrand reports whether brand is selected.
func (f Filter) HasBrand(brand string) bool {
	return slices.Contains(f.Brands, brand)
}

// HasSize reports whether size is selected.
func (f Filter) HasSize(size float64) bool {
	return slices.Contains(f.Sizes, catalog.NormalizeSize(size))
}

// Empty reports whether no constraint is selected.
func (f Filter) Empty() bool {
	return len(f.Brands) == 0 && len(f.Sizes) == 0
}

// Reset clears both sets.
func (f *Filter) Reset() {
	f.Brands = nil
	f.Sizes = nil
}

// Catalog returns a copy usable as a store query.
func (f Filter) Catalog() catalog.Filter {
	return catalog.Filter{
		Brands: slices.Clone(f.Brands),
		Sizes:  slices.Clone(f.Sizes),
	}
}

// ParseSizeToken parses the size carried by a size-filter button. Only '.'
// is accepted as the decimal separator, and the size must be finite and
// positive.
func ParseSizeToken(token string) (float64, error) {
	v, err := strconv.ParseFloat(token, 64)
	if err != nil {
		return 0, &ValidationError{Field: "size", Input: token, Reason: ReasonNotNumber}
	}
	return checkSize(v, token)
}
