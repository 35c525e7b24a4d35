package catalog

import "context"

// Store is the catalog persistence port.
type Store interface {
	// ListBrands returns distinct brands in ascending order.
	ListBrands(ctx context.Context) ([]string, error)
	// ListSizes returns distinct sizes in ascending order.
	ListSizes(ctx context.Context) ([]float64, error)
	// Query returns the shoes matching f ordered by id.
	Query(ctx context.Context, f Filter) ([]Shoe, error)
	// Insert stores s and returns its id.
	Insert(ctx context.Context, s NewShoe) (int64, error)
	// Delete removes the shoe with id or returns ErrNotFound.
	Delete(ctx context.Context, id int64) error
	// Count returns the number of stored shoes.
	Count(ctx context.Context) (int, error)
}
