package catalog

import (
	"context"
	"slices"
	"sync"
)

// MemoryStore is an in-process Store used by tests and dry runs.
type MemoryStore struct {
	mu     sync.Mutex
	nextID int64
	rows   []Shoe
	// Fail, when set, is returned by every operation.
	Fail error
}

// NewMemoryStore returns a store pre-filled with shoes, assigning ids in order.
func NewMemoryStore(shoes ...NewShoe) *MemoryStore {
	m := &MemoryStore{}
	for _, s := range shoes {
		m.insert(s)
	}
	return m
}

func (m *MemoryStore) insert(in NewShoe) int64 {
	m.nextID++
	m.rows = append(m.rows, Shoe{
		ID:    m.nextID,
		Name:  in.Name,
		Brand: in.Brand,
		Size:  NormalizeSize(in.Size),
		Price: in.Price,
		Image: in.Image,
	})
	return m.nextID
}

func (m *MemoryStore) fail(op string) error {
	if m.Fail != nil {
		return &StoreError{Op: op, Err: m.Fail}
	}
	return nil
}

// ListBrands returns distinct brands in ascending order.
func (m *MemoryStore) ListBrands(context.Context) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("list_brands"); err != nil {
		return nil, err
	}
	out := []string{}
	for _, r := range m.rows {
		out = append(out, r.Brand)
	}
	slices.Sort(out)
	return slices.Compact(out), nil
}

// ListSizes returns distinct sizes in ascending order.
func (m *MemoryStore) ListSizes(context.Context) ([]float64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("list_sizes"); err != nil {
		return nil, err
	}
	out := []float64{}
	for _, r := range m.rows {
		out = append(out, r.Size)
	}
	slices.Sort(out)
	return slices.Compact(out), nil
}

// Query returns shoes matching f ordered by id.
func (m *MemoryStore) Query(_ context.Context, f Filter) ([]Shoe, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("query"); err != nil {
		return nil, err
	}
	out := []Shoe{}
	for _, r := range m.rows {
		if f.Match(r) {
			out = append(out, r)
		}
	}
	return out, nil
}

// Insert stores s and returns its id.
func (m *MemoryStore) Insert(_ context.Context, s NewShoe) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("insert"); err != nil {
		return 0, err
	}
	return m.insert(s), nil
}

// Delete removes the shoe with id or returns ErrNotFound.
func (m *MemoryStore) Delete(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("delete"); err != nil {
		return err
	}
	i := slices.IndexFunc(m.rows, func(r Shoe) bool { return r.ID == id })
	if i < 0 {
		return ErrNotFound
	}
	m.rows = slices.Delete(m.rows, i, i+1)
	return nil
}

// Count returns the number of stored shoes.
func (m *MemoryStore) Count(context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("count"); err != nil {
		return 0, err
	}
	return len(m.rows), nil
}
