package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterMatch(t *testing.T) {
	nike42 := Shoe{Brand: "Nike", Size: 42}
	nike43 := Shoe{Brand: "Nike", Size: 43}
	adidas42 := Shoe{Brand: "Adidas", Size: 42}
	f := Filter{Brands: []string{"Nike"}, Sizes: []float64{42}}

	assert.True(t, f.Match(nike42))
	assert.False(t, f.Match(nike43))
	assert.False(t, f.Match(adidas42))
	assert.True(t, Filter{}.Match(adidas42))
}

func TestMemoryStoreMirrorsSQLSemantics(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore(
		NewShoe{Name: "A", Brand: "Puma", Size: 43, Price: 1},
		NewShoe{Name: "B", Brand: "Adidas", Size: 41, Price: 1},
		NewShoe{Name: "C", Brand: "Puma", Size: 41, Price: 1},
	)

	brands, err := m.ListBrands(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Adidas", "Puma"}, brands)

	sizes, err := m.ListSizes(ctx)
	require.NoError(t, err)
	assert.Equal(t, []float64{41, 43}, sizes)

	got, err := m.Query(ctx, Filter{Brands: []string{"Puma"}})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, int64(1), got[0].ID)
	assert.Equal(t, int64(3), got[1].ID)

	require.NoError(t, m.Delete(ctx, 2))
	assert.ErrorIs(t, m.Delete(ctx, 2), ErrNotFound)

	id, err := m.Insert(ctx, NewShoe{Name: "D", Brand: "Nike", Size: 44, Price: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(4), id)
}

func TestMemoryStoreFail(t *testing.T) {
	m := NewMemoryStore()
	m.Fail = errors.New("disk on fire")
	_, err := m.Query(context.Background(), Filter{})
	var storeErr *StoreError
	require.ErrorAs(t, err, &storeErr)
	assert.Equal(t, "query", storeErr.Op)
}
