package catalog

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	coreconfig "github.com/m3rciful/sneakerbot/core/config"
	"github.com/m3rciful/sneakerbot/core/database"
)

func newSQLiteStore(t *testing.T) *SQLStore {
	t.Helper()
	url := "sqlite://" + filepath.Join(t.TempDir(), "catalog.db")
	db, err := database.Connect(coreconfig.DatabaseConfig{URL: url})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, database.RunMigrations(db, Migrations))
	return NewSQLStore(db)
}

func insertAll(t *testing.T, s Store, shoes ...NewShoe) []int64 {
	t.Helper()
	ids := make([]int64, 0, len(shoes))
	for _, shoe := range shoes {
		id, err := s.Insert(context.Background(), shoe)
		require.NoError(t, err)
		ids = append(ids, id)
	}
	return ids
}

func TestSQLStoreInsertRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := newSQLiteStore(t)
	img := "https://example.com/a.jpg"

	ids := insertAll(t, s,
		NewShoe{Name: "Air Max", Brand: "Nike", Size: 42.5, Price: 4500},
		NewShoe{Name: "Ultraboost", Brand: "Adidas", Size: 39.5, Price: 3800, Image: &img},
	)
	require.Len(t, ids, 2)
	assert.Less(t, ids[0], ids[1])

	got, err := s.Query(ctx, Filter{})
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, Shoe{ID: ids[0], Name: "Air Max", Brand: "Nike", Size: 42.5, Price: 4500}, got[0])
	assert.Nil(t, got[0].Image)
	require.NotNil(t, got[1].Image)
	assert.Equal(t, img, *got[1].Image)
}

func TestSQLStoreFilterIsConjunctive(t *testing.T) {
	ctx := context.Background()
	s := newSQLiteStore(t)
	insertAll(t, s,
		NewShoe{Name: "A", Brand: "Nike", Size: 42, Price: 1},
		NewShoe{Name: "B", Brand: "Nike", Size: 43, Price: 1},
		NewShoe{Name: "C", Brand: "Adidas", Size: 42, Price: 1},
	)

	got, err := s.Query(ctx, Filter{Brands: []string{"Nike"}, Sizes: []float64{42}})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "A", got[0].Name)

	got, err = s.Query(ctx, Filter{Sizes: []float64{42}})
	require.NoError(t, err)
	assert.Len(t, got, 2)

	got, err = s.Query(ctx, Filter{Brands: []string{"Nike", "Adidas"}})
	require.NoError(t, err)
	assert.Len(t, got, 3)

	got, err = s.Query(ctx, Filter{Brands: []string{"nike"}})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSQLStoreFractionalSizeMatches(t *testing.T) {
	ctx := context.Background()
	s := newSQLiteStore(t)
	insertAll(t, s, NewShoe{Name: "A", Brand: "Nike", Size: 42.3, Price: 1})

	sizes, err := s.ListSizes(ctx)
	require.NoError(t, err)
	require.Len(t, sizes, 1)

	got, err := s.Query(ctx, Filter{Sizes: []float64{42.3}})
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestSQLStoreDistinctLists(t *testing.T) {
	ctx := context.Background()
	s := newSQLiteStore(t)
	insertAll(t, s,
		NewShoe{Name: "A", Brand: "Puma", Size: 43, Price: 1},
		NewShoe{Name: "B", Brand: "Adidas", Size: 41, Price: 1},
		NewShoe{Name: "C", Brand: "Puma", Size: 41, Price: 1},
	)

	brands, err := s.ListBrands(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Adidas", "Puma"}, brands)

	sizes, err := s.ListSizes(ctx)
	require.NoError(t, err)
	assert.Equal(t, []float64{41, 43}, sizes)
}

func TestSQLStoreEmptyLists(t *testing.T) {
	ctx := context.Background()
	s := newSQLiteStore(t)

	brands, err := s.ListBrands(ctx)
	require.NoError(t, err)
	assert.Empty(t, brands)

	n, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestSQLStoreDelete(t *testing.T) {
	ctx := context.Background()
	s := newSQLiteStore(t)
	ids := insertAll(t, s, NewShoe{Name: "A", Brand: "Nike", Size: 42, Price: 1})

	require.NoError(t, s.Delete(ctx, ids[0]))
	err := s.Delete(ctx, ids[0])
	assert.ErrorIs(t, err, ErrNotFound)

	var storeErr *StoreError
	assert.False(t, errors.As(err, &storeErr))

	n, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestSQLStoreFailureIsStoreError(t *testing.T) {
	s := newSQLiteStore(t)
	require.NoError(t, s.db.Close())

	_, err := s.Query(context.Background(), Filter{})
	var storeErr *StoreError
	require.ErrorAs(t, err, &storeErr)
	assert.Equal(t, "query", storeErr.Op)
	assert.Equal(t, "STORE_ERROR", storeErr.Code())
}

func TestBuildQuery(t *testing.T) {
	q, args, err := buildQuery(Filter{})
	require.NoError(t, err)
	assert.Equal(t, "SELECT id, name, brand, size, price, image FROM shoes ORDER BY id", q)
	assert.Empty(t, args)

	q, args, err = buildQuery(Filter{Brands: []string{"Nike", "Puma"}, Sizes: []float64{42}})
	require.NoError(t, err)
	assert.Equal(t, "SELECT id, name, brand, size, price, image FROM shoes WHERE brand IN (?, ?) AND size IN (?) ORDER BY id", q)
	assert.Equal(t, []any{"Nike", "Puma", float64(42)}, args)
}

func TestSampleSeeder(t *testing.T) {
	ctx := context.Background()
	s := newSQLiteStore(t)

	require.NoError(t, SampleSeeder{}.Seed(ctx, s.db))
	n, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, len(SampleShoes), n)

	// A second run leaves the catalog alone.
	require.NoError(t, SampleSeeder{}.Seed(ctx, s.db))
	n, err = s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, len(SampleShoes), n)

	shoes, err := s.Query(ctx, Filter{Brands: []string{"Reebok"}})
	require.NoError(t, err)
	require.Len(t, shoes, 1)
	assert.Nil(t, shoes[0].Image)
}

func TestSampleSeederDisabled(t *testing.T) {
	s := newSQLiteStore(t)
	require.NoError(t, SampleSeeder{Disabled: true}.Seed(context.Background(), s.db))
	n, err := s.Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}
