package catalog

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"

	"github.com/m3rciful/sneakerbot/core/logger"
	"github.com/m3rciful/sneakerbot/core/telegram/format"
)

// SampleShoes is the demo assortment inserted into an empty catalog.
var SampleShoes = []NewShoe{
	{Name: "Nike Air Max", Brand: "Nike", Size: 42.5, Price: 4500, Image: format.Optional("https://i.ibb.co/23ZMzTj/image.jpg")},
	{Name: "Adidas Ultraboost", Brand: "Adidas", Size: 39.5, Price: 3800, Image: format.Optional("https://i.ibb.co/abc123/adidas.jpg")},
	{Name: "Puma RS-X", Brand: "Puma", Size: 40.5, Price: 3200, Image: format.Optional("https://i.ibb.co/xyz456/puma.jpg")},
	{Name: "New Balance 574", Brand: "New Balance", Size: 41.0, Price: 2900, Image: format.Optional("https://i.ibb.co/def789/nb.jpg")},
	{Name: "Reebok Classic", Brand: "Reebok", Size: 43.0, Price: 2700},
}

// SampleSeeder fills an empty catalog with SampleShoes. A non-empty catalog
// is left untouched.
type SampleSeeder struct {
	Disabled bool
}

// Seed inserts the samples through a SQLStore on db.
func (s SampleSeeder) Seed(ctx context.Context, db *sqlx.DB) error {
	if s.Disabled {
		logger.SEED.Info("seed skipped", slog.String("event", "seed"), slog.String("status", "skip"), slog.String("reason", "disabled"))
		return nil
	}
	return SeedStore(ctx, NewSQLStore(db))
}

// SeedStore inserts SampleShoes into store when it is empty.
func SeedStore(ctx context.Context, store Store) error {
	n, err := store.Count(ctx)
	if err != nil {
		return fmt.Errorf("seed: count: %w", err)
	}
	if n > 0 {
		logger.SEED.Info("seed skipped",
			slog.String("event", "seed"),
			slog.String("status", "skip"),
			slog.Int("rows", n),
		)
		return nil
	}
	for _, shoe := range SampleShoes {
		if _, err := store.Insert(ctx, shoe); err != nil {
			return fmt.Errorf("seed %q: %w", shoe.Name, err)
		}
	}
	logger.SEED.Info("sample catalog inserted",
		slog.String("event", "seed"),
		slog.String("status", "ok"),
		slog.Int("rows", len(SampleShoes)),
	)
	return nil
}
