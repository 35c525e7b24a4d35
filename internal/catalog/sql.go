package catalog

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/m3rciful/sneakerbot/core/logger"
	"github.com/m3rciful/sneakerbot/core/metrics"
)

const shoeColumns = "id, name, brand, size, price, image"

// SQLStore implements Store on top of sqlx. Queries use '?' placeholders and
// are rebound for the connected driver.
type SQLStore struct {
	db *sqlx.DB
}

// NewSQLStore wraps an open database handle.
func NewSQLStore(db *sqlx.DB) *SQLStore {
	return &SQLStore{db: db}
}

// ListBrands returns distinct brands in ascending order.
func (s *SQLStore) ListBrands(ctx context.Context) (brands []string, err error) {
	defer observe(ctx, "list_brands", time.Now(), &err)
	brands = []string{}
	if err = s.db.SelectContext(ctx, &brands, "SELECT DISTINCT brand FROM shoes ORDER BY brand"); err != nil {
		return nil, wrap("list_brands", err)
	}
	return brands, nil
}

// ListSizes returns distinct sizes in ascending order.
func (s *SQLStore) ListSizes(ctx context.Context) (sizes []float64, err error) {
	defer observe(ctx, "list_sizes", time.Now(), &err)
	sizes = []float64{}
	if err = s.db.SelectContext(ctx, &sizes, "SELECT DISTINCT size FROM shoes ORDER BY size"); err != nil {
		return nil, wrap("list_sizes", err)
	}
	return normalizeSizes(sizes), nil
}

// Query returns shoes matching f ordered by id.
func (s *SQLStore) Query(ctx context.Context, f Filter) (shoes []Shoe, err error) {
	defer observe(ctx, "query", time.Now(), &err)

	query, args, err := buildQuery(f)
	if err != nil {
		return nil, wrap("query", err)
	}
	shoes = []Shoe{}
	if err = s.db.SelectContext(ctx, &shoes, s.db.Rebind(query), args...); err != nil {
		return nil, wrap("query", err)
	}
	for i := range shoes {
		shoes[i].Size = NormalizeSize(shoes[i].Size)
	}
	return shoes, nil
}

func buildQuery(f Filter) (string, []any, error) {
	var (
		conds []string
		args  []any
	)
	if len(f.Brands) > 0 {
		conds = append(conds, "brand IN (?)")
		args = append(args, f.Brands)
	}
	if len(f.Sizes) > 0 {
		conds = append(conds, "size IN (?)")
		args = append(args, normalizeSizes(f.Sizes))
	}

	var b strings.Builder
	b.WriteString("SELECT " + shoeColumns + " FROM shoes")
	if len(conds) > 0 {
		b.WriteString(" WHERE ")
		b.WriteString(strings.Join(conds, " AND "))
	}
	b.WriteString(" ORDER BY id")
	if len(args) == 0 {
		return b.String(), nil, nil
	}
	return sqlx.In(b.String(), args...)
}

// Insert stores a shoe inside a transaction and returns the assigned id.
func (s *SQLStore) Insert(ctx context.Context, in NewShoe) (id int64, err error) {
	defer observe(ctx, "insert", time.Now(), &err)

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, wrap("insert", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	query := s.db.Rebind("INSERT INTO shoes (name, brand, size, price, image) VALUES (?, ?, ?, ?, ?) RETURNING id")
	if err = tx.QueryRowxContext(ctx, query, in.Name, in.Brand, NormalizeSize(in.Size), in.Price, in.Image).Scan(&id); err != nil {
		return 0, wrap("insert", err)
	}
	if err = tx.Commit(); err != nil {
		return 0, wrap("insert", err)
	}
	return id, nil
}

// Delete removes the shoe with id. Missing rows yield ErrNotFound.
func (s *SQLStore) Delete(ctx context.Context, id int64) (err error) {
	defer observe(ctx, "delete", time.Now(), &err)

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return wrap("delete", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	res, err := tx.ExecContext(ctx, s.db.Rebind("DELETE FROM shoes WHERE id = ?"), id)
	if err != nil {
		return wrap("delete", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return wrap("delete", err)
	}
	if n == 0 {
		err = ErrNotFound
		return err
	}
	if err = tx.Commit(); err != nil {
		return wrap("delete", err)
	}
	return nil
}

// Count returns the number of stored shoes.
func (s *SQLStore) Count(ctx context.Context) (n int, err error) {
	defer observe(ctx, "count", time.Now(), &err)
	if err = s.db.GetContext(ctx, &n, "SELECT COUNT(*) FROM shoes"); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, nil
		}
		return 0, wrap("count", err)
	}
	return n, nil
}

func observe(ctx context.Context, op string, start time.Time, errp *error) {
	err := *errp
	if errors.Is(err, ErrNotFound) {
		err = nil
	}
	metrics.Default().StoreTotal.WithLabelValues(op, metrics.Outcome(err)).Inc()
	attrs := []slog.Attr{
		slog.String("op", op),
		slog.String("status", metrics.Outcome(err)),
		slog.Duration("duration", logger.RoundMS(time.Since(start))),
	}
	if err != nil {
		attrs = append(attrs, slog.String("err", logger.SanitizeLimit(err.Error(), 256)))
		logger.Error(ctx, "catalog", "store."+op, attrs...)
		return
	}
	logger.Debug(ctx, "catalog", "store."+op, attrs...)
}
