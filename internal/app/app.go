// Package app assembles the storefront bot from the core runtime and the shop.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"
	tele "gopkg.in/telebot.v4"

	"github.com/m3rciful/sneakerbot/core/bootstrap"
	corecmd "github.com/m3rciful/sneakerbot/core/cmd"
	coreconfig "github.com/m3rciful/sneakerbot/core/config"
	"github.com/m3rciful/sneakerbot/core/logger"
	coretelegram "github.com/m3rciful/sneakerbot/core/telegram"
	"github.com/m3rciful/sneakerbot/internal/catalog"
	"github.com/m3rciful/sneakerbot/internal/session"
	"github.com/m3rciful/sneakerbot/internal/shop"
)

// App owns the infrastructure the bot runs on.
type App struct {
	cfg   *coreconfig.Config
	db    *sqlx.DB
	store catalog.Store
	bot   *tele.Bot
}

// New wires an app from already initialized parts. db may be nil.
func New(cfg *coreconfig.Config, db *sqlx.DB, store catalog.Store, bot *tele.Bot) *App {
	return &App{cfg: cfg, db: db, store: store, bot: bot}
}

// Bootstrap connects, migrates and seeds the catalog database and builds the
// bot client.
func Bootstrap(ctx context.Context, cfg *coreconfig.Config) (corecmd.TelegramApp, error) {
	res, err := bootstrap.Run(ctx, bootstrap.Options{
		Config:     cfg,
		Migrations: catalog.Migrations,
		Seeders: []bootstrap.Seeder{
			catalog.SampleSeeder{Disabled: cfg.Database.DisableSeed},
		},
	})
	if err != nil {
		return nil, err
	}

	bot, err := coretelegram.NewBot(cfg)
	if err != nil {
		_ = res.DB.Close()
		return nil, err
	}
	return New(cfg, res.DB, catalog.NewSQLStore(res.DB), bot), nil
}

// TelegramRunOptions builds the shop and its routes.
func (a *App) TelegramRunOptions() (coretelegram.RunOptions, error) {
	reg := coretelegram.NewRegistry()
	s := shop.New(shop.Config{
		AdminID: a.cfg.Telegram.AdminID,
		Name:    a.cfg.Shop.Name,
		Contact: a.cfg.Shop.Contact,
	}, a.store, session.NewMemoryStore(), shop.NewTelebotMessenger(a.bot))
	if err := s.Register(reg); err != nil {
		return coretelegram.RunOptions{}, fmt.Errorf("app: %w", err)
	}

	return coretelegram.RunOptions{
		Config:      a.cfg,
		Registry:    reg,
		Bot:         a.bot,
		Middlewares: coretelegram.DefaultMiddlewares(),
		Routes:      s.Routes(reg),
		OnStart:     a.logCatalog,
	}, nil
}

func (a *App) logCatalog(ctx context.Context, _ coretelegram.Runtime) error {
	n, err := a.store.Count(ctx)
	if err != nil {
		return fmt.Errorf("app: catalog unavailable: %w", err)
	}
	logger.Info(ctx, "shop", "catalog.ready",
		slog.Int("shoes", n),
		slog.Bool("admin_configured", a.cfg.Telegram.AdminID != 0),
	)
	return nil
}

// Close releases the database.
func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}
