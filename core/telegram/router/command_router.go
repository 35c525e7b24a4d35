package router

import (
	"log/slog"
	"time"

	"github.com/m3rciful/sneakerbot/core/logger"
	tg "github.com/m3rciful/sneakerbot/core/telegram"
	"github.com/m3rciful/sneakerbot/core/telegram/commands"
	"github.com/m3rciful/sneakerbot/core/telegram/middleware"

	tele "gopkg.in/telebot.v4"
)

// CommandRouteOptions carries the capability gate for admin-only commands.
type CommandRouteOptions struct {
	Admin middleware.AdminOptions
}

// CommandRoutes returns one route per registered command, sorted by name.
// Aliases are not routed here; TextRoutes resolves them.
func CommandRoutes(reg *tg.Registry, opts CommandRouteOptions) []tg.Route {
	if reg == nil {
		return nil
	}
	gate := middleware.AdminOnlyMiddleware(opts.Admin)

	names := reg.CommandNames()
	routes := make([]tg.Route, 0, len(names))
	for _, name := range names {
		cmd, _ := reg.Command(name)
		routes = append(routes, tg.Route{
			Endpoint: name,
			Handler:  commandHandler(normalizeHandlerName(name), cmd, gate),
		})
	}
	logger.LogEvent(logger.Background(), logger.TWire, slog.LevelInfo, "complete",
		slog.Int("commands", len(routes)),
		slog.Int("callbacks", len(reg.ListCallbacks())),
	)
	return routes
}

func commandHandler(name string, cmd commands.Command, gate tele.MiddlewareFunc) tele.HandlerFunc {
	h := cmd.Handler
	if cmd.AdminOnly {
		h = gate(h)
	}
	summarized := func(c tele.Context) error {
		return handleWithSummary(c, name, time.Now(), func() error { return h(c) })
	}
	return middleware.RecoverMiddleware(middleware.LoggerMiddleware(summarized))
}
