package logger

import (
	"log/slog"
	"strings"
)

// Outcomes accepted in the outcome field; other values are dropped.
var outcomes = map[string]bool{
	"ok":      true,
	"fail":    true,
	"skip":    true,
	"denied":  true,
	"timeout": true,
}

func levelName(l slog.Level) string {
	switch {
	case l >= slog.LevelError:
		return "ERROR"
	case l >= slog.LevelWarn:
		return "WARN"
	case l >= slog.LevelInfo:
		return "INFO"
	}
	return "DEBUG"
}

func parseLevel(raw string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

// defaultKeyOrder puts identity first, then the shop fields, then errors.
// Keys missing here follow in alphabetical order.
var defaultKeyOrder = []string{
	"ts",
	"level",
	"component",
	"event",
	"status",
	"rid",
	"rid_full",
	"update_id",
	"user_id",
	"chat_id",
	"handler",
	"action",
	"op",
	"outcome",
	"duration_ms",
	"menu",
	"step",
	"page",
	"pages",
	"total",
	"shoe_id",
	"brands",
	"count",
	"mode",
	"listen",
	"public_url",
	"driver",
	"db",
	"err",
	"err_code",
	"err_kind",
	"reason",
	"cause",
	"ts_unix_nano",
}
