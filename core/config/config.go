package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// TelegramConfig holds Telegram bot settings.
type TelegramConfig struct {
	Token   string `yaml:"token" envconfig:"TELEGRAM_BOT_TOKEN"`
	AdminID int64  `yaml:"admin_id" envconfig:"TELEGRAM_ADMIN_ID"`
	RunMode string `yaml:"run_mode" envconfig:"TELEGRAM_RUN_MODE"`
	// LongPollTimeoutSeconds defines long polling timeout; 0 -> default
	LongPollTimeoutSeconds int `yaml:"longpoll_timeout_seconds" envconfig:"TELEGRAM_LONGPOLL_TIMEOUT_SECONDS"`
}

// WebhookConfig specifies webhook settings.
type WebhookConfig struct {
	URL    string `yaml:"url" envconfig:"WEBHOOK_URL"`
	Listen string `yaml:"listen" envconfig:"WEBHOOK_LISTEN"`
	Port   int    `yaml:"port" envconfig:"WEBHOOK_PORT"`
}

// DatabaseConfig points the catalog at its relational store.
// URL accepts postgres://, postgresql:// and sqlite:// schemes.
type DatabaseConfig struct {
	URL            string `yaml:"url" envconfig:"DATABASE_URL"`
	MaxConnections int    `yaml:"max_connections" envconfig:"DB_MAX_CONNECTIONS"`
	// DisableSeed skips inserting sample shoes into an empty catalog.
	DisableSeed bool `yaml:"disable_seed" envconfig:"DB_DISABLE_SEED"`
}

// LoggingConfig defines logging related configuration.
type LoggingConfig struct {
	Level       string `yaml:"level" envconfig:"LOG_LEVEL"`
	Format      string `yaml:"format" envconfig:"LOG_FORMAT"`
	KeysOrder   string `yaml:"keys_order"`
	DebugSample string `yaml:"debug_sample"`
	Dir         string `yaml:"dir" envconfig:"LOG_DIR"`
	BotFile     string `yaml:"bot_file" envconfig:"LOG_FILE"`
	// Profile indicates environment profile such as "debug" or "prod".
	Profile string `yaml:"profile" envconfig:"LOG_PROFILE"`
}

// ShopConfig carries storefront presentation settings.
type ShopConfig struct {
	Name string `yaml:"name" envconfig:"SHOP_NAME"`
	// Contact is the Telegram username buyers write to, without '@'.
	Contact string `yaml:"contact" envconfig:"SHOP_CONTACT"`
}

// MetricsConfig enables the Prometheus endpoint when Listen is set.
type MetricsConfig struct {
	Listen string `yaml:"listen" envconfig:"METRICS_LISTEN"`
}

const (
	// RunModeWebhook selects webhook mode for Telegram updates.
	RunModeWebhook = "webhook"
	// RunModeLongpoll selects long-polling mode for Telegram updates.
	RunModeLongpoll = "longpoll"
)

const (
	defaultShopName       = "DoomerSneakers"
	defaultShopContact    = "takar28"
	defaultMaxConnections = 5
)

// Config aggregates bot configuration.
type Config struct {
	Telegram TelegramConfig `yaml:"telegram"`
	Webhook  WebhookConfig  `yaml:"webhook"`
	Database DatabaseConfig `yaml:"database"`
	Logging  LoggingConfig  `yaml:"logging"`
	Shop     ShopConfig     `yaml:"shop"`
	Metrics  MetricsConfig  `yaml:"metrics"`

	// Warnings collects non-fatal problems found by Normalize. They are logged
	// once the logger is up.
	Warnings []string `yaml:"-" ignored:"true"`
}

// Error reports a configuration problem that prevents startup.
type Error struct {
	Field  string
	Reason string
}

func (e *Error) Error() string {
	return fmt.Sprintf("config: %s: %s", e.Field, e.Reason)
}

// Code satisfies the error-code convention used in handler logs.
func (e *Error) Code() string { return "CONFIG_ERROR" }

// Load reads an optional YAML file, a .env file in the working directory if
// present, and environment variables, in that order of precedence (env wins).
func Load(path string) (*Config, error) {
	var cfg Config

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read .env: %w", err)
	}

	if strings.TrimSpace(path) != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse YAML config: %w", err)
		}
	}
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process env: %w", err)
	}

	if err := Normalize(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Normalize validates required fields and applies defaults. Fatal problems are
// returned as *Error; a missing admin id only adds a warning.
func Normalize(cfg *Config) error {
	if cfg == nil {
		return &Error{Field: "config", Reason: "nil config"}
	}

	if strings.TrimSpace(cfg.Telegram.Token) == "" {
		return &Error{Field: "telegram.token", Reason: "TELEGRAM_BOT_TOKEN is required"}
	}
	if strings.TrimSpace(cfg.Database.URL) == "" {
		return &Error{Field: "database.url", Reason: "DATABASE_URL is required"}
	}
	if cfg.Telegram.AdminID == 0 {
		cfg.Warnings = append(cfg.Warnings, "TELEGRAM_ADMIN_ID is not set; admin features are disabled")
	}

	rm := strings.ToLower(strings.TrimSpace(cfg.Telegram.RunMode))
	if rm == "" || rm == "polling" {
		rm = RunModeLongpoll
	}
	switch rm {
	case RunModeWebhook:
		if strings.TrimSpace(cfg.Webhook.URL) == "" {
			return &Error{Field: "webhook.url", Reason: "required when telegram.run_mode is 'webhook'"}
		}
		if strings.TrimSpace(cfg.Webhook.Listen) == "" {
			return &Error{Field: "webhook.listen", Reason: "required when telegram.run_mode is 'webhook'"}
		}
		if cfg.Webhook.Port <= 0 {
			return &Error{Field: "webhook.port", Reason: "must be > 0 when telegram.run_mode is 'webhook'"}
		}
	case RunModeLongpoll:
		if cfg.Telegram.LongPollTimeoutSeconds < 0 {
			return &Error{Field: "telegram.longpoll_timeout_seconds", Reason: "must be >= 0"}
		}
	default:
		return &Error{Field: "telegram.run_mode", Reason: fmt.Sprintf("invalid value %q; allowed: webhook, longpoll", cfg.Telegram.RunMode)}
	}
	cfg.Telegram.RunMode = rm

	if cfg.Database.MaxConnections <= 0 {
		cfg.Database.MaxConnections = defaultMaxConnections
	}
	if strings.TrimSpace(cfg.Shop.Name) == "" {
		cfg.Shop.Name = defaultShopName
	}
	cfg.Shop.Contact = strings.TrimPrefix(strings.TrimSpace(cfg.Shop.Contact), "@")
	if cfg.Shop.Contact == "" {
		cfg.Shop.Contact = defaultShopContact
	}
	return nil
}
