package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/m3rciful/sneakerbot/core/buildinfo"
	coreconfig "github.com/m3rciful/sneakerbot/core/config"
	"github.com/m3rciful/sneakerbot/core/database"
	"github.com/m3rciful/sneakerbot/core/logger"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	ConfigPath string
}

// App bundles what the CLI needs to run or migrate the bot.
type App struct {
	Name string
	// ConfigEnvVar names the variable holding the default --config value.
	ConfigEnvVar string
	Migrations   fs.FS
	Run          Options
}

// NewRootCommand builds the CLI. Without a subcommand it runs the bot.
func NewRootCommand(app App) *cobra.Command {
	opts := &RootOptions{}
	env := app.ConfigEnvVar
	if env == "" {
		env = "CONFIG_PATH"
	}

	cmd := &cobra.Command{
		Use:           app.Name,
		Short:         "Telegram storefront bot",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return Run(opts.ConfigPath, app.Run)
		},
	}
	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", os.Getenv(env), "path to YAML config (env: "+env+")")

	cmd.AddCommand(newRunCommand(opts, app))
	cmd.AddCommand(newMigrateCommand(opts, app))
	cmd.AddCommand(newVersionCommand())
	return cmd
}

func newRunCommand(opts *RootOptions, app App) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run the bot until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return Run(opts.ConfigPath, app.Run)
		},
	}
}

func newMigrateCommand(opts *RootOptions, app App) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations and exit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Migrations == nil {
				return errors.New("no migrations bundled")
			}
			load := app.Run.LoadConfig
			if load == nil {
				load = coreconfig.Load
			}
			cfg, err := load(opts.ConfigPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if err := logger.InitLogger(cfg); err != nil {
				return fmt.Errorf("init logger: %w", err)
			}
			defer func() { _ = logger.Shutdown() }()

			db, err := database.Connect(cfg.Database)
			if err != nil {
				return err
			}
			defer db.Close()
			if err := database.RunMigrations(db, app.Migrations); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "migrations applied")
			return nil
		},
	}
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), buildinfo.String())
		},
	}
}
