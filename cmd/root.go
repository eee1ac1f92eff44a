package cmd

import (
	"context"
	"fmt"
	"os"

	"restaurante/bot"
	"restaurante/config"
	"restaurante/db"
	"restaurante/services"
	"restaurante/tui"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	dbURL       string
	autoMigrate bool
)

var rootCmd = &cobra.Command{
	Use:   "restaurante",
	Short: "Restaurant management: clients, ingredients, menus and orders",
	Long: `restaurante manages the clients, ingredients, menus and orders of a
restaurant, stored in PostgreSQL.

Without a subcommand it opens the interactive terminal UI.

Examples:

  restaurante migrate
  restaurante
  restaurante list menus
  restaurante serve
`,
	SilenceUsage: true,
	RunE:         runTUI,
}

// Execute runs the CLI
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbURL, "db", "", "Database connection URL (overrides DATABASE_URL)")
	rootCmd.PersistentFlags().BoolVar(&autoMigrate, "auto-migrate", false, "Apply migrations before running (also AUTO_MIGRATE=1)")

	rootCmd.AddCommand(tuiCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(stockCmd)
}

// connect loads the configuration, opens the pool and applies migrations when
// asked to. Callers must defer db.Close().
func connect(ctx context.Context) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if dbURL != "" {
		cfg.DB.URL = dbURL
	}
	if err := db.Init(ctx, cfg.DB); err != nil {
		return nil, fmt.Errorf("db: %w", err)
	}
	if autoMigrate || cfg.AutoMigrate {
		if err := db.ApplyMigrations(ctx, false); err != nil {
			db.Close()
			return nil, fmt.Errorf("migrate: %w", err)
		}
	}
	return cfg, nil
}

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Open the interactive terminal UI",
	RunE:  runTUI,
}

func runTUI(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfg, err := connect(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	notifier, err := bot.New(cfg.Telegram)
	if err != nil {
		return err
	}
	return tui.Run(ctx, tui.DefaultResources(services.PoolStore{}, notifier))
}
