package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/Rana718/busseed/internal/config"
	"github.com/Rana718/busseed/internal/database"
	"github.com/Rana718/busseed/internal/database/drivers"
	"github.com/Rana718/busseed/internal/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func RegisterBaseCommands() {
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(filtersCmd)
	rootCmd.AddCommand(exportCmd)
}

// loadConfig reads the config, applies the persistent flag overrides,
// validates it and sets up logging.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if provider, _ := cmd.Flags().GetString("provider"); provider != "" {
		cfg.Database.Provider = strings.ToLower(provider)
		if !viper.IsSet("database.path") {
			cfg.Database.Path = config.DefaultPathFor(cfg.Database.Provider)
		}
	}
	if path, _ := cmd.Flags().GetString("db"); path != "" {
		cfg.SetPath(path)
	}
	if table, _ := cmd.Flags().GetString("table"); table != "" {
		cfg.Table = table
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	logging.Setup(cfg.Log.Level, cfg.Log.Format)
	return cfg, nil
}

// connect opens the configured database. Callers close the adapter.
func connect(ctx context.Context, cfg *config.Config) (database.DatabaseAdapter, error) {
	adapter, err := drivers.NewAdapter(cfg.Database.Provider)
	if err != nil {
		return nil, err
	}

	dbURL, err := cfg.GetDatabaseURL()
	if err != nil {
		return nil, err
	}

	if err := adapter.Connect(ctx, dbURL); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := adapter.Ping(ctx); err != nil {
		adapter.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return adapter, nil
}
