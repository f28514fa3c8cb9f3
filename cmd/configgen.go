package cmd

import (
	"context"
	"fmt"

	"github.com/arnavk07/mocksmith/internal/config"
	"github.com/arnavk07/mocksmith/internal/database"
	"github.com/arnavk07/mocksmith/internal/schema"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var configOut string

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Emit per-table generator config files from the live schema",
	Long: `Introspect the database and write one JSON config file per table, with
generators guessed from column names and types. Edit the files and feed them
back through 'mocksmith fill --configs <dir>'.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		dbURL, err := cfg.GetDatabaseURL()
		if err != nil {
			return err
		}

		ctx := context.Background()
		adapter := database.NewAdapter(cfg.Database.Provider)
		if err := adapter.Connect(ctx, dbURL); err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer adapter.Close()

		tables, err := adapter.GetCurrentSchema(ctx)
		if err != nil {
			return fmt.Errorf("failed to introspect schema: %w", err)
		}

		out := configOut
		if out == "" {
			out = cfg.ConfigsPath
		}

		written, err := schema.WriteTableConfigs(tables, out, cfg.Generate)
		if err != nil {
			return err
		}

		for _, path := range written {
			color.Green("  ✅ %s", path)
		}
		color.Cyan("📦 Wrote %d table config(s) to %s", len(written), out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.Flags().StringVar(&configOut, "out", "", "Output directory (default configs_path from config)")
}
