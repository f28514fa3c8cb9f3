package cmd

import (
	"context"
	"fmt"

	"github.com/arnavk07/mocksmith/internal/config"
	"github.com/arnavk07/mocksmith/internal/database"
	"github.com/arnavk07/mocksmith/internal/types"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var inspectTable string

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Print the introspected database schema",
	Long:  `Connect to the configured database and print tables, columns, constraints and foreign keys.`,
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

		if len(tables) == 0 {
			color.Yellow("⚠️  No tables found")
			return nil
		}

		for _, table := range tables {
			if inspectTable != "" && table.Name != inspectTable {
				continue
			}
			printTable(table)
		}
		return nil
	},
}

func printTable(table types.SchemaTable) {
	color.Cyan("📋 %s", table.Name)
	for _, col := range table.Columns {
		flags := ""
		if col.IsPrimary {
			flags += " PK"
		}
		if col.IsUnique {
			flags += " UNIQUE"
		}
		if col.IsAutoIncrement {
			flags += " AUTO"
		}
		if !col.Nullable {
			flags += " NOT NULL"
		}
		fmt.Printf("  %-24s %-16s%s\n", col.Name, col.Type, flags)
	}
	for _, fk := range table.ForeignKeys() {
		color.White("  ↳ %s → %s.%s (on delete %s)", fk.Column, fk.RefTable, fk.RefColumn, fk.OnDeleteAction)
	}
	fmt.Println()
}

func init() {
	rootCmd.AddCommand(inspectCmd)
	inspectCmd.Flags().StringVar(&inspectTable, "table", "", "Only show this table")
}
