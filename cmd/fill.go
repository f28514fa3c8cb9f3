package cmd

import (
	"context"
	"fmt"

	"github.com/arnavk07/mocksmith/internal/config"
	"github.com/arnavk07/mocksmith/internal/database"
	"github.com/arnavk07/mocksmith/internal/generator"
	"github.com/arnavk07/mocksmith/internal/inserter"
	"github.com/arnavk07/mocksmith/internal/schema"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	fillRows    int
	fillBatch   int
	fillTable   string
	fillConfigs string
	fillSeed    int64
	fillDryRun  bool
)

var fillCmd = &cobra.Command{
	Use:   "fill",
	Short: "Generate and insert fake data",
	Long: `Build generation models from the live schema (or from table config files),
generate relationship-aware fake rows and bulk-insert them in batches.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		ctx := context.Background()

		var adapter database.Adapter
		if !fillDryRun || fillConfigs == "" {
			dbURL, err := cfg.GetDatabaseURL()
			if err != nil {
				return err
			}
			adapter = database.NewAdapter(cfg.Database.Provider)
			if err := adapter.Connect(ctx, dbURL); err != nil {
				return fmt.Errorf("failed to connect to database: %w", err)
			}
			defer adapter.Close()
		}

		models, err := buildModels(ctx, cfg, adapter)
		if err != nil {
			return err
		}
		if len(models) == 0 {
			color.Yellow("⚠️  No tables to fill")
			return nil
		}

		for _, model := range models {
			if fillRows > 0 {
				model.Rows = fillRows
			}
			if fillBatch > 0 {
				model.BatchSize = fillBatch
			}
		}

		reg := generator.NewRegistry(fillSeed)
		for _, model := range models {
			reg.Register(model)
		}
		reg.ClearCaches()

		targets := models
		if fillTable != "" {
			model, err := reg.Get(fillTable)
			if err != nil {
				return err
			}
			targets = []*generator.TableModel{model}
		}

		ordered, err := schema.InsertionOrder(targets)
		if err != nil {
			color.Yellow("⚠️  %v (falling back to on-demand generation order)", err)
			ordered = targets
		}

		if fillDryRun {
			return dryRun(reg, ordered)
		}

		reg.WithStorage(ctx, adapter)

		color.Cyan("🌱 Filling %d table(s)...", len(ordered))
		results := inserter.New(adapter).InsertMany(ctx, reg, ordered)

		failed := 0
		for name, ok := range results {
			if !ok {
				failed++
				color.Red("❌ %s failed", name)
			}
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d tables failed", failed, len(results))
		}
		color.Green("\n✅ Done: %d table(s) filled", len(results))
		return nil
	},
}

func buildModels(ctx context.Context, cfg *config.Config, adapter database.Adapter) ([]*generator.TableModel, error) {
	if fillConfigs != "" {
		return schema.LoadTableConfigs(fillConfigs, cfg.Generate)
	}

	tables, err := adapter.GetCurrentSchema(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to introspect schema: %w", err)
	}
	return schema.BuildModels(tables, cfg.Generate), nil
}

func dryRun(reg *generator.Registry, models []*generator.TableModel) error {
	for _, model := range models {
		rows, err := model.GenerateRows(reg, model.Rows)
		if err != nil {
			return fmt.Errorf("generating rows for %s: %w", model.Name, err)
		}
		color.Green("  ✅ %s: %d rows generated (not inserted)", model.Name, len(rows))
	}
	return nil
}

func init() {
	rootCmd.AddCommand(fillCmd)
	fillCmd.Flags().IntVar(&fillRows, "rows", 0, "Rows per table (overrides config)")
	fillCmd.Flags().IntVar(&fillBatch, "batch", 0, "Batch size for bulk inserts (overrides config)")
	fillCmd.Flags().StringVar(&fillTable, "table", "", "Fill only this table")
	fillCmd.Flags().StringVar(&fillConfigs, "configs", "", "Load table config files from this directory instead of introspecting")
	fillCmd.Flags().Int64Var(&fillSeed, "seed", 0, "Random seed for reproducible runs (0 = time-based)")
	fillCmd.Flags().BoolVar(&fillDryRun, "dry-run", false, "Generate without inserting")
}
