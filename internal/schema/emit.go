package schema

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/arnavk07/mocksmith/internal/config"
	"github.com/arnavk07/mocksmith/internal/generator"
	"github.com/arnavk07/mocksmith/internal/types"
)

// WriteTableConfigs renders introspected tables into per-table JSON config
// files so generated defaults can be hand-tuned and fed back through
// LoadTableConfigs.
func WriteTableConfigs(tables []types.SchemaTable, dir string, gen config.Generate) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create config directory %s: %w", dir, err)
	}

	var written []string
	for _, table := range tables {
		tc := configFor(table, gen)

		data, err := json.MarshalIndent(tc, "", "  ")
		if err != nil {
			return written, fmt.Errorf("failed to marshal config for %s: %w", table.Name, err)
		}

		path := filepath.Join(dir, table.Name+".json")
		if err := os.WriteFile(path, data, 0644); err != nil {
			return written, fmt.Errorf("failed to write %s: %w", path, err)
		}
		written = append(written, path)
	}
	return written, nil
}

func configFor(table types.SchemaTable, gen config.Generate) TableConfig {
	tc := TableConfig{
		Table:     table.Name,
		Rows:      gen.Rows,
		BatchSize: gen.BatchSize,
	}

	for _, col := range table.Columns {
		built := buildColumn(col)
		cc := ColumnConfig{
			Name:     col.Name,
			Type:     built.Kind.String(),
			Nullable: col.Nullable,
			Unique:   col.IsUnique,
			Skip:     built.SkipGeneration,
			Min:      built.MinValue,
			Max:      built.MaxValue,
			Length:   built.MaxLength,
		}
		switch built.NameVariant {
		case generator.FirstName:
			cc.Variant = "first"
		case generator.LastName:
			cc.Variant = "last"
		}
		tc.Columns = append(tc.Columns, cc)

		if col.ForeignKeyTable != "" {
			tc.Relations = append(tc.Relations, RelationConfig{
				Kind:       generator.ManyToOne.String(),
				FromColumn: col.Name,
				ToTable:    col.ForeignKeyTable,
				ToColumn:   col.ForeignKeyColumn,
				MinRelated: gen.MinRelated,
				MaxRelated: gen.MaxRelated,
				PoolSize:   gen.PoolSize,
			})
		}
	}
	return tc
}
