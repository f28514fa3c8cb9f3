package inserter

import (
	"context"
	"fmt"
	"time"

	"github.com/arnavk07/mocksmith/internal/generator"
	"github.com/fatih/color"
)

// BatchWriter performs one atomic bulk write per call. Implementations wrap
// each call in its own transaction so a failed batch leaves nothing behind,
// while batches already committed for the table stay in place.
type BatchWriter interface {
	InsertBatch(ctx context.Context, table string, columns []string, rows [][]any) error
}

const defaultBatchSize = 100

// Inserter drains table models batch by batch into a BatchWriter.
type Inserter struct {
	writer BatchWriter
}

func New(writer BatchWriter) *Inserter {
	return &Inserter{writer: writer}
}

// InsertTable generates and writes model.Rows records in capped batches. The
// first failing batch stops the table and is reported as an error; committed
// batches are not rolled back.
func (ins *Inserter) InsertTable(ctx context.Context, reg *generator.Registry, model *generator.TableModel) error {
	total := model.Rows
	batchSize := model.BatchSize
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}

	columns := model.InsertColumns()
	color.Cyan("  📝 Inserting %s (%d records)...", model.Name, total)

	inserted := 0
	for inserted < total {
		size := batchSize
		if remaining := total - inserted; remaining < size {
			size = remaining
		}

		rows, err := model.GenerateRows(reg, size)
		if err != nil {
			return fmt.Errorf("generating rows for %s: %w", model.Name, err)
		}

		values := make([][]any, len(rows))
		for i, row := range rows {
			values[i] = formatRow(columns, row)
		}

		if err := ins.writer.InsertBatch(ctx, model.Name, columns, values); err != nil {
			color.Red("  ❌ Batch failed for %s after %d rows: %v", model.Name, inserted, err)
			return fmt.Errorf("inserting batch into %s: %w", model.Name, err)
		}
		inserted += len(rows)
	}

	color.Green("  ✅ %s: %d rows inserted", model.Name, inserted)
	return nil
}

// InsertMany sequences InsertTable over models and collects per-table
// success. One table's failure does not stop the remaining tables.
func (ins *Inserter) InsertMany(ctx context.Context, reg *generator.Registry, models []*generator.TableModel) map[string]bool {
	results := make(map[string]bool, len(models))
	for _, model := range models {
		if err := ins.InsertTable(ctx, reg, model); err != nil {
			color.Yellow("  ⚠️  %s failed: %v", model.Name, err)
			results[model.Name] = false
			continue
		}
		results[model.Name] = true
	}
	return results
}

// formatRow flattens a generated row into insert-ordered values. Timestamps
// get a canonical textual form; to-many relation lists are not a column value
// on this table and are dropped.
func formatRow(columns []string, row generator.Row) []any {
	values := make([]any, len(columns))
	for i, name := range columns {
		values[i] = formatValue(row[name])
	}
	return values
}

func formatValue(v any) any {
	switch val := v.(type) {
	case time.Time:
		return val.Format("2006-01-02 15:04:05")
	case []any:
		return nil
	default:
		return v
	}
}
