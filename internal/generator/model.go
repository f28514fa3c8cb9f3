package generator

import "fmt"

// Row is one generated record: column name to scalar value (or nil). For
// to-many relations the value is a []any of referenced keys. A row is never
// mutated after GenerateRow returns it.
type Row map[string]any

// TableModel aggregates a table's columns, relations and generation
// parameters. Columns and relations are fixed at construction; only the
// relation pools mutate during a run.
type TableModel struct {
	Name      string
	Columns   []*Column
	Relations []*Relation

	// Rows is the number of records to generate, BatchSize the cap per bulk
	// write.
	Rows      int
	BatchSize int
}

// Column looks up a column by name.
func (m *TableModel) Column(name string) *Column {
	for _, col := range m.Columns {
		if col.Name == name {
			return col
		}
	}
	return nil
}

// relationFor returns the relation whose from-column is name, if any.
func (m *TableModel) relationFor(name string) *Relation {
	for _, rel := range m.Relations {
		if rel.FromColumn == name {
			return rel
		}
	}
	return nil
}

// InsertColumns returns the column names that belong in an insert payload,
// in declaration order. Skip-generation columns are excluded.
func (m *TableModel) InsertColumns() []string {
	names := make([]string, 0, len(m.Columns))
	for _, col := range m.Columns {
		if col.SkipGeneration {
			continue
		}
		names = append(names, col.Name)
	}
	return names
}

// GenerateRow synthesizes one row. Independent columns are generated first so
// that recursive generation triggered by relation resolution never observes a
// half-built row; relational columns are then resolved in declaration order.
func (m *TableModel) GenerateRow(reg *Registry) (Row, error) {
	row := make(Row, len(m.Columns))

	for _, col := range m.Columns {
		if m.relationFor(col.Name) != nil {
			continue
		}
		row[col.Name] = col.Generate(reg.faker)
	}

	for _, rel := range m.Relations {
		value, err := rel.Resolve(reg)
		if err != nil {
			return nil, fmt.Errorf("table %s column %s: %w", m.Name, rel.FromColumn, err)
		}
		row[rel.FromColumn] = value
	}

	return row, nil
}

// GenerateRows repeats row generation count times. A zero or negative count
// returns an empty slice without touching any relation pool.
func (m *TableModel) GenerateRows(reg *Registry, count int) ([]Row, error) {
	if count <= 0 {
		return []Row{}, nil
	}
	rows := make([]Row, 0, count)
	for i := 0; i < count; i++ {
		row, err := m.GenerateRow(reg)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}
