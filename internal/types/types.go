package types

// SchemaTable is the introspected description of one database table.
type SchemaTable struct {
	Name    string
	Columns []SchemaColumn
	Indexes []SchemaIndex
}

type SchemaColumn struct {
	Name             string
	Type             string
	Nullable         bool
	Default          string
	IsPrimary        bool
	IsUnique         bool
	IsAutoIncrement  bool
	MaxLength        int
	ForeignKeyTable  string
	ForeignKeyColumn string
	OnDeleteAction   string
}

type SchemaIndex struct {
	Name    string
	Table   string
	Columns []string
	Unique  bool
}

type SchemaEnum struct {
	Name   string   `json:"name"`
	Values []string `json:"values"`
}

// ForeignKey is a directed edge between two tables.
type ForeignKey struct {
	Column         string
	RefTable       string
	RefColumn      string
	OnDeleteAction string
}

// ForeignKeys collects the FK edges declared on a table's columns.
func (t SchemaTable) ForeignKeys() []ForeignKey {
	var fks []ForeignKey
	for _, col := range t.Columns {
		if col.ForeignKeyTable == "" {
			continue
		}
		fks = append(fks, ForeignKey{
			Column:         col.Name,
			RefTable:       col.ForeignKeyTable,
			RefColumn:      col.ForeignKeyColumn,
			OnDeleteAction: col.OnDeleteAction,
		})
	}
	return fks
}

// PrimaryKey returns the name of the table's primary key column, or "".
func (t SchemaTable) PrimaryKey() string {
	for _, col := range t.Columns {
		if col.IsPrimary {
			return col.Name
		}
	}
	return ""
}
