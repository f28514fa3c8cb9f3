package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/arnavk07/mocksmith/internal/database/common"
	"github.com/arnavk07/mocksmith/internal/types"
)

func (s *Adapter) GetAllTableNames(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT name FROM sqlite_master
		WHERE type = 'table'
		  AND name NOT LIKE 'sqlite_%'
		ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

func (s *Adapter) GetCurrentSchema(ctx context.Context) ([]types.SchemaTable, error) {
	tableNames, err := s.GetAllTableNames(ctx)
	if err != nil {
		return nil, err
	}

	tables := make([]types.SchemaTable, 0, len(tableNames))
	for _, name := range tableNames {
		columns, err := s.GetTableColumns(ctx, name)
		if err != nil {
			return nil, err
		}
		tables = append(tables, types.SchemaTable{
			Name:    name,
			Columns: columns,
		})
	}
	return tables, nil
}

func (s *Adapter) GetTableColumns(ctx context.Context, tableName string) ([]types.SchemaColumn, error) {
	if !common.ValidIdentifier(tableName) {
		return nil, fmt.Errorf("invalid table name: %s", tableName)
	}

	rows, err := s.db.QueryContext(ctx, fmt.Sprintf("PRAGMA table_info(%s)", tableName))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var columns []types.SchemaColumn
	for rows.Next() {
		var cid int
		var name, colType string
		var notNull, pk int
		var dfltValue sql.NullString

		if err := rows.Scan(&cid, &name, &colType, &notNull, &dfltValue, &pk); err != nil {
			return nil, err
		}

		column := types.SchemaColumn{
			Name:      name,
			Type:      colType,
			Nullable:  notNull == 0 && pk == 0,
			IsPrimary: pk > 0,
		}
		if dfltValue.Valid {
			column.Default = dfltValue.String
		}
		// INTEGER PRIMARY KEY is the rowid alias and is assigned by SQLite.
		if column.IsPrimary && strings.EqualFold(colType, "INTEGER") {
			column.IsAutoIncrement = true
		}
		columns = append(columns, column)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	fkRows, err := s.db.QueryContext(ctx, fmt.Sprintf("PRAGMA foreign_key_list(%s)", tableName))
	if err != nil {
		return nil, err
	}
	defer fkRows.Close()

	for fkRows.Next() {
		var id, seq int
		var refTable, from string
		var to sql.NullString
		var onUpdate, onDelete, match string

		if err := fkRows.Scan(&id, &seq, &refTable, &from, &to, &onUpdate, &onDelete, &match); err != nil {
			return nil, err
		}

		for i := range columns {
			if columns[i].Name == from {
				columns[i].ForeignKeyTable = refTable
				if to.Valid {
					columns[i].ForeignKeyColumn = to.String
				} else {
					columns[i].ForeignKeyColumn = "id"
				}
				columns[i].OnDeleteAction = onDelete
				break
			}
		}
	}
	return columns, fkRows.Err()
}
