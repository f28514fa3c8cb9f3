package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/arnavk07/mocksmith/internal/types"
)

func (m *Adapter) GetAllTableNames(ctx context.Context) ([]string, error) {
	rows, err := m.db.QueryContext(ctx, `
		SELECT table_name
		FROM information_schema.tables
		WHERE table_schema = DATABASE()
		  AND table_type = 'BASE TABLE'
		ORDER BY table_name
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

func (m *Adapter) GetCurrentSchema(ctx context.Context) ([]types.SchemaTable, error) {
	tableNames, err := m.GetAllTableNames(ctx)
	if err != nil {
		return nil, err
	}

	if len(tableNames) == 0 {
		return []types.SchemaTable{}, nil
	}

	allColumns, err := m.getAllTablesColumns(ctx, tableNames)
	if err != nil {
		return nil, err
	}

	tables := make([]types.SchemaTable, 0, len(tableNames))
	for _, name := range tableNames {
		tables = append(tables, types.SchemaTable{
			Name:    name,
			Columns: allColumns[name],
		})
	}
	return tables, nil
}

func (m *Adapter) GetTableColumns(ctx context.Context, tableName string) ([]types.SchemaColumn, error) {
	columns, err := m.getAllTablesColumns(ctx, []string{tableName})
	if err != nil {
		return nil, err
	}
	cols, ok := columns[tableName]
	if !ok {
		return nil, fmt.Errorf("table %s not found", tableName)
	}
	return cols, nil
}

func (m *Adapter) getAllTablesColumns(ctx context.Context, tableNames []string) (map[string][]types.SchemaColumn, error) {
	placeholders := make([]string, len(tableNames))
	args := make([]any, len(tableNames))
	for i, name := range tableNames {
		placeholders[i] = "?"
		args[i] = name
	}
	in := strings.Join(placeholders, ", ")

	columnsQuery := fmt.Sprintf(`
		SELECT
			c.table_name,
			c.column_name,
			c.data_type,
			c.is_nullable,
			c.column_default,
			c.character_maximum_length,
			c.column_key,
			c.extra
		FROM information_schema.columns c
		WHERE c.table_schema = DATABASE()
		  AND c.table_name IN (%s)
		ORDER BY c.table_name, c.ordinal_position
	`, in)

	rows, err := m.db.QueryContext(ctx, columnsQuery, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make(map[string][]types.SchemaColumn, len(tableNames))
	for rows.Next() {
		var tableName string
		var column types.SchemaColumn
		var dataType, isNullable, columnKey, extra string
		var columnDefault sql.NullString
		var charMaxLength sql.NullInt64

		err := rows.Scan(
			&tableName,
			&column.Name,
			&dataType,
			&isNullable,
			&columnDefault,
			&charMaxLength,
			&columnKey,
			&extra,
		)
		if err != nil {
			return nil, err
		}

		column.Type = dataType
		column.Nullable = isNullable == "YES"
		column.IsPrimary = columnKey == "PRI"
		column.IsUnique = columnKey == "UNI"
		column.IsAutoIncrement = strings.Contains(strings.ToLower(extra), "auto_increment")
		if charMaxLength.Valid {
			column.MaxLength = int(charMaxLength.Int64)
		}
		if columnDefault.Valid {
			column.Default = columnDefault.String
		}

		result[tableName] = append(result[tableName], column)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	fkQuery := fmt.Sprintf(`
		SELECT
			kcu.table_name,
			kcu.column_name,
			kcu.referenced_table_name,
			kcu.referenced_column_name,
			COALESCE(rc.delete_rule, 'NO ACTION')
		FROM information_schema.key_column_usage kcu
		LEFT JOIN information_schema.referential_constraints rc
			ON rc.constraint_schema = kcu.constraint_schema
			AND rc.constraint_name = kcu.constraint_name
		WHERE kcu.table_schema = DATABASE()
		  AND kcu.table_name IN (%s)
		  AND kcu.referenced_table_name IS NOT NULL
	`, in)

	fkRows, err := m.db.QueryContext(ctx, fkQuery, args...)
	if err != nil {
		return nil, err
	}
	defer fkRows.Close()

	for fkRows.Next() {
		var tableName, columnName, refTable, refColumn, deleteRule string
		if err := fkRows.Scan(&tableName, &columnName, &refTable, &refColumn, &deleteRule); err != nil {
			return nil, err
		}
		columns := result[tableName]
		for i := range columns {
			if columns[i].Name == columnName {
				columns[i].ForeignKeyTable = refTable
				columns[i].ForeignKeyColumn = refColumn
				columns[i].OnDeleteAction = deleteRule
				break
			}
		}
	}
	return result, fkRows.Err()
}
