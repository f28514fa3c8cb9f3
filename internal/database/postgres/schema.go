package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/arnavk07/mocksmith/internal/types"
)

func (p *Adapter) GetAllTableNames(ctx context.Context) ([]string, error) {
	rows, err := p.pool.Query(ctx, `
		SELECT table_name
		FROM information_schema.tables
		WHERE table_schema = current_schema()
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

func (p *Adapter) GetCurrentSchema(ctx context.Context) ([]types.SchemaTable, error) {
	tableNames, err := p.GetAllTableNames(ctx)
	if err != nil {
		return nil, err
	}

	if len(tableNames) == 0 {
		return []types.SchemaTable{}, nil
	}

	allColumns, err := p.getAllTablesColumns(ctx, tableNames)
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

func (p *Adapter) GetTableColumns(ctx context.Context, tableName string) ([]types.SchemaColumn, error) {
	columns, err := p.getAllTablesColumns(ctx, []string{tableName})
	if err != nil {
		return nil, err
	}
	cols, ok := columns[tableName]
	if !ok {
		return nil, fmt.Errorf("table %s not found", tableName)
	}
	return cols, nil
}

// getAllTablesColumns runs two simple queries instead of one multi-join
// monster: column metadata from information_schema, then constraints from
// pg_constraint, merged in Go.
func (p *Adapter) getAllTablesColumns(ctx context.Context, tableNames []string) (map[string][]types.SchemaColumn, error) {
	columnsQuery := `
		SELECT
			c.table_name,
			c.column_name,
			c.udt_name,
			c.is_nullable,
			c.column_default,
			c.character_maximum_length,
			c.ordinal_position
		FROM information_schema.columns c
		WHERE c.table_name = ANY($1)
		  AND c.table_schema IN (current_schema(), 'public')
		ORDER BY c.table_name, c.ordinal_position
	`

	rows, err := p.pool.Query(ctx, columnsQuery, tableNames)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make(map[string][]types.SchemaColumn, len(tableNames))
	for rows.Next() {
		var tableName string
		var column types.SchemaColumn
		var udtName, isNullable string
		var columnDefault sql.NullString
		var charMaxLength sql.NullInt64
		var ordinalPosition int

		err := rows.Scan(
			&tableName,
			&column.Name,
			&udtName,
			&isNullable,
			&columnDefault,
			&charMaxLength,
			&ordinalPosition,
		)
		if err != nil {
			return nil, err
		}

		column.Type = udtName
		column.Nullable = isNullable == "YES"
		if charMaxLength.Valid {
			column.MaxLength = int(charMaxLength.Int64)
		}
		if columnDefault.Valid {
			column.Default = columnDefault.String
			column.IsAutoIncrement = strings.Contains(strings.ToLower(columnDefault.String), "nextval")
		}

		result[tableName] = append(result[tableName], column)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Index after all appends so the pointers stay valid.
	columnIndex := make(map[string]map[string]*types.SchemaColumn, len(result))
	for tableName, columns := range result {
		columnIndex[tableName] = make(map[string]*types.SchemaColumn, len(columns))
		for i := range columns {
			columnIndex[tableName][columns[i].Name] = &result[tableName][i]
		}
	}

	constraintsQuery := `
		WITH fk_columns AS (
			SELECT
				src_table.relname AS table_name,
				src_attr.attname AS column_name,
				tgt_table.relname AS foreign_table_name,
				tgt_attr.attname AS foreign_column_name,
				CASE con.confdeltype
					WHEN 'a' THEN 'NO ACTION'
					WHEN 'r' THEN 'RESTRICT'
					WHEN 'c' THEN 'CASCADE'
					WHEN 'n' THEN 'SET NULL'
					WHEN 'd' THEN 'SET DEFAULT'
				END AS on_delete_action
			FROM pg_constraint con
			JOIN pg_class src_table ON con.conrelid = src_table.oid
			JOIN pg_namespace ns ON src_table.relnamespace = ns.oid
			CROSS JOIN LATERAL UNNEST(con.conkey, con.confkey) WITH ORDINALITY AS cols(src_col, tgt_col, ord)
			JOIN pg_attribute src_attr ON src_attr.attrelid = src_table.oid AND src_attr.attnum = cols.src_col
			JOIN pg_class tgt_table ON con.confrelid = tgt_table.oid
			JOIN pg_attribute tgt_attr ON tgt_attr.attrelid = tgt_table.oid AND tgt_attr.attnum = cols.tgt_col
			WHERE src_table.relname = ANY($1)
			  AND ns.nspname IN (current_schema(), 'public')
			  AND con.contype = 'f'
		),
		pk_uk_columns AS (
			SELECT
				src_table.relname AS table_name,
				src_attr.attname AS column_name,
				CASE con.contype WHEN 'p' THEN 'PRIMARY KEY' ELSE 'UNIQUE' END AS constraint_type
			FROM pg_constraint con
			JOIN pg_class src_table ON con.conrelid = src_table.oid
			JOIN pg_namespace ns ON src_table.relnamespace = ns.oid
			CROSS JOIN LATERAL UNNEST(con.conkey) AS cols(src_col)
			JOIN pg_attribute src_attr ON src_attr.attrelid = src_table.oid AND src_attr.attnum = cols.src_col
			WHERE src_table.relname = ANY($1)
			  AND ns.nspname IN (current_schema(), 'public')
			  AND con.contype IN ('p', 'u')
		)
		SELECT table_name, column_name, 'FOREIGN KEY' as constraint_type, foreign_table_name, foreign_column_name, on_delete_action
		FROM fk_columns
		UNION ALL
		SELECT table_name, column_name, constraint_type, NULL, NULL, NULL
		FROM pk_uk_columns
	`

	constraintRows, err := p.pool.Query(ctx, constraintsQuery, tableNames)
	if err != nil {
		return nil, err
	}
	defer constraintRows.Close()

	for constraintRows.Next() {
		var tableName, columnName, constraintType string
		var fkTable, fkColumn, onDelete sql.NullString

		err := constraintRows.Scan(&tableName, &columnName, &constraintType, &fkTable, &fkColumn, &onDelete)
		if err != nil {
			return nil, err
		}

		colPtr, ok := columnIndex[tableName][columnName]
		if !ok {
			continue
		}

		switch constraintType {
		case "PRIMARY KEY":
			colPtr.IsPrimary = true
		case "UNIQUE":
			colPtr.IsUnique = true
		case "FOREIGN KEY":
			if fkTable.Valid {
				colPtr.ForeignKeyTable = fkTable.String
			}
			if fkColumn.Valid {
				colPtr.ForeignKeyColumn = fkColumn.String
			}
			if onDelete.Valid {
				colPtr.OnDeleteAction = onDelete.String
			}
		}
	}
	return result, constraintRows.Err()
}
