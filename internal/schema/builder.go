package schema

import (
	"strings"

	"github.com/arnavk07/mocksmith/internal/config"
	"github.com/arnavk07/mocksmith/internal/generator"
	"github.com/arnavk07/mocksmith/internal/types"
)

// BuildModels turns introspected tables into generation models: column kinds
// inferred from names and SQL types, auto-increment keys marked
// skip-generation, and every foreign key turned into a ManyToOne relation.
func BuildModels(tables []types.SchemaTable, gen config.Generate) []*generator.TableModel {
	models := make([]*generator.TableModel, 0, len(tables))
	for _, table := range tables {
		models = append(models, buildModel(table, gen))
	}
	return models
}

func buildModel(table types.SchemaTable, gen config.Generate) *generator.TableModel {
	model := &generator.TableModel{
		Name:      table.Name,
		Rows:      gen.Rows,
		BatchSize: gen.BatchSize,
	}

	for _, col := range table.Columns {
		column := buildColumn(col)
		model.Columns = append(model.Columns, column)

		if col.ForeignKeyTable != "" {
			column.Kind = generator.KindReference
			relCfg := generator.DefaultRelationConfig()
			if gen.PoolSize > 0 {
				relCfg.PoolSize = gen.PoolSize
			}
			if gen.MinRelated > 0 {
				relCfg.MinRelated = gen.MinRelated
			}
			if gen.MaxRelated > 0 {
				relCfg.MaxRelated = gen.MaxRelated
			}
			model.Relations = append(model.Relations, &generator.Relation{
				Kind:       generator.ManyToOne,
				FromTable:  table.Name,
				FromColumn: col.Name,
				ToTable:    col.ForeignKeyTable,
				ToColumn:   col.ForeignKeyColumn,
				Config:     relCfg,
			})
		}
	}
	return model
}

func buildColumn(col types.SchemaColumn) *generator.Column {
	column := &generator.Column{
		Name:           col.Name,
		Kind:           inferKind(col),
		Nullable:       col.Nullable,
		Unique:         col.IsUnique,
		SkipGeneration: col.IsAutoIncrement,
		MaxLength:      col.MaxLength,
	}

	name := strings.ToLower(col.Name)
	switch {
	case strings.Contains(name, "first_name") || strings.Contains(name, "firstname"):
		column.NameVariant = generator.FirstName
	case strings.Contains(name, "last_name") || strings.Contains(name, "lastname"):
		column.NameVariant = generator.LastName
	}

	switch {
	case strings.Contains(name, "salary"):
		column.MinValue, column.MaxValue = 30000, 150000
	case strings.Contains(name, "age"):
		column.MinValue, column.MaxValue = 18, 100
	case strings.Contains(name, "birth") || strings.Contains(name, "dob"):
		column.YearsBack = 40
	}

	return column
}

// inferKind decides a column's semantic kind: recognizable names first, the
// SQL type second.
func inferKind(col types.SchemaColumn) generator.ColumnKind {
	name := strings.ToLower(col.Name)

	switch {
	case strings.Contains(name, "email"):
		return generator.KindEmail
	case strings.Contains(name, "phone"):
		return generator.KindPhone
	case strings.Contains(name, "uuid") || strings.Contains(name, "guid"):
		return generator.KindUUID
	case isNameColumn(name):
		return generator.KindName
	}

	sqlType := strings.ToLower(col.Type)
	if idx := strings.Index(sqlType, "("); idx > 0 {
		sqlType = sqlType[:idx]
	}

	switch {
	case strings.Contains(sqlType, "int") || strings.Contains(sqlType, "serial"):
		return generator.KindInteger
	case strings.Contains(sqlType, "bool"):
		return generator.KindBoolean
	case strings.Contains(sqlType, "timestamp") || strings.Contains(sqlType, "datetime") || strings.Contains(sqlType, "date"):
		return generator.KindDateTime
	case strings.Contains(sqlType, "decimal") || strings.Contains(sqlType, "numeric") ||
		strings.Contains(sqlType, "float") || strings.Contains(sqlType, "double") || strings.Contains(sqlType, "real"):
		return generator.KindFloat
	case strings.Contains(sqlType, "uuid"):
		return generator.KindUUID
	case sqlType == "text" || strings.Contains(sqlType, "longtext") || strings.Contains(sqlType, "mediumtext"):
		return generator.KindText
	default:
		return generator.KindString
	}
}

func isNameColumn(name string) bool {
	if !strings.Contains(name, "name") {
		return false
	}
	// filename, hostname, username and friends are not person names.
	for _, not := range []string{"file", "host", "user", "table", "column", "db", "schema"} {
		if strings.Contains(name, not) {
			return false
		}
	}
	return true
}
