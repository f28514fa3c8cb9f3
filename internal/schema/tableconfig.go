package schema

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/arnavk07/mocksmith/internal/config"
	"github.com/arnavk07/mocksmith/internal/generator"
	"gopkg.in/yaml.v3"
)

// TableConfig is the data-driven front-end to the generation contract: one
// JSON or YAML file per table describing its columns and relations.
type TableConfig struct {
	Table     string           `json:"table" yaml:"table"`
	Rows      int              `json:"rows,omitempty" yaml:"rows,omitempty"`
	BatchSize int              `json:"batch_size,omitempty" yaml:"batch_size,omitempty"`
	Columns   []ColumnConfig   `json:"columns" yaml:"columns"`
	Relations []RelationConfig `json:"relations,omitempty" yaml:"relations,omitempty"`
}

type ColumnConfig struct {
	Name     string   `json:"name" yaml:"name"`
	Type     string   `json:"type" yaml:"type"`
	Nullable bool     `json:"nullable,omitempty" yaml:"nullable,omitempty"`
	Unique   bool     `json:"unique,omitempty" yaml:"unique,omitempty"`
	Skip     bool     `json:"skip,omitempty" yaml:"skip,omitempty"`
	Min      int64    `json:"min,omitempty" yaml:"min,omitempty"`
	Max      int64    `json:"max,omitempty" yaml:"max,omitempty"`
	Length   int      `json:"length,omitempty" yaml:"length,omitempty"`
	Variant  string   `json:"variant,omitempty" yaml:"variant,omitempty"`
	Choices  []string `json:"choices,omitempty" yaml:"choices,omitempty"`
}

type RelationConfig struct {
	Kind       string `json:"kind" yaml:"kind"`
	FromColumn string `json:"from_column" yaml:"from_column"`
	ToTable    string `json:"to_table" yaml:"to_table"`
	ToColumn   string `json:"to_column" yaml:"to_column"`
	MinRelated int    `json:"min_related,omitempty" yaml:"min_related,omitempty"`
	MaxRelated int    `json:"max_related,omitempty" yaml:"max_related,omitempty"`
	PoolSize   int    `json:"pool_size,omitempty" yaml:"pool_size,omitempty"`
	NoCache    bool   `json:"no_cache,omitempty" yaml:"no_cache,omitempty"`
}

var columnKinds = map[string]generator.ColumnKind{
	"integer":   generator.KindInteger,
	"int":       generator.KindInteger,
	"float":     generator.KindFloat,
	"string":    generator.KindString,
	"text":      generator.KindText,
	"datetime":  generator.KindDateTime,
	"boolean":   generator.KindBoolean,
	"bool":      generator.KindBoolean,
	"email":     generator.KindEmail,
	"name":      generator.KindName,
	"phone":     generator.KindPhone,
	"uuid":      generator.KindUUID,
	"choice":    generator.KindChoice,
	"reference": generator.KindReference,
}

var relationKinds = map[string]generator.RelationKind{
	"one_to_one":   generator.OneToOne,
	"many_to_one":  generator.ManyToOne,
	"one_to_many":  generator.OneToMany,
	"many_to_many": generator.ManyToMany,
}

// LoadTableConfigs reads every .json/.yaml/.yml file in dir and builds one
// model per file. Malformed files are configuration errors surfaced before
// any generation runs.
func LoadTableConfigs(dir string, gen config.Generate) ([]*generator.TableModel, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read table config directory %s: %w", dir, err)
	}

	var models []*generator.TableModel
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext != ".json" && ext != ".yaml" && ext != ".yml" {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		tc, err := loadTableConfig(path, ext)
		if err != nil {
			return nil, err
		}

		model, err := tc.Model(gen)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		models = append(models, model)
	}
	return models, nil
}

func loadTableConfig(path, ext string) (*TableConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var tc TableConfig
	if ext == ".json" {
		err = json.Unmarshal(data, &tc)
	} else {
		err = yaml.Unmarshal(data, &tc)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return &tc, nil
}

// Model validates the config and converts it into a TableModel.
func (tc *TableConfig) Model(gen config.Generate) (*generator.TableModel, error) {
	if tc.Table == "" {
		return nil, fmt.Errorf("table name is required")
	}
	if len(tc.Columns) == 0 {
		return nil, fmt.Errorf("table %s: at least one column is required", tc.Table)
	}

	model := &generator.TableModel{
		Name:      tc.Table,
		Rows:      tc.Rows,
		BatchSize: tc.BatchSize,
	}
	if model.Rows <= 0 {
		model.Rows = gen.Rows
	}
	if model.BatchSize <= 0 {
		model.BatchSize = gen.BatchSize
	}

	for _, cc := range tc.Columns {
		column, err := cc.column(tc.Table)
		if err != nil {
			return nil, err
		}
		model.Columns = append(model.Columns, column)
	}

	for _, rc := range tc.Relations {
		rel, err := rc.relation(tc.Table, model)
		if err != nil {
			return nil, err
		}
		model.Relations = append(model.Relations, rel)
	}
	return model, nil
}

func (cc ColumnConfig) column(table string) (*generator.Column, error) {
	if cc.Name == "" {
		return nil, fmt.Errorf("table %s: column name is required", table)
	}
	kind, ok := columnKinds[strings.ToLower(cc.Type)]
	if !ok {
		return nil, fmt.Errorf("table %s column %s: unknown type %q", table, cc.Name, cc.Type)
	}

	column := &generator.Column{
		Name:           cc.Name,
		Kind:           kind,
		Nullable:       cc.Nullable,
		Unique:         cc.Unique,
		SkipGeneration: cc.Skip,
		MinValue:       cc.Min,
		MaxValue:       cc.Max,
		MaxLength:      cc.Length,
		Choices:        cc.Choices,
	}

	switch strings.ToLower(cc.Variant) {
	case "", "full":
		column.NameVariant = generator.FullName
	case "first":
		column.NameVariant = generator.FirstName
	case "last":
		column.NameVariant = generator.LastName
	default:
		return nil, fmt.Errorf("table %s column %s: unknown name variant %q", table, cc.Name, cc.Variant)
	}
	return column, nil
}

func (rc RelationConfig) relation(table string, model *generator.TableModel) (*generator.Relation, error) {
	kind, ok := relationKinds[strings.ToLower(rc.Kind)]
	if !ok {
		return nil, fmt.Errorf("table %s: unknown relation kind %q", table, rc.Kind)
	}
	if model.Column(rc.FromColumn) == nil {
		return nil, fmt.Errorf("table %s: relation from_column %q is not a column of this table", table, rc.FromColumn)
	}
	if rc.ToTable == "" || rc.ToColumn == "" {
		return nil, fmt.Errorf("table %s: relation on %s needs to_table and to_column", table, rc.FromColumn)
	}

	cfg := generator.DefaultRelationConfig()
	if rc.MinRelated > 0 {
		cfg.MinRelated = rc.MinRelated
	}
	if rc.MaxRelated > 0 {
		cfg.MaxRelated = rc.MaxRelated
	}
	if rc.PoolSize > 0 {
		cfg.PoolSize = rc.PoolSize
	}
	cfg.CacheExisting = !rc.NoCache

	return &generator.Relation{
		Kind:       kind,
		FromTable:  table,
		FromColumn: rc.FromColumn,
		ToTable:    rc.ToTable,
		ToColumn:   rc.ToColumn,
		Config:     cfg,
	}, nil
}
