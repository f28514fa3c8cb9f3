package generator

import (
	"context"
	"fmt"
)

// Storage is the optional persistence hook consulted during relation
// resolution: existing keys are preferred over fresh rows, and fresh
// referenced rows are written through so their database-assigned keys are
// real before any dependent row is inserted.
type Storage interface {
	// FetchKeys returns up to limit existing values of table.column.
	FetchKeys(ctx context.Context, table, column string, limit int) ([]any, error)

	// InsertReturning bulk-inserts rows and returns the resulting key values,
	// one per row, in insertion order.
	InsertReturning(ctx context.Context, table string, columns []string, rows [][]any, keyColumn string) ([]any, error)
}

// maxResolveDepth bounds recursive on-demand generation through chains of
// mutually referencing tables.
const maxResolveDepth = 8

// Registry maps table names to their models for one generation run. It is
// owned by the top-level driver and passed explicitly into every resolution,
// never held as a package global.
type Registry struct {
	models  map[string]*TableModel
	faker   *Faker
	storage Storage
	ctx     context.Context

	// depth tracks the current relation-resolution recursion depth.
	depth int

	// nextKey hands out synthetic keys per table for offline runs where the
	// key column is database-assigned and no storage is attached.
	nextKey map[string]int64
}

func NewRegistry(seed int64) *Registry {
	return &Registry{
		models:  make(map[string]*TableModel),
		faker:   NewFaker(seed),
		ctx:     context.Background(),
		nextKey: make(map[string]int64),
	}
}

// WithStorage attaches a persistence hook. Resolution then fetches existing
// keys and writes referenced rows through instead of synthesizing keys.
func (r *Registry) WithStorage(ctx context.Context, s Storage) *Registry {
	r.storage = s
	if ctx != nil {
		r.ctx = ctx
	}
	return r
}

func (r *Registry) Register(model *TableModel) {
	r.models[model.Name] = model
}

func (r *Registry) Get(name string) (*TableModel, error) {
	model, ok := r.models[name]
	if !ok {
		return nil, fmt.Errorf("table %q: %w", name, ErrModelNotFound)
	}
	return model, nil
}

// Models returns the registered models keyed by table name.
func (r *Registry) Models() map[string]*TableModel {
	return r.models
}

// ClearCaches empties every relation's key pool across every registered
// model, so a fresh run never reuses keys from a previous one. Synthetic key
// sequences are reset as well.
func (r *Registry) ClearCaches() {
	for _, model := range r.models {
		for _, rel := range model.Relations {
			rel.ClearPool()
		}
	}
	r.nextKey = make(map[string]int64)
}

func (r *Registry) Faker() *Faker {
	return r.faker
}

func (r *Registry) syntheticKey(table string) int64 {
	r.nextKey[table]++
	return r.nextKey[table]
}

func (r *Registry) enter() error {
	if r.depth >= maxResolveDepth {
		return fmt.Errorf("depth %d: %w", r.depth, ErrDepthExceeded)
	}
	r.depth++
	return nil
}

func (r *Registry) leave() {
	r.depth--
}
