package generator

import "fmt"

// RelationKind enumerates the cardinality of a table-to-table edge.
type RelationKind int

const (
	OneToOne RelationKind = iota
	ManyToOne
	OneToMany
	ManyToMany
)

func (k RelationKind) String() string {
	switch k {
	case OneToOne:
		return "one_to_one"
	case ManyToOne:
		return "many_to_one"
	case OneToMany:
		return "one_to_many"
	case ManyToMany:
		return "many_to_many"
	default:
		return "unknown"
	}
}

// RelationConfig controls how many related records a resolution produces and
// how candidate keys are pooled.
type RelationConfig struct {
	MinRelated    int
	MaxRelated    int
	CacheExisting bool
	PoolSize      int
}

func DefaultRelationConfig() RelationConfig {
	return RelationConfig{
		MinRelated:    1,
		MaxRelated:    5,
		CacheExisting: true,
		PoolSize:      10,
	}
}

// Relation is a directed foreign-key edge from FromTable.FromColumn to
// ToTable.ToColumn with a cardinality tag. The resolver guarantees every
// value it returns identifies a row that exists, or was just created, in the
// referenced table.
type Relation struct {
	Kind       RelationKind
	FromTable  string
	FromColumn string
	ToTable    string
	ToColumn   string
	Config     RelationConfig

	pool []any
}

// ClearPool drops the cached candidate keys so the next resolution starts
// from storage or fresh generation.
func (rel *Relation) ClearPool() {
	rel.pool = nil
}

// PoolLen reports the current number of pooled candidate keys.
func (rel *Relation) PoolLen() int {
	return len(rel.pool)
}

// Resolve produces a valid key value for the relation's from-column: a
// scalar for to-one kinds, a []any of keys for to-many kinds.
func (rel *Relation) Resolve(reg *Registry) (any, error) {
	switch rel.Kind {
	case ManyToOne:
		if err := rel.ensurePool(reg); err != nil {
			return nil, err
		}
		return rel.pool[reg.faker.Intn(len(rel.pool))], nil

	case OneToOne:
		// A fresh referenced row per call keeps the forward link unique.
		keys, err := rel.generateReferenced(reg, 1)
		if err != nil {
			return nil, err
		}
		return keys[0], nil

	case OneToMany:
		count := int(reg.faker.IntBetween(int64(rel.Config.MinRelated), int64(rel.Config.MaxRelated)))
		return rel.generateReferenced(reg, count)

	case ManyToMany:
		if err := rel.ensurePool(reg); err != nil {
			return nil, err
		}
		count := int(reg.faker.IntBetween(int64(rel.Config.MinRelated), int64(rel.Config.MaxRelated)))
		if count > len(rel.pool) {
			count = len(rel.pool)
		}
		keys := make([]any, 0, count)
		for _, idx := range reg.faker.Perm(len(rel.pool))[:count] {
			keys = append(keys, rel.pool[idx])
		}
		return keys, nil

	default:
		return nil, fmt.Errorf("relation %s.%s: unknown kind %d", rel.FromTable, rel.FromColumn, rel.Kind)
	}
}

// ensurePool fills the candidate key pool if it is empty or caching is
// disabled: existing keys from storage first, fresh referenced rows otherwise.
func (rel *Relation) ensurePool(reg *Registry) error {
	if len(rel.pool) > 0 && rel.Config.CacheExisting {
		return nil
	}

	size := rel.Config.PoolSize
	if size <= 0 {
		size = DefaultRelationConfig().PoolSize
	}

	if reg.storage != nil && rel.Config.CacheExisting {
		keys, err := reg.storage.FetchKeys(reg.ctx, rel.ToTable, rel.ToColumn, size)
		if err != nil {
			return fmt.Errorf("fetching keys for %s.%s: %w", rel.ToTable, rel.ToColumn, err)
		}
		if len(keys) > 0 {
			rel.pool = keys
			return nil
		}
	}

	keys, err := rel.generateReferenced(reg, size)
	if err != nil {
		return err
	}
	rel.pool = keys
	return nil
}

// generateReferenced creates count fresh rows in the referenced table and
// returns their key values. With storage attached the rows are inserted and
// the database-assigned keys collected; offline, a skip-generation key column
// gets synthetic sequential keys so references stay resolvable.
func (rel *Relation) generateReferenced(reg *Registry, count int) ([]any, error) {
	if count <= 0 {
		return []any{}, nil
	}

	model, err := reg.Get(rel.ToTable)
	if err != nil {
		return nil, err
	}

	if err := reg.enter(); err != nil {
		return nil, err
	}
	defer reg.leave()

	rows, err := model.GenerateRows(reg, count)
	if err != nil {
		return nil, fmt.Errorf("generating referenced rows in %s: %w", rel.ToTable, err)
	}

	if reg.storage != nil {
		columns := model.InsertColumns()
		values := make([][]any, len(rows))
		for i, row := range rows {
			record := make([]any, len(columns))
			for j, name := range columns {
				record[j] = row[name]
			}
			values[i] = record
		}
		keys, err := reg.storage.InsertReturning(reg.ctx, rel.ToTable, columns, values, rel.ToColumn)
		if err != nil {
			return nil, fmt.Errorf("inserting referenced rows into %s: %w", rel.ToTable, err)
		}
		if len(keys) != len(rows) {
			return nil, fmt.Errorf("inserting referenced rows into %s: expected %d keys, got %d", rel.ToTable, len(rows), len(keys))
		}
		return keys, nil
	}

	keys := make([]any, len(rows))
	for i, row := range rows {
		key := row[rel.ToColumn]
		if key == nil {
			key = reg.syntheticKey(rel.ToTable)
			row[rel.ToColumn] = key
		}
		keys[i] = key
	}
	return keys, nil
}
