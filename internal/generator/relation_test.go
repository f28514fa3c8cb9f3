package generator

import (
	"context"
	"errors"
	"testing"
)

func employeeModel() *TableModel {
	return &TableModel{
		Name: "employee",
		Columns: []*Column{
			{Name: "id", Kind: KindInteger, SkipGeneration: true},
			{Name: "first_name", Kind: KindName, NameVariant: FirstName},
			{Name: "last_name", Kind: KindName, NameVariant: LastName},
			{Name: "salary", Kind: KindInteger, MinValue: 30000, MaxValue: 150000},
		},
		Rows:      10,
		BatchSize: 5,
	}
}

func salaryModel(kind RelationKind, cfg RelationConfig) *TableModel {
	return &TableModel{
		Name: "salary",
		Columns: []*Column{
			{Name: "employee_id", Kind: KindReference},
			{Name: "amount", Kind: KindInteger, MinValue: 1, MaxValue: 1000000},
			{Name: "from_date", Kind: KindDateTime},
		},
		Relations: []*Relation{{
			Kind:       kind,
			FromTable:  "salary",
			FromColumn: "employee_id",
			ToTable:    "employee",
			ToColumn:   "id",
			Config:     cfg,
		}},
		Rows:      5,
		BatchSize: 5,
	}
}

func TestManyToOneDrawsFromGeneratedPool(t *testing.T) {
	reg := NewRegistry(1)
	reg.Register(employeeModel())
	salary := salaryModel(ManyToOne, DefaultRelationConfig())
	reg.Register(salary)

	rows, err := salary.GenerateRows(reg, 5)
	if err != nil {
		t.Fatalf("GenerateRows failed: %v", err)
	}
	if len(rows) != 5 {
		t.Fatalf("expected 5 rows, got %d", len(rows))
	}

	rel := salary.Relations[0]
	if rel.PoolLen() == 0 {
		t.Fatal("pool was not populated")
	}
	if rel.PoolLen() > rel.Config.PoolSize {
		t.Fatalf("pool holds %d keys, exceeds pool size %d", rel.PoolLen(), rel.Config.PoolSize)
	}

	poolKeys := make(map[any]bool, rel.PoolLen())
	for _, key := range rel.pool {
		poolKeys[key] = true
	}
	for i, row := range rows {
		key := row["employee_id"]
		if key == nil {
			t.Fatalf("row %d has nil employee_id", i)
		}
		if !poolKeys[key] {
			t.Fatalf("row %d employee_id %v not drawn from the pool", i, key)
		}
	}
}

func TestManyToOnePoolReused(t *testing.T) {
	reg := NewRegistry(2)
	reg.Register(employeeModel())
	salary := salaryModel(ManyToOne, DefaultRelationConfig())
	reg.Register(salary)

	if _, err := salary.GenerateRow(reg); err != nil {
		t.Fatalf("GenerateRow failed: %v", err)
	}
	rel := salary.Relations[0]
	first := append([]any(nil), rel.pool...)

	for i := 0; i < 20; i++ {
		if _, err := salary.GenerateRow(reg); err != nil {
			t.Fatalf("GenerateRow failed: %v", err)
		}
	}

	if len(rel.pool) != len(first) {
		t.Fatalf("pool size changed from %d to %d despite caching", len(first), len(rel.pool))
	}
	for i := range first {
		if rel.pool[i] != first[i] {
			t.Fatal("pool contents changed despite caching")
		}
	}
}

func TestOneToOneAlwaysFresh(t *testing.T) {
	reg := NewRegistry(3)
	reg.Register(employeeModel())
	salary := salaryModel(OneToOne, DefaultRelationConfig())
	reg.Register(salary)

	rel := salary.Relations[0]
	seen := make(map[any]bool)
	for i := 0; i < 10; i++ {
		key, err := rel.Resolve(reg)
		if err != nil {
			t.Fatalf("Resolve failed: %v", err)
		}
		if seen[key] {
			t.Fatalf("one-to-one resolution returned key %v twice", key)
		}
		seen[key] = true
	}
	if rel.PoolLen() != 0 {
		t.Errorf("one-to-one relation should not cache, pool has %d keys", rel.PoolLen())
	}
}

func TestOneToManyCountRange(t *testing.T) {
	reg := NewRegistry(4)
	reg.Register(employeeModel())
	cfg := DefaultRelationConfig()
	cfg.MinRelated = 2
	cfg.MaxRelated = 4
	salary := salaryModel(OneToMany, cfg)
	reg.Register(salary)

	rel := salary.Relations[0]
	for i := 0; i < 50; i++ {
		value, err := rel.Resolve(reg)
		if err != nil {
			t.Fatalf("Resolve failed: %v", err)
		}
		keys, ok := value.([]any)
		if !ok {
			t.Fatalf("expected []any, got %T", value)
		}
		if len(keys) < 2 || len(keys) > 4 {
			t.Fatalf("got %d related keys, want between 2 and 4", len(keys))
		}
	}
}

func TestManyToManySamplesWithoutReplacement(t *testing.T) {
	reg := NewRegistry(5)
	reg.Register(employeeModel())
	cfg := DefaultRelationConfig()
	cfg.MinRelated = 3
	cfg.MaxRelated = 20
	cfg.PoolSize = 6
	salary := salaryModel(ManyToMany, cfg)
	reg.Register(salary)

	rel := salary.Relations[0]
	for i := 0; i < 50; i++ {
		value, err := rel.Resolve(reg)
		if err != nil {
			t.Fatalf("Resolve failed: %v", err)
		}
		keys := value.([]any)
		if len(keys) > 6 {
			t.Fatalf("sampled %d keys from a pool of 6", len(keys))
		}
		seen := make(map[any]bool, len(keys))
		for _, key := range keys {
			if seen[key] {
				t.Fatalf("key %v sampled twice in one resolution", key)
			}
			seen[key] = true
		}
	}
}

func TestUnregisteredTableIsFatal(t *testing.T) {
	reg := NewRegistry(6)
	salary := salaryModel(ManyToOne, DefaultRelationConfig())
	reg.Register(salary)

	_, err := salary.GenerateRow(reg)
	if err == nil {
		t.Fatal("expected lookup error for unregistered table")
	}
	if !errors.Is(err, ErrModelNotFound) {
		t.Fatalf("expected ErrModelNotFound, got %v", err)
	}
}

func TestClearCachesEmptiesEveryPool(t *testing.T) {
	reg := NewRegistry(7)
	reg.Register(employeeModel())
	salary := salaryModel(ManyToOne, DefaultRelationConfig())
	reg.Register(salary)

	if _, err := salary.GenerateRow(reg); err != nil {
		t.Fatalf("GenerateRow failed: %v", err)
	}
	if salary.Relations[0].PoolLen() == 0 {
		t.Fatal("pool should be populated before clearing")
	}

	reg.ClearCaches()

	if got := salary.Relations[0].PoolLen(); got != 0 {
		t.Fatalf("pool holds %d keys after ClearCaches", got)
	}
}

func TestGenerateRowsZeroIsNoOp(t *testing.T) {
	reg := NewRegistry(8)
	reg.Register(employeeModel())
	salary := salaryModel(ManyToOne, DefaultRelationConfig())
	reg.Register(salary)

	rows, err := salary.GenerateRows(reg, 0)
	if err != nil {
		t.Fatalf("GenerateRows failed: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("expected empty result, got %d rows", len(rows))
	}
	if salary.Relations[0].PoolLen() != 0 {
		t.Fatal("zero-count generation must not populate pools")
	}
}

type fakeStorage struct {
	existing  map[string][]any
	inserted  map[string]int
	nextKey   int64
	fetchErr  error
	insertErr error
}

func (s *fakeStorage) FetchKeys(_ context.Context, table, column string, limit int) ([]any, error) {
	if s.fetchErr != nil {
		return nil, s.fetchErr
	}
	keys := s.existing[table]
	if len(keys) > limit {
		keys = keys[:limit]
	}
	return keys, nil
}

func (s *fakeStorage) InsertReturning(_ context.Context, table string, columns []string, rows [][]any, keyColumn string) ([]any, error) {
	if s.insertErr != nil {
		return nil, s.insertErr
	}
	if s.inserted == nil {
		s.inserted = make(map[string]int)
	}
	s.inserted[table] += len(rows)
	keys := make([]any, len(rows))
	for i := range rows {
		s.nextKey++
		keys[i] = s.nextKey
	}
	return keys, nil
}

func TestStoragePrefersExistingKeys(t *testing.T) {
	storage := &fakeStorage{existing: map[string][]any{"employee": {int64(11), int64(22), int64(33)}}}
	reg := NewRegistry(9).WithStorage(context.Background(), storage)
	salary := salaryModel(ManyToOne, DefaultRelationConfig())
	reg.Register(salary)
	// The employee table is deliberately unregistered: existing keys make
	// fresh generation unnecessary.

	row, err := salary.GenerateRow(reg)
	if err != nil {
		t.Fatalf("GenerateRow failed: %v", err)
	}
	switch row["employee_id"] {
	case int64(11), int64(22), int64(33):
	default:
		t.Fatalf("employee_id %v not among existing keys", row["employee_id"])
	}
	if storage.inserted["employee"] != 0 {
		t.Errorf("no rows should be inserted when existing keys suffice")
	}
}

func TestStorageWriteThroughAssignsKeys(t *testing.T) {
	storage := &fakeStorage{nextKey: 100}
	reg := NewRegistry(10).WithStorage(context.Background(), storage)
	reg.Register(employeeModel())
	salary := salaryModel(ManyToOne, DefaultRelationConfig())
	reg.Register(salary)

	row, err := salary.GenerateRow(reg)
	if err != nil {
		t.Fatalf("GenerateRow failed: %v", err)
	}

	key, ok := row["employee_id"].(int64)
	if !ok || key <= 100 {
		t.Fatalf("expected storage-assigned key above 100, got %v", row["employee_id"])
	}
	if got := storage.inserted["employee"]; got != DefaultRelationConfig().PoolSize {
		t.Errorf("expected %d referenced rows written through, got %d", DefaultRelationConfig().PoolSize, got)
	}
}

func TestMutualReferencesHitDepthGuard(t *testing.T) {
	reg := NewRegistry(11)

	a := &TableModel{
		Name:    "alpha",
		Columns: []*Column{{Name: "beta_id", Kind: KindReference}},
		Relations: []*Relation{{
			Kind: OneToOne, FromTable: "alpha", FromColumn: "beta_id",
			ToTable: "beta", ToColumn: "id", Config: DefaultRelationConfig(),
		}},
	}
	b := &TableModel{
		Name:    "beta",
		Columns: []*Column{{Name: "alpha_id", Kind: KindReference}},
		Relations: []*Relation{{
			Kind: OneToOne, FromTable: "beta", FromColumn: "alpha_id",
			ToTable: "alpha", ToColumn: "id", Config: DefaultRelationConfig(),
		}},
	}
	reg.Register(a)
	reg.Register(b)

	_, err := a.GenerateRow(reg)
	if err == nil {
		t.Fatal("expected depth guard to fire on mutually referencing tables")
	}
	if !errors.Is(err, ErrDepthExceeded) {
		t.Fatalf("expected ErrDepthExceeded, got %v", err)
	}
}
