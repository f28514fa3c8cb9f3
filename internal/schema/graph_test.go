package schema

import (
	"testing"

	"github.com/arnavk07/mocksmith/internal/generator"
)

func modelWithDeps(name string, deps ...string) *generator.TableModel {
	model := &generator.TableModel{Name: name}
	for _, dep := range deps {
		model.Relations = append(model.Relations, &generator.Relation{
			Kind:       generator.ManyToOne,
			FromTable:  name,
			FromColumn: dep + "_id",
			ToTable:    dep,
			ToColumn:   "id",
		})
	}
	return model
}

func position(t *testing.T, order []*generator.TableModel, name string) int {
	t.Helper()
	for i, model := range order {
		if model.Name == name {
			return i
		}
	}
	t.Fatalf("table %s missing from insertion order", name)
	return -1
}

func TestInsertionOrderRespectsDependencies(t *testing.T) {
	models := []*generator.TableModel{
		modelWithDeps("salary", "employee"),
		modelWithDeps("employee", "department"),
		modelWithDeps("department"),
		modelWithDeps("title", "employee"),
	}

	order, err := InsertionOrder(models)
	if err != nil {
		t.Fatalf("InsertionOrder failed: %v", err)
	}
	if len(order) != len(models) {
		t.Fatalf("order has %d tables, want %d", len(order), len(models))
	}

	if position(t, order, "department") > position(t, order, "employee") {
		t.Error("department must precede employee")
	}
	if position(t, order, "employee") > position(t, order, "salary") {
		t.Error("employee must precede salary")
	}
	if position(t, order, "employee") > position(t, order, "title") {
		t.Error("employee must precede title")
	}
}

func TestInsertionOrderDeterministic(t *testing.T) {
	build := func() []*generator.TableModel {
		return []*generator.TableModel{
			modelWithDeps("c"),
			modelWithDeps("a"),
			modelWithDeps("b"),
		}
	}

	first, err := InsertionOrder(build())
	if err != nil {
		t.Fatal(err)
	}
	second, err := InsertionOrder(build())
	if err != nil {
		t.Fatal(err)
	}
	for i := range first {
		if first[i].Name != second[i].Name {
			t.Fatalf("order not deterministic: %s vs %s at %d", first[i].Name, second[i].Name, i)
		}
	}
}

func TestSelfReferenceIsNotACycle(t *testing.T) {
	models := []*generator.TableModel{modelWithDeps("employee", "employee")}
	if _, err := InsertionOrder(models); err != nil {
		t.Fatalf("self-reference should be tolerated: %v", err)
	}
}

func TestCycleIsReported(t *testing.T) {
	models := []*generator.TableModel{
		modelWithDeps("a", "b"),
		modelWithDeps("b", "a"),
	}
	if _, err := InsertionOrder(models); err == nil {
		t.Fatal("mutual dependency must be reported")
	}
}

func TestUnknownDependencySkipped(t *testing.T) {
	models := []*generator.TableModel{modelWithDeps("salary", "employee")}
	order, err := InsertionOrder(models)
	if err != nil {
		t.Fatalf("reference to an unregistered table should not fail ordering: %v", err)
	}
	if len(order) != 1 || order[0].Name != "salary" {
		t.Fatalf("unexpected order: %v", order)
	}
}
