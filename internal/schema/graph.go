package schema

import (
	"fmt"
	"sort"

	"github.com/arnavk07/mocksmith/internal/generator"
)

// InsertionOrder topologically sorts models so every referenced table is
// inserted before its dependents. Self-references are skipped; a cycle
// between distinct tables is an error the caller may choose to tolerate,
// since on-demand resolution still keeps references valid.
func InsertionOrder(models []*generator.TableModel) ([]*generator.TableModel, error) {
	byName := make(map[string]*generator.TableModel, len(models))
	names := make([]string, 0, len(models))
	for _, model := range models {
		byName[model.Name] = model
		names = append(names, model.Name)
	}
	sort.Strings(names)

	visited := make(map[string]bool)
	temp := make(map[string]bool)
	var order []*generator.TableModel

	var visit func(string) error
	visit = func(name string) error {
		if temp[name] {
			return fmt.Errorf("circular dependency detected involving table: %s", name)
		}
		if visited[name] {
			return nil
		}

		temp[name] = true
		if model := byName[name]; model != nil {
			for _, rel := range model.Relations {
				if rel.ToTable == name {
					continue
				}
				if _, known := byName[rel.ToTable]; !known {
					continue
				}
				if err := visit(rel.ToTable); err != nil {
					return err
				}
			}
		}
		temp[name] = false
		visited[name] = true

		if model := byName[name]; model != nil {
			order = append(order, model)
		}
		return nil
	}

	for _, name := range names {
		if !visited[name] {
			if err := visit(name); err != nil {
				return models, err
			}
		}
	}
	return order, nil
}
