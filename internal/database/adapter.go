package database

import (
	"context"

	"github.com/arnavk07/mocksmith/internal/types"
)

// Adapter is the provider-specific collaborator: schema introspection for the
// model builder, key fetching for relation pools, and atomic batch writes for
// the insertion driver.
type Adapter interface {
	Connect(ctx context.Context, url string) error
	Close() error
	Ping(ctx context.Context) error

	// Schema provider
	GetAllTableNames(ctx context.Context) ([]string, error)
	GetCurrentSchema(ctx context.Context) ([]types.SchemaTable, error)
	GetTableColumns(ctx context.Context, tableName string) ([]types.SchemaColumn, error)

	// Storage provider
	FetchKeys(ctx context.Context, table, column string, limit int) ([]any, error)
	InsertBatch(ctx context.Context, table string, columns []string, rows [][]any) error
	InsertReturning(ctx context.Context, table string, columns []string, rows [][]any, keyColumn string) ([]any, error)
}
