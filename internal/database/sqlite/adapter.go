package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/arnavk07/mocksmith/internal/database/common"
	_ "github.com/mattn/go-sqlite3"
)

type Adapter struct {
	db *sql.DB
	qb squirrel.StatementBuilderType
}

func New() *Adapter {
	return &Adapter{
		qb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question),
	}
}

func (s *Adapter) Connect(ctx context.Context, url string) error {
	path := url
	path = strings.TrimPrefix(path, "sqlite://")
	path = strings.TrimPrefix(path, "file:")

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return fmt.Errorf("failed to open SQLite database: %w", err)
	}
	// SQLite allows one writer; more connections just contend.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	s.db = db
	return nil
}

func (s *Adapter) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *Adapter) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Adapter) FetchKeys(ctx context.Context, table, column string, limit int) ([]any, error) {
	if err := common.CheckIdentifiers(table, []string{column}); err != nil {
		return nil, err
	}

	query, args, err := s.qb.Select(column).From(table).
		Where(squirrel.NotEq{column: nil}).
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building key query for %s.%s: %w", table, column, err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var keys []any
	for rows.Next() {
		var key any
		if err := rows.Scan(&key); err != nil {
			return nil, err
		}
		keys = append(keys, key)
	}
	return keys, rows.Err()
}

func (s *Adapter) InsertBatch(ctx context.Context, table string, columns []string, rowValues [][]any) error {
	_, err := s.insertRows(ctx, table, columns, rowValues, false)
	return err
}

func (s *Adapter) InsertReturning(ctx context.Context, table string, columns []string, rowValues [][]any, keyColumn string) ([]any, error) {
	if len(rowValues) == 0 {
		return nil, nil
	}

	for i, col := range columns {
		if col == keyColumn {
			keys := make([]any, len(rowValues))
			for j, row := range rowValues {
				keys[j] = row[i]
			}
			return keys, s.InsertBatch(ctx, table, columns, rowValues)
		}
	}

	return s.insertRows(ctx, table, columns, rowValues, true)
}

// insertRows writes one batch inside a single transaction, row by row since
// SQLite only reports last_insert_rowid per statement.
func (s *Adapter) insertRows(ctx context.Context, table string, columns []string, rowValues [][]any, collectIDs bool) ([]any, error) {
	if len(rowValues) == 0 {
		return nil, nil
	}
	if err := common.CheckIdentifiers(table, columns); err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	query, _, err := s.qb.Insert(table).Columns(columns...).
		Values(make([]any, len(columns))...).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building insert for %s: %w", table, err)
	}

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer stmt.Close()

	var keys []any
	for _, row := range rowValues {
		result, err := stmt.ExecContext(ctx, row...)
		if err != nil {
			return nil, err
		}
		if collectIDs {
			id, err := result.LastInsertId()
			if err != nil {
				return nil, fmt.Errorf("reading last insert rowid for %s: %w", table, err)
			}
			keys = append(keys, id)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return keys, nil
}
