package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/arnavk07/mocksmith/internal/database/common"
	_ "github.com/go-sql-driver/mysql"
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

func (m *Adapter) Connect(ctx context.Context, url string) error {
	dsn := normalizeDSN(url)

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return fmt.Errorf("failed to open MySQL connection: %w", err)
	}
	db.SetMaxOpenConns(2)
	db.SetMaxIdleConns(0)
	db.SetConnMaxLifetime(15 * time.Minute)
	db.SetConnMaxIdleTime(3 * time.Minute)

	m.db = db
	return nil
}

// normalizeDSN converts mysql:// URLs into the driver's user@tcp(host)/db
// form and maps URL-style ssl params onto driver tls params.
func normalizeDSN(url string) string {
	if !strings.HasPrefix(url, "mysql://") {
		return url
	}
	dsn := strings.TrimPrefix(url, "mysql://")

	atIndex := strings.Index(dsn, "@")
	if atIndex <= 0 {
		return dsn
	}
	credentials := dsn[:atIndex]
	remainder := dsn[atIndex+1:]

	slashIndex := strings.Index(remainder, "/")
	if slashIndex <= 0 {
		return dsn
	}
	hostPort := remainder[:slashIndex]
	dbAndParams := remainder[slashIndex+1:]

	replacer := strings.NewReplacer(
		"ssl-mode=REQUIRED", "tls=skip-verify",
		"ssl-mode=DISABLED", "tls=false",
		"ssl-mode=VERIFY_CA", "tls=true",
		"ssl-mode=VERIFY_IDENTITY", "tls=true",
		"sslmode=require", "tls=skip-verify",
		"sslmode=disable", "tls=false",
		"sslmode=verify-ca", "tls=true",
		"sslmode=verify-full", "tls=true",
	)
	dbAndParams = replacer.Replace(dbAndParams)

	return fmt.Sprintf("%s@tcp(%s)/%s", credentials, hostPort, dbAndParams)
}

func (m *Adapter) Close() error {
	if m.db != nil {
		return m.db.Close()
	}
	return nil
}

func (m *Adapter) Ping(ctx context.Context) error {
	return m.db.PingContext(ctx)
}

func (m *Adapter) FetchKeys(ctx context.Context, table, column string, limit int) ([]any, error) {
	if err := common.CheckIdentifiers(table, []string{column}); err != nil {
		return nil, err
	}

	query, args, err := m.qb.Select(column).From(table).
		Where(squirrel.NotEq{column: nil}).
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building key query for %s.%s: %w", table, column, err)
	}

	rows, err := m.db.QueryContext(ctx, query, args...)
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
		keys = append(keys, normalizeKey(key))
	}
	return keys, rows.Err()
}

// normalizeKey converts []byte scan results (MySQL's default for many types)
// into comparable values.
func normalizeKey(v any) any {
	if b, ok := v.([]byte); ok {
		return string(b)
	}
	return v
}

func (m *Adapter) InsertBatch(ctx context.Context, table string, columns []string, rowValues [][]any) error {
	_, err := m.execInsert(ctx, table, columns, rowValues)
	return err
}

func (m *Adapter) InsertReturning(ctx context.Context, table string, columns []string, rowValues [][]any, keyColumn string) ([]any, error) {
	if len(rowValues) == 0 {
		return nil, nil
	}

	// When the key is part of the payload the values are already known.
	for i, col := range columns {
		if col == keyColumn {
			keys := make([]any, len(rowValues))
			for j, row := range rowValues {
				keys[j] = row[i]
			}
			return keys, m.InsertBatch(ctx, table, columns, rowValues)
		}
	}

	result, err := m.execInsert(ctx, table, columns, rowValues)
	if err != nil {
		return nil, err
	}

	// MySQL reports the first auto-increment id of a multi-row insert; the
	// rest follow sequentially within the statement.
	firstID, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("reading last insert id for %s: %w", table, err)
	}
	keys := make([]any, len(rowValues))
	for i := range rowValues {
		keys[i] = firstID + int64(i)
	}
	return keys, nil
}

func (m *Adapter) execInsert(ctx context.Context, table string, columns []string, rowValues [][]any) (sql.Result, error) {
	if len(rowValues) == 0 {
		return nil, nil
	}
	if err := common.CheckIdentifiers(table, columns); err != nil {
		return nil, err
	}

	builder := m.qb.Insert(table).Columns(columns...)
	for _, row := range rowValues {
		builder = builder.Values(row...)
	}
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("building insert for %s: %w", table, err)
	}

	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return result, nil
}
