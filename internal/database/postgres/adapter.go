package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/arnavk07/mocksmith/internal/database/common"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/lib/pq"
)

type Adapter struct {
	pool *pgxpool.Pool
	qb   squirrel.StatementBuilderType
}

func New() *Adapter {
	return &Adapter{
		qb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func (p *Adapter) Connect(ctx context.Context, url string) error {
	config, err := pgxpool.ParseConfig(url)
	if err != nil {
		return fmt.Errorf("failed to parse connection URL: %w", err)
	}

	config.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeExec

	config.MaxConns = 2
	config.MinConns = 0
	config.MaxConnLifetime = 15 * time.Minute
	config.MaxConnIdleTime = 3 * time.Minute
	config.HealthCheckPeriod = 30 * time.Second

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return fmt.Errorf("failed to create connection pool: %w", err)
	}

	p.pool = pool
	return nil
}

func (p *Adapter) Close() error {
	if p.pool != nil {
		p.pool.Close()
	}
	return nil
}

func (p *Adapter) Ping(ctx context.Context) error {
	return p.pool.Ping(ctx)
}

func (p *Adapter) FetchKeys(ctx context.Context, table, column string, limit int) ([]any, error) {
	if err := common.CheckIdentifiers(table, []string{column}); err != nil {
		return nil, err
	}

	query, args, err := p.qb.Select(column).From(table).
		Where(squirrel.NotEq{column: nil}).
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building key query for %s.%s: %w", table, column, err)
	}

	rows, err := p.pool.Query(ctx, query, args...)
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

func (p *Adapter) InsertBatch(ctx context.Context, table string, columns []string, rowValues [][]any) error {
	if len(rowValues) == 0 {
		return nil
	}
	if err := common.CheckIdentifiers(table, columns); err != nil {
		return err
	}

	builder := p.qb.Insert(table).Columns(columns...)
	for _, row := range rowValues {
		builder = builder.Values(row...)
	}
	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("building insert for %s: %w", table, err)
	}

	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, query, args...); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (p *Adapter) InsertReturning(ctx context.Context, table string, columns []string, rowValues [][]any, keyColumn string) ([]any, error) {
	if len(rowValues) == 0 {
		return nil, nil
	}
	if err := common.CheckIdentifiers(table, append([]string{keyColumn}, columns...)); err != nil {
		return nil, err
	}

	builder := p.qb.Insert(table).Columns(columns...).
		Suffix(fmt.Sprintf("RETURNING %s", keyColumn))
	for _, row := range rowValues {
		builder = builder.Values(row...)
	}
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("building insert for %s: %w", table, err)
	}

	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}

	var keys []any
	for rows.Next() {
		var key any
		if err := rows.Scan(&key); err != nil {
			rows.Close()
			return nil, err
		}
		keys = append(keys, key)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return keys, nil
}
