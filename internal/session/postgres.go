package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const sessionItemsTable = "session_items"

const sessionItemsSchema = `
CREATE TABLE IF NOT EXISTS session_items (
	namespace  TEXT        NOT NULL,
	key        TEXT        NOT NULL,
	value      TEXT        NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	PRIMARY KEY (namespace, key)
)`

// PostgresStorage keeps items in the session_items table.
type PostgresStorage struct {
	pool *pgxpool.Pool
}

// NewPostgresStorage wraps a pool. Call Migrate once before use.
func NewPostgresStorage(pool *pgxpool.Pool) *PostgresStorage {
	return &PostgresStorage{pool: pool}
}

// Migrate creates the session_items table if it does not exist.
func (p *PostgresStorage) Migrate(ctx context.Context) error {
	if _, err := p.pool.Exec(ctx, sessionItemsSchema); err != nil {
		return fmt.Errorf("failed to migrate session_items: %w", err)
	}
	return nil
}

func (p *PostgresStorage) GetItem(ctx context.Context, namespace, key string) (string, bool, error) {
	query, args, err := selectItem(namespace, key).ToSql()
	if err != nil {
		return "", false, fmt.Errorf("error building SQL: %w", err)
	}

	var value string
	err = p.pool.QueryRow(ctx, query, args...).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read session item: %w", err)
	}
	return value, true, nil
}

func (p *PostgresStorage) SetItem(ctx context.Context, namespace, key, value string) error {
	query, args, err := upsertItem(namespace, key, value).ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	if _, err := p.pool.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to write session item: %w", err)
	}
	return nil
}

func (p *PostgresStorage) RemoveItem(ctx context.Context, namespace, key string) error {
	query, args, err := deleteItem(namespace, key).ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	if _, err := p.pool.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to remove session item: %w", err)
	}
	return nil
}

func selectItem(namespace, key string) squirrel.SelectBuilder {
	return squirrel.Select("value").
		From(sessionItemsTable).
		Where(squirrel.Eq{"namespace": namespace}).
		Where(squirrel.Eq{"key": key}).
		PlaceholderFormat(squirrel.Dollar)
}

func upsertItem(namespace, key, value string) squirrel.InsertBuilder {
	return squirrel.Insert(sessionItemsTable).
		Columns("namespace", "key", "value", "updated_at").
		Values(namespace, key, value, squirrel.Expr("NOW()")).
		Suffix("ON CONFLICT (namespace, key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()").
		PlaceholderFormat(squirrel.Dollar)
}

func deleteItem(namespace, key string) squirrel.DeleteBuilder {
	return squirrel.Delete(sessionItemsTable).
		Where(squirrel.Eq{"namespace": namespace}).
		Where(squirrel.Eq{"key": key}).
		PlaceholderFormat(squirrel.Dollar)
}
