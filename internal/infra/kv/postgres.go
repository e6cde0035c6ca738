package kv

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Postgres stores keys in the app_state table created by the db migrations.
type Postgres struct{ pool *pgxpool.Pool }

func NewPostgres(pool *pgxpool.Pool) *Postgres { return &Postgres{pool: pool} }

func (p *Postgres) Load(ctx context.Context, key string) ([]byte, bool, error) {
	var payload []byte
	err := p.pool.QueryRow(ctx, `SELECT payload FROM app_state WHERE key = $1`, key).Scan(&payload)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("load %q: %w", key, err)
	}
	return payload, true, nil
}

func (p *Postgres) Save(ctx context.Context, entries map[string][]byte) error {
	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	for k, v := range entries {
		if _, err = tx.Exec(ctx, `
			INSERT INTO app_state (key, payload) VALUES ($1, $2)
			ON CONFLICT (key) DO UPDATE SET payload = EXCLUDED.payload, updated_at = NOW()
		`, k, v); err != nil {
			return fmt.Errorf("save %q: %w", k, err)
		}
	}
	return tx.Commit(ctx)
}

func (p *Postgres) Clear(ctx context.Context) error {
	_, err := p.pool.Exec(ctx, `DELETE FROM app_state`)
	return err
}

// Close is a no-op; the pool is owned by the caller.
func (p *Postgres) Close() error { return nil }

func (p *Postgres) Driver() Driver { return DriverPostgres }
