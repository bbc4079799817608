package settings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type repoPG struct {
	pool *pgxpool.Pool
}

func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

func (r *repoPG) Get(ctx context.Context, code string) (json.RawMessage, error) {
	var raw []byte
	err := r.pool.QueryRow(ctx,
		`SELECT settings FROM room_settings WHERE storage_code = $1`, code).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query settings: %w", err)
	}
	return raw, nil
}

func (r *repoPG) Put(ctx context.Context, code string, blob json.RawMessage) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO room_settings (storage_code, settings, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (storage_code)
		DO UPDATE SET settings = EXCLUDED.settings, updated_at = NOW()`,
		code, []byte(blob))
	if err != nil {
		return fmt.Errorf("upsert settings: %w", err)
	}
	return nil
}

func (r *repoPG) Delete(ctx context.Context, code string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM room_settings WHERE storage_code = $1`, code)
	if err != nil {
		return fmt.Errorf("delete settings: %w", err)
	}
	return nil
}
