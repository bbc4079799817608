package favorite

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

func (r *repoPG) Get(ctx context.Context, code string) ([]string, error) {
	var raw []byte
	err := r.pool.QueryRow(ctx,
		`SELECT favorites FROM favorite_list WHERE storage_code = $1`, code).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return []string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query favorite list: %w", err)
	}

	var favorites []string
	if err := json.Unmarshal(raw, &favorites); err != nil {
		return nil, fmt.Errorf("unmarshal favorite list: %w", err)
	}
	return favorites, nil
}

func (r *repoPG) Put(ctx context.Context, code string, favorites []string) error {
	raw, err := json.Marshal(favorites)
	if err != nil {
		return fmt.Errorf("marshal favorite list: %w", err)
	}

	_, err = r.pool.Exec(ctx, `
		INSERT INTO favorite_list (storage_code, favorites, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (storage_code)
		DO UPDATE SET favorites = EXCLUDED.favorites, updated_at = NOW()`,
		code, raw)
	if err != nil {
		return fmt.Errorf("upsert favorite list: %w", err)
	}
	return nil
}

func (r *repoPG) Delete(ctx context.Context, code string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM favorite_list WHERE storage_code = $1`, code)
	if err != nil {
		return fmt.Errorf("delete favorite list: %w", err)
	}
	return nil
}
