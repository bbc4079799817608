package template

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

func (r *repoPG) Get(ctx context.Context, code string) ([]Template, error) {
	var raw []byte
	err := r.pool.QueryRow(ctx,
		`SELECT templates FROM template_set WHERE storage_code = $1`, code).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return []Template{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query template set: %w", err)
	}

	var templates []Template
	if err := json.Unmarshal(raw, &templates); err != nil {
		return nil, fmt.Errorf("unmarshal template set: %w", err)
	}
	return templates, nil
}

func (r *repoPG) Put(ctx context.Context, code string, templates []Template) error {
	raw, err := json.Marshal(templates)
	if err != nil {
		return fmt.Errorf("marshal template set: %w", err)
	}

	_, err = r.pool.Exec(ctx, `
		INSERT INTO template_set (storage_code, templates, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (storage_code)
		DO UPDATE SET templates = EXCLUDED.templates, updated_at = NOW()`,
		code, raw)
	if err != nil {
		return fmt.Errorf("upsert template set: %w", err)
	}
	return nil
}

func (r *repoPG) Delete(ctx context.Context, code string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM template_set WHERE storage_code = $1`, code)
	if err != nil {
		return fmt.Errorf("delete template set: %w", err)
	}
	return nil
}
