package ignorerule

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type repoPG struct {
	pool *pgxpool.Pool
}

func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

func (r *repoPG) List(ctx context.Context, code string) ([]*Rule, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, storage_code, rule_text, created_at
		FROM ignore_rule WHERE storage_code = $1
		ORDER BY created_at`, code)
	if err != nil {
		return nil, fmt.Errorf("query ignore rules: %w", err)
	}
	defer rows.Close()

	var rules []*Rule
	for rows.Next() {
		rule := &Rule{}
		if err := rows.Scan(&rule.ID, &rule.StorageCode, &rule.RuleText, &rule.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan ignore rule: %w", err)
		}
		rules = append(rules, rule)
	}
	return rules, rows.Err()
}

func (r *repoPG) Create(ctx context.Context, rule *Rule) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO ignore_rule (id, storage_code, rule_text, created_at)
		VALUES ($1, $2, $3, $4)`,
		rule.ID, rule.StorageCode, rule.RuleText, rule.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert ignore rule: %w", err)
	}
	return nil
}

func (r *repoPG) Delete(ctx context.Context, code string, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM ignore_rule WHERE storage_code = $1 AND id = $2`, code, id)
	if err != nil {
		return fmt.Errorf("delete ignore rule: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repoPG) GetProfile(ctx context.Context, code string) (*Profile, error) {
	p := &Profile{}
	err := r.pool.QueryRow(ctx, `
		SELECT storage_code, text, updated_at
		FROM user_profile WHERE storage_code = $1`, code).
		Scan(&p.StorageCode, &p.Text, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query profile: %w", err)
	}
	return p, nil
}

func (r *repoPG) PutProfile(ctx context.Context, profile *Profile) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO user_profile (storage_code, text, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (storage_code)
		DO UPDATE SET text = EXCLUDED.text, updated_at = NOW()`,
		profile.StorageCode, profile.Text)
	if err != nil {
		return fmt.Errorf("upsert profile: %w", err)
	}
	return nil
}
