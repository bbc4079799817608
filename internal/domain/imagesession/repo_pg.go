package imagesession

import (
	"context"
	"encoding/json"
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

func (r *repoPG) Create(ctx context.Context, rec *Record) error {
	images, err := json.Marshal(rec.Images)
	if err != nil {
		return fmt.Errorf("marshal images: %w", err)
	}

	_, err = r.pool.Exec(ctx, `
		INSERT INTO image_session (
			id, storage_code, document_type, images,
			reader_model, interpreter_model, extracted, interpretation,
			cost_usd, reader_ms, interpreter_ms, status, error, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		rec.ID, rec.StorageCode, rec.DocumentType, images,
		rec.ReaderModel, rec.InterpreterModel, []byte(rec.Extracted), rec.Interpretation,
		rec.CostUSD, rec.ReaderMS, rec.InterpreterMS, rec.Status, rec.Error, rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert image session: %w", err)
	}
	return nil
}

func (r *repoPG) List(ctx context.Context, code string, limit, offset int) ([]*Record, int, error) {
	var total int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM image_session WHERE storage_code = $1`, code).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("count image sessions: %w", err)
	}

	rows, err := r.pool.Query(ctx, `
		SELECT id, storage_code, document_type, images,
		       reader_model, interpreter_model, extracted, interpretation,
		       cost_usd, reader_ms, interpreter_ms, status, error, created_at
		FROM image_session
		WHERE storage_code = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`, code, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("query image sessions: %w", err)
	}
	defer rows.Close()

	records := make([]*Record, 0, limit)
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, 0, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate image sessions: %w", err)
	}
	return records, total, nil
}

func (r *repoPG) Get(ctx context.Context, code string, id uuid.UUID) (*Record, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, storage_code, document_type, images,
		       reader_model, interpreter_model, extracted, interpretation,
		       cost_usd, reader_ms, interpreter_ms, status, error, created_at
		FROM image_session
		WHERE storage_code = $1 AND id = $2`, code, id)

	rec, err := scanRecord(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return rec, nil
}

func (r *repoPG) Delete(ctx context.Context, code string, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM image_session WHERE storage_code = $1 AND id = $2`, code, id)
	if err != nil {
		return fmt.Errorf("delete image session: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanRecord(row pgx.Row) (*Record, error) {
	var (
		rec    Record
		images []byte
	)
	err := row.Scan(&rec.ID, &rec.StorageCode, &rec.DocumentType, &images,
		&rec.ReaderModel, &rec.InterpreterModel, (*[]byte)(&rec.Extracted), &rec.Interpretation,
		&rec.CostUSD, &rec.ReaderMS, &rec.InterpreterMS, &rec.Status, &rec.Error, &rec.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan image session: %w", err)
	}
	if len(images) > 0 {
		if err := json.Unmarshal(images, &rec.Images); err != nil {
			return nil, fmt.Errorf("unmarshal images: %w", err)
		}
	}
	return &rec, nil
}
