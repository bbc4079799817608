package imagesession

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("image session not found")

// Repository defines the persistence interface for analysis records.
type Repository interface {
	Create(ctx context.Context, rec *Record) error
	// List returns records for a storage code, newest first, plus the total
	// count for pagination.
	List(ctx context.Context, code string, limit, offset int) ([]*Record, int, error)
	Get(ctx context.Context, code string, id uuid.UUID) (*Record, error)
	Delete(ctx context.Context, code string, id uuid.UUID) error
}
