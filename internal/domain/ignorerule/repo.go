package ignorerule

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("ignore rule not found")

// Repository defines the persistence interface for ignore rules and the
// per-storage-code profile text.
type Repository interface {
	List(ctx context.Context, code string) ([]*Rule, error)
	Create(ctx context.Context, rule *Rule) error
	Delete(ctx context.Context, code string, id uuid.UUID) error

	GetProfile(ctx context.Context, code string) (*Profile, error)
	PutProfile(ctx context.Context, profile *Profile) error
}
