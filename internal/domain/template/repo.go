package template

import "context"

// Repository defines the persistence interface for template sets. Get returns
// an empty slice for a storage code that has never been written.
type Repository interface {
	Get(ctx context.Context, code string) ([]Template, error)
	Put(ctx context.Context, code string, templates []Template) error
	Delete(ctx context.Context, code string) error
}
