// Package favorite persists per-storage-code lists of favorite snippets.
// A favorite is a plain string; the whole list is one JSON document.
package favorite

import "context"

// Repository defines the persistence interface for favorite lists. Get
// returns an empty slice for a storage code that has never been written.
type Repository interface {
	Get(ctx context.Context, code string) ([]string, error)
	Put(ctx context.Context, code string, favorites []string) error
	Delete(ctx context.Context, code string) error
}
