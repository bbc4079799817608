// Package settings persists the per-storage-code room settings blob. The
// server treats it as opaque JSON owned by the clients.
package settings

import (
	"context"
	"encoding/json"
	"errors"
)

var ErrNotFound = errors.New("settings not found")

// Repository defines the persistence interface for settings blobs.
type Repository interface {
	Get(ctx context.Context, code string) (json.RawMessage, error)
	Put(ctx context.Context, code string, blob json.RawMessage) error
	Delete(ctx context.Context, code string) error
}
