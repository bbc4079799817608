// Package room implements the ephemeral clipboard relay between the phone
// client and the desktop browser. Each direction is an independent store of
// key→text entries with last-write-wins semantics and a one-hour lifetime.
package room

import (
	"context"
	"errors"
	"time"
)

// Direction names for the two relay channels.
const (
	DirectionPush = "push" // phone → desktop
	DirectionPull = "pull" // desktop → phone
)

// Entry is a single relayed snippet.
type Entry struct {
	Key       string    `json:"key"`
	Text      string    `json:"text"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ErrNotFound is returned when a key has no live entry.
var ErrNotFound = errors.New("room entry not found")

// Store is the per-direction entry store. Implementations expire entries
// after the configured TTL.
type Store interface {
	Set(ctx context.Context, key, text string) error
	Get(ctx context.Context, key string) (*Entry, error)
	Delete(ctx context.Context, key string) error
}
