package settings

import (
	"context"
	"encoding/json"
	"sync"
)

type repoMem struct {
	mu    sync.RWMutex
	blobs map[string]json.RawMessage
}

func NewRepoMem() Repository {
	return &repoMem{blobs: make(map[string]json.RawMessage)}
}

func (r *repoMem) Get(_ context.Context, code string) (json.RawMessage, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	blob, ok := r.blobs[code]
	if !ok {
		return nil, ErrNotFound
	}
	cp := make(json.RawMessage, len(blob))
	copy(cp, blob)
	return cp, nil
}

func (r *repoMem) Put(_ context.Context, code string, blob json.RawMessage) error {
	cp := make(json.RawMessage, len(blob))
	copy(cp, blob)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.blobs[code] = cp
	return nil
}

func (r *repoMem) Delete(_ context.Context, code string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.blobs, code)
	return nil
}
