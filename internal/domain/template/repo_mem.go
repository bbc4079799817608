package template

import (
	"context"
	"sync"
)

// repoMem is the in-process fallback used when no database is configured.
type repoMem struct {
	mu   sync.RWMutex
	sets map[string][]Template
}

func NewRepoMem() Repository {
	return &repoMem{sets: make(map[string][]Template)}
}

func (r *repoMem) Get(_ context.Context, code string) ([]Template, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	templates, ok := r.sets[code]
	if !ok {
		return []Template{}, nil
	}
	cp := make([]Template, len(templates))
	copy(cp, templates)
	return cp, nil
}

func (r *repoMem) Put(_ context.Context, code string, templates []Template) error {
	cp := make([]Template, len(templates))
	copy(cp, templates)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.sets[code] = cp
	return nil
}

func (r *repoMem) Delete(_ context.Context, code string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sets, code)
	return nil
}
