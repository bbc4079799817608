package favorite

import (
	"context"
	"sync"
)

type repoMem struct {
	mu    sync.RWMutex
	lists map[string][]string
}

func NewRepoMem() Repository {
	return &repoMem{lists: make(map[string][]string)}
}

func (r *repoMem) Get(_ context.Context, code string) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	favorites, ok := r.lists[code]
	if !ok {
		return []string{}, nil
	}
	cp := make([]string, len(favorites))
	copy(cp, favorites)
	return cp, nil
}

func (r *repoMem) Put(_ context.Context, code string, favorites []string) error {
	cp := make([]string, len(favorites))
	copy(cp, favorites)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.lists[code] = cp
	return nil
}

func (r *repoMem) Delete(_ context.Context, code string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.lists, code)
	return nil
}
