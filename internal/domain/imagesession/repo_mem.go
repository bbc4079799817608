package imagesession

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
)

type repoMem struct {
	mu      sync.RWMutex
	records map[string][]*Record
}

func NewRepoMem() Repository {
	return &repoMem{records: make(map[string][]*Record)}
}

func (r *repoMem) Create(_ context.Context, rec *Record) error {
	cp := *rec

	r.mu.Lock()
	defer r.mu.Unlock()
	r.records[rec.StorageCode] = append(r.records[rec.StorageCode], &cp)
	return nil
}

func (r *repoMem) List(_ context.Context, code string, limit, offset int) ([]*Record, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := r.records[code]
	sorted := make([]*Record, len(all))
	copy(sorted, all)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
	})

	total := len(sorted)
	if offset >= total {
		return []*Record{}, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}

	page := make([]*Record, 0, end-offset)
	for _, rec := range sorted[offset:end] {
		cp := *rec
		page = append(page, &cp)
	}
	return page, total, nil
}

func (r *repoMem) Get(_ context.Context, code string, id uuid.UUID) (*Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, rec := range r.records[code] {
		if rec.ID == id {
			cp := *rec
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (r *repoMem) Delete(_ context.Context, code string, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	list := r.records[code]
	for i, rec := range list {
		if rec.ID == id {
			r.records[code] = append(list[:i], list[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}
