package ignorerule

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

type repoMem struct {
	mu       sync.RWMutex
	rules    map[string][]*Rule
	profiles map[string]*Profile
}

func NewRepoMem() Repository {
	return &repoMem{
		rules:    make(map[string][]*Rule),
		profiles: make(map[string]*Profile),
	}
}

func (r *repoMem) List(_ context.Context, code string) ([]*Rule, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rules := r.rules[code]
	cp := make([]*Rule, len(rules))
	for i, rule := range rules {
		c := *rule
		cp[i] = &c
	}
	return cp, nil
}

func (r *repoMem) Create(_ context.Context, rule *Rule) error {
	c := *rule

	r.mu.Lock()
	defer r.mu.Unlock()
	r.rules[rule.StorageCode] = append(r.rules[rule.StorageCode], &c)
	return nil
}

func (r *repoMem) Delete(_ context.Context, code string, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rules := r.rules[code]
	for i, rule := range rules {
		if rule.ID == id {
			r.rules[code] = append(rules[:i], rules[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (r *repoMem) GetProfile(_ context.Context, code string) (*Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.profiles[code]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *repoMem) PutProfile(_ context.Context, profile *Profile) error {
	cp := *profile
	cp.UpdatedAt = time.Now()

	r.mu.Lock()
	defer r.mu.Unlock()
	r.profiles[profile.StorageCode] = &cp
	return nil
}
