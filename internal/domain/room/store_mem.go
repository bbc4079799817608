package room

import (
	"context"
	"sync"
	"time"
)

// MemoryStore keeps entries in a mutex-guarded map and removes stale ones
// with a periodic sweep. It is the default backend.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]*Entry
	ttl     time.Duration

	stop chan struct{}
	once sync.Once
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]*Entry),
		ttl:     ttl,
		stop:    make(chan struct{}),
	}
}

// StartSweeper launches the background sweep loop. Call Close to stop it.
func (s *MemoryStore) StartSweeper(interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				s.Sweep(time.Now())
			case <-s.stop:
				return
			}
		}
	}()
}

// Close stops the sweeper goroutine.
func (s *MemoryStore) Close() {
	s.once.Do(func() { close(s.stop) })
}

// Sweep removes entries last written before now minus the TTL and returns
// the number removed.
func (s *MemoryStore) Sweep(now time.Time) int {
	cutoff := now.Add(-s.ttl)

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for key, e := range s.entries {
		if e.UpdatedAt.Before(cutoff) {
			delete(s.entries, key)
			removed++
		}
	}
	return removed
}

func (s *MemoryStore) Set(_ context.Context, key, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[key] = &Entry{Key: key, Text: text, UpdatedAt: time.Now()}
	return nil
}

func (s *MemoryStore) Get(_ context.Context, key string) (*Entry, error) {
	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()

	if !ok {
		return nil, ErrNotFound
	}
	// An entry past its TTL is gone even if the sweeper has not run yet.
	if time.Since(e.UpdatedAt) > s.ttl {
		return s.expireStale(key)
	}

	cp := *e
	return &cp, nil
}

// expireStale re-checks the entry under the write lock before deleting it.
// A Set racing with lazy expiry may have refreshed the key after the read
// lock was released; the fresh write must win.
func (s *MemoryStore) expireStale(key string) (*Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.entries[key]
	if !ok {
		return nil, ErrNotFound
	}
	if time.Since(cur.UpdatedAt) > s.ttl {
		delete(s.entries, key)
		return nil, ErrNotFound
	}
	cp := *cur
	return &cp, nil
}

func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, key)
	return nil
}

// Len reports the number of live entries (stale ones included until swept).
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
