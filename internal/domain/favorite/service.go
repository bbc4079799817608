package favorite

import (
	"context"
	"errors"
	"fmt"

	"github.com/medclip/medclip/internal/domain/storagecode"
)

// ErrBadRequest marks validation failures so the handler can answer 400
// instead of treating them as storage faults.
var ErrBadRequest = errors.New("invalid favorite request")

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Get(ctx context.Context, code string) ([]string, error) {
	if err := storagecode.Validate(code); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, code)
}

// Put replaces the whole favorite list. Last write wins.
func (s *Service) Put(ctx context.Context, code string, favorites []string) error {
	if err := storagecode.Validate(code); err != nil {
		return err
	}
	return s.repo.Put(ctx, code, favorites)
}

// Merge appends incoming favorites that are not already present, comparing
// by exact text, and returns the merged list.
func (s *Service) Merge(ctx context.Context, code string, incoming []string) ([]string, error) {
	if err := storagecode.Validate(code); err != nil {
		return nil, err
	}

	existing, err := s.repo.Get(ctx, code)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(existing))
	for _, f := range existing {
		seen[f] = true
	}

	merged := existing
	for _, f := range incoming {
		if seen[f] {
			continue
		}
		seen[f] = true
		merged = append(merged, f)
	}

	if err := s.repo.Put(ctx, code, merged); err != nil {
		return nil, err
	}
	return merged, nil
}

// DeleteAt removes the favorite at the given positional index.
func (s *Service) DeleteAt(ctx context.Context, code string, index int) ([]string, error) {
	if err := storagecode.Validate(code); err != nil {
		return nil, err
	}

	favorites, err := s.repo.Get(ctx, code)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(favorites) {
		return nil, fmt.Errorf("%w: index %d out of range (list has %d favorites)", ErrBadRequest, index, len(favorites))
	}

	favorites = append(favorites[:index], favorites[index+1:]...)
	if err := s.repo.Put(ctx, code, favorites); err != nil {
		return nil, err
	}
	return favorites, nil
}
