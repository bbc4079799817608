package template

import (
	"context"
	"errors"
	"fmt"

	"github.com/medclip/medclip/internal/domain/storagecode"
)

// ErrBadRequest marks validation failures so the handler can answer 400
// instead of treating them as storage faults.
var ErrBadRequest = errors.New("invalid template request")

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Get(ctx context.Context, code string) ([]Template, error) {
	if err := storagecode.Validate(code); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, code)
}

// Put replaces the whole template set. Last write wins.
func (s *Service) Put(ctx context.Context, code string, templates []Template) error {
	if err := storagecode.Validate(code); err != nil {
		return err
	}
	if err := validateSet(templates); err != nil {
		return err
	}
	return s.repo.Put(ctx, code, templates)
}

// Merge combines incoming templates with the stored set, deduplicating by id
// with incoming winning on conflict, and returns the merged result.
func (s *Service) Merge(ctx context.Context, code string, incoming []Template) ([]Template, error) {
	if err := storagecode.Validate(code); err != nil {
		return nil, err
	}
	if err := validateSet(incoming); err != nil {
		return nil, err
	}

	existing, err := s.repo.Get(ctx, code)
	if err != nil {
		return nil, err
	}

	merged := Merge(existing, incoming)
	if err := s.repo.Put(ctx, code, merged); err != nil {
		return nil, err
	}
	return merged, nil
}

func (s *Service) Delete(ctx context.Context, code string) error {
	if err := storagecode.Validate(code); err != nil {
		return err
	}
	return s.repo.Delete(ctx, code)
}

func validateSet(templates []Template) error {
	for i, t := range templates {
		if t.ID == "" {
			return fmt.Errorf("%w: template %d: id is required", ErrBadRequest, i)
		}
	}
	return nil
}
