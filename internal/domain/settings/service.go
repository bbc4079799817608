package settings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/medclip/medclip/internal/domain/storagecode"
)

// ErrBadRequest marks validation failures so the handler can answer 400
// instead of treating them as storage faults.
var ErrBadRequest = errors.New("invalid settings request")

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Get(ctx context.Context, code string) (json.RawMessage, error) {
	if err := storagecode.Validate(code); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, code)
}

// Put stores the settings blob verbatim. The payload must be valid JSON but
// its shape is not interpreted server-side.
func (s *Service) Put(ctx context.Context, code string, blob json.RawMessage) error {
	if err := storagecode.Validate(code); err != nil {
		return err
	}
	if !json.Valid(blob) {
		return fmt.Errorf("%w: settings payload is not valid JSON", ErrBadRequest)
	}
	return s.repo.Put(ctx, code, blob)
}

func (s *Service) Delete(ctx context.Context, code string) error {
	if err := storagecode.Validate(code); err != nil {
		return err
	}
	return s.repo.Delete(ctx, code)
}
