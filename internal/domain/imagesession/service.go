package imagesession

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/medclip/medclip/internal/domain/storagecode"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Record persists a run outcome, assigning the id and timestamp if unset.
func (s *Service) Record(ctx context.Context, rec *Record) error {
	if err := storagecode.Validate(rec.StorageCode); err != nil {
		return err
	}
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	return s.repo.Create(ctx, rec)
}

func (s *Service) List(ctx context.Context, code string, limit, offset int) ([]*Record, int, error) {
	if err := storagecode.Validate(code); err != nil {
		return nil, 0, err
	}
	return s.repo.List(ctx, code, limit, offset)
}

func (s *Service) Get(ctx context.Context, code string, id uuid.UUID) (*Record, error) {
	if err := storagecode.Validate(code); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, code, id)
}

func (s *Service) Delete(ctx context.Context, code string, id uuid.UUID) error {
	if err := storagecode.Validate(code); err != nil {
		return err
	}
	return s.repo.Delete(ctx, code, id)
}
