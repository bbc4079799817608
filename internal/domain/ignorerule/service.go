package ignorerule

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/medclip/medclip/internal/domain/storagecode"
)

// ErrBadRequest marks validation failures so the handler can answer 400
// instead of treating them as storage faults.
var ErrBadRequest = errors.New("invalid ignore rule request")

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context, code string) ([]*Rule, error) {
	if err := storagecode.Validate(code); err != nil {
		return nil, err
	}
	return s.repo.List(ctx, code)
}

func (s *Service) Create(ctx context.Context, code, ruleText string) (*Rule, error) {
	if err := storagecode.Validate(code); err != nil {
		return nil, err
	}
	if ruleText == "" {
		return nil, fmt.Errorf("%w: rule_text is required", ErrBadRequest)
	}

	rule := &Rule{
		ID:          uuid.New(),
		StorageCode: code,
		RuleText:    ruleText,
		CreatedAt:   time.Now(),
	}
	if err := s.repo.Create(ctx, rule); err != nil {
		return nil, err
	}
	return rule, nil
}

func (s *Service) Delete(ctx context.Context, code string, id uuid.UUID) error {
	if err := storagecode.Validate(code); err != nil {
		return err
	}
	return s.repo.Delete(ctx, code, id)
}

func (s *Service) GetProfile(ctx context.Context, code string) (*Profile, error) {
	if err := storagecode.Validate(code); err != nil {
		return nil, err
	}
	return s.repo.GetProfile(ctx, code)
}

func (s *Service) PutProfile(ctx context.Context, code, text string) (*Profile, error) {
	if err := storagecode.Validate(code); err != nil {
		return nil, err
	}

	profile := &Profile{StorageCode: code, Text: text, UpdatedAt: time.Now()}
	if err := s.repo.PutProfile(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// RuleTexts returns just the rule strings for prompt interpolation. A
// missing storage code yields an empty slice.
func (s *Service) RuleTexts(ctx context.Context, code string) ([]string, error) {
	rules, err := s.List(ctx, code)
	if err != nil {
		return nil, err
	}
	texts := make([]string, len(rules))
	for i, r := range rules {
		texts[i] = r.RuleText
	}
	return texts, nil
}

// ProfileText returns the profile blob, or "" when none is stored.
func (s *Service) ProfileText(ctx context.Context, code string) (string, error) {
	p, err := s.GetProfile(ctx, code)
	if err == ErrNotFound {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return p.Text, nil
}
