package analysis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/medclip/medclip/internal/domain/ignorerule"
	"github.com/medclip/medclip/internal/domain/storagecode"
	"github.com/medclip/medclip/internal/domain/template"
	"github.com/medclip/medclip/internal/llm"
)

// Service runs note analysis: load stored prompt context, call the model,
// parse the answer.
type Service struct {
	engines      *llm.Engines
	templates    *template.Service
	rules        *ignorerule.Service
	defaultModel string
	logger       zerolog.Logger
}

func NewService(engines *llm.Engines, templates *template.Service, rules *ignorerule.Service, defaultModel string, logger zerolog.Logger) *Service {
	return &Service{
		engines:      engines,
		templates:    templates,
		rules:        rules,
		defaultModel: defaultModel,
		logger:       logger,
	}
}

// ErrBadRequest marks request validation failures so the handler can map
// them to a 400 instead of an upstream error.
var ErrBadRequest = errors.New("invalid analyze request")

func (s *Service) Analyze(ctx context.Context, req Request) (*Result, error) {
	if req.Text == "" {
		return nil, fmt.Errorf("%w: text is required", ErrBadRequest)
	}

	model := req.Model
	if model == "" {
		model = s.defaultModel
	}
	engine, err := s.engines.ForModel(model)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", err, model)
	}

	pc, err := s.promptContext(ctx, req.StorageCode)
	if err != nil {
		return nil, err
	}

	resp, err := engine.Complete(ctx, llm.Request{
		Model:          model,
		System:         BuildSystemPrompt(req.Options, pc),
		User:           BuildUserPrompt(req.Text),
		ThinkingBudget: req.Options.ThinkingBudget,
	})
	if err != nil {
		return nil, fmt.Errorf("analyze via %s: %w", engine.Name(), err)
	}

	result := parseResult(resp.Text)
	result.Usage = resp

	if !llm.PriceKnown(model) {
		s.logger.Warn().Str("model", model).Msg("model not in price table; cost reported as 0")
	}
	s.logger.Debug().
		Str("model", resp.Model).
		Int("input_tokens", resp.InputTokens).
		Int("output_tokens", resp.OutputTokens).
		Float64("cost_usd", resp.CostUSD).
		Msg("note analysis completed")

	return result, nil
}

func (s *Service) promptContext(ctx context.Context, code string) (PromptContext, error) {
	var pc PromptContext
	if code == "" {
		return pc, nil
	}
	if err := storagecode.Validate(code); err != nil {
		return pc, fmt.Errorf("%w: %v", ErrBadRequest, err)
	}

	templates, err := s.templates.Get(ctx, code)
	if err != nil {
		return pc, fmt.Errorf("load templates: %w", err)
	}
	ruleTexts, err := s.rules.RuleTexts(ctx, code)
	if err != nil {
		return pc, fmt.Errorf("load ignore rules: %w", err)
	}
	profile, err := s.rules.ProfileText(ctx, code)
	if err != nil {
		return pc, fmt.Errorf("load profile: %w", err)
	}

	pc.Templates = templates
	pc.IgnoreRules = ruleTexts
	pc.ProfileText = profile
	return pc, nil
}

// parseResult decodes the model's answer, degrading gracefully: strip code
// fences first, then try the outermost JSON object, and as a last resort
// treat the whole answer as corrected text with a parse warning.
func parseResult(text string) *Result {
	stripped := llm.StripCodeFences(text)

	var result Result
	if err := json.Unmarshal([]byte(stripped), &result); err == nil {
		return &result
	}

	if obj := llm.ExtractJSONObject(stripped); obj != "" {
		result = Result{}
		if err := json.Unmarshal([]byte(obj), &result); err == nil {
			return &result
		}
	}

	return &Result{
		CorrectedText: text,
		Warnings:      []string{"model output was not valid JSON; returning raw text"},
	}
}
