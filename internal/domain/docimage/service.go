package docimage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/medclip/medclip/internal/domain/ignorerule"
	"github.com/medclip/medclip/internal/domain/imagesession"
	"github.com/medclip/medclip/internal/domain/storagecode"
	"github.com/medclip/medclip/internal/llm"
)

// ErrBadRequest marks request validation failures for the handler's 400
// mapping.
var ErrBadRequest = errors.New("invalid image analysis request")

// Service orchestrates the Reader and Interpreter stages sequentially and
// records each run as an image session.
type Service struct {
	engines          *llm.Engines
	rules            *ignorerule.Service
	sessions         *imagesession.Service
	readerModel      string
	interpreterModel string
	logger           zerolog.Logger
}

func NewService(engines *llm.Engines, rules *ignorerule.Service, sessions *imagesession.Service, readerModel, interpreterModel string, logger zerolog.Logger) *Service {
	return &Service{
		engines:          engines,
		rules:            rules,
		sessions:         sessions,
		readerModel:      readerModel,
		interpreterModel: interpreterModel,
		logger:           logger,
	}
}

func (s *Service) Analyze(ctx context.Context, req Request) (*Response, error) {
	if len(req.Images) == 0 {
		return nil, fmt.Errorf("%w: at least one image is required", ErrBadRequest)
	}
	if req.StorageCode != "" {
		if err := storagecode.Validate(req.StorageCode); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrBadRequest, err)
		}
	}
	docType, err := ParseDocType(req.DocumentType)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadRequest, err)
	}
	mode, err := parseMode(req.Mode)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadRequest, err)
	}

	readerModel := req.ReaderModel
	if readerModel == "" {
		readerModel = s.readerModel
	}
	interpreterModel := req.InterpreterModel
	if interpreterModel == "" {
		interpreterModel = s.interpreterModel
	}

	rec := &imagesession.Record{
		StorageCode:  req.StorageCode,
		DocumentType: string(docType),
		Images:       imageMeta(req.Images),
		ReaderModel:  readerModel,
	}

	for _, m := range []string{readerModel, interpreterModel} {
		if !llm.PriceKnown(m) {
			s.logger.Warn().Str("model", m).Msg("model not in price table; cost reported as 0")
		}
	}

	readerResp, err := s.runReader(ctx, readerModel, docType, req.Images)
	if err != nil {
		s.recordFailure(ctx, rec, readerResp, llm.Response{}, err)
		return nil, fmt.Errorf("reader stage: %w", err)
	}
	rec.ReaderMS = readerResp.ElapsedMS

	extracted, warnings := normalizeExtracted(readerResp.Text)
	rec.Extracted = extracted
	rec.InterpreterModel = interpreterModel

	interpResp, err := s.runInterpreter(ctx, interpreterModel, docType, mode, req.StorageCode, extracted)
	if err != nil {
		s.recordFailure(ctx, rec, readerResp, interpResp, err)
		return nil, fmt.Errorf("interpreter stage: %w", err)
	}
	rec.InterpreterMS = interpResp.ElapsedMS
	rec.Interpretation = interpResp.Text
	rec.Status = imagesession.StatusCompleted

	total := readerResp
	total.Add(interpResp)
	total.Text = ""
	total.Model = ""
	rec.CostUSD = total.CostUSD

	s.record(ctx, rec)

	return &Response{
		SessionID:      rec.ID,
		DocumentType:   docType,
		Extracted:      extracted,
		Interpretation: interpResp.Text,
		Warnings:       warnings,
		Reader:         readerResp,
		Interpreter:    interpResp,
		Total:          total,
	}, nil
}

func (s *Service) runReader(ctx context.Context, model string, docType DocType, images []ImageInput) (llm.Response, error) {
	engine, err := s.engines.ForModel(model)
	if err != nil {
		return llm.Response{}, fmt.Errorf("%w: %s", err, model)
	}

	attachments := make([]llm.Image, len(images))
	for i, img := range images {
		attachments[i] = llm.Image{MediaType: img.MediaType, Data: img.Data}
	}

	return engine.Complete(ctx, llm.Request{
		Model:  model,
		System: readerSystemPrompt(docType),
		User:   readerUserPrompt(len(images)),
		Images: attachments,
	})
}

func (s *Service) runInterpreter(ctx context.Context, model string, docType DocType, mode, code string, extracted json.RawMessage) (llm.Response, error) {
	engine, err := s.engines.ForModel(model)
	if err != nil {
		return llm.Response{}, fmt.Errorf("%w: %s", err, model)
	}

	var profileText string
	var ruleTexts []string
	if code != "" {
		if profileText, err = s.rules.ProfileText(ctx, code); err != nil {
			return llm.Response{}, fmt.Errorf("load profile: %w", err)
		}
		if ruleTexts, err = s.rules.RuleTexts(ctx, code); err != nil {
			return llm.Response{}, fmt.Errorf("load ignore rules: %w", err)
		}
	}

	return engine.Complete(ctx, llm.Request{
		Model:  model,
		System: interpreterSystemPrompt(mode, profileText, ruleTexts),
		User:   interpreterUserPrompt(docType, string(extracted)),
	})
}

func (s *Service) recordFailure(ctx context.Context, rec *imagesession.Record, reader, interp llm.Response, cause error) {
	rec.Status = imagesession.StatusFailed
	rec.Error = cause.Error()
	rec.ReaderMS = reader.ElapsedMS
	rec.InterpreterMS = interp.ElapsedMS
	rec.CostUSD = reader.CostUSD + interp.CostUSD
	s.record(ctx, rec)
}

// record persists the session when a storage code was given. Recording is
// best effort; a storage failure must not mask the analysis outcome.
func (s *Service) record(ctx context.Context, rec *imagesession.Record) {
	if rec.StorageCode == "" {
		return
	}
	if err := s.sessions.Record(ctx, rec); err != nil {
		s.logger.Warn().Err(err).Str("storage_code", rec.StorageCode).Msg("failed to record image session")
	}
}

// normalizeExtracted coerces the Reader's output into valid JSON. When the
// model ignored the format instructions the raw text is preserved under a
// "raw_text" key and a warning is attached.
func normalizeExtracted(text string) (json.RawMessage, []string) {
	stripped := llm.StripCodeFences(text)
	if json.Valid([]byte(stripped)) {
		return json.RawMessage(stripped), nil
	}
	if obj := llm.ExtractJSONObject(stripped); obj != "" && json.Valid([]byte(obj)) {
		return json.RawMessage(obj), nil
	}

	wrapped, _ := json.Marshal(map[string]string{"raw_text": text})
	return wrapped, []string{"reader output was not valid JSON; wrapped as raw_text"}
}

func imageMeta(images []ImageInput) []imagesession.ImageMeta {
	meta := make([]imagesession.ImageMeta, len(images))
	for i, img := range images {
		meta[i] = imagesession.ImageMeta{
			Name:      img.Name,
			MediaType: img.MediaType,
			SizeBytes: int64(len(img.Data)) * 3 / 4,
		}
	}
	return meta
}

func parseMode(s string) (string, error) {
	switch s {
	case "":
		return ModeStandard, nil
	case ModeStandard, ModeRounding, ModeSignificant:
		return s, nil
	default:
		return "", fmt.Errorf("unknown mode %q", s)
	}
}
