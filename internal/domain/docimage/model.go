package docimage

import (
	"encoding/json"

	"github.com/google/uuid"

	"github.com/medclip/medclip/internal/llm"
)

const (
	ModeStandard    = "standard"
	ModeRounding    = "rounding"
	ModeSignificant = "significant"
)

// ImageInput is one uploaded image, base64-encoded.
type ImageInput struct {
	Name      string `json:"name"`
	MediaType string `json:"media_type"`
	Data      string `json:"data"`
}

// Request is the image analysis payload.
type Request struct {
	StorageCode      string       `json:"storage_code,omitempty"`
	DocumentType     string       `json:"document_type,omitempty"`
	Mode             string       `json:"mode,omitempty"`
	ReaderModel      string       `json:"reader_model,omitempty"`
	InterpreterModel string       `json:"interpreter_model,omitempty"`
	Images           []ImageInput `json:"images"`
}

// Response carries both stages' output plus merged usage totals.
type Response struct {
	SessionID      uuid.UUID       `json:"session_id,omitempty"`
	DocumentType   DocType         `json:"document_type"`
	Extracted      json.RawMessage `json:"extracted"`
	Interpretation string          `json:"interpretation"`
	Warnings       []string        `json:"warnings,omitempty"`

	Reader      llm.Response `json:"reader"`
	Interpreter llm.Response `json:"interpreter"`
	Total       llm.Response `json:"total"`
}
