// Package imagesession records the outcome of each document-image analysis
// run so clients can review past extractions per storage code.
package imagesession

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// ImageMeta describes one uploaded image. The image bytes themselves are
// never persisted, only what is needed to identify the upload later.
type ImageMeta struct {
	Name      string `json:"name"`
	MediaType string `json:"media_type"`
	SizeBytes int64  `json:"size_bytes"`
}

const (
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// Record is one analysis run, successful or not.
type Record struct {
	ID               uuid.UUID       `json:"id"`
	StorageCode      string          `json:"storage_code"`
	DocumentType     string          `json:"document_type"`
	Images           []ImageMeta     `json:"images"`
	ReaderModel      string          `json:"reader_model"`
	InterpreterModel string          `json:"interpreter_model,omitempty"`
	Extracted        json.RawMessage `json:"extracted,omitempty"`
	Interpretation   string          `json:"interpretation,omitempty"`
	CostUSD          float64         `json:"cost_usd"`
	ReaderMS         int64           `json:"reader_ms"`
	InterpreterMS    int64           `json:"interpreter_ms"`
	Status           string          `json:"status"`
	Error            string          `json:"error,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
}
