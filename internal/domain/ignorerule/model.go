// Package ignorerule persists per-storage-code correction exclusions and the
// free-text user profile that both feed the analysis prompt builder.
package ignorerule

import (
	"time"

	"github.com/google/uuid"
)

// Rule maps to the ignore_rule table. Each rule tells the model to leave a
// particular phrase, abbreviation or habit of the author untouched.
type Rule struct {
	ID          uuid.UUID `db:"id" json:"id"`
	StorageCode string    `db:"storage_code" json:"storage_code"`
	RuleText    string    `db:"rule_text" json:"rule_text"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// Profile maps to the user_profile table: one free-text blob per storage
// code describing the author (specialty, style, preferred phrasing).
type Profile struct {
	StorageCode string    `db:"storage_code" json:"storage_code"`
	Text        string    `db:"text" json:"text"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}
