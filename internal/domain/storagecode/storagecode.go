// Package storagecode validates the opaque client-chosen key that partitions
// persisted data per user/device/session. Room keys use the same grammar.
package storagecode

import (
	"errors"
	"fmt"
)

const MaxLen = 128

// ErrInvalid wraps every validation failure so handlers can map it to a
// client error rather than a server one.
var ErrInvalid = errors.New("invalid storage code")

// Validate checks that code is 1..128 characters from [A-Za-z0-9._-].
func Validate(code string) error {
	if code == "" {
		return fmt.Errorf("%w: storage code is required", ErrInvalid)
	}
	if len(code) > MaxLen {
		return fmt.Errorf("%w: storage code exceeds %d characters", ErrInvalid, MaxLen)
	}
	for i := 0; i < len(code); i++ {
		c := code[i]
		switch {
		case c >= 'a' && c <= 'z':
		case c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9':
		case c == '.' || c == '_' || c == '-':
		default:
			return fmt.Errorf("%w: storage code contains invalid character %q", ErrInvalid, c)
		}
	}
	return nil
}
