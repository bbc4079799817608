package storagecode

import (
	"errors"
	"strings"
	"testing"
)

func TestValidate_OK(t *testing.T) {
	for _, code := range []string{"a", "device-1", "user.phone_2", "ABC123", strings.Repeat("x", MaxLen)} {
		if err := Validate(code); err != nil {
			t.Errorf("Validate(%q) unexpected error: %v", code, err)
		}
	}
}

func TestValidate_Rejects(t *testing.T) {
	for _, code := range []string{"", strings.Repeat("x", MaxLen+1), "has space", "slash/", "semi;colon", "ümlaut"} {
		err := Validate(code)
		if err == nil {
			t.Errorf("Validate(%q) expected error", code)
			continue
		}
		if !errors.Is(err, ErrInvalid) {
			t.Errorf("Validate(%q) error %v does not wrap ErrInvalid", code, err)
		}
	}
}
