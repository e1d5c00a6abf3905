package common

import (
	"errors"
	"fmt"
	"testing"
)

func TestValidatorCollectsErrors(t *testing.T) {
	v := NewValidator()

	v.Check(false, "name", "must be provided")
	v.Check(false, "name", "a later message must not overwrite the first")
	v.Check(true, "email", "must be a valid email address")

	if v.Valid() {
		t.Error("expected the validator to be invalid")
	}

	if got := v.Errors["name"]; got != "must be provided" {
		t.Errorf("unexpected message for name: %s", got)
	}

	if _, ok := v.Errors["email"]; ok {
		t.Error("passing checks must not record an error")
	}
}

func TestValidationErrorExtraction(t *testing.T) {
	v := NewValidator()
	v.Check(false, "rating", "must be between 1 and 5 stars")

	err := v.ValidationError()

	var vErr ValidationError
	if !errors.As(err, &vErr) {
		t.Fatal("expected errors.As to match the validation error")
	}

	// the field map must survive wrapping as well
	wrapped := fmt.Errorf("creating review: %w", err)

	vErr = ValidationError{}
	if !errors.As(wrapped, &vErr) {
		t.Fatal("expected errors.As to match the wrapped validation error")
	}

	if got := vErr.Errors["rating"]; got != "must be between 1 and 5 stars" {
		t.Errorf("unexpected message for rating: %s", got)
	}
}
