package errors

import (
	"errors"
	"testing"
)

func TestErrEmptyCorpus(t *testing.T) {
	t.Parallel()
	wrapped := errors.Join(ErrEmptyCorpus, errors.New("additional context"))
	if !errors.Is(wrapped, ErrEmptyCorpus) {
		t.Error("expected wrapped error to match ErrEmptyCorpus")
	}
}

func TestFusionError(t *testing.T) {
	t.Parallel()

	base := errors.New("context deadline exceeded")
	err := NewFusionError("concurrent search failed", base)

	if !errors.Is(err, base) {
		t.Error("expected FusionError to unwrap to the underlying error")
	}
	if err.Error() == "" {
		t.Error("expected non-empty error message")
	}

	noCause := &FusionError{Reason: "normalization produced no candidates"}
	if noCause.Error() == "" {
		t.Error("expected non-empty error message without a wrapped cause")
	}
}

func TestValidationError(t *testing.T) {
	t.Parallel()

	err := NewValidationError("limit", "must be a positive integer")
	if err.Field != "limit" {
		t.Errorf("expected field 'limit', got %q", err.Field)
	}

	expected := "validation failed on limit: must be a positive integer"
	if err.Error() != expected {
		t.Errorf("expected %q, got %q", expected, err.Error())
	}
}
