package errors

import (
	"fmt"
	"testing"
)

func TestFormat(t *testing.T) {
	if got := Format(nil); got != "" {
		t.Errorf("Format(nil) = %q, want empty", got)
	}
	if got := Format(fmt.Errorf("boom")); got != "Error: boom" {
		t.Errorf("Format() = %q", got)
	}
	if got := Formatf("bad %s", "input"); got != "Error: bad input" {
		t.Errorf("Formatf() = %q", got)
	}
}

func TestSentinelWrapping(t *testing.T) {
	err := Validation("name is required")
	if !Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if err.Error() != "validation failed: name is required" {
		t.Errorf("unexpected message %q", err.Error())
	}

	nf := NotFound("habit", "abc")
	if !Is(nf, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", nf)
	}
	if nf.Error() != `habit "abc": not found` {
		t.Errorf("unexpected message %q", nf.Error())
	}

	wrapped := fmt.Errorf("failed to save: %w", nf)
	if !Is(wrapped, ErrNotFound) {
		t.Error("wrapping should preserve ErrNotFound")
	}
}
