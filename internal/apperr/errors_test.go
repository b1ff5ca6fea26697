package apperr

import (
	"errors"
	"fmt"
	"testing"
)

func TestNotFoundError_Message(t *testing.T) {
	err := &NotFoundError{Kind: "quest", ID: "q-1", Reason: "already completed"}
	want := `quest "q-1" not found: already completed`
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestPredicates_SeeThroughWrapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		pred func(error) bool
	}{
		{"not found", &NotFoundError{Kind: "user", ID: "u"}, IsNotFound},
		{"validation", &ValidationError{Field: "content", Reason: "too short"}, IsValidation},
		{"upstream", &UpstreamUnavailableError{Service: "classifier"}, IsUpstreamUnavailable},
		{"invariant", &InvariantViolationError{Detail: "xp >= threshold"}, IsInvariantViolation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := fmt.Errorf("outer: %w", tt.err)
			if !tt.pred(wrapped) {
				t.Errorf("predicate did not match wrapped %T", tt.err)
			}
			if tt.pred(errors.New("plain")) {
				t.Error("predicate matched a plain error")
			}
		})
	}
}

func TestUpstreamUnavailable_Unwrap(t *testing.T) {
	root := errors.New("connection refused")
	err := &UpstreamUnavailableError{Service: "transcription", Err: root}
	if !errors.Is(err, root) {
		t.Error("errors.Is should find the root cause")
	}
}
