// Package apperr defines the error taxonomy shared by the progression
// engine and its outer surfaces.
package apperr

import (
	"errors"
	"fmt"
)

// NotFoundError indicates an unknown user, quest, or skill.
type NotFoundError struct {
	Kind string // "user", "quest", "quest set", "skill"
	ID   string
	// Reason optionally refines the message, e.g. "already completed".
	Reason string
}

func (e *NotFoundError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("%s %q not found: %s", e.Kind, e.ID, e.Reason)
	}
	return fmt.Sprintf("%s %q not found", e.Kind, e.ID)
}

// ValidationError indicates input rejected before it reached the engine.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// UpstreamUnavailableError indicates the classifier or transcription
// service failed. Callers degrade rather than fail the whole request.
type UpstreamUnavailableError struct {
	Service string
	Err     error
}

func (e *UpstreamUnavailableError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s unavailable: %v", e.Service, e.Err)
	}
	return fmt.Sprintf("%s unavailable", e.Service)
}

func (e *UpstreamUnavailableError) Unwrap() error { return e.Err }

// InvariantViolationError indicates the XP ledger was found inconsistent.
// It should never surface from a correct ApplyXP.
type InvariantViolationError struct {
	Detail string
}

func (e *InvariantViolationError) Error() string {
	return "xp ledger invariant violated: " + e.Detail
}

// IsNotFound reports whether err is or wraps a *NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// IsValidation reports whether err is or wraps a *ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsUpstreamUnavailable reports whether err is or wraps an
// *UpstreamUnavailableError.
func IsUpstreamUnavailable(err error) bool {
	var ue *UpstreamUnavailableError
	return errors.As(err, &ue)
}

// IsInvariantViolation reports whether err is or wraps an
// *InvariantViolationError.
func IsInvariantViolation(err error) bool {
	var iv *InvariantViolationError
	return errors.As(err, &iv)
}
