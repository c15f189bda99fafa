package payment

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when the payment id does not resolve.
	ErrNotFound = errors.New("payment not found")
	// ErrNoFields is returned when an update carries no fields.
	ErrNoFields = errors.New("no fields to update")
	// ErrMissingEvidence is returned when a payment is moved to 'completed'
	// without an evidence file attached or being set in the same update.
	ErrMissingEvidence = errors.New("evidence file is required for 'completed' status")
	// ErrNoEvidence is returned when a download is requested but the payment
	// has no evidence file attached.
	ErrNoEvidence = errors.New("no evidence file found for this payment")
)

// ValidationError identifies the first field that failed validation.
// It is raised before any store mutation is attempted.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
