package payment

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSentinelErrors_AreWrapFriendly(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", ErrNotFound)
	require.True(t, errors.Is(err, ErrNotFound))

	err = fmt.Errorf("wrapped: %w", ErrMissingEvidence)
	require.True(t, errors.Is(err, ErrMissingEvidence))
}

func TestValidationError_MatchesWithErrorsAs(t *testing.T) {
	var target *ValidationError
	err := fmt.Errorf("wrapped: %w", &ValidationError{Field: "currency", Reason: "must be a 3-character ISO 4217 code"})
	require.True(t, errors.As(err, &target))
	require.Equal(t, "currency", target.Field)
}
