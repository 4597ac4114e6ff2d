package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSentinelHelpers(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		check   func(error) bool
		matches bool
	}{
		{"not found direct", ErrNotFound, IsNotFound, true},
		{"not found wrapped", fmt.Errorf("sense 42: %w", ErrNotFound), IsNotFound, true},
		{"validation direct", ErrValidation, IsValidation, true},
		{"source unavailable wrapped", fmt.Errorf("fetch: %w", ErrSourceUnavailable), IsSourceUnavailable, true},
		{"unknown kind", ErrUnknownKind, IsUnknownKind, true},
		{"conflict", ErrConflict, IsConflict, true},
		{"mismatch", ErrNotFound, IsValidation, false},
		{"nil", nil, IsNotFound, false},
		{"unrelated", errors.New("boom"), IsSourceUnavailable, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.matches, tt.check(tt.err))
		})
	}
}

func TestValidationError(t *testing.T) {
	err := Validationf("sense", "definition", "must not be empty")

	assert.Equal(t, "sense.definition: must not be empty", err.Error())
	assert.True(t, IsValidation(err))
	assert.True(t, errors.Is(err, ErrValidation))

	var verr *ValidationError
	require.True(t, errors.As(fmt.Errorf("ingest: %w", err), &verr))
	assert.Equal(t, "sense", verr.Kind)
	assert.Equal(t, "definition", verr.Field)
}

func TestValidationErrorWithoutField(t *testing.T) {
	err := Validationf("song", "", "release date %q does not parse", "20XX")
	assert.Equal(t, `song: release date "20XX" does not parse`, err.Error())
	assert.True(t, IsValidation(err))
}
