package httpx

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDoRetriesTransientFailures(t *testing.T) {
	r := NewRetrier()
	attempts := 0

	v, err := Do(context.Background(), r, func() (string, error) {
		attempts++
		if attempts < 3 {
			return "", ErrTransient
		}
		return "ok", nil
	})

	require.NoError(t, err)
	assert.Equal(t, "ok", v)
	assert.Equal(t, 3, attempts)
}

func TestDoDoesNotRetryValidationErrors(t *testing.T) {
	r := NewRetrier()
	attempts := 0

	_, err := Do(context.Background(), r, func() (string, error) {
		attempts++
		return "", ErrValidation
	})

	require.Error(t, err)
	assert.Equal(t, 1, attempts)
}

func TestDoGivesUpAfterMaxTries(t *testing.T) {
	r := &Retrier{MaxTries: 2}
	attempts := 0

	_, err := Do(context.Background(), r, func() (string, error) {
		attempts++
		return "", ErrTransient
	})

	require.Error(t, err)
	assert.Equal(t, 2, attempts)
}
