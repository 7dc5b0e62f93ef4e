package httpx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGuardPassesThroughSuccess(t *testing.T) {
	cb := NewBreaker("test")

	v, err := Guard(cb, func() (string, error) {
		return "ok", nil
	})

	require.NoError(t, err)
	assert.Equal(t, "ok", v)
}

func TestGuardOpensAfterConsecutiveFailures(t *testing.T) {
	cb := NewBreaker("test-open")

	for i := 0; i < 5; i++ {
		_, _ = Guard(cb, func() (string, error) {
			return "", ErrTransient
		})
	}

	_, err := Guard(cb, func() (string, error) {
		return "ok", nil
	})

	require.ErrorIs(t, err, ErrTransient, "breaker should be open and reject without calling op")
}
