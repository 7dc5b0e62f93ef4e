package httpx

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyStatus(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   error
	}{
		{"ok", 200, nil},
		{"created", 201, nil},
		{"not found", 404, ErrNotFound},
		{"conflict", 409, ErrConflict},
		{"bad request", 400, ErrValidation},
		{"unprocessable", 422, ErrValidation},
		{"rate limited", 429, ErrTransient},
		{"server error", 500, ErrTransient},
		{"unmapped client error", 418, ErrTransient},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ClassifyStatus("hris", tt.status, "body")
			if tt.want == nil {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.want))
		})
	}
}

func TestStatusErrorMessage(t *testing.T) {
	err := ClassifyStatus("planner", 500, "boom")
	assert.Contains(t, err.Error(), "planner")
	assert.Contains(t, err.Error(), "500")
	assert.Contains(t, err.Error(), "boom")
}
