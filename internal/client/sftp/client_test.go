package sftp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParentDir(t *testing.T) {
	assert.Equal(t, "", parentDir("/employees.csv"))
	assert.Equal(t, "", parentDir("employees.csv"))
	assert.Equal(t, "/exports/acme", parentDir("/exports/acme/employees.csv"))
}
