package valueobjects

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEmail(t *testing.T) {
	e, err := NewEmail("  Ada@Example.COM ")
	require.NoError(t, err)
	assert.Equal(t, Email("ada@example.com"), e)

	for _, bad := range []string{"", "ada", "ada@", "ada@example"} {
		_, err := NewEmail(bad)
		assert.Error(t, err, bad)
	}
}

func TestValidatePassword(t *testing.T) {
	assert.NoError(t, ValidatePassword("lagos2026"))
	assert.Error(t, ValidatePassword("short1"))
	assert.Error(t, ValidatePassword("onlyletters"))
	assert.Error(t, ValidatePassword("1234567890"))
}
