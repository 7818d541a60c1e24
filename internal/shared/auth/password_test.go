package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPasswordIsSalted(t *testing.T) {
	a, err := HashPassword("correct horse")
	require.NoError(t, err)
	b, err := HashPassword("correct horse")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
	assert.NoError(t, CheckPassword(a, "correct horse"))
	assert.NoError(t, CheckPassword(b, "correct horse"))
	assert.Error(t, CheckPassword(a, "wrong"))
}

func TestHashPasswordRejectsOverlongInput(t *testing.T) {
	_, err := HashPassword(strings.Repeat("a", MaxPasswordBytes+1))
	assert.ErrorIs(t, err, ErrPasswordTooLong)

	_, err = HashPassword(strings.Repeat("a", MaxPasswordBytes))
	assert.NoError(t, err)
}
