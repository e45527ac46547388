package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("hunter22")
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	assert.NotEqual(t, "hunter22", hash)

	assert.True(t, CheckPassword(hash, "hunter22"))
	assert.False(t, CheckPassword(hash, "hunter23"))
	assert.False(t, CheckPassword(hash, ""))
}

func TestHashPasswordSalted(t *testing.T) {
	h1, err := HashPassword("same-password")
	require.NoError(t, err)
	h2, err := HashPassword("same-password")
	require.NoError(t, err)
	assert.NotEqual(t, h1, h2)
}

func TestCheckPasswordMalformedHash(t *testing.T) {
	assert.False(t, CheckPassword("not-a-bcrypt-hash", "whatever"))
	assert.False(t, CheckPassword("", "whatever"))
}
