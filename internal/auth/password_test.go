package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("espresso-machine-9000")
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	assert.NotEqual(t, "espresso-machine-9000", hash)

	assert.True(t, VerifyPassword(hash, "espresso-machine-9000"))
	assert.False(t, VerifyPassword(hash, "espresso-machine-9001"))
	assert.False(t, VerifyPassword("not-a-hash", "espresso-machine-9000"))
}
