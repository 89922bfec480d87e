package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("Sup3rSecret")
	require.NoError(t, err)

	assert.NotEqual(t, "Sup3rSecret", hash)
	assert.True(t, CheckPassword(hash, "Sup3rSecret"))
	assert.False(t, CheckPassword(hash, "sup3rsecret"))
	assert.False(t, CheckPassword(hash, ""))
}

func TestHashPassword_UniqueSalts(t *testing.T) {
	first, err := HashPassword("Sup3rSecret")
	require.NoError(t, err)
	second, err := HashPassword("Sup3rSecret")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, CheckPassword(first, "Sup3rSecret"))
	assert.True(t, CheckPassword(second, "Sup3rSecret"))
}

func TestCheckPassword_RejectsGarbageHash(t *testing.T) {
	assert.False(t, CheckPassword("not-a-bcrypt-hash", "whatever"))
}
