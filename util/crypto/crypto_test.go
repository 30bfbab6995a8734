package crypto

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashAndVerify(t *testing.T) {
	hash, err := HashPassword("secret")
	require.NoError(t, err)
	assert.NotEqual(t, "secret", hash)

	assert.True(t, VerifyPassword("secret", hash))
	assert.False(t, VerifyPassword("Secret", hash))
	assert.False(t, VerifyPassword("secret", "not-a-bcrypt-hash"))
}

func TestHashIsSalted(t *testing.T) {
	a, err := HashPassword("same")
	require.NoError(t, err)
	b, err := HashPassword("same")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestIsPasswordTooLong(t *testing.T) {
	assert.False(t, IsPasswordTooLong("short"))
	assert.False(t, IsPasswordTooLong(strings.Repeat("x", 72)))
	assert.True(t, IsPasswordTooLong(strings.Repeat("x", 73)))
	// the limit counts bytes, not runes
	assert.True(t, IsPasswordTooLong(strings.Repeat("щ", 37)))

	_, err := HashPassword(strings.Repeat("x", 73))
	assert.ErrorIs(t, err, bcrypt.ErrPasswordTooLong)
	_, err = HashPassword(strings.Repeat("x", 72))
	assert.NoError(t, err)
}
