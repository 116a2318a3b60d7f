package cryptox

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashPassword_RoundTrip(t *testing.T) {
	hash, err := HashPasswordWithCost("secret1", bcrypt.MinCost)
	require.NoError(t, err)
	assert.NotEqual(t, "secret1", hash)
	assert.True(t, strings.HasPrefix(hash, "$2a$"), "bcrypt hash expected, got %q", hash)

	ok, err := ComparePassword(hash, "secret1")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = ComparePassword(hash, "secret2")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHashPassword_SaltedPerCall(t *testing.T) {
	a, err := HashPasswordWithCost("same-password", bcrypt.MinCost)
	require.NoError(t, err)
	b, err := HashPasswordWithCost("same-password", bcrypt.MinCost)
	require.NoError(t, err)

	if a == b {
		t.Fatalf("expected different hashes for the same password, got %q twice", a)
	}
}

func TestHashPassword_TooLong(t *testing.T) {
	_, err := HashPasswordWithCost(strings.Repeat("x", 73), bcrypt.MinCost)
	require.ErrorIs(t, err, ErrPasswordTooLong)
}

func TestComparePassword_MalformedHash(t *testing.T) {
	ok, err := ComparePassword("not-a-bcrypt-hash", "secret1")
	assert.False(t, ok)
	assert.Error(t, err)
}
