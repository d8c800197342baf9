package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashAndCompare(t *testing.T) {
	hash, err := HashPassword("userpass", bcrypt.MinCost)
	require.NoError(t, err)
	assert.True(t, IsHashed(hash))

	assert.NoError(t, ComparePassword(hash, "userpass"))
	assert.ErrorIs(t, ComparePassword(hash, "Userpass"), ErrPasswordMismatch)
	assert.ErrorIs(t, ComparePassword(hash, ""), ErrPasswordMismatch)
}

func TestComparePassword_LegacyPlaintext(t *testing.T) {
	assert.False(t, IsHashed("supportpass"))
	assert.NoError(t, ComparePassword("supportpass", "supportpass"))
	assert.ErrorIs(t, ComparePassword("supportpass", "supportpass "), ErrPasswordMismatch)
	assert.ErrorIs(t, ComparePassword("supportpass", "SUPPORTPASS"), ErrPasswordMismatch)
}

func TestHashPassword_LongPasswords(t *testing.T) {
	long := strings.Repeat("p", 73)
	hash, err := HashPassword(long, bcrypt.MinCost)
	require.NoError(t, err)

	assert.NoError(t, ComparePassword(hash, long))
	assert.ErrorIs(t, ComparePassword(hash, long[:72]), ErrPasswordMismatch, "bytes past 72 still count")
	assert.ErrorIs(t, ComparePassword(hash, long+"p"), ErrPasswordMismatch)
}
