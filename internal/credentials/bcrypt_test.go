package credentials

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashAndVerify(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	hashed, err := h.Hash("s3cret")
	require.NoError(t, err)

	assert.NotEqual(t, "s3cret", hashed)
	assert.True(t, strings.HasPrefix(hashed, "$2a$"))
	assert.True(t, h.Verify("s3cret", hashed))
	assert.False(t, h.Verify("wrong", hashed))
}

func TestHashIsSalted(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	a, err := h.Hash("same")
	require.NoError(t, err)
	b, err := h.Hash("same")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
	assert.Len(t, a, len(b))
}

func TestVerifyMalformedHash(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	assert.False(t, h.Verify("pw", "not-a-bcrypt-hash"))
	assert.False(t, h.Verify("pw", ""))
}

func TestHashTooLong(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	_, err := h.Hash(strings.Repeat("x", 73))
	assert.ErrorIs(t, err, ErrPasswordTooLong)
}
