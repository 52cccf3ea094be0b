package password

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher_HashAndVerify(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	digest, err := h.Hash("password123")
	require.NoError(t, err)
	assert.NotEqual(t, "password123", digest)

	assert.True(t, h.Verify("password123", digest))
	assert.False(t, h.Verify("wrong", digest))
}

func TestBcryptHasher_FreshSalt(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	a, err := h.Hash("same-input")
	require.NoError(t, err)
	b, err := h.Hash("same-input")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
	assert.True(t, h.Verify("same-input", a))
	assert.True(t, h.Verify("same-input", b))
}

func TestBcryptHasher_MalformedDigest(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	assert.False(t, h.Verify("password123", ""))
	assert.False(t, h.Verify("password123", "not-a-bcrypt-digest"))
	assert.False(t, h.Verify("password123", "$2a$10$short"))
}

func TestNewBcryptHasher_CostFallback(t *testing.T) {
	assert.Equal(t, bcrypt.DefaultCost, NewBcryptHasher(0).cost)
	assert.Equal(t, bcrypt.DefaultCost, NewBcryptHasher(bcrypt.MaxCost+1).cost)
	assert.Equal(t, bcrypt.MinCost, NewBcryptHasher(bcrypt.MinCost).cost)
}
