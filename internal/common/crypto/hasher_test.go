package crypto

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher_HashAndVerify(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	hash, err := h.Hash("p1")
	require.NoError(t, err)
	assert.NotEqual(t, "p1", hash)

	ok, err := h.Verify("p1", hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = h.Verify("wrong", hash)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestBcryptHasher_SaltPerCall(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	first, err := h.Hash("same-password")
	require.NoError(t, err)
	second, err := h.Hash("same-password")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestBcryptHasher_CostEmbedded(t *testing.T) {
	h := NewBcryptHasher(5)

	hash, err := h.Hash("secret")
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, 5, cost)
}

func TestBcryptHasher_InvalidCostFallsBack(t *testing.T) {
	assert.Equal(t, bcrypt.DefaultCost, NewBcryptHasher(1).Cost())
	assert.Equal(t, bcrypt.DefaultCost, NewBcryptHasher(99).Cost())
}

func TestBcryptHasher_MalformedHash(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	ok, err := h.Verify("p1", "not-a-bcrypt-hash")
	assert.Error(t, err)
	assert.False(t, ok)
}

func TestBcryptHasher_PasswordTooLong(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	_, err := h.Hash(strings.Repeat("a", 73))
	assert.Error(t, err)
}

func TestUUIDGenerator_Unique(t *testing.T) {
	g := NewUUIDGenerator()
	assert.NotEqual(t, g.NewID(), g.NewID())
}
