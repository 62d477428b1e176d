package credentials

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHasher_HashAndVerify(t *testing.T) {
	t.Parallel()
	h := NewHasher(bcrypt.MinCost)

	hash, err := h.Hash("CorrectHorse1!")
	require.NoError(t, err)
	assert.NotEqual(t, "CorrectHorse1!", hash)

	assert.True(t, h.Verify("CorrectHorse1!", hash))
	assert.False(t, h.Verify("WrongHorse1!", hash))
}

func TestHasher_SaltedPerRecord(t *testing.T) {
	t.Parallel()
	h := NewHasher(bcrypt.MinCost)

	first, err := h.Hash("SamePassword1!")
	require.NoError(t, err)
	second, err := h.Hash("SamePassword1!")
	require.NoError(t, err)

	// Random salt makes equal passwords hash differently.
	assert.NotEqual(t, first, second)
	assert.True(t, h.Verify("SamePassword1!", first))
	assert.True(t, h.Verify("SamePassword1!", second))
}

func TestHasher_MalformedHash(t *testing.T) {
	t.Parallel()
	h := NewHasher(0)

	assert.False(t, h.Verify("anything", ""))
	assert.False(t, h.Verify("anything", "not-a-bcrypt-hash"))
	assert.False(t, h.Verify("anything", "pbkdf2:sha1$deadbeef$1234"))
}

func TestHasher_EmptyPassword(t *testing.T) {
	t.Parallel()
	h := NewHasher(bcrypt.MinCost)

	_, err := h.Hash("")
	assert.Error(t, err)
}
