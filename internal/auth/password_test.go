package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArgon2HashVerifyRoundTrip(t *testing.T) {
	h := NewArgon2Hasher()
	hash, err := h.Hash("correct-horse-battery-staple")
	require.NoError(t, err)

	assert.True(t, h.Verify(hash, "correct-horse-battery-staple"))
	assert.False(t, h.Verify(hash, "wrong-password"))
}

func TestArgon2HashIsSaltedPerCall(t *testing.T) {
	h := NewArgon2Hasher()
	hash1, err := h.Hash("same-password")
	require.NoError(t, err)
	hash2, err := h.Hash("same-password")
	require.NoError(t, err)

	assert.NotEqual(t, hash1, hash2)
	assert.True(t, h.Verify(hash1, "same-password"))
	assert.True(t, h.Verify(hash2, "same-password"))
}

func TestArgon2VerifyRejectsMalformedHash(t *testing.T) {
	h := NewArgon2Hasher()
	assert.False(t, h.Verify("not-a-valid-hash", "anything"))
	assert.False(t, h.Verify("argon2id$1$2$3$badsalt$badkey", "anything"))
}
