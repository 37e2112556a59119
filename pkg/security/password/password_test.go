package password

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSHA256HasherKnownDigest(t *testing.T) {
	h := SHA256Hasher{}
	got, err := h.Hash("admin123")
	require.NoError(t, err)
	// sha256 hex digest is stable: rows written by older deployments must
	// keep verifying.
	assert.Equal(t, "240be518fabd2724ddb6f04eeb1da5967448d7e831c08c8fa822809f74c720a9", got)
	assert.Len(t, got, 64)

	assert.True(t, h.Verify(got, "admin123"))
	assert.False(t, h.Verify(got, "admin124"))
}

func TestBcryptHasher(t *testing.T) {
	h := BcryptHasher{}
	hash, err := h.Hash("abcdefg1!")
	require.NoError(t, err)
	assert.NotEqual(t, "abcdefg1!", hash)

	assert.True(t, h.Verify(hash, "abcdefg1!"))
	assert.False(t, h.Verify(hash, "abcdefg1?"))

	// Two hashes of the same password differ because of the salt.
	other, err := h.Hash("abcdefg1!")
	require.NoError(t, err)
	assert.NotEqual(t, hash, other)
}

func TestForScheme(t *testing.T) {
	assert.IsType(t, BcryptHasher{}, ForScheme("bcrypt"))
	assert.IsType(t, SHA256Hasher{}, ForScheme("sha256"))
	assert.IsType(t, SHA256Hasher{}, ForScheme(""))
	assert.IsType(t, SHA256Hasher{}, ForScheme("unknown"))
}
