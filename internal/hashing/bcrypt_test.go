package hashing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHash_SaltedAndVerifiable(t *testing.T) {
	h1, err := Hash("s3cret")
	require.NoError(t, err)
	h2, err := Hash("s3cret")
	require.NoError(t, err)

	assert.NotEqual(t, h1, h2, "two hashes of the same input must differ")
	assert.True(t, Verify("s3cret", h1))
	assert.True(t, Verify("s3cret", h2))
}

func TestVerify_WrongPassword(t *testing.T) {
	h, err := Hash("s3cret")
	require.NoError(t, err)

	assert.False(t, Verify("not-the-password", h))
	assert.False(t, Verify("", h))
}

func TestVerify_MalformedHash(t *testing.T) {
	assert.False(t, Verify("s3cret", "not-a-bcrypt-hash"))
}
