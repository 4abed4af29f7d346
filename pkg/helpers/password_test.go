package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword_RoundTrip(t *testing.T) {
	t.Parallel()

	digest, err := HashPassword("hunter2hunter2")
	require.NoError(t, err)
	require.NotEmpty(t, digest)
	assert.NotEqual(t, "hunter2hunter2", digest)

	assert.True(t, CheckPassword(digest, "hunter2hunter2"))
	assert.False(t, CheckPassword(digest, "wrong-password"))
}

func TestHashPassword_SaltedPerCall(t *testing.T) {
	t.Parallel()

	a, err := HashPassword("same-input")
	require.NoError(t, err)
	b, err := HashPassword("same-input")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestCheckPassword_MalformedDigest(t *testing.T) {
	t.Parallel()

	assert.False(t, CheckPassword("", "anything"))
	assert.False(t, CheckPassword("not-a-bcrypt-digest", "anything"))
}
