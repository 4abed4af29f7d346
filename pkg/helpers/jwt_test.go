package helpers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenIssuer_RoundTrip(t *testing.T) {
	t.Parallel()

	ti := NewTokenIssuer("super-secret", 7*24*time.Hour)

	tok, exp, err := ti.Issue("user-123")
	require.NoError(t, err)
	require.NotEmpty(t, tok)
	assert.WithinDuration(t, time.Now().Add(7*24*time.Hour), exp, 5*time.Second)

	subject, err := ti.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, "user-123", subject)
}

func TestTokenIssuer_Expired(t *testing.T) {
	t.Parallel()

	ti := NewTokenIssuer("super-secret", -time.Minute)

	tok, _, err := ti.Issue("user-123")
	require.NoError(t, err)

	_, err = ti.Verify(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenIssuer_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, _, err := NewTokenIssuer("right-secret", time.Hour).Issue("user-123")
	require.NoError(t, err)

	_, err = NewTokenIssuer("wrong-secret", time.Hour).Verify(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenIssuer_TamperedToken(t *testing.T) {
	t.Parallel()

	ti := NewTokenIssuer("super-secret", time.Hour)
	tok, _, err := ti.Issue("user-123")
	require.NoError(t, err)

	// Flipping any byte must break either the structure or the signature.
	b := []byte(tok)
	mid := len(b) / 2
	if b[mid] == 'A' {
		b[mid] = 'B'
	} else {
		b[mid] = 'A'
	}
	_, err = ti.Verify(string(b))
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenIssuer_Malformed(t *testing.T) {
	t.Parallel()

	ti := NewTokenIssuer("super-secret", time.Hour)
	for _, tok := range []string{"", "not-a-jwt", "a.b", "a.b.c.d"} {
		_, err := ti.Verify(tok)
		assert.ErrorIs(t, err, ErrInvalidToken, "token %q", tok)
	}
}
