package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quizforge/quiz-api/pkg/helpers"
)

func newGuardedRouter(tokens *helpers.TokenIssuer) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", AuthGuard(tokens), func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(CtxUserIDKey))
	})
	return r
}

func TestAuthGuard_MissingHeader(t *testing.T) {
	t.Parallel()

	r := newGuardedRouter(helpers.NewTokenIssuer("secret", time.Hour))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthGuard_InvalidToken(t *testing.T) {
	t.Parallel()

	r := newGuardedRouter(helpers.NewTokenIssuer("secret", time.Hour))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "garbage")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthGuard_RawHeaderTokenAccepted(t *testing.T) {
	t.Parallel()

	tokens := helpers.NewTokenIssuer("secret", time.Hour)
	r := newGuardedRouter(tokens)

	tok, _, err := tokens.Issue("user-42")
	require.NoError(t, err)

	// The header carries the raw token, no "Bearer " prefix.
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", tok)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "user-42", w.Body.String())
}

func TestAuthGuard_CorruptedTokenRejected(t *testing.T) {
	t.Parallel()

	tokens := helpers.NewTokenIssuer("secret", time.Hour)
	r := newGuardedRouter(tokens)

	tok, _, err := tokens.Issue("user-42")
	require.NoError(t, err)

	// Reverse the token; structure or signature must fail.
	b := []byte(tok)
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", string(b))
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthGuard_ExpiredTokenRejected(t *testing.T) {
	t.Parallel()

	issuer := helpers.NewTokenIssuer("secret", -time.Minute)
	r := newGuardedRouter(issuer)

	tok, _, err := issuer.Issue("user-42")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", tok)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
