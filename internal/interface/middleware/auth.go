package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/quizforge/quiz-api/pkg/helpers"
	"github.com/quizforge/quiz-api/pkg/response"
)

// CtxUserIDKey is the gin context key the guard stores the subject id under.
const CtxUserIDKey = "userID"

// AuthGuard validates the bearer token and injects the subject id into the
// gin context. The Authorization header carries the raw token with no scheme
// prefix. A structurally valid, unexpired token is trusted at face value;
// no directory lookup is performed.
func AuthGuard(tokens *helpers.TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader("Authorization")
		if token == "" {
			response.AbortError(c, http.StatusUnauthorized, "missing token", nil)
			return
		}
		subject, err := tokens.Verify(token)
		if err != nil {
			response.AbortError(c, http.StatusUnauthorized, "invalid token", nil)
			return
		}
		c.Set(CtxUserIDKey, subject)
		c.Next()
	}
}
