package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/beheryahmed1991/subscription-tracker/internal/auth"
)

// TokenParser verifies a bearer token and returns the user it identifies.
type TokenParser interface {
	Parse(token string) (uuid.UUID, error)
}

// Authenticate requires a valid "Authorization: Bearer <token>" header and
// records the caller for downstream handlers.
func Authenticate(tokens TokenParser, log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		scheme, token, ok := strings.Cut(c.GetHeader("Authorization"), " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}

		user, err := tokens.Parse(strings.TrimSpace(token))
		if err != nil {
			msg := "invalid token"
			if errors.Is(err, auth.ErrTokenExpired) {
				msg = "token expired"
			}
			log.DebugContext(c.Request.Context(), "rejected token", "err", err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msg})
			return
		}

		auth.SetCaller(c, user)
		c.Next()
	}
}

func callerAttr(c *gin.Context) (string, bool) {
	user, ok := auth.Caller(c)
	if !ok {
		return "", false
	}
	return user.String(), true
}
