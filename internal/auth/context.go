package auth

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const callerKey = "auth.caller"

// SetCaller records the authenticated user on the request context.
func SetCaller(c *gin.Context, user uuid.UUID) {
	c.Set(callerKey, user)
}

// Caller returns the authenticated user, if any.
func Caller(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(callerKey)
	if !ok {
		return uuid.Nil, false
	}
	user, ok := v.(uuid.UUID)
	return user, ok && user != uuid.Nil
}
