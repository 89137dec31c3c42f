package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const ownerIDKey = "userId"

// ownerIdentity converts a bearer token into a trusted owner identity. Every
// ledger and dashboard route runs behind it; without a resolved identity no
// ledger access is granted.
func (h *Handler) ownerIdentity(c *gin.Context) {
	header := c.GetHeader("Authorization")
	if header == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "missing Authorization header",
		})
		return
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "invalid Authorization header format",
		})
		return
	}

	userID, err := h.services.ParseToken(parts[1])
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "invalid or expired token",
		})
		return
	}

	c.Set(ownerIDKey, userID)
	c.Next()
}

// ownerID reads the identity stored by ownerIdentity. The second return is
// false only if the middleware was skipped, which is a wiring bug.
func ownerID(c *gin.Context) (int, bool) {
	v, ok := c.Get(ownerIDKey)
	if !ok {
		return 0, false
	}
	id, ok := v.(int)
	return id, ok
}
