package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/lumenpay/passgate/ports"
)

// tokenSessionKey is the context key the middleware stores the
// token-derived session under.
const tokenSessionKey = "tokenSession"

// AuthMiddleware creates middleware that validates access tokens.
func AuthMiddleware(tokenizer ports.Tokenizer) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")

		if !strings.HasPrefix(auth, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization header"})
			return
		}

		session, err := tokenizer.AccessTokenToSession(strings.TrimPrefix(auth, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set(tokenSessionKey, session)

		c.Next()
	}
}
