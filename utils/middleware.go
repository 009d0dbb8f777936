package utils

import (
	"strings"

	"github.com/gin-gonic/gin"
)

const NotAllowedMessage = "Sorry, that's not allowed. Make sure you have the correct api_key."

type KeyChecker interface {
	Verify(candidate string) bool
}

// ModeratorAuth lets a request through when it carries either a valid
// api_key (query or form) or a moderator bearer token. Rejected requests get
// the not-allowed payload with deniedStatus.
func ModeratorAuth(keys KeyChecker, tokens *TokenIssuer, deniedStatus int) gin.HandlerFunc {
	return func(c *gin.Context) {
		if bearer, found := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer "); found {
			if claims, err := tokens.ValidateToken(bearer); err == nil && claims["user_role"] == ModeratorRole {
				c.Set("auth_method", "token")
				c.Next()
				return
			}
		}

		apiKey, ok := c.GetQuery("api_key")
		if !ok {
			apiKey, ok = c.GetPostForm("api_key")
		}
		if ok && keys.Verify(apiKey) {
			c.Set("auth_method", "api_key")
			c.Next()
			return
		}

		c.AbortWithStatusJSON(deniedStatus, gin.H{"error": NotAllowedMessage})
	}
}
