package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/bountyboard/bountyboard-backend/pkg/auth"
	"github.com/bountyboard/bountyboard-backend/pkg/errors"
)

type TokenParser interface {
	ParseToken(token string) (string, error)
}

// WalletAuth requires a bearer token and stores the signed-in address under auth.AddressClaim.
// With disabled set every request passes and handlers fall back to the address carried in the body.
func WalletAuth(parser TokenParser, disabled bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if disabled {
			c.Next()
			return
		}

		header := c.GetHeader("Authorization")
		token, found := strings.CutPrefix(header, "Bearer ")
		if !found || strings.TrimSpace(token) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": errors.ErrUnauthorized})
			return
		}

		address, err := parser.ParseToken(strings.TrimSpace(token))
		if err != nil {
			GetLogger(c).Debugf("Rejected bearer token: %v", err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": errors.ErrUnauthorized})
			return
		}

		c.Set(auth.AddressClaim, address)
		GetLogger(c).Debugf("Authenticated wallet %s", address)
		c.Next()
	}
}

// GetCaller returns the signed-in wallet, if the request carried a valid token
func GetCaller(c *gin.Context) (string, bool) {
	address := c.GetString(auth.AddressClaim)
	return address, address != ""
}
