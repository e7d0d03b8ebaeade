package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// HeaderToken is the header clients send their token in. A standard
// "Authorization: Bearer" header is accepted as well.
const HeaderToken = "auth-token"

// ContextClaims is the gin context key the verified claims are stored at.
const ContextClaims = "claims"

var ErrAdminOnly = errors.New("only admins are allowed to do this")

// Middleware rejects all requests without a valid token.
func Middleware(issuer *Issuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader(HeaderToken)
		if token == "" {
			token, _ = strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		}

		claims, err := issuer.Verify(strings.TrimSpace(token))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}

		c.Set(ContextClaims, claims)
		c.Next()
	}
}

// ClaimsFrom returns the claims Middleware stored in the context.
func ClaimsFrom(c *gin.Context) (Claims, bool) {
	claims, ok := c.Get(ContextClaims)
	if !ok {
		return Claims{}, false
	}

	typed, ok := claims.(Claims)
	return typed, ok
}

// RequireAdmin rejects requests with tokens not issued to an admin.
// It must run after Middleware.
func RequireAdmin(c *gin.Context) {
	claims, ok := ClaimsFrom(c)
	if !ok || claims.Role != RoleAdmin {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": ErrAdminOnly.Error()})
		return
	}

	c.Next()
}
