package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ridloal/pos-caisse/internal/operator/service"
)

// ClaimsKey is the gin context key holding the authenticated *service.Claims.
const ClaimsKey = "operator"

type TokenParser interface {
	ParseToken(token string) (*service.Claims, error)
}

// AuthMiddleware requires "Authorization: Bearer <token>" signed for an operator.
func AuthMiddleware(tokens TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		scheme, token, ok := strings.Cut(header, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}

		claims, err := tokens.ParseToken(strings.TrimSpace(token))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": service.ErrInvalidToken.Error()})
			return
		}
		c.Set(ClaimsKey, claims)
		c.Next()
	}
}

// OperatorFrom returns the claims stored by AuthMiddleware, if any.
func OperatorFrom(c *gin.Context) (*service.Claims, bool) {
	v, ok := c.Get(ClaimsKey)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*service.Claims)
	return claims, ok
}
