package middleware

import (
	"net/http"
	"strings"

	"github.com/gdugdh24/devconnector-backend/internal/usecase/auth"
	"github.com/gin-gonic/gin"
)

// ContextUserID is the gin context key holding the authenticated user id.
const ContextUserID = "user_id"

// TokenVerifier turns a bearer token into claims
type TokenVerifier interface {
	VerifyToken(tokenString string) (*auth.Claims, error)
}

type AuthMiddleware struct {
	verifier TokenVerifier
}

func NewAuthMiddleware(verifier TokenVerifier) *AuthMiddleware {
	return &AuthMiddleware{
		verifier: verifier,
	}
}

// RequireAuth rejects requests without a valid bearer token
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		claims, err := m.verifier.VerifyToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Next()
	}
}
