package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt"

	"github.com/subratpandeyy/The-Wedding-Shades/utils"
)

func extractJwtClaims(c *gin.Context, secret []byte) (jwt.MapClaims, bool) {
	authHeader := c.GetHeader("Authorization")

	if authHeader == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, utils.ErrorResponse{Error: "Authorization header missing"})
		return nil, false
	}

	authHeader = strings.Trim(authHeader, "\"' ")

	if !strings.HasPrefix(strings.ToLower(authHeader), "bearer ") {
		authHeader = "Bearer " + authHeader
	}

	parts := strings.Fields(authHeader)
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, utils.ErrorResponse{Error: "Invalid authorization format, expected: Bearer <token>"})
		return nil, false
	}

	tokenString := strings.Trim(parts[1], "\"' ")

	claims, err := utils.DecodeJWT(secret, tokenString)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, utils.ErrorResponse{Error: "Invalid or expired token"})
		return nil, false
	}

	return claims, true
}

// AdminAuth guards write routes with an HS256 bearer token whose role claim
// is ADMIN. An empty secret leaves the routes open.
func AdminAuth(secret string) gin.HandlerFunc {
	if secret == "" {
		return func(c *gin.Context) {
			c.Next()
		}
	}

	key := []byte(secret)
	return func(c *gin.Context) {
		claims, ok := extractJwtClaims(c, key)
		if !ok {
			return
		}

		c.Set("subject", claims["sub"])
		c.Set("role", claims["role"])

		role, exists := claims["role"]
		if !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, utils.ErrorResponse{Error: "Role not found in token"})
			return
		}

		if role != utils.AdminRole {
			c.AbortWithStatusJSON(http.StatusForbidden, utils.ErrorResponse{Error: "Access denied: admin role required"})
			return
		}

		c.Next()
	}
}
