package middleware

import (
	"net/http"
	"strings"

	"gym_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// ContextUsuarioKey holds the authenticated operator's username.
const ContextUsuarioKey = "usuario"

// TokenValidator validates bearer tokens issued at login.
type TokenValidator interface {
	ValidateToken(tokenString string) (*utils.Claims, error)
}

// AuthMiddleware creates a Gin middleware for JWT authentication.
// Requests whose path is in exempt pass through untouched.
func AuthMiddleware(validator TokenValidator, exempt ...string) gin.HandlerFunc {
	skip := make(map[string]struct{}, len(exempt))
	for _, p := range exempt {
		skip[p] = struct{}{}
	}

	return func(c *gin.Context) {
		if _, ok := skip[c.Request.URL.Path]; ok || c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Se requiere iniciar sesión", ""))
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Formato de autorización inválido, use Bearer <token>", ""))
			return
		}

		claims, err := validator.ValidateToken(parts[1])
		if err != nil {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Sesión inválida o expirada", err.Error()))
			return
		}

		c.Set(ContextUsuarioKey, claims.Usuario)
		c.Next()
	}
}
