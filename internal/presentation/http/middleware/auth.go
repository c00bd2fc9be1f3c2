package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/caixa-api/internal/domain/enum"
	"github.com/sangkips/caixa-api/internal/domain/repository"
	"github.com/sangkips/caixa-api/internal/presentation/http/dto/response"
	"github.com/sangkips/caixa-api/pkg/utils"
)

// Context keys set by AuthMiddleware
const (
	ContextUserID    = "user_id"
	ContextMatricula = "user_matricula"
	ContextRole      = "user_role"
)

// accessTokenParam lets a browser window opened for printing (which cannot
// send headers) authenticate a GET request.
const accessTokenParam = "access_token"

// AuthMiddleware creates a JWT authentication middleware. The operator is
// also stored in the request context so repositories scope queries to it;
// admins are not scoped.
func AuthMiddleware(jwtManager *utils.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c)
		if !ok {
			response.Unauthorized(c, "Authorization header is required")
			c.Abort()
			return
		}

		claims, err := jwtManager.ValidateAccessToken(tokenString)
		if err != nil {
			response.Unauthorized(c, "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextMatricula, claims.Matricula)
		c.Set(ContextRole, claims.Role)

		ctx := repository.WithOwner(c.Request.Context(), claims.UserID)
		if claims.Role == enum.RoleAdmin {
			ctx = repository.WithSkipOwnerScope(ctx, true)
		}
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		if c.Request.Method == http.MethodGet {
			if t := c.Query(accessTokenParam); t != "" {
				return t, true
			}
		}
		return "", false
	}

	parts := strings.Fields(authHeader)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", false
	}
	return parts[1], true
}

// RequireRole creates a middleware that requires one of the given roles
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(ContextRole)
		for _, r := range roles {
			if role == r {
				c.Next()
				return
			}
		}

		response.Forbidden(c, "Insufficient role privileges")
		c.Abort()
	}
}
