package middleware

import (
	"context"
	"strings"

	"recipehub_backend/internal/auth"
	"recipehub_backend/internal/logger"
	"recipehub_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const identityKey = "identity"

// IdentityResolver превращает bearer-токен в Identity
type IdentityResolver interface {
	ResolveIdentity(ctx context.Context, db *gorm.DB, token string) (auth.Identity, error)
}

// AuthMiddleware - проверка JWT. Identity собирается из ролей пользователя один раз на запрос.
func AuthMiddleware(resolver IdentityResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		token, found := strings.CutPrefix(authHeader, "Bearer ")
		if !found || strings.TrimSpace(token) == "" {
			apperrors.HandleError(c, apperrors.NewUnauthorizedError("Authorization header missing or invalid"))
			return
		}

		db, ok := DB(c)
		if !ok {
			apperrors.HandleError(c, apperrors.InternalError(nil))
			return
		}

		identity, err := resolver.ResolveIdentity(c.Request.Context(), db, strings.TrimSpace(token))
		if err != nil {
			logger.CtxDebug(c.Request.Context(), "Token rejected", "error", err.Error())
			apperrors.HandleError(c, err)
			return
		}

		c.Set(identityKey, identity)
		c.Request = c.Request.WithContext(logger.WithUserID(c.Request.Context(), identity.UserID))
		c.Next()
	}
}

// GetIdentity извлекает Identity, положенную AuthMiddleware
func GetIdentity(c *gin.Context) (auth.Identity, bool) {
	val, exists := c.Get(identityKey)
	if !exists {
		return auth.Identity{}, false
	}
	identity, ok := val.(auth.Identity)
	return identity, ok
}
