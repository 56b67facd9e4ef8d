package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/bookstore-backend/internal/http/response"
	"github.com/ignatzorin/bookstore-backend/internal/models"
	"github.com/ignatzorin/bookstore-backend/internal/pkg/apperror"
)

// RequireRole пропускает только пользователей с одной из указанных ролей.
// Вешается после AuthMiddleware: роль берётся из контекста.
func RequireRole(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, ok := c.Get(ContextRoleKey)
		if !ok {
			response.AbortFail(c, http.StatusUnauthorized, "требуется авторизация", apperror.ErrCodeUnauthorized)
			return
		}

		role, _ := raw.(string)
		for _, allowed := range roles {
			if role == string(allowed) {
				c.Next()
				return
			}
		}

		response.AbortFail(c, http.StatusForbidden, "недостаточно прав", apperror.ErrCodeForbidden)
	}
}
