// Package common содержит разделяемые помощники HTTP-обработчиков.
package common

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ignatzorin/bookstore-backend/internal/http/middleware"
)

// ErrNoUserInContext возвращается, когда запрос прошёл мимо AuthMiddleware.
var ErrNoUserInContext = errors.New("пользователь не найден в контексте запроса")

// CurrentUserID достаёт идентификатор пользователя, положенный AuthMiddleware.
func CurrentUserID(c *gin.Context) (uuid.UUID, error) {
	raw, ok := c.Get(middleware.ContextUserIDKey)
	if !ok {
		return uuid.Nil, ErrNoUserInContext
	}

	userID, ok := raw.(uuid.UUID)
	if !ok || userID == uuid.Nil {
		return uuid.Nil, ErrNoUserInContext
	}
	return userID, nil
}
