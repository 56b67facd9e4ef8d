package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/bookstore-backend/internal/http/response"
	"github.com/ignatzorin/bookstore-backend/internal/logger"
	"github.com/ignatzorin/bookstore-backend/internal/pkg/apperror"
)

// ErrorHandler переводит ошибки обработчиков в единый конверт ответа.
// Типизированные apperror.AppError уходят клиенту со своим кодом и статусом,
// всё остальное маскируется как внутренняя ошибка сервера.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() || len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err

		if appErr, ok := apperror.As(err); ok {
			logger.Log.WithFields(logrus.Fields{
				"error_code": appErr.Code,
				"path":       c.Request.URL.Path,
				"method":     c.Request.Method,
			}).WithError(err).Info("Request failed")

			response.Fail(c, appErr.HTTPStatus, appErr.Message, appErr.Code)
			return
		}

		logger.Log.WithFields(logrus.Fields{
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		}).WithError(err).Error("Request error")

		c.JSON(http.StatusInternalServerError, response.Envelope{
			Result: "",
			OK:     false,
			Detail: "внутренняя ошибка сервера",
		})
	}
}
