// Package response задаёт единый конверт ответа API:
// {"result": ..., "ok": true} при успехе и
// {"result": "", "ok": false, "detail": ..., "error_code": N} при ошибке.
package response

import (
	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/bookstore-backend/internal/pkg/apperror"
)

// Envelope — конверт ответа API.
type Envelope struct {
	Result    interface{}         `json:"result"`
	OK        bool                `json:"ok"`
	Detail    string              `json:"detail,omitempty"`
	ErrorCode *apperror.ErrorCode `json:"error_code,omitempty"`
}

// Success пишет успешный ответ с заданным статусом.
func Success(c *gin.Context, status int, result interface{}) {
	c.JSON(status, Envelope{Result: result, OK: true})
}

// Fail пишет ответ об ошибке с доменным кодом.
func Fail(c *gin.Context, status int, detail string, code apperror.ErrorCode) {
	c.JSON(status, Envelope{Result: "", OK: false, Detail: detail, ErrorCode: &code})
}

// AbortFail пишет ответ об ошибке и прерывает цепочку обработчиков.
func AbortFail(c *gin.Context, status int, detail string, code apperror.ErrorCode) {
	c.AbortWithStatusJSON(status, Envelope{Result: "", OK: false, Detail: detail, ErrorCode: &code})
}
