package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/ignatzorin/bookstore-backend/internal/http/response"
)

// RateLimitMiddleware ограничивает количество запросов с одного IP.
// По умолчанию: 10 запросов в минуту.
func RateLimitMiddleware(limit int64, period time.Duration) gin.HandlerFunc {
	if limit <= 0 {
		limit = 10
	}
	if period <= 0 {
		period = 1 * time.Minute
	}

	rate := limiter.Rate{
		Period: period,
		Limit:  limit,
	}
	store := memory.NewStore()
	instance := limiter.New(store, rate)

	return func(c *gin.Context) {
		key := c.ClientIP()
		context, err := instance.Get(c, key)
		if err != nil {
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}

		c.Header("X-RateLimit-Limit", fmt.Sprintf("%d", context.Limit))
		c.Header("X-RateLimit-Remaining", fmt.Sprintf("%d", context.Remaining))
		c.Header("X-RateLimit-Reset", fmt.Sprintf("%d", context.Reset))

		if context.Reached {
			// Ситуация не входит в доменную таксономию ошибок,
			// поэтому конверт отдаётся без error_code.
			c.AbortWithStatusJSON(http.StatusTooManyRequests, response.Envelope{
				Result: "",
				OK:     false,
				Detail: "слишком много запросов, попробуйте позже",
			})
			return
		}

		c.Next()
	}
}
