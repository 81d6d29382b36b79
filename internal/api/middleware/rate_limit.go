package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/MasterMIS/ERP-Google-Sheet-sub000/pkg/redis"
	"github.com/MasterMIS/ERP-Google-Sheet-sub000/pkg/response"
)

// RateLimit counts requests per (client IP, route) in a fixed window.
// A nil or failing Redis fails open, matching SessionAuth.
func RateLimit(rdb *redis.Client, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rdb == nil {
			c.Next()
			return
		}

		key := fmt.Sprintf("rate_limit:%s:%s", c.ClientIP(), c.FullPath())
		allowed, err := rdb.CheckRateLimit(c.Request.Context(), key, limit, window)
		if err != nil {
			c.Next()
			return
		}

		if !allowed {
			response.Error(c, http.StatusTooManyRequests, 104, "too many requests, slow down")
			c.Abort()
			return
		}

		c.Next()
	}
}
