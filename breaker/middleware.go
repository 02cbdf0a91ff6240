package breaker

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GinMiddleware 创建 Gin 熔断中间件
// 熔断器打开时直接返回 503；响应状态码 >= 500 计为失败
//
// 使用示例:
//
//	brk, _ := breaker.New(&breaker.Config{Identity: "upstream"})
//	r := gin.New()
//	r.Use(breaker.GinMiddleware(brk))
func GinMiddleware(b Breaker) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		allowed, err := b.CanProceed(ctx)
		if err != nil {
			// 降级策略：熔断器状态不可读时放行，避免影响业务
			c.Next()
			return
		}

		if !allowed {
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{
				"error": "circuit breaker open",
			})
			return
		}

		c.Next()

		// 以响应状态码作为结果上报依据
		if c.Writer.Status() >= http.StatusInternalServerError {
			_ = b.RecordFailure(ctx)
		} else {
			_ = b.RecordSuccess(ctx)
		}
	}
}
