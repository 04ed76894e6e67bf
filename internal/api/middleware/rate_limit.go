package middleware

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"campus-recruit/backend/config"
	"campus-recruit/backend/pkg/redis"
	"campus-recruit/backend/pkg/response"
)

// RateLimit 认证接口限流中间件
// 以客户端 IP + 路由为维度做 Redis 固定窗口计数，多实例部署共享窗口
// Redis 未启用或不可用时放行，限流属于保护性能力而非功能依赖
func RateLimit(rdb *redis.Client, cfg *config.RateLimitConfig, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rdb == nil {
			c.Next()
			return
		}

		key := fmt.Sprintf("ratelimit:%s:%s", c.ClientIP(), c.FullPath())
		allowed, err := rdb.CheckRateLimit(c.Request.Context(), key, cfg.Limit, cfg.Window)
		if err != nil {
			logger.Warn("限流计数失败，放行请求", zap.Error(err))
			c.Next()
			return
		}
		if !allowed {
			response.TooManyRequests(c, response.CodeRateLimited, "请求过于频繁，请稍后再试")
			c.Abort()
			return
		}

		c.Next()
	}
}
