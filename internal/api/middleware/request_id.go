package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ContextRequestID 请求链路 ID 的上下文键
const ContextRequestID = "request_id"

const headerRequestID = "X-Request-ID"

// RequestID 请求链路 ID 中间件
// 透传上游的 X-Request-ID，缺失时生成新 ID，并回写到响应头
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(headerRequestID)
		if id == "" {
			id = uuid.New().String()
		}
		c.Set(ContextRequestID, id)
		c.Writer.Header().Set(headerRequestID, id)
		c.Next()
	}
}
