package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"campus-recruit/backend/internal/api/middleware"
)

// 从认证中间件注入的上下文中读取当前用户身份
// 这些函数只应在 JWTAuth 之后的路由中调用

func currentUserID(c *gin.Context) string {
	return c.GetString(middleware.ContextUserID)
}

func currentRole(c *gin.Context) string {
	return c.GetString(middleware.ContextRole)
}

func currentTokenJTI(c *gin.Context) string {
	return c.GetString(middleware.ContextTokenJTI)
}

func currentTokenExp(c *gin.Context) time.Time {
	if v, ok := c.Get(middleware.ContextTokenExp); ok {
		if t, ok := v.(time.Time); ok {
			return t
		}
	}
	return time.Time{}
}
