package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"campus-recruit/backend/internal/repository"
	"campus-recruit/backend/pkg/jwt"
	"campus-recruit/backend/pkg/redis"
	"campus-recruit/backend/pkg/response"
)

// 注入 gin.Context 的键
const (
	ContextUserID   = "user_id"
	ContextEmail    = "email"
	ContextRole     = "role"
	ContextTokenJTI = "token_jti"
	ContextTokenExp = "token_exp"
)

// JWTAuth 强制认证中间件
// Bearer Token → 解析校验 → 黑名单检查 → 加载用户 → 注入身份上下文
// 每次请求重新加载用户，保证停用账号的存量 Token 立即失效
func JWTAuth(jwtMgr *jwt.Manager, rdb *redis.Client, userRepo repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := extractBearerToken(c)
		if !ok {
			response.Unauthorized(c, response.CodeUnauthorized, "缺少认证信息")
			c.Abort()
			return
		}

		claims, err := jwtMgr.ParseToken(token)
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				response.Unauthorized(c, response.CodeUnauthorized, "登录已过期")
			} else {
				response.Unauthorized(c, response.CodeUnauthorized, "认证信息无效")
			}
			c.Abort()
			return
		}

		if claims.TokenType != "access" {
			response.Unauthorized(c, response.CodeUnauthorized, "认证信息无效")
			c.Abort()
			return
		}

		// Redis 不可用时跳过黑名单检查（登出降级为客户端丢弃 Token）
		if rdb != nil {
			blacklisted, err := rdb.IsBlacklisted(c.Request.Context(), claims.ID)
			if err == nil && blacklisted {
				response.Unauthorized(c, response.CodeUnauthorized, "登录已失效")
				c.Abort()
				return
			}
		}

		user, err := userRepo.GetByID(c.Request.Context(), claims.UserID)
		if err != nil {
			response.Unauthorized(c, response.CodeUnauthorized, "认证信息无效")
			c.Abort()
			return
		}
		if !user.IsActive {
			// 停用账号与无效凭证同属认证失败，按 401 处理
			response.Unauthorized(c, response.CodeAccountDisabled, "账号已被停用")
			c.Abort()
			return
		}

		c.Set(ContextUserID, user.UserID)
		c.Set(ContextEmail, user.Email)
		c.Set(ContextRole, user.Role)
		c.Set(ContextTokenJTI, claims.ID)
		c.Set(ContextTokenExp, claims.ExpiresAt.Time)

		c.Next()
	}
}

// OptionalJWTAuth 可选认证中间件
// 携带有效 Token 时注入身份上下文，否则按匿名请求放行，从不中断
func OptionalJWTAuth(jwtMgr *jwt.Manager, userRepo repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := extractBearerToken(c)
		if !ok {
			c.Next()
			return
		}

		claims, err := jwtMgr.ParseToken(token)
		if err != nil || claims.TokenType != "access" {
			c.Next()
			return
		}

		user, err := userRepo.GetByID(c.Request.Context(), claims.UserID)
		if err != nil || !user.IsActive {
			c.Next()
			return
		}

		c.Set(ContextUserID, user.UserID)
		c.Set(ContextEmail, user.Email)
		c.Set(ContextRole, user.Role)

		c.Next()
	}
}

// RoleAuth 角色鉴权中间件，必须挂在 JWTAuth 之后
func RoleAuth(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(ContextRole)
		for _, allowed := range roles {
			if role == allowed {
				c.Next()
				return
			}
		}
		response.Forbidden(c, response.CodeForbidden, "没有访问权限")
		c.Abort()
	}
}

func extractBearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}
