package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"campus-recruit/backend/internal/dto"
	"campus-recruit/backend/internal/service"
	"campus-recruit/backend/pkg/response"
)

// AuthHandler 认证接口
type AuthHandler struct {
	svc    service.AuthService
	logger *zap.Logger
}

// NewAuthHandler 创建认证 Handler
func NewAuthHandler(svc service.AuthService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{svc: svc, logger: logger}
}

// Register 注册
// POST /api/v1/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, response.CodeInvalidParams, "请求参数无效")
		return
	}

	resp, err := h.svc.Register(c.Request.Context(), &req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Created(c, resp)
}

// Login 登录
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, response.CodeInvalidParams, "请求参数无效")
		return
	}

	resp, err := h.svc.Login(c.Request.Context(), &req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, resp)
}

// Logout 登出
// POST /api/v1/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.svc.Logout(c.Request.Context(), currentTokenJTI(c), currentTokenExp(c)); err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, nil)
}

// RefreshToken 刷新 Token
// POST /api/v1/auth/refresh
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req dto.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, response.CodeInvalidParams, "请求参数无效")
		return
	}

	resp, err := h.svc.RefreshToken(c.Request.Context(), req.RefreshToken)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, resp)
}

// GetProfile 获取个人资料
// GET /api/v1/auth/profile
func (h *AuthHandler) GetProfile(c *gin.Context) {
	resp, err := h.svc.GetProfile(c.Request.Context(), currentUserID(c))
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, resp)
}

// UpdateProfile 更新个人资料
// PUT /api/v1/auth/profile
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, response.CodeInvalidParams, "请求参数无效")
		return
	}

	resp, err := h.svc.UpdateProfile(c.Request.Context(), currentUserID(c), &req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, resp)
}

// ChangePassword 修改密码
// PUT /api/v1/auth/change-password
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var req dto.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, response.CodeInvalidParams, "请求参数无效")
		return
	}

	if err := h.svc.ChangePassword(c.Request.Context(), currentUserID(c), &req); err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, nil)
}

func (h *AuthHandler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrEmailExists):
		response.Conflict(c, response.CodeEmailExists, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		response.Unauthorized(c, response.CodeInvalidCredentials, err.Error())
	case errors.Is(err, service.ErrAccountDisabled):
		response.Unauthorized(c, response.CodeAccountDisabled, err.Error())
	case errors.Is(err, service.ErrRefreshInvalid):
		response.Unauthorized(c, response.CodeRefreshInvalid, err.Error())
	case errors.Is(err, service.ErrOldPasswordWrong):
		response.BadRequest(c, response.CodeOldPasswordWrong, err.Error())
	case errors.Is(err, service.ErrUserNotFound):
		response.NotFound(c, response.CodeUserNotFound, err.Error())
	default:
		h.logger.Error("认证接口内部错误", zap.Error(err))
		response.InternalError(c)
	}
}
