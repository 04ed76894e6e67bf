package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"campus-recruit/backend/internal/dto"
	"campus-recruit/backend/internal/model"
	"campus-recruit/backend/internal/service"
	"campus-recruit/backend/pkg/response"
)

// UserHandler 用户管理接口（管理员）
type UserHandler struct {
	svc    service.UserService
	logger *zap.Logger
}

// NewUserHandler 创建用户管理 Handler
func NewUserHandler(svc service.UserService, logger *zap.Logger) *UserHandler {
	return &UserHandler{svc: svc, logger: logger}
}

// Create 创建用户
// POST /api/v1/users
func (h *UserHandler) Create(c *gin.Context) {
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, response.CodeInvalidParams, "请求参数无效")
		return
	}

	resp, err := h.svc.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Created(c, resp)
}

// List 用户列表
// GET /api/v1/users
func (h *UserHandler) List(c *gin.Context) {
	var req dto.UserListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, response.CodeInvalidParams, "查询参数无效")
		return
	}

	list, total, err := h.svc.List(c.Request.Context(), &req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.OKPage(c, list, total, req.GetPage(), req.GetPageSize())
}

// GetByID 用户详情（管理员或本人）
// GET /api/v1/users/:id
func (h *UserHandler) GetByID(c *gin.Context) {
	id := c.Param("id")
	if currentRole(c) != model.RoleAdmin && id != currentUserID(c) {
		response.Forbidden(c, response.CodeForbidden, "没有访问权限")
		return
	}

	resp, err := h.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, resp)
}

// Update 更新用户
// PUT /api/v1/users/:id
func (h *UserHandler) Update(c *gin.Context) {
	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, response.CodeInvalidParams, "请求参数无效")
		return
	}

	resp, err := h.svc.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, resp)
}

// Delete 删除用户
// DELETE /api/v1/users/:id
func (h *UserHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id"), currentUserID(c)); err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, nil)
}

// ToggleStatus 启用/停用用户
// PUT /api/v1/users/:id/status
func (h *UserHandler) ToggleStatus(c *gin.Context) {
	resp, err := h.svc.ToggleStatus(c.Request.Context(), c.Param("id"), currentUserID(c))
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, resp)
}

// Stats 用户统计
// GET /api/v1/users/stats
func (h *UserHandler) Stats(c *gin.Context) {
	resp, err := h.svc.Stats(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, resp)
}

func (h *UserHandler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		response.NotFound(c, response.CodeUserNotFound, err.Error())
	case errors.Is(err, service.ErrEmailExists):
		response.Conflict(c, response.CodeEmailExists, err.Error())
	case errors.Is(err, service.ErrUserSelfDelete):
		response.BadRequest(c, response.CodeUserSelfDelete, err.Error())
	case errors.Is(err, service.ErrUserSelfToggle):
		response.BadRequest(c, response.CodeUserSelfToggle, err.Error())
	default:
		h.logger.Error("用户接口内部错误", zap.Error(err))
		response.InternalError(c)
	}
}
