package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"campus-recruit/backend/internal/dto"
	"campus-recruit/backend/internal/service"
	"campus-recruit/backend/pkg/response"
)

// ApplicationHandler 申请接口
type ApplicationHandler struct {
	svc    service.ApplicationService
	logger *zap.Logger
}

// NewApplicationHandler 创建申请 Handler
func NewApplicationHandler(svc service.ApplicationService, logger *zap.Logger) *ApplicationHandler {
	return &ApplicationHandler{svc: svc, logger: logger}
}

// Apply 投递申请（学生）
// POST /api/v1/applications
func (h *ApplicationHandler) Apply(c *gin.Context) {
	var req dto.ApplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, response.CodeInvalidParams, "请求参数无效")
		return
	}

	resp, err := h.svc.Apply(c.Request.Context(), &req, currentUserID(c))
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Created(c, resp)
}

// List 申请列表，按角色收窄可见范围
// GET /api/v1/applications
func (h *ApplicationHandler) List(c *gin.Context) {
	var req dto.ApplicationListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, response.CodeInvalidParams, "查询参数无效")
		return
	}

	list, total, err := h.svc.List(c.Request.Context(), &req, currentUserID(c), currentRole(c))
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.OKPage(c, list, total, req.GetPage(), req.GetPageSize())
}

// GetByID 申请详情
// GET /api/v1/applications/:id
func (h *ApplicationHandler) GetByID(c *gin.Context) {
	resp, err := h.svc.GetByID(c.Request.Context(), c.Param("id"), currentUserID(c), currentRole(c))
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, resp)
}

// UpdateStatus 申请状态迁移（归属招聘者/管理员）
// PUT /api/v1/applications/:id/status
func (h *ApplicationHandler) UpdateStatus(c *gin.Context) {
	var req dto.UpdateApplicationStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, response.CodeInvalidParams, "请求参数无效")
		return
	}

	resp, err := h.svc.UpdateStatus(c.Request.Context(), c.Param("id"), &req, currentUserID(c), currentRole(c))
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, resp)
}

// Delete 撤回/删除申请（学生本人/管理员）
// DELETE /api/v1/applications/:id
func (h *ApplicationHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id"), currentUserID(c), currentRole(c)); err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, nil)
}

// ListByJob 指定职位收到的申请（归属招聘者/管理员）
// GET /api/v1/applications/job/:jobId
func (h *ApplicationHandler) ListByJob(c *gin.Context) {
	var p dto.PaginationRequest
	if err := c.ShouldBindQuery(&p); err != nil {
		response.BadRequest(c, response.CodeInvalidParams, "查询参数无效")
		return
	}

	list, total, err := h.svc.ListByJob(c.Request.Context(), c.Param("jobId"), &p, currentUserID(c), currentRole(c))
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.OKPage(c, list, total, p.GetPage(), p.GetPageSize())
}

// Stats 申请统计（管理员）
// GET /api/v1/applications/stats
func (h *ApplicationHandler) Stats(c *gin.Context) {
	resp, err := h.svc.Stats(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, resp)
}

func (h *ApplicationHandler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrApplicationNotFound):
		response.NotFound(c, response.CodeApplicationNotFound, err.Error())
	case errors.Is(err, service.ErrJobNotFound):
		response.NotFound(c, response.CodeJobNotFound, err.Error())
	case errors.Is(err, service.ErrJobClosed):
		response.BadRequest(c, response.CodeJobClosed, err.Error())
	case errors.Is(err, service.ErrDuplicateApplication):
		response.Conflict(c, response.CodeDuplicateApplication, err.Error())
	case errors.Is(err, service.ErrStatusRevertPending):
		response.BadRequest(c, response.CodeStatusRevertPending, err.Error())
	case errors.Is(err, service.ErrNoPermission):
		response.Forbidden(c, response.CodeForbidden, err.Error())
	default:
		h.logger.Error("申请接口内部错误", zap.Error(err))
		response.InternalError(c)
	}
}
