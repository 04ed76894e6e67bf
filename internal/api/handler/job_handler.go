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

// JobHandler 职位接口
type JobHandler struct {
	svc    service.JobService
	logger *zap.Logger
}

// NewJobHandler 创建职位 Handler
func NewJobHandler(svc service.JobService, logger *zap.Logger) *JobHandler {
	return &JobHandler{svc: svc, logger: logger}
}

// Create 发布职位（招聘者/管理员）
// POST /api/v1/jobs
func (h *JobHandler) Create(c *gin.Context) {
	var req dto.CreateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, response.CodeInvalidParams, "请求参数无效")
		return
	}

	resp, err := h.svc.Create(c.Request.Context(), &req, currentUserID(c))
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Created(c, resp)
}

// List 职位列表（公开）
// GET /api/v1/jobs
func (h *JobHandler) List(c *gin.Context) {
	var req dto.JobListRequest
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

// GetByID 职位详情（公开）
// GET /api/v1/jobs/:id
func (h *JobHandler) GetByID(c *gin.Context) {
	resp, err := h.svc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, resp)
}

// Update 更新职位（归属招聘者/管理员）
// PUT /api/v1/jobs/:id
func (h *JobHandler) Update(c *gin.Context) {
	var req dto.UpdateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, response.CodeInvalidParams, "请求参数无效")
		return
	}

	resp, err := h.svc.Update(c.Request.Context(), c.Param("id"), &req, currentUserID(c), currentRole(c))
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, resp)
}

// Delete 删除职位及其全部申请（归属招聘者/管理员）
// DELETE /api/v1/jobs/:id
func (h *JobHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id"), currentUserID(c), currentRole(c)); err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, nil)
}

// ListByRecruiter 招聘者名下的职位
// 缺省为当前用户；指定 id 时仅限本人或管理员
// GET /api/v1/jobs/recruiter/:id?
func (h *JobHandler) ListByRecruiter(c *gin.Context) {
	recruiterID := c.Param("id")
	if recruiterID == "" {
		recruiterID = currentUserID(c)
	} else if currentRole(c) != model.RoleAdmin && recruiterID != currentUserID(c) {
		response.Forbidden(c, response.CodeForbidden, "没有访问权限")
		return
	}

	var p dto.PaginationRequest
	if err := c.ShouldBindQuery(&p); err != nil {
		response.BadRequest(c, response.CodeInvalidParams, "查询参数无效")
		return
	}

	list, total, err := h.svc.ListByRecruiter(c.Request.Context(), recruiterID, &p)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.OKPage(c, list, total, p.GetPage(), p.GetPageSize())
}

// Stats 职位统计（管理员）
// GET /api/v1/jobs/stats
func (h *JobHandler) Stats(c *gin.Context) {
	resp, err := h.svc.Stats(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, resp)
}

func (h *JobHandler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrJobNotFound):
		response.NotFound(c, response.CodeJobNotFound, err.Error())
	case errors.Is(err, service.ErrSalaryRangeInvalid):
		response.BadRequest(c, response.CodeSalaryRangeInvalid, err.Error())
	case errors.Is(err, service.ErrDeadlineInvalid):
		response.BadRequest(c, response.CodeDeadlineInvalid, err.Error())
	case errors.Is(err, service.ErrNoPermission):
		response.Forbidden(c, response.CodeForbidden, err.Error())
	default:
		h.logger.Error("职位接口内部错误", zap.Error(err))
		response.InternalError(c)
	}
}
