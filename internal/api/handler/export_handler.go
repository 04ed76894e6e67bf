package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"campus-recruit/backend/internal/service"
	"campus-recruit/backend/pkg/response"
)

const (
	mimeXLSX     = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	mimeCalendar = "text/calendar; charset=utf-8"
)

// ExportHandler 导出接口
type ExportHandler struct {
	svc    service.ExportService
	logger *zap.Logger
}

// NewExportHandler 创建导出 Handler
func NewExportHandler(svc service.ExportService, logger *zap.Logger) *ExportHandler {
	return &ExportHandler{svc: svc, logger: logger}
}

// ExportJobApplications 导出职位申请 xlsx（归属招聘者/管理员）
// GET /api/v1/export/applications?job_id=
func (h *ExportHandler) ExportJobApplications(c *gin.Context) {
	jobID := c.Query("job_id")
	if jobID == "" {
		response.BadRequest(c, response.CodeInvalidParams, "缺少 job_id 参数")
		return
	}

	buf, filename, err := h.svc.ExportJobApplications(c.Request.Context(), jobID, currentUserID(c), currentRole(c))
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, mimeXLSX, buf.Bytes())
}

// DeadlineCalendar 学生申请截止时间 iCalendar 订阅
// GET /api/v1/export/deadlines.ics
func (h *ExportHandler) DeadlineCalendar(c *gin.Context) {
	buf, filename, err := h.svc.DeadlineCalendar(c.Request.Context(), currentUserID(c))
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, mimeCalendar, buf.Bytes())
}

func (h *ExportHandler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrJobNotFound):
		response.NotFound(c, response.CodeJobNotFound, err.Error())
	case errors.Is(err, service.ErrNoPermission):
		response.Forbidden(c, response.CodeForbidden, err.Error())
	default:
		h.logger.Error("导出接口内部错误", zap.Error(err))
		response.Error(c, http.StatusInternalServerError, response.CodeExportFailed, "导出失败")
	}
}
