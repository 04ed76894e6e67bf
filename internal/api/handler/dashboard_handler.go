package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"campus-recruit/backend/internal/service"
	"campus-recruit/backend/pkg/response"
)

// DashboardHandler 工作台接口
type DashboardHandler struct {
	svc    service.DashboardService
	logger *zap.Logger
}

// NewDashboardHandler 创建工作台 Handler
func NewDashboardHandler(svc service.DashboardService, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{svc: svc, logger: logger}
}

// GetDashboard 当前角色的工作台统计
// GET /api/v1/dashboard
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	resp, err := h.svc.GetDashboard(c.Request.Context(), currentUserID(c), currentRole(c))
	if err != nil {
		if errors.Is(err, service.ErrUnknownRole) {
			response.Forbidden(c, response.CodeForbidden, err.Error())
			return
		}
		h.logger.Error("工作台接口内部错误", zap.Error(err))
		response.InternalError(c)
		return
	}
	response.OK(c, resp)
}
