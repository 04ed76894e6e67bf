package handler

import (
	"go.uber.org/zap"

	"campus-recruit/backend/internal/service"
)

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Auth        *AuthHandler
	User        *UserHandler
	Job         *JobHandler
	Application *ApplicationHandler
	Dashboard   *DashboardHandler
	Export      *ExportHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service, logger *zap.Logger) *Handler {
	return &Handler{
		Auth:        NewAuthHandler(svc.Auth, logger),
		User:        NewUserHandler(svc.User, logger),
		Job:         NewJobHandler(svc.Job, logger),
		Application: NewApplicationHandler(svc.Application, logger),
		Dashboard:   NewDashboardHandler(svc.Dashboard, logger),
		Export:      NewExportHandler(svc.Export, logger),
	}
}
