package service

import (
	"errors"

	"go.uber.org/zap"

	"campus-recruit/backend/config"
	"campus-recruit/backend/internal/repository"
	"campus-recruit/backend/pkg/jwt"
	"campus-recruit/backend/pkg/redis"
)

// ErrNoPermission 跨模块共享的权限错误
// 资源存在但调用者无权操作时返回，Handler 层映射为 403
var ErrNoPermission = errors.New("没有操作权限")

// Service 所有 Service 的聚合入口
type Service struct {
	Auth        AuthService
	User        UserService
	Job         JobService
	Application ApplicationService
	Dashboard   DashboardService
	Export      ExportService
}

// NewService 创建 Service 聚合
// rdb 允许为 nil：黑名单与限流能力降级，其余功能不受影响
func NewService(cfg *config.Config, repo *repository.Repository, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *Service {
	return &Service{
		Auth:        NewAuthService(repo, jwtMgr, rdb, logger),
		User:        NewUserService(repo, logger),
		Job:         NewJobService(repo, logger),
		Application: NewApplicationService(repo, logger),
		Dashboard:   NewDashboardService(repo, logger),
		Export:      NewExportService(repo, logger),
	}
}
