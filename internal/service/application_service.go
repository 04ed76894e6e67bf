package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"campus-recruit/backend/internal/dto"
	"campus-recruit/backend/internal/model"
	"campus-recruit/backend/internal/repository"
)

var (
	ErrApplicationNotFound  = errors.New("申请不存在")
	ErrJobClosed            = errors.New("职位已关闭申请")
	ErrDuplicateApplication = errors.New("已申请过该职位")
	ErrStatusRevertPending  = errors.New("申请状态不允许回退到 pending")
)

// ApplicationService 申请业务接口
type ApplicationService interface {
	Apply(ctx context.Context, req *dto.ApplyRequest, studentID string) (*dto.ApplicationResponse, error)
	GetByID(ctx context.Context, id, callerID, callerRole string) (*dto.ApplicationResponse, error)
	List(ctx context.Context, req *dto.ApplicationListRequest, callerID, callerRole string) ([]dto.ApplicationResponse, int64, error)
	ListByJob(ctx context.Context, jobID string, p *dto.PaginationRequest, callerID, callerRole string) ([]dto.ApplicationResponse, int64, error)
	UpdateStatus(ctx context.Context, id string, req *dto.UpdateApplicationStatusRequest, callerID, callerRole string) (*dto.ApplicationResponse, error)
	Delete(ctx context.Context, id, callerID, callerRole string) error
	Stats(ctx context.Context) (*dto.ApplicationStatsResponse, error)
}

type applicationService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewApplicationService 创建申请服务
func NewApplicationService(repo *repository.Repository, logger *zap.Logger) ApplicationService {
	return &applicationService{repo: repo, logger: logger}
}

// Apply 学生投递申请
// 开放性检查与写入在同一事务内执行；并发重复投递由复合唯一索引兜底
func (s *applicationService) Apply(ctx context.Context, req *dto.ApplyRequest, studentID string) (*dto.ApplicationResponse, error) {
	if _, err := s.repo.Application.GetByStudentAndJob(ctx, studentID, req.JobID); err == nil {
		return nil, ErrDuplicateApplication
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	tx, err := s.repo.BeginTx()
	if err != nil {
		return nil, err
	}
	txRepo := s.repo.WithTx(tx)

	job, err := txRepo.Job.GetByID(ctx, req.JobID)
	if err != nil {
		if tx != nil {
			tx.Rollback()
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, err
	}
	if !job.IsOpenForApplications() {
		if tx != nil {
			tx.Rollback()
		}
		return nil, ErrJobClosed
	}

	app := &model.Application{
		StudentID:   studentID,
		JobID:       req.JobID,
		Status:      model.ApplicationStatusPending,
		CoverLetter: req.CoverLetter,
		ResumeURL:   req.ResumeURL,
		AppliedAt:   time.Now(),
	}
	if err := txRepo.Application.Create(ctx, app); err != nil {
		if tx != nil {
			tx.Rollback()
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateApplication
		}
		s.logger.Error("创建申请失败", zap.Error(err))
		return nil, err
	}

	if tx != nil {
		if err := tx.Commit().Error; err != nil {
			return nil, err
		}
	}

	s.logger.Info("申请已投递",
		zap.String("application_id", app.ApplicationID),
		zap.String("student_id", studentID),
		zap.String("job_id", req.JobID))

	app.Job = job
	return toApplicationResponse(app), nil
}

// GetByID 查询申请详情
// 可见范围：管理员、申请学生本人、职位归属招聘者
func (s *applicationService) GetByID(ctx context.Context, id, callerID, callerRole string) (*dto.ApplicationResponse, error) {
	app, err := s.repo.Application.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, err
	}

	if !canViewApplication(app, callerID, callerRole) {
		return nil, ErrNoPermission
	}
	return toApplicationResponse(app), nil
}

// List 分页查询申请列表，按角色收窄可见范围
// 显式过滤条件只在角色范围内取交集，越界过滤返回空集而非报错
func (s *applicationService) List(ctx context.Context, req *dto.ApplicationListRequest, callerID, callerRole string) ([]dto.ApplicationResponse, int64, error) {
	filters := &repository.ApplicationListFilters{
		Status:    req.Status,
		JobID:     req.JobID,
		StudentID: req.StudentID,
	}

	switch callerRole {
	case model.RoleAdmin:
		// 不收窄

	case model.RoleStudent:
		if req.StudentID != "" && req.StudentID != callerID {
			return []dto.ApplicationResponse{}, 0, nil
		}
		filters.StudentID = callerID

	case model.RoleRecruiter:
		jobIDs, err := s.repo.Job.ListIDsByRecruiter(ctx, callerID)
		if err != nil {
			return nil, 0, err
		}
		if len(jobIDs) == 0 {
			return []dto.ApplicationResponse{}, 0, nil
		}
		if req.JobID != "" {
			if !containsID(jobIDs, req.JobID) {
				return []dto.ApplicationResponse{}, 0, nil
			}
		} else {
			filters.JobIDs = jobIDs
		}

	default:
		return nil, 0, ErrNoPermission
	}

	apps, total, err := s.repo.Application.List(ctx, filters, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("查询申请列表失败", zap.Error(err))
		return nil, 0, err
	}

	list := make([]dto.ApplicationResponse, 0, len(apps))
	for i := range apps {
		list = append(list, *toApplicationResponse(&apps[i]))
	}
	return list, total, nil
}

// ListByJob 查询指定职位收到的申请（职位归属招聘者或管理员）
func (s *applicationService) ListByJob(ctx context.Context, jobID string, p *dto.PaginationRequest, callerID, callerRole string) ([]dto.ApplicationResponse, int64, error) {
	job, err := s.repo.Job.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, ErrJobNotFound
		}
		return nil, 0, err
	}
	if !canMutateJob(job, callerID, callerRole) {
		return nil, 0, ErrNoPermission
	}

	filters := &repository.ApplicationListFilters{JobID: jobID}
	apps, total, err := s.repo.Application.List(ctx, filters, p.GetOffset(), p.GetPageSize())
	if err != nil {
		return nil, 0, err
	}

	list := make([]dto.ApplicationResponse, 0, len(apps))
	for i := range apps {
		list = append(list, *toApplicationResponse(&apps[i]))
	}
	return list, total, nil
}

// UpdateStatus 申请状态迁移
// 首次离开 pending 时写入 reviewed_at，此后不再改写；不允许回退到 pending
func (s *applicationService) UpdateStatus(ctx context.Context, id string, req *dto.UpdateApplicationStatusRequest, callerID, callerRole string) (*dto.ApplicationResponse, error) {
	app, err := s.repo.Application.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, err
	}

	if !canDecideApplication(app, callerID, callerRole) {
		return nil, ErrNoPermission
	}

	if req.Status == model.ApplicationStatusPending {
		return nil, ErrStatusRevertPending
	}

	if app.Status == model.ApplicationStatusPending && app.ReviewedAt == nil {
		now := time.Now()
		app.ReviewedAt = &now
	}
	app.Status = req.Status
	// notes 缺省保持原值，显式空字符串表示清空
	if req.Notes != nil {
		app.Notes = *req.Notes
	}

	if err := s.repo.Application.Update(ctx, app); err != nil {
		s.logger.Error("更新申请状态失败", zap.Error(err))
		return nil, err
	}

	s.logger.Info("申请状态已更新",
		zap.String("application_id", id),
		zap.String("status", req.Status))

	return toApplicationResponse(app), nil
}

// Delete 撤回/删除申请（申请学生本人或管理员）
func (s *applicationService) Delete(ctx context.Context, id, callerID, callerRole string) error {
	app, err := s.repo.Application.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrApplicationNotFound
		}
		return err
	}

	if callerRole != model.RoleAdmin && app.StudentID != callerID {
		return ErrNoPermission
	}

	if err := s.repo.Application.Delete(ctx, id); err != nil {
		s.logger.Error("删除申请失败", zap.Error(err))
		return err
	}

	s.logger.Info("申请已删除", zap.String("application_id", id))
	return nil
}

// Stats 申请统计（管理员）
func (s *applicationService) Stats(ctx context.Context) (*dto.ApplicationStatsResponse, error) {
	byStatus, err := s.repo.Application.CountGroupedByStatus(ctx)
	if err != nil {
		return nil, err
	}

	resp := &dto.ApplicationStatsResponse{
		Pending:     byStatus[model.ApplicationStatusPending],
		Reviewed:    byStatus[model.ApplicationStatusReviewed],
		Shortlisted: byStatus[model.ApplicationStatusShortlisted],
		Rejected:    byStatus[model.ApplicationStatusRejected],
		Accepted:    byStatus[model.ApplicationStatusAccepted],
	}
	resp.Total = resp.Pending + resp.Reviewed + resp.Shortlisted + resp.Rejected + resp.Accepted
	return resp, nil
}

// canViewApplication 申请读权限：管理员、学生本人、职位归属招聘者
func canViewApplication(app *model.Application, callerID, callerRole string) bool {
	if callerRole == model.RoleAdmin {
		return true
	}
	if app.StudentID == callerID {
		return true
	}
	return app.Job != nil && app.Job.RecruiterID == callerID
}

// canDecideApplication 申请状态迁移权限：管理员或职位归属招聘者
func canDecideApplication(app *model.Application, callerID, callerRole string) bool {
	if callerRole == model.RoleAdmin {
		return true
	}
	if callerRole != model.RoleRecruiter {
		return false
	}
	return app.Job != nil && app.Job.RecruiterID == callerID
}

func containsID(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
