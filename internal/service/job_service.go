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
	ErrJobNotFound        = errors.New("职位不存在")
	ErrSalaryRangeInvalid = errors.New("薪资下限不能大于上限")
	ErrDeadlineInvalid    = errors.New("申请截止时间格式无效")
)

// JobService 职位业务接口
type JobService interface {
	Create(ctx context.Context, req *dto.CreateJobRequest, recruiterID string) (*dto.JobResponse, error)
	GetByID(ctx context.Context, id string) (*dto.JobResponse, error)
	List(ctx context.Context, req *dto.JobListRequest) ([]dto.JobResponse, int64, error)
	Update(ctx context.Context, id string, req *dto.UpdateJobRequest, callerID, callerRole string) (*dto.JobResponse, error)
	Delete(ctx context.Context, id, callerID, callerRole string) error
	ListByRecruiter(ctx context.Context, recruiterID string, p *dto.PaginationRequest) ([]dto.JobResponse, int64, error)
	Stats(ctx context.Context) (*dto.JobStatsResponse, error)
}

type jobService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewJobService 创建职位服务
func NewJobService(repo *repository.Repository, logger *zap.Logger) JobService {
	return &jobService{repo: repo, logger: logger}
}

// Create 发布职位，归属调用者（招聘者），初始状态 active
func (s *jobService) Create(ctx context.Context, req *dto.CreateJobRequest, recruiterID string) (*dto.JobResponse, error) {
	if err := validateSalaryRange(req.SalaryMin, req.SalaryMax); err != nil {
		return nil, err
	}

	deadline, err := parseDeadline(req.ApplicationDeadline)
	if err != nil {
		return nil, err
	}

	job := &model.Job{
		Title:               req.Title,
		Description:         req.Description,
		Requirements:        req.Requirements,
		Location:            req.Location,
		SalaryMin:           req.SalaryMin,
		SalaryMax:           req.SalaryMax,
		JobType:             req.JobType,
		Status:              model.JobStatusActive,
		RecruiterID:         recruiterID,
		ApplicationDeadline: deadline,
	}
	if err := s.repo.Job.Create(ctx, job); err != nil {
		s.logger.Error("创建职位失败", zap.Error(err))
		return nil, err
	}

	s.logger.Info("职位已发布",
		zap.String("job_id", job.JobID),
		zap.String("recruiter_id", recruiterID))

	return toJobResponse(job), nil
}

// GetByID 按 ID 查询职位
func (s *jobService) GetByID(ctx context.Context, id string) (*dto.JobResponse, error) {
	job, err := s.repo.Job.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, err
	}
	return toJobResponse(job), nil
}

// List 分页查询职位列表
func (s *jobService) List(ctx context.Context, req *dto.JobListRequest) ([]dto.JobResponse, int64, error) {
	filters := &repository.JobListFilters{
		Status:      req.Status,
		JobType:     req.JobType,
		Location:    req.Location,
		RecruiterID: req.RecruiterID,
		Search:      req.Search,
	}
	jobs, total, err := s.repo.Job.List(ctx, filters, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("查询职位列表失败", zap.Error(err))
		return nil, 0, err
	}

	list := make([]dto.JobResponse, 0, len(jobs))
	for i := range jobs {
		list = append(list, *toJobResponse(&jobs[i]))
	}
	return list, total, nil
}

// Update 更新职位
// 先加载（不存在 → 404），再鉴权（非归属招聘者且非管理员 → 403）
func (s *jobService) Update(ctx context.Context, id string, req *dto.UpdateJobRequest, callerID, callerRole string) (*dto.JobResponse, error) {
	job, err := s.repo.Job.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, err
	}

	if !canMutateJob(job, callerID, callerRole) {
		return nil, ErrNoPermission
	}

	if req.Title != nil {
		job.Title = *req.Title
	}
	if req.Description != nil {
		job.Description = *req.Description
	}
	if req.Requirements != nil {
		job.Requirements = *req.Requirements
	}
	if req.Location != nil {
		job.Location = *req.Location
	}
	if req.SalaryMin != nil {
		job.SalaryMin = req.SalaryMin
	}
	if req.SalaryMax != nil {
		job.SalaryMax = req.SalaryMax
	}
	if req.JobType != nil {
		job.JobType = *req.JobType
	}
	if req.Status != nil {
		job.Status = *req.Status
	}
	if req.ApplicationDeadline != nil {
		deadline, err := parseDeadline(req.ApplicationDeadline)
		if err != nil {
			return nil, err
		}
		job.ApplicationDeadline = deadline
	}

	// 合并后校验，拦截只改一端导致的区间倒挂
	if err := validateSalaryRange(job.SalaryMin, job.SalaryMax); err != nil {
		return nil, err
	}

	if err := s.repo.Job.Update(ctx, job); err != nil {
		s.logger.Error("更新职位失败", zap.Error(err))
		return nil, err
	}
	return toJobResponse(job), nil
}

// Delete 删除职位及其全部申请（外键级联）
func (s *jobService) Delete(ctx context.Context, id, callerID, callerRole string) error {
	job, err := s.repo.Job.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrJobNotFound
		}
		return err
	}

	if !canMutateJob(job, callerID, callerRole) {
		return ErrNoPermission
	}

	if err := s.repo.Job.Delete(ctx, id); err != nil {
		s.logger.Error("删除职位失败", zap.Error(err))
		return err
	}

	s.logger.Info("职位已删除", zap.String("job_id", id))
	return nil
}

// ListByRecruiter 查询指定招聘者名下的职位
func (s *jobService) ListByRecruiter(ctx context.Context, recruiterID string, p *dto.PaginationRequest) ([]dto.JobResponse, int64, error) {
	filters := &repository.JobListFilters{RecruiterID: recruiterID}
	jobs, total, err := s.repo.Job.List(ctx, filters, p.GetOffset(), p.GetPageSize())
	if err != nil {
		return nil, 0, err
	}

	list := make([]dto.JobResponse, 0, len(jobs))
	for i := range jobs {
		list = append(list, *toJobResponse(&jobs[i]))
	}
	return list, total, nil
}

// Stats 职位统计
func (s *jobService) Stats(ctx context.Context) (*dto.JobStatsResponse, error) {
	total, err := s.repo.Job.Count(ctx)
	if err != nil {
		return nil, err
	}
	active, err := s.repo.Job.CountByStatus(ctx, model.JobStatusActive)
	if err != nil {
		return nil, err
	}
	inactive, err := s.repo.Job.CountByStatus(ctx, model.JobStatusInactive)
	if err != nil {
		return nil, err
	}
	closed, err := s.repo.Job.CountByStatus(ctx, model.JobStatusClosed)
	if err != nil {
		return nil, err
	}
	byType, err := s.repo.Job.CountGroupedByType(ctx)
	if err != nil {
		return nil, err
	}

	return &dto.JobStatsResponse{
		TotalJobs:    total,
		ActiveJobs:   active,
		InactiveJobs: inactive,
		ClosedJobs:   closed,
		ByType:       byType,
	}, nil
}

// canMutateJob 职位写权限：管理员或归属招聘者
func canMutateJob(job *model.Job, callerID, callerRole string) bool {
	if callerRole == model.RoleAdmin {
		return true
	}
	return job.RecruiterID == callerID
}

func validateSalaryRange(min, max *float64) error {
	if min != nil && max != nil && *min > *max {
		return ErrSalaryRangeInvalid
	}
	return nil
}

func parseDeadline(raw *string) (*time.Time, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, *raw)
	if err != nil {
		return nil, ErrDeadlineInvalid
	}
	return &t, nil
}
