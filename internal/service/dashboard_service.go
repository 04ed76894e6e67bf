package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"campus-recruit/backend/internal/dto"
	"campus-recruit/backend/internal/model"
	"campus-recruit/backend/internal/repository"
)

var ErrUnknownRole = errors.New("未知的用户角色")

// DashboardService 工作台业务接口
// 三个角色各自一个数据块，角色分派为闭合枚举，未知角色报错而非落空
type DashboardService interface {
	GetDashboard(ctx context.Context, callerID, callerRole string) (*dto.DashboardResponse, error)
}

type dashboardService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewDashboardService 创建工作台服务
func NewDashboardService(repo *repository.Repository, logger *zap.Logger) DashboardService {
	return &dashboardService{repo: repo, logger: logger}
}

// GetDashboard 获取当前角色的工作台统计
func (s *dashboardService) GetDashboard(ctx context.Context, callerID, callerRole string) (*dto.DashboardResponse, error) {
	switch callerRole {
	case model.RoleAdmin:
		return s.adminDashboard(ctx)
	case model.RoleRecruiter:
		return s.recruiterDashboard(ctx, callerID)
	case model.RoleStudent:
		return s.studentDashboard(ctx, callerID)
	default:
		s.logger.Warn("工作台请求携带未知角色", zap.String("role", callerRole))
		return nil, ErrUnknownRole
	}
}

func (s *dashboardService) adminDashboard(ctx context.Context) (*dto.DashboardResponse, error) {
	totalUsers, err := s.repo.User.Count(ctx)
	if err != nil {
		return nil, err
	}
	totalStudents, err := s.repo.User.CountByRole(ctx, model.RoleStudent)
	if err != nil {
		return nil, err
	}
	totalJobs, err := s.repo.Job.Count(ctx)
	if err != nil {
		return nil, err
	}
	totalApplications, err := s.repo.Application.Count(ctx)
	if err != nil {
		return nil, err
	}

	return &dto.DashboardResponse{
		Role: model.RoleAdmin,
		Admin: &dto.AdminDashboard{
			TotalUsers:        totalUsers,
			TotalStudents:     totalStudents,
			TotalJobs:         totalJobs,
			TotalApplications: totalApplications,
		},
	}, nil
}

func (s *dashboardService) recruiterDashboard(ctx context.Context, recruiterID string) (*dto.DashboardResponse, error) {
	myJobs, err := s.repo.Job.CountByRecruiter(ctx, recruiterID)
	if err != nil {
		return nil, err
	}

	jobIDs, err := s.repo.Job.ListIDsByRecruiter(ctx, recruiterID)
	if err != nil {
		return nil, err
	}
	received, err := s.repo.Application.CountByJobIDs(ctx, jobIDs, "")
	if err != nil {
		return nil, err
	}
	shortlisted, err := s.repo.Application.CountByJobIDs(ctx, jobIDs, model.ApplicationStatusShortlisted)
	if err != nil {
		return nil, err
	}

	return &dto.DashboardResponse{
		Role: model.RoleRecruiter,
		Recruiter: &dto.RecruiterDashboard{
			MyJobs:                myJobs,
			ReceivedApplications:  received,
			ShortlistedCandidates: shortlisted,
		},
	}, nil
}

func (s *dashboardService) studentDashboard(ctx context.Context, studentID string) (*dto.DashboardResponse, error) {
	availableJobs, err := s.repo.Job.CountByStatus(ctx, model.JobStatusActive)
	if err != nil {
		return nil, err
	}
	myApplications, err := s.repo.Application.CountByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}

	return &dto.DashboardResponse{
		Role: model.RoleStudent,
		Student: &dto.StudentDashboard{
			AvailableJobs:  availableJobs,
			MyApplications: myApplications,
		},
	}, nil
}
