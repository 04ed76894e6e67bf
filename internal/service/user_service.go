package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"campus-recruit/backend/internal/dto"
	"campus-recruit/backend/internal/model"
	"campus-recruit/backend/internal/repository"
)

var (
	ErrUserNotFound   = errors.New("用户不存在")
	ErrUserSelfDelete = errors.New("不能删除自己的账号")
	ErrUserSelfToggle = errors.New("不能停用自己的账号")
)

// UserService 用户管理业务接口（管理员）
type UserService interface {
	Create(ctx context.Context, req *dto.CreateUserRequest) (*dto.UserResponse, error)
	GetByID(ctx context.Context, id string) (*dto.UserResponse, error)
	List(ctx context.Context, req *dto.UserListRequest) ([]dto.UserResponse, int64, error)
	Update(ctx context.Context, id string, req *dto.UpdateUserRequest) (*dto.UserResponse, error)
	Delete(ctx context.Context, id, callerID string) error
	ToggleStatus(ctx context.Context, id, callerID string) (*dto.UserResponse, error)
	Stats(ctx context.Context) (*dto.UserStatsResponse, error)
}

type userService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewUserService 创建用户管理服务
func NewUserService(repo *repository.Repository, logger *zap.Logger) UserService {
	return &userService{repo: repo, logger: logger}
}

// Create 管理员创建用户，可指定任意角色
func (s *userService) Create(ctx context.Context, req *dto.CreateUserRequest) (*dto.UserResponse, error) {
	if _, err := s.repo.User.GetByEmail(ctx, req.Email); err == nil {
		return nil, ErrEmailExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}

	user := &model.User{
		Email:        req.Email,
		PasswordHash: string(hash),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Role:         req.Role,
		IsActive:     active,
	}
	if err := s.repo.User.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailExists
		}
		s.logger.Error("创建用户失败", zap.Error(err))
		return nil, err
	}

	s.logger.Info("管理员创建用户",
		zap.String("user_id", user.UserID),
		zap.String("role", user.Role))

	return toUserResponse(user), nil
}

// GetByID 按 ID 查询用户
func (s *userService) GetByID(ctx context.Context, id string) (*dto.UserResponse, error) {
	user, err := s.repo.User.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return toUserResponse(user), nil
}

// List 分页查询用户列表
func (s *userService) List(ctx context.Context, req *dto.UserListRequest) ([]dto.UserResponse, int64, error) {
	filters := &repository.UserListFilters{
		Role:    req.Role,
		Keyword: req.Keyword,
	}
	users, total, err := s.repo.User.List(ctx, filters, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("查询用户列表失败", zap.Error(err))
		return nil, 0, err
	}

	list := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		list = append(list, *toUserResponse(&users[i]))
	}
	return list, total, nil
}

// Update 管理员更新用户（仅更新非 nil 字段）
func (s *userService) Update(ctx context.Context, id string, req *dto.UpdateUserRequest) (*dto.UserResponse, error) {
	user, err := s.repo.User.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if req.Email != nil && *req.Email != user.Email {
		if _, err := s.repo.User.GetByEmail(ctx, *req.Email); err == nil {
			return nil, ErrEmailExists
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		user.Email = *req.Email
	}
	if req.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}
	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.Role != nil {
		user.Role = *req.Role
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}

	if err := s.repo.User.Update(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailExists
		}
		s.logger.Error("更新用户失败", zap.Error(err))
		return nil, err
	}
	return toUserResponse(user), nil
}

// Delete 管理员删除用户，禁止删除自己
func (s *userService) Delete(ctx context.Context, id, callerID string) error {
	if id == callerID {
		return ErrUserSelfDelete
	}

	if _, err := s.repo.User.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	if err := s.repo.User.Delete(ctx, id); err != nil {
		s.logger.Error("删除用户失败", zap.Error(err))
		return err
	}

	s.logger.Info("用户已删除", zap.String("user_id", id))
	return nil
}

// ToggleStatus 启用/停用用户，禁止操作自己
func (s *userService) ToggleStatus(ctx context.Context, id, callerID string) (*dto.UserResponse, error) {
	if id == callerID {
		return nil, ErrUserSelfToggle
	}

	user, err := s.repo.User.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	user.IsActive = !user.IsActive
	if err := s.repo.User.Update(ctx, user); err != nil {
		s.logger.Error("切换用户状态失败", zap.Error(err))
		return nil, err
	}

	s.logger.Info("用户状态已切换",
		zap.String("user_id", id),
		zap.Bool("is_active", user.IsActive))

	return toUserResponse(user), nil
}

// Stats 用户统计
func (s *userService) Stats(ctx context.Context) (*dto.UserStatsResponse, error) {
	total, err := s.repo.User.Count(ctx)
	if err != nil {
		return nil, err
	}
	active, err := s.repo.User.CountByActive(ctx, true)
	if err != nil {
		return nil, err
	}
	admins, err := s.repo.User.CountByRole(ctx, model.RoleAdmin)
	if err != nil {
		return nil, err
	}
	students, err := s.repo.User.CountByRole(ctx, model.RoleStudent)
	if err != nil {
		return nil, err
	}
	recruiters, err := s.repo.User.CountByRole(ctx, model.RoleRecruiter)
	if err != nil {
		return nil, err
	}

	return &dto.UserStatsResponse{
		TotalUsers:    total,
		ActiveUsers:   active,
		InactiveUsers: total - active,
		Admins:        admins,
		Students:      students,
		Recruiters:    recruiters,
	}, nil
}
