package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"campus-recruit/backend/internal/dto"
	"campus-recruit/backend/internal/model"
	"campus-recruit/backend/internal/repository"
)

func newUserTestService() (UserService, *repository.Repository) {
	repo := newMockRepo()
	return NewUserService(repo, zap.NewNop()), repo
}

func TestUserCreate(t *testing.T) {
	svc, _ := newUserTestService()

	resp, err := svc.Create(context.Background(), &dto.CreateUserRequest{
		Email:     "hr@example.com",
		Password:  "secret123",
		FirstName: "芳",
		LastName:  "刘",
		Role:      model.RoleRecruiter,
	})
	if err != nil {
		t.Fatalf("创建用户失败: %v", err)
	}
	if resp.Role != model.RoleRecruiter {
		t.Errorf("角色应为 recruiter，实际 %s", resp.Role)
	}
	if !resp.IsActive {
		t.Error("is_active 缺省应为 true")
	}

	if _, err := svc.Create(context.Background(), &dto.CreateUserRequest{
		Email:     "hr@example.com",
		Password:  "secret123",
		FirstName: "芳",
		LastName:  "刘",
		Role:      model.RoleRecruiter,
	}); !errors.Is(err, ErrEmailExists) {
		t.Errorf("重复邮箱应返回 ErrEmailExists，实际 %v", err)
	}
}

func TestUserGetByIDNotFound(t *testing.T) {
	svc, _ := newUserTestService()

	if _, err := svc.GetByID(context.Background(), "00000000-0000-0000-0000-000000000000"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("不存在的用户应返回 ErrUserNotFound，实际 %v", err)
	}
}

func TestUserListFilterByRole(t *testing.T) {
	svc, repo := newUserTestService()
	seedUser(t, repo, "s1@example.com", "secret123", model.RoleStudent, true)
	seedUser(t, repo, "s2@example.com", "secret123", model.RoleStudent, true)
	seedUser(t, repo, "r1@example.com", "secret123", model.RoleRecruiter, true)

	list, total, err := svc.List(context.Background(), &dto.UserListRequest{
		Role: model.RoleStudent,
	})
	if err != nil {
		t.Fatalf("查询用户列表失败: %v", err)
	}
	if total != 2 || len(list) != 2 {
		t.Errorf("student 过滤应命中 2 条，实际 total=%d len=%d", total, len(list))
	}
	for _, u := range list {
		if u.Role != model.RoleStudent {
			t.Errorf("过滤结果混入其他角色: %s", u.Role)
		}
	}
}

func TestUserUpdate(t *testing.T) {
	svc, repo := newUserTestService()
	user := seedUser(t, repo, "u@example.com", "secret123", model.RoleStudent, true)

	newRole := model.RoleRecruiter
	inactive := false
	resp, err := svc.Update(context.Background(), user.UserID, &dto.UpdateUserRequest{
		Role:     &newRole,
		IsActive: &inactive,
	})
	if err != nil {
		t.Fatalf("更新用户失败: %v", err)
	}
	if resp.Role != model.RoleRecruiter || resp.IsActive {
		t.Errorf("更新未生效: %+v", resp)
	}
}

func TestUserDeleteSelf(t *testing.T) {
	svc, repo := newUserTestService()
	admin := seedUser(t, repo, "admin@example.com", "secret123", model.RoleAdmin, true)
	other := seedUser(t, repo, "other@example.com", "secret123", model.RoleStudent, true)

	if err := svc.Delete(context.Background(), admin.UserID, admin.UserID); !errors.Is(err, ErrUserSelfDelete) {
		t.Fatalf("删除自己应返回 ErrUserSelfDelete，实际 %v", err)
	}

	if err := svc.Delete(context.Background(), other.UserID, admin.UserID); err != nil {
		t.Fatalf("删除其他用户失败: %v", err)
	}
	if _, err := svc.GetByID(context.Background(), other.UserID); !errors.Is(err, ErrUserNotFound) {
		t.Error("删除后仍能查到用户")
	}
}

func TestUserToggleStatus(t *testing.T) {
	svc, repo := newUserTestService()
	admin := seedUser(t, repo, "admin@example.com", "secret123", model.RoleAdmin, true)
	target := seedUser(t, repo, "target@example.com", "secret123", model.RoleStudent, true)

	if _, err := svc.ToggleStatus(context.Background(), admin.UserID, admin.UserID); !errors.Is(err, ErrUserSelfToggle) {
		t.Fatalf("停用自己应返回 ErrUserSelfToggle，实际 %v", err)
	}

	resp, err := svc.ToggleStatus(context.Background(), target.UserID, admin.UserID)
	if err != nil {
		t.Fatalf("切换用户状态失败: %v", err)
	}
	if resp.IsActive {
		t.Error("启用中的用户切换后应为停用")
	}

	resp, err = svc.ToggleStatus(context.Background(), target.UserID, admin.UserID)
	if err != nil {
		t.Fatalf("二次切换失败: %v", err)
	}
	if !resp.IsActive {
		t.Error("二次切换应恢复启用")
	}
}

func TestUserStats(t *testing.T) {
	svc, repo := newUserTestService()
	seedUser(t, repo, "a@example.com", "secret123", model.RoleAdmin, true)
	seedUser(t, repo, "s1@example.com", "secret123", model.RoleStudent, true)
	seedUser(t, repo, "s2@example.com", "secret123", model.RoleStudent, false)
	seedUser(t, repo, "r@example.com", "secret123", model.RoleRecruiter, true)

	stats, err := svc.Stats(context.Background())
	if err != nil {
		t.Fatalf("查询用户统计失败: %v", err)
	}
	if stats.TotalUsers != 4 {
		t.Errorf("total_users 应为 4，实际 %d", stats.TotalUsers)
	}
	if stats.ActiveUsers != 3 || stats.InactiveUsers != 1 {
		t.Errorf("活跃统计不符: active=%d inactive=%d", stats.ActiveUsers, stats.InactiveUsers)
	}
	if stats.Admins != 1 || stats.Students != 2 || stats.Recruiters != 1 {
		t.Errorf("角色统计不符: %+v", stats)
	}
}
