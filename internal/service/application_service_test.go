package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"campus-recruit/backend/internal/dto"
	"campus-recruit/backend/internal/model"
	"campus-recruit/backend/internal/repository"
)

func newApplicationTestService() (ApplicationService, *repository.Repository) {
	repo := newMockRepo()
	return NewApplicationService(repo, zap.NewNop()), repo
}

func TestApplyToOpenJob(t *testing.T) {
	svc, repo := newApplicationTestService()
	job := seedJob(t, repo, uuid.New().String(), model.JobStatusActive, nil)
	studentID := uuid.New().String()

	resp, err := svc.Apply(context.Background(), &dto.ApplyRequest{
		JobID:       job.JobID,
		CoverLetter: "我对该职位很感兴趣",
	}, studentID)
	if err != nil {
		t.Fatalf("投递申请失败: %v", err)
	}
	if resp.Status != model.ApplicationStatusPending {
		t.Errorf("初始状态应为 pending，实际 %s", resp.Status)
	}
	if resp.ReviewedAt != nil {
		t.Error("pending 状态下 reviewed_at 应为空")
	}
	if resp.StudentID != studentID || resp.JobID != job.JobID {
		t.Errorf("归属字段不符: %+v", resp)
	}
}

func TestApplyDuplicate(t *testing.T) {
	svc, repo := newApplicationTestService()
	job := seedJob(t, repo, uuid.New().String(), model.JobStatusActive, nil)
	studentID := uuid.New().String()

	req := &dto.ApplyRequest{JobID: job.JobID}
	if _, err := svc.Apply(context.Background(), req, studentID); err != nil {
		t.Fatalf("首次投递失败: %v", err)
	}
	if _, err := svc.Apply(context.Background(), req, studentID); !errors.Is(err, ErrDuplicateApplication) {
		t.Fatalf("重复投递应返回 ErrDuplicateApplication，实际 %v", err)
	}

	// 其他学生投递同一职位不受影响
	if _, err := svc.Apply(context.Background(), req, uuid.New().String()); err != nil {
		t.Errorf("其他学生投递失败: %v", err)
	}
}

func TestApplyClosedOrMissingJob(t *testing.T) {
	svc, repo := newApplicationTestService()
	studentID := uuid.New().String()

	closed := seedJob(t, repo, uuid.New().String(), model.JobStatusClosed, nil)
	if _, err := svc.Apply(context.Background(), &dto.ApplyRequest{JobID: closed.JobID}, studentID); !errors.Is(err, ErrJobClosed) {
		t.Errorf("closed 职位应返回 ErrJobClosed，实际 %v", err)
	}

	past := time.Now().Add(-time.Hour)
	expired := seedJob(t, repo, uuid.New().String(), model.JobStatusActive, &past)
	if _, err := svc.Apply(context.Background(), &dto.ApplyRequest{JobID: expired.JobID}, studentID); !errors.Is(err, ErrJobClosed) {
		t.Errorf("截止时间已过应返回 ErrJobClosed，实际 %v", err)
	}

	if _, err := svc.Apply(context.Background(), &dto.ApplyRequest{JobID: uuid.New().String()}, studentID); !errors.Is(err, ErrJobNotFound) {
		t.Errorf("不存在的职位应返回 ErrJobNotFound，实际 %v", err)
	}
}

func TestUpdateStatusLifecycle(t *testing.T) {
	svc, repo := newApplicationTestService()
	recruiterID := uuid.New().String()
	job := seedJob(t, repo, recruiterID, model.JobStatusActive, nil)
	studentID := uuid.New().String()

	applied, err := svc.Apply(context.Background(), &dto.ApplyRequest{JobID: job.JobID}, studentID)
	if err != nil {
		t.Fatalf("投递申请失败: %v", err)
	}

	// 首次离开 pending：写入 reviewed_at
	notes := "简历不错"
	resp, err := svc.UpdateStatus(context.Background(), applied.ID, &dto.UpdateApplicationStatusRequest{
		Status: model.ApplicationStatusReviewed,
		Notes:  &notes,
	}, recruiterID, model.RoleRecruiter)
	if err != nil {
		t.Fatalf("状态迁移失败: %v", err)
	}
	if resp.Status != model.ApplicationStatusReviewed {
		t.Errorf("状态应为 reviewed，实际 %s", resp.Status)
	}
	if resp.ReviewedAt == nil {
		t.Fatal("首次离开 pending 应写入 reviewed_at")
	}
	if resp.Notes != "简历不错" {
		t.Errorf("备注未写入: %s", resp.Notes)
	}
	firstReviewedAt := *resp.ReviewedAt

	// 后续迁移不改写 reviewed_at
	resp, err = svc.UpdateStatus(context.Background(), applied.ID, &dto.UpdateApplicationStatusRequest{
		Status: model.ApplicationStatusShortlisted,
	}, recruiterID, model.RoleRecruiter)
	if err != nil {
		t.Fatalf("二次迁移失败: %v", err)
	}
	if resp.ReviewedAt == nil || *resp.ReviewedAt != firstReviewedAt {
		t.Error("reviewed_at 在后续迁移中被改写")
	}

	// 不允许回退到 pending
	if _, err := svc.UpdateStatus(context.Background(), applied.ID, &dto.UpdateApplicationStatusRequest{
		Status: model.ApplicationStatusPending,
	}, recruiterID, model.RoleRecruiter); !errors.Is(err, ErrStatusRevertPending) {
		t.Errorf("回退到 pending 应返回 ErrStatusRevertPending，实际 %v", err)
	}

	// 非 pending 状态间可任意迁移
	resp, err = svc.UpdateStatus(context.Background(), applied.ID, &dto.UpdateApplicationStatusRequest{
		Status: model.ApplicationStatusAccepted,
	}, recruiterID, model.RoleRecruiter)
	if err != nil {
		t.Fatalf("迁移到 accepted 失败: %v", err)
	}
	if resp.Status != model.ApplicationStatusAccepted {
		t.Errorf("状态应为 accepted，实际 %s", resp.Status)
	}
}

func TestUpdateStatusNotes(t *testing.T) {
	svc, repo := newApplicationTestService()
	recruiterID := uuid.New().String()
	job := seedJob(t, repo, recruiterID, model.JobStatusActive, nil)

	applied, err := svc.Apply(context.Background(), &dto.ApplyRequest{JobID: job.JobID}, uuid.New().String())
	if err != nil {
		t.Fatalf("投递申请失败: %v", err)
	}

	notes := "待二面"
	resp, err := svc.UpdateStatus(context.Background(), applied.ID, &dto.UpdateApplicationStatusRequest{
		Status: model.ApplicationStatusReviewed,
		Notes:  &notes,
	}, recruiterID, model.RoleRecruiter)
	if err != nil {
		t.Fatalf("状态迁移失败: %v", err)
	}
	if resp.Notes != "待二面" {
		t.Fatalf("备注未写入: %s", resp.Notes)
	}

	// 未携带 notes 的迁移保持原备注
	resp, err = svc.UpdateStatus(context.Background(), applied.ID, &dto.UpdateApplicationStatusRequest{
		Status: model.ApplicationStatusShortlisted,
	}, recruiterID, model.RoleRecruiter)
	if err != nil {
		t.Fatalf("二次迁移失败: %v", err)
	}
	if resp.Notes != "待二面" {
		t.Errorf("缺省 notes 不应改写备注，实际 %q", resp.Notes)
	}

	// 显式空字符串清空备注
	empty := ""
	resp, err = svc.UpdateStatus(context.Background(), applied.ID, &dto.UpdateApplicationStatusRequest{
		Status: model.ApplicationStatusRejected,
		Notes:  &empty,
	}, recruiterID, model.RoleRecruiter)
	if err != nil {
		t.Fatalf("三次迁移失败: %v", err)
	}
	if resp.Notes != "" {
		t.Errorf("显式空 notes 应清空备注，实际 %q", resp.Notes)
	}
}

func TestUpdateStatusPermission(t *testing.T) {
	svc, repo := newApplicationTestService()
	owner := uuid.New().String()
	job := seedJob(t, repo, owner, model.JobStatusActive, nil)
	studentID := uuid.New().String()

	applied, err := svc.Apply(context.Background(), &dto.ApplyRequest{JobID: job.JobID}, studentID)
	if err != nil {
		t.Fatalf("投递申请失败: %v", err)
	}

	req := &dto.UpdateApplicationStatusRequest{Status: model.ApplicationStatusReviewed}

	if _, err := svc.UpdateStatus(context.Background(), applied.ID, req, uuid.New().String(), model.RoleRecruiter); !errors.Is(err, ErrNoPermission) {
		t.Errorf("非归属招聘者应返回 ErrNoPermission，实际 %v", err)
	}

	// 学生（包括申请人本人）不能裁定申请
	if _, err := svc.UpdateStatus(context.Background(), applied.ID, req, studentID, model.RoleStudent); !errors.Is(err, ErrNoPermission) {
		t.Errorf("学生裁定申请应返回 ErrNoPermission，实际 %v", err)
	}

	if _, err := svc.UpdateStatus(context.Background(), applied.ID, req, uuid.New().String(), model.RoleAdmin); err != nil {
		t.Errorf("管理员裁定失败: %v", err)
	}

	if _, err := svc.UpdateStatus(context.Background(), uuid.New().String(), req, owner, model.RoleRecruiter); !errors.Is(err, ErrApplicationNotFound) {
		t.Errorf("不存在的申请应返回 ErrApplicationNotFound，实际 %v", err)
	}
}

func TestApplicationVisibility(t *testing.T) {
	svc, repo := newApplicationTestService()
	owner := uuid.New().String()
	job := seedJob(t, repo, owner, model.JobStatusActive, nil)
	studentID := uuid.New().String()

	applied, err := svc.Apply(context.Background(), &dto.ApplyRequest{JobID: job.JobID}, studentID)
	if err != nil {
		t.Fatalf("投递申请失败: %v", err)
	}

	if _, err := svc.GetByID(context.Background(), applied.ID, studentID, model.RoleStudent); err != nil {
		t.Errorf("申请学生本人应可见: %v", err)
	}
	if _, err := svc.GetByID(context.Background(), applied.ID, owner, model.RoleRecruiter); err != nil {
		t.Errorf("职位归属招聘者应可见: %v", err)
	}
	if _, err := svc.GetByID(context.Background(), applied.ID, uuid.New().String(), model.RoleAdmin); err != nil {
		t.Errorf("管理员应可见: %v", err)
	}
	if _, err := svc.GetByID(context.Background(), applied.ID, uuid.New().String(), model.RoleStudent); !errors.Is(err, ErrNoPermission) {
		t.Errorf("其他学生应返回 ErrNoPermission，实际 %v", err)
	}
	if _, err := svc.GetByID(context.Background(), applied.ID, uuid.New().String(), model.RoleRecruiter); !errors.Is(err, ErrNoPermission) {
		t.Errorf("其他招聘者应返回 ErrNoPermission，实际 %v", err)
	}
}

func TestApplicationListRoleScoping(t *testing.T) {
	svc, repo := newApplicationTestService()
	recruiterA := uuid.New().String()
	recruiterB := uuid.New().String()
	jobA := seedJob(t, repo, recruiterA, model.JobStatusActive, nil)
	jobB := seedJob(t, repo, recruiterB, model.JobStatusActive, nil)
	student1 := uuid.New().String()
	student2 := uuid.New().String()

	mustApply := func(jobID, studentID string) {
		t.Helper()
		if _, err := svc.Apply(context.Background(), &dto.ApplyRequest{JobID: jobID}, studentID); err != nil {
			t.Fatalf("投递申请失败: %v", err)
		}
	}
	mustApply(jobA.JobID, student1)
	mustApply(jobA.JobID, student2)
	mustApply(jobB.JobID, student1)

	// 管理员不收窄
	_, total, err := svc.List(context.Background(), &dto.ApplicationListRequest{}, uuid.New().String(), model.RoleAdmin)
	if err != nil {
		t.Fatalf("管理员查询失败: %v", err)
	}
	if total != 3 {
		t.Errorf("管理员应看到全部 3 条，实际 %d", total)
	}

	// 学生只能看到自己的申请
	list, total, err := svc.List(context.Background(), &dto.ApplicationListRequest{}, student1, model.RoleStudent)
	if err != nil {
		t.Fatalf("学生查询失败: %v", err)
	}
	if total != 2 {
		t.Errorf("student1 应看到 2 条，实际 %d", total)
	}
	for _, a := range list {
		if a.StudentID != student1 {
			t.Errorf("学生列表混入他人申请: %s", a.StudentID)
		}
	}

	// 学生显式过滤他人 student_id：收窄为空集而非放宽
	_, total, err = svc.List(context.Background(), &dto.ApplicationListRequest{StudentID: student2}, student1, model.RoleStudent)
	if err != nil {
		t.Fatalf("学生越界过滤查询失败: %v", err)
	}
	if total != 0 {
		t.Errorf("越界过滤应返回空集，实际 %d", total)
	}

	// 招聘者只能看到名下职位的申请
	list, total, err = svc.List(context.Background(), &dto.ApplicationListRequest{}, recruiterA, model.RoleRecruiter)
	if err != nil {
		t.Fatalf("招聘者查询失败: %v", err)
	}
	if total != 2 {
		t.Errorf("recruiterA 应看到 2 条，实际 %d", total)
	}
	for _, a := range list {
		if a.JobID != jobA.JobID {
			t.Errorf("招聘者列表混入其他职位的申请: %s", a.JobID)
		}
	}

	// 招聘者显式过滤他人职位：收窄为空集
	_, total, err = svc.List(context.Background(), &dto.ApplicationListRequest{JobID: jobB.JobID}, recruiterA, model.RoleRecruiter)
	if err != nil {
		t.Fatalf("招聘者越界过滤查询失败: %v", err)
	}
	if total != 0 {
		t.Errorf("越界过滤应返回空集，实际 %d", total)
	}

	// 名下没有职位的招聘者看到空集
	_, total, err = svc.List(context.Background(), &dto.ApplicationListRequest{}, uuid.New().String(), model.RoleRecruiter)
	if err != nil {
		t.Fatalf("无职位招聘者查询失败: %v", err)
	}
	if total != 0 {
		t.Errorf("无职位招聘者应看到空集，实际 %d", total)
	}
}

func TestApplicationListByJob(t *testing.T) {
	svc, repo := newApplicationTestService()
	owner := uuid.New().String()
	job := seedJob(t, repo, owner, model.JobStatusActive, nil)

	if _, err := svc.Apply(context.Background(), &dto.ApplyRequest{JobID: job.JobID}, uuid.New().String()); err != nil {
		t.Fatalf("投递申请失败: %v", err)
	}

	_, total, err := svc.ListByJob(context.Background(), job.JobID, &dto.PaginationRequest{}, owner, model.RoleRecruiter)
	if err != nil {
		t.Fatalf("按职位查询失败: %v", err)
	}
	if total != 1 {
		t.Errorf("应命中 1 条，实际 %d", total)
	}

	if _, _, err := svc.ListByJob(context.Background(), job.JobID, &dto.PaginationRequest{}, uuid.New().String(), model.RoleRecruiter); !errors.Is(err, ErrNoPermission) {
		t.Errorf("非归属招聘者应返回 ErrNoPermission，实际 %v", err)
	}
	if _, _, err := svc.ListByJob(context.Background(), uuid.New().String(), &dto.PaginationRequest{}, owner, model.RoleRecruiter); !errors.Is(err, ErrJobNotFound) {
		t.Errorf("不存在的职位应返回 ErrJobNotFound，实际 %v", err)
	}
}

func TestApplicationDelete(t *testing.T) {
	svc, repo := newApplicationTestService()
	job := seedJob(t, repo, uuid.New().String(), model.JobStatusActive, nil)
	studentID := uuid.New().String()

	applied, err := svc.Apply(context.Background(), &dto.ApplyRequest{JobID: job.JobID}, studentID)
	if err != nil {
		t.Fatalf("投递申请失败: %v", err)
	}

	if err := svc.Delete(context.Background(), applied.ID, uuid.New().String(), model.RoleStudent); !errors.Is(err, ErrNoPermission) {
		t.Errorf("其他学生删除应返回 ErrNoPermission，实际 %v", err)
	}

	if err := svc.Delete(context.Background(), applied.ID, studentID, model.RoleStudent); err != nil {
		t.Fatalf("学生本人撤回失败: %v", err)
	}

	// 撤回后可以再次投递
	if _, err := svc.Apply(context.Background(), &dto.ApplyRequest{JobID: job.JobID}, studentID); err != nil {
		t.Errorf("撤回后再次投递失败: %v", err)
	}
}

// 端到端流程：投递 → 越权裁定被拒 → 归属招聘者裁定 → 重复投递冲突 → 管理员删除
func TestApplicationEndToEndFlow(t *testing.T) {
	svc, repo := newApplicationTestService()
	recruiterOwner := uuid.New().String()
	recruiterOther := uuid.New().String()
	adminID := uuid.New().String()
	job := seedJob(t, repo, recruiterOwner, model.JobStatusActive, nil)
	studentID := uuid.New().String()

	applied, err := svc.Apply(context.Background(), &dto.ApplyRequest{
		JobID:       job.JobID,
		CoverLetter: "x",
	}, studentID)
	if err != nil {
		t.Fatalf("投递申请失败: %v", err)
	}
	if applied.Status != model.ApplicationStatusPending {
		t.Fatalf("初始状态应为 pending，实际 %s", applied.Status)
	}

	shortlist := &dto.UpdateApplicationStatusRequest{Status: model.ApplicationStatusShortlisted}

	if _, err := svc.UpdateStatus(context.Background(), applied.ID, shortlist, recruiterOther, model.RoleRecruiter); !errors.Is(err, ErrNoPermission) {
		t.Fatalf("非归属招聘者裁定应返回 ErrNoPermission，实际 %v", err)
	}

	resp, err := svc.UpdateStatus(context.Background(), applied.ID, shortlist, recruiterOwner, model.RoleRecruiter)
	if err != nil {
		t.Fatalf("归属招聘者裁定失败: %v", err)
	}
	if resp.Status != model.ApplicationStatusShortlisted || resp.ReviewedAt == nil {
		t.Fatalf("裁定后状态或 reviewed_at 不符: %+v", resp)
	}

	if _, err := svc.Apply(context.Background(), &dto.ApplyRequest{JobID: job.JobID}, studentID); !errors.Is(err, ErrDuplicateApplication) {
		t.Fatalf("重复投递应返回 ErrDuplicateApplication，实际 %v", err)
	}

	if err := svc.Delete(context.Background(), applied.ID, adminID, model.RoleAdmin); err != nil {
		t.Fatalf("管理员删除失败: %v", err)
	}
	if _, err := svc.GetByID(context.Background(), applied.ID, adminID, model.RoleAdmin); !errors.Is(err, ErrApplicationNotFound) {
		t.Fatalf("删除后查询应返回 ErrApplicationNotFound，实际 %v", err)
	}
}

func TestApplicationStats(t *testing.T) {
	svc, repo := newApplicationTestService()
	recruiterID := uuid.New().String()
	job := seedJob(t, repo, recruiterID, model.JobStatusActive, nil)

	s1 := uuid.New().String()
	s2 := uuid.New().String()
	a1, err := svc.Apply(context.Background(), &dto.ApplyRequest{JobID: job.JobID}, s1)
	if err != nil {
		t.Fatalf("投递申请失败: %v", err)
	}
	if _, err := svc.Apply(context.Background(), &dto.ApplyRequest{JobID: job.JobID}, s2); err != nil {
		t.Fatalf("投递申请失败: %v", err)
	}

	if _, err := svc.UpdateStatus(context.Background(), a1.ID, &dto.UpdateApplicationStatusRequest{
		Status: model.ApplicationStatusShortlisted,
	}, recruiterID, model.RoleRecruiter); err != nil {
		t.Fatalf("状态迁移失败: %v", err)
	}

	stats, err := svc.Stats(context.Background())
	if err != nil {
		t.Fatalf("查询申请统计失败: %v", err)
	}
	if stats.Total != 2 || stats.Pending != 1 || stats.Shortlisted != 1 {
		t.Errorf("统计不符: %+v", stats)
	}
}
