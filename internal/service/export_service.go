package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"campus-recruit/backend/internal/model"
	"campus-recruit/backend/internal/repository"
)

// ExportService 导出业务接口
// 职位申请导出为 xlsx；学生申请截止时间导出为 iCalendar 订阅
type ExportService interface {
	ExportJobApplications(ctx context.Context, jobID, callerID, callerRole string) (*bytes.Buffer, string, error)
	DeadlineCalendar(ctx context.Context, studentID string) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewExportService 创建导出服务
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger}
}

const exportSheet = "申请列表"

// ExportJobApplications 导出指定职位收到的全部申请（职位归属招聘者或管理员）
func (s *exportService) ExportJobApplications(ctx context.Context, jobID, callerID, callerRole string) (*bytes.Buffer, string, error) {
	job, err := s.repo.Job.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrJobNotFound
		}
		return nil, "", err
	}
	if !canMutateJob(job, callerID, callerRole) {
		return nil, "", ErrNoPermission
	}

	apps, err := s.repo.Application.ListByJob(ctx, jobID)
	if err != nil {
		s.logger.Error("查询职位申请失败", zap.Error(err))
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(exportSheet)
	if err != nil {
		return nil, "", err
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headers := []string{"姓名", "邮箱", "状态", "投递时间", "评审时间", "备注"}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, "", err
		}
		if err := f.SetCellValue(exportSheet, cell, h); err != nil {
			return nil, "", err
		}
	}

	for row, app := range apps {
		name, email := "", ""
		if app.Student != nil {
			name = app.Student.FullName()
			email = app.Student.Email
		}
		reviewedAt := ""
		if app.ReviewedAt != nil {
			reviewedAt = app.ReviewedAt.Format(time.RFC3339)
		}

		values := []interface{}{
			name,
			email,
			app.Status,
			app.AppliedAt.Format(time.RFC3339),
			reviewedAt,
			app.Notes,
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return nil, "", err
			}
			if err := f.SetCellValue(exportSheet, cell, v); err != nil {
				return nil, "", err
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		s.logger.Error("生成 xlsx 失败", zap.Error(err))
		return nil, "", err
	}

	s.logger.Info("职位申请已导出",
		zap.String("job_id", jobID),
		zap.Int("rows", len(apps)))

	filename := fmt.Sprintf("applications-%s.xlsx", jobID)
	return buf, filename, nil
}

// DeadlineCalendar 生成学生申请截止时间的 iCalendar 订阅
// 每条带截止时间且仍开放的职位申请对应一个日历事件
func (s *exportService) DeadlineCalendar(ctx context.Context, studentID string) (*bytes.Buffer, string, error) {
	apps, err := s.repo.Application.ListByStudent(ctx, studentID)
	if err != nil {
		s.logger.Error("查询学生申请失败", zap.Error(err))
		return nil, "", err
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//campus-recruit//deadline-calendar//CN")

	now := time.Now()
	for i := range apps {
		job := apps[i].Job
		if job == nil || job.ApplicationDeadline == nil {
			continue
		}
		if job.Status != model.JobStatusActive {
			continue
		}

		event := cal.AddEvent(apps[i].ApplicationID + "@campus-recruit")
		event.SetCreatedTime(now)
		event.SetDtStampTime(now)
		event.SetStartAt(*job.ApplicationDeadline)
		event.SetEndAt(job.ApplicationDeadline.Add(time.Hour))
		event.SetSummary("申请截止: " + job.Title)
		event.SetDescription(fmt.Sprintf("职位 %s（%s）的申请截止时间", job.Title, job.Location))
	}

	return bytes.NewBufferString(cal.Serialize()), "deadlines.ics", nil
}
