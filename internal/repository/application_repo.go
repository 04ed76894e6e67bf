package repository

import (
	"context"

	"gorm.io/gorm"

	"campus-recruit/backend/internal/model"
)

// ApplicationListFilters 申请列表过滤条件
// JobIDs 为角色隐式范围（招聘者名下职位），与显式 JobID 取交集
type ApplicationListFilters struct {
	Status    string
	JobID     string
	StudentID string
	JobIDs    []string
}

// ApplicationRepository 申请数据访问接口
type ApplicationRepository interface {
	Create(ctx context.Context, app *model.Application) error
	GetByID(ctx context.Context, id string) (*model.Application, error)
	GetByStudentAndJob(ctx context.Context, studentID, jobID string) (*model.Application, error)
	Update(ctx context.Context, app *model.Application) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filters *ApplicationListFilters, offset, limit int) ([]model.Application, int64, error)
	ListByStudent(ctx context.Context, studentID string) ([]model.Application, error)
	ListByJob(ctx context.Context, jobID string) ([]model.Application, error)
	Count(ctx context.Context) (int64, error)
	CountByStudent(ctx context.Context, studentID string) (int64, error)
	CountByJobIDs(ctx context.Context, jobIDs []string, status string) (int64, error)
	CountGroupedByStatus(ctx context.Context) (map[string]int64, error)
}

// applicationRepo ApplicationRepository 的 GORM 实现
type applicationRepo struct {
	db *gorm.DB
}

// NewApplicationRepo 创建 ApplicationRepository 实例
func NewApplicationRepo(db *gorm.DB) ApplicationRepository {
	return &applicationRepo{db: db}
}

func (r *applicationRepo) Create(ctx context.Context, app *model.Application) error {
	return r.db.WithContext(ctx).Create(app).Error
}

func (r *applicationRepo) GetByID(ctx context.Context, id string) (*model.Application, error) {
	var app model.Application
	err := r.db.WithContext(ctx).
		Preload("Job").
		Preload("Job.Recruiter").
		Preload("Student").
		Where("application_id = ?", id).
		First(&app).Error
	if err != nil {
		return nil, err
	}
	return &app, nil
}

func (r *applicationRepo) GetByStudentAndJob(ctx context.Context, studentID, jobID string) (*model.Application, error) {
	var app model.Application
	err := r.db.WithContext(ctx).
		Where("student_id = ? AND job_id = ?", studentID, jobID).
		First(&app).Error
	if err != nil {
		return nil, err
	}
	return &app, nil
}

func (r *applicationRepo) Update(ctx context.Context, app *model.Application) error {
	return r.db.WithContext(ctx).Save(app).Error
}

func (r *applicationRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("application_id = ?", id).
		Delete(&model.Application{}).Error
}

func (r *applicationRepo) List(ctx context.Context, filters *ApplicationListFilters, offset, limit int) ([]model.Application, int64, error) {
	var apps []model.Application
	var total int64

	db := r.db.WithContext(ctx).Model(&model.Application{})

	if filters != nil {
		if filters.Status != "" {
			db = db.Where("status = ?", filters.Status)
		}
		if filters.JobID != "" {
			db = db.Where("job_id = ?", filters.JobID)
		}
		if filters.StudentID != "" {
			db = db.Where("student_id = ?", filters.StudentID)
		}
		if filters.JobIDs != nil {
			db = db.Where("job_id IN ?", filters.JobIDs)
		}
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := db.Preload("Job").
		Preload("Job.Recruiter").
		Preload("Student").
		Offset(offset).Limit(limit).
		Order("applied_at DESC").
		Find(&apps).Error; err != nil {
		return nil, 0, err
	}

	return apps, total, nil
}

func (r *applicationRepo) ListByStudent(ctx context.Context, studentID string) ([]model.Application, error) {
	var apps []model.Application
	err := r.db.WithContext(ctx).
		Preload("Job").
		Where("student_id = ?", studentID).
		Order("applied_at DESC").
		Find(&apps).Error
	return apps, err
}

func (r *applicationRepo) ListByJob(ctx context.Context, jobID string) ([]model.Application, error) {
	var apps []model.Application
	err := r.db.WithContext(ctx).
		Preload("Student").
		Where("job_id = ?", jobID).
		Order("applied_at DESC").
		Find(&apps).Error
	return apps, err
}

func (r *applicationRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Application{}).Count(&n).Error
	return n, err
}

func (r *applicationRepo) CountByStudent(ctx context.Context, studentID string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Application{}).
		Where("student_id = ?", studentID).
		Count(&n).Error
	return n, err
}

func (r *applicationRepo) CountByJobIDs(ctx context.Context, jobIDs []string, status string) (int64, error) {
	if len(jobIDs) == 0 {
		return 0, nil
	}

	db := r.db.WithContext(ctx).Model(&model.Application{}).
		Where("job_id IN ?", jobIDs)
	if status != "" {
		db = db.Where("status = ?", status)
	}

	var n int64
	err := db.Count(&n).Error
	return n, err
}

func (r *applicationRepo) CountGroupedByStatus(ctx context.Context) (map[string]int64, error) {
	type row struct {
		Status string
		Count  int64
	}
	var rows []row
	err := r.db.WithContext(ctx).Model(&model.Application{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	result := make(map[string]int64, len(rows))
	for _, rw := range rows {
		result[rw.Status] = rw.Count
	}
	return result, nil
}
