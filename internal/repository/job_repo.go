package repository

import (
	"context"

	"gorm.io/gorm"

	"campus-recruit/backend/internal/model"
)

// JobListFilters 职位列表过滤条件
type JobListFilters struct {
	Status      string
	JobType     string
	Location    string // 子串匹配
	RecruiterID string
	Search      string // 匹配标题/描述/要求
}

// JobRepository 职位数据访问接口
type JobRepository interface {
	Create(ctx context.Context, job *model.Job) error
	GetByID(ctx context.Context, id string) (*model.Job, error)
	Update(ctx context.Context, job *model.Job) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filters *JobListFilters, offset, limit int) ([]model.Job, int64, error)
	ListIDsByRecruiter(ctx context.Context, recruiterID string) ([]string, error)
	Count(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context, status string) (int64, error)
	CountByRecruiter(ctx context.Context, recruiterID string) (int64, error)
	CountGroupedByType(ctx context.Context) (map[string]int64, error)
}

// jobRepo JobRepository 的 GORM 实现
type jobRepo struct {
	db *gorm.DB
}

// NewJobRepo 创建 JobRepository 实例
func NewJobRepo(db *gorm.DB) JobRepository {
	return &jobRepo{db: db}
}

func (r *jobRepo) Create(ctx context.Context, job *model.Job) error {
	return r.db.WithContext(ctx).Create(job).Error
}

func (r *jobRepo) GetByID(ctx context.Context, id string) (*model.Job, error) {
	var job model.Job
	err := r.db.WithContext(ctx).
		Preload("Recruiter").
		Where("job_id = ?", id).
		First(&job).Error
	if err != nil {
		return nil, err
	}
	return &job, nil
}

func (r *jobRepo) Update(ctx context.Context, job *model.Job) error {
	return r.db.WithContext(ctx).Save(job).Error
}

func (r *jobRepo) Delete(ctx context.Context, id string) error {
	// 申请表外键 ON DELETE CASCADE，级联删除由存储层完成
	return r.db.WithContext(ctx).
		Where("job_id = ?", id).
		Delete(&model.Job{}).Error
}

func (r *jobRepo) List(ctx context.Context, filters *JobListFilters, offset, limit int) ([]model.Job, int64, error) {
	var jobs []model.Job
	var total int64

	db := r.db.WithContext(ctx).Model(&model.Job{})

	if filters != nil {
		if filters.Status != "" {
			db = db.Where("status = ?", filters.Status)
		}
		if filters.JobType != "" {
			db = db.Where("job_type = ?", filters.JobType)
		}
		if filters.Location != "" {
			db = db.Where("location ILIKE ?", "%"+filters.Location+"%")
		}
		if filters.RecruiterID != "" {
			db = db.Where("recruiter_id = ?", filters.RecruiterID)
		}
		if filters.Search != "" {
			kw := "%" + filters.Search + "%"
			db = db.Where("title ILIKE ? OR description ILIKE ? OR requirements ILIKE ?", kw, kw, kw)
		}
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := db.Preload("Recruiter").
		Offset(offset).Limit(limit).
		Order("created_at DESC").
		Find(&jobs).Error; err != nil {
		return nil, 0, err
	}

	return jobs, total, nil
}

func (r *jobRepo) ListIDsByRecruiter(ctx context.Context, recruiterID string) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).Model(&model.Job{}).
		Where("recruiter_id = ?", recruiterID).
		Pluck("job_id", &ids).Error
	return ids, err
}

func (r *jobRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Job{}).Count(&n).Error
	return n, err
}

func (r *jobRepo) CountByStatus(ctx context.Context, status string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Job{}).
		Where("status = ?", status).
		Count(&n).Error
	return n, err
}

func (r *jobRepo) CountByRecruiter(ctx context.Context, recruiterID string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Job{}).
		Where("recruiter_id = ?", recruiterID).
		Count(&n).Error
	return n, err
}

func (r *jobRepo) CountGroupedByType(ctx context.Context) (map[string]int64, error) {
	type row struct {
		JobType string
		Count   int64
	}
	var rows []row
	err := r.db.WithContext(ctx).Model(&model.Job{}).
		Select("job_type, COUNT(*) AS count").
		Group("job_type").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	result := make(map[string]int64, len(rows))
	for _, rw := range rows {
		result[rw.JobType] = rw.Count
	}
	return result, nil
}
