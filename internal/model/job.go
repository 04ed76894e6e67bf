package model

import "time"

// ── 职位状态 ──

const (
	JobStatusActive   = "active"
	JobStatusInactive = "inactive"
	JobStatusClosed   = "closed"
)

// ── 职位类型 ──

const (
	JobTypeFullTime   = "full_time"
	JobTypePartTime   = "part_time"
	JobTypeInternship = "internship"
	JobTypeContract   = "contract"
)

// Job 职位表 — 对应 jobs
// 每个职位归属且仅归属一名招聘者（recruiter_id）
type Job struct {
	JobID               string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"job_id"`
	Title               string     `gorm:"type:varchar(255);not null"                     json:"title"`
	Description         string     `gorm:"type:text;not null"                             json:"description"`
	Requirements        string     `gorm:"type:text;not null"                             json:"requirements"`
	Location            string     `gorm:"type:varchar(255);not null"                     json:"location"`
	SalaryMin           *float64   `gorm:"type:numeric(10,2)"                             json:"salary_min,omitempty"`
	SalaryMax           *float64   `gorm:"type:numeric(10,2)"                             json:"salary_max,omitempty"`
	JobType             string     `gorm:"type:varchar(20);not null;default:'full_time'"  json:"job_type"`
	Status              string     `gorm:"type:varchar(20);not null;default:'active'"     json:"status"`
	RecruiterID         string     `gorm:"type:uuid;not null;index"                       json:"recruiter_id"`
	ApplicationDeadline *time.Time `json:"application_deadline,omitempty"`
	BaseModel

	// 关联
	Recruiter *User `gorm:"foreignKey:RecruiterID;references:UserID" json:"recruiter,omitempty"`
}

// TableName 指定表名
func (Job) TableName() string { return "jobs" }

// IsOpenForApplications 职位是否开放申请
// 开放 ⇔ status=active 且（无截止时间 或 截止时间未到）
// 开放性是计算属性，截止后不会自动改写 status
func (j *Job) IsOpenForApplications() bool {
	if j.Status != JobStatusActive {
		return false
	}
	if j.ApplicationDeadline == nil {
		return true
	}
	return time.Now().Before(*j.ApplicationDeadline)
}
