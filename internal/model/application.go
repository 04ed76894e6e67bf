package model

import "time"

// ── 申请状态生命周期 ──
// pending 为唯一初始状态；首次离开 pending 时写入 reviewed_at（仅一次）；
// 非 pending 状态间可由授权招聘者任意迁移，但不允许回退到 pending

const (
	ApplicationStatusPending     = "pending"
	ApplicationStatusReviewed    = "reviewed"
	ApplicationStatusShortlisted = "shortlisted"
	ApplicationStatusRejected    = "rejected"
	ApplicationStatusAccepted    = "accepted"
)

// Application 申请表 — 对应 applications
// (student_id, job_id) 复合唯一，一名学生对同一职位至多一条申请
type Application struct {
	ApplicationID string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"           json:"application_id"`
	StudentID     string     `gorm:"type:uuid;not null;uniqueIndex:uq_applications_student_job" json:"student_id"`
	JobID         string     `gorm:"type:uuid;not null;uniqueIndex:uq_applications_student_job" json:"job_id"`
	Status        string     `gorm:"type:varchar(20);not null;default:'pending'"              json:"status"`
	CoverLetter   string     `gorm:"type:varchar(2000)"                                       json:"cover_letter,omitempty"`
	ResumeURL     *string    `gorm:"type:varchar(500)"                                        json:"resume_url,omitempty"`
	Notes         string     `gorm:"type:varchar(1000)"                                       json:"notes,omitempty"`
	AppliedAt     time.Time  `gorm:"not null;default:CURRENT_TIMESTAMP"                       json:"applied_at"`
	ReviewedAt    *time.Time `json:"reviewed_at,omitempty"`
	BaseModel

	// 关联
	Job     *Job  `gorm:"foreignKey:JobID;references:JobID;constraint:OnDelete:CASCADE" json:"job,omitempty"`
	Student *User `gorm:"foreignKey:StudentID;references:UserID"   json:"student,omitempty"`
}

// TableName 指定表名
func (Application) TableName() string { return "applications" }
