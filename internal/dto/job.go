package dto

// ── 职位模块 DTO ──

// CreateJobRequest 创建职位请求
// application_deadline 为 RFC3339 时间串，由 Service 层解析
type CreateJobRequest struct {
	Title               string   `json:"title"                binding:"required,max=255"`
	Description         string   `json:"description"          binding:"required,min=10,max=5000"`
	Requirements        string   `json:"requirements"         binding:"required,min=10,max=2000"`
	Location            string   `json:"location"             binding:"required,max=255"`
	SalaryMin           *float64 `json:"salary_min"           binding:"omitempty,gte=0"`
	SalaryMax           *float64 `json:"salary_max"           binding:"omitempty,gte=0"`
	JobType             string   `json:"job_type"             binding:"required,oneof=full_time part_time internship contract"`
	ApplicationDeadline *string  `json:"application_deadline" binding:"omitempty"`
}

// UpdateJobRequest 更新职位请求（仅更新非 nil 字段）
type UpdateJobRequest struct {
	Title               *string  `json:"title"                binding:"omitempty,min=1,max=255"`
	Description         *string  `json:"description"          binding:"omitempty,min=10,max=5000"`
	Requirements        *string  `json:"requirements"         binding:"omitempty,min=10,max=2000"`
	Location            *string  `json:"location"             binding:"omitempty,min=1,max=255"`
	SalaryMin           *float64 `json:"salary_min"           binding:"omitempty,gte=0"`
	SalaryMax           *float64 `json:"salary_max"           binding:"omitempty,gte=0"`
	JobType             *string  `json:"job_type"             binding:"omitempty,oneof=full_time part_time internship contract"`
	Status              *string  `json:"status"               binding:"omitempty,oneof=active inactive closed"`
	ApplicationDeadline *string  `json:"application_deadline" binding:"omitempty"`
}

// JobListRequest 职位列表查询参数
type JobListRequest struct {
	PaginationRequest
	Status      string `form:"status"       binding:"omitempty,oneof=active inactive closed"`
	JobType     string `form:"job_type"     binding:"omitempty,oneof=full_time part_time internship contract"`
	Location    string `form:"location"     binding:"omitempty,max=255"`
	RecruiterID string `form:"recruiter_id" binding:"omitempty,uuid"`
	Search      string `form:"search"       binding:"omitempty,max=255"`
}

// JobResponse 职位响应
type JobResponse struct {
	ID                  string     `json:"id"`
	Title               string     `json:"title"`
	Description         string     `json:"description"`
	Requirements        string     `json:"requirements"`
	Location            string     `json:"location"`
	SalaryMin           *float64   `json:"salary_min,omitempty"`
	SalaryMax           *float64   `json:"salary_max,omitempty"`
	JobType             string     `json:"job_type"`
	Status              string     `json:"status"`
	RecruiterID         string     `json:"recruiter_id"`
	ApplicationDeadline *string    `json:"application_deadline,omitempty"`
	OpenForApplications bool       `json:"open_for_applications"`
	CreatedAt           string     `json:"created_at"`
	UpdatedAt           string     `json:"updated_at"`
	Recruiter           *UserBrief `json:"recruiter,omitempty"`
}

// JobStatsResponse 职位统计响应
type JobStatsResponse struct {
	TotalJobs    int64            `json:"total_jobs"`
	ActiveJobs   int64            `json:"active_jobs"`
	InactiveJobs int64            `json:"inactive_jobs"`
	ClosedJobs   int64            `json:"closed_jobs"`
	ByType       map[string]int64 `json:"by_type"`
}
