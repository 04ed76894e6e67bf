package dto

// ── 申请模块 DTO ──

// ApplyRequest 学生投递申请请求
type ApplyRequest struct {
	JobID       string  `json:"job_id"       binding:"required,uuid"`
	CoverLetter string  `json:"cover_letter" binding:"omitempty,max=2000"`
	ResumeURL   *string `json:"resume_url"   binding:"omitempty,url,max=500"`
}

// UpdateApplicationStatusRequest 申请状态迁移请求
// pending 在取值范围内但会被 Service 层拒绝：状态不允许回退到 pending
type UpdateApplicationStatusRequest struct {
	Status string  `json:"status" binding:"required,oneof=pending reviewed shortlisted rejected accepted"`
	Notes  *string `json:"notes"  binding:"omitempty,max=1000"`
}

// ApplicationListRequest 申请列表查询参数
// 显式过滤条件只会在角色隐式范围内收窄，不会放宽可见性
type ApplicationListRequest struct {
	PaginationRequest
	Status    string `form:"status"     binding:"omitempty,oneof=pending reviewed shortlisted rejected accepted"`
	JobID     string `form:"job_id"     binding:"omitempty,uuid"`
	StudentID string `form:"student_id" binding:"omitempty,uuid"`
}

// ApplicationResponse 申请响应
type ApplicationResponse struct {
	ID          string     `json:"id"`
	StudentID   string     `json:"student_id"`
	JobID       string     `json:"job_id"`
	Status      string     `json:"status"`
	CoverLetter string     `json:"cover_letter,omitempty"`
	ResumeURL   *string    `json:"resume_url,omitempty"`
	Notes       string     `json:"notes,omitempty"`
	AppliedAt   string     `json:"applied_at"`
	ReviewedAt  *string    `json:"reviewed_at,omitempty"`
	Job         *JobBrief  `json:"job,omitempty"`
	Student     *UserBrief `json:"student,omitempty"`
}

// JobBrief 嵌入申请响应中的职位简要信息
type JobBrief struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Location    string     `json:"location"`
	JobType     string     `json:"job_type"`
	RecruiterID string     `json:"recruiter_id"`
	Recruiter   *UserBrief `json:"recruiter,omitempty"`
}

// ApplicationStatsResponse 申请统计响应
type ApplicationStatsResponse struct {
	Total       int64 `json:"total"`
	Pending     int64 `json:"pending"`
	Reviewed    int64 `json:"reviewed"`
	Shortlisted int64 `json:"shortlisted"`
	Rejected    int64 `json:"rejected"`
	Accepted    int64 `json:"accepted"`
}
