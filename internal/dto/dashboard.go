package dto

// ── 工作台模块 DTO ──
// 每个角色一个独立变体，响应中只出现对应角色的数据块

// DashboardResponse 角色工作台响应
type DashboardResponse struct {
	Role      string              `json:"role"`
	Admin     *AdminDashboard     `json:"admin,omitempty"`
	Recruiter *RecruiterDashboard `json:"recruiter,omitempty"`
	Student   *StudentDashboard   `json:"student,omitempty"`
}

// AdminDashboard 管理员工作台统计
type AdminDashboard struct {
	TotalUsers        int64 `json:"total_users"`
	TotalStudents     int64 `json:"total_students"`
	TotalJobs         int64 `json:"total_jobs"`
	TotalApplications int64 `json:"total_applications"`
}

// RecruiterDashboard 招聘者工作台统计
type RecruiterDashboard struct {
	MyJobs                int64 `json:"my_jobs"`
	ReceivedApplications  int64 `json:"received_applications"`
	ShortlistedCandidates int64 `json:"shortlisted_candidates"`
}

// StudentDashboard 学生工作台统计
type StudentDashboard struct {
	AvailableJobs  int64 `json:"available_jobs"`
	MyApplications int64 `json:"my_applications"`
}
