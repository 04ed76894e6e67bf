package dto

// ── 用户管理模块 DTO（管理员）──

// CreateUserRequest 管理员创建用户请求
type CreateUserRequest struct {
	Email     string `json:"email"      binding:"required,email"`
	Password  string `json:"password"   binding:"required,min=6,max=72"`
	FirstName string `json:"first_name" binding:"required,max=100"`
	LastName  string `json:"last_name"  binding:"required,max=100"`
	Role      string `json:"role"       binding:"required,oneof=admin student recruiter"`
	IsActive  *bool  `json:"is_active"`
}

// UpdateUserRequest 管理员更新用户请求（仅更新非 nil 字段）
type UpdateUserRequest struct {
	Email     *string `json:"email"      binding:"omitempty,email"`
	Password  *string `json:"password"   binding:"omitempty,min=6,max=72"`
	FirstName *string `json:"first_name" binding:"omitempty,min=1,max=100"`
	LastName  *string `json:"last_name"  binding:"omitempty,min=1,max=100"`
	Role      *string `json:"role"       binding:"omitempty,oneof=admin student recruiter"`
	IsActive  *bool   `json:"is_active"`
}

// UserListRequest 用户列表查询参数
type UserListRequest struct {
	PaginationRequest
	Role    string `form:"role"    binding:"omitempty,oneof=admin student recruiter"`
	Keyword string `form:"search"  binding:"omitempty,max=100"`
}

// UserStatsResponse 用户统计响应
type UserStatsResponse struct {
	TotalUsers    int64 `json:"total_users"`
	ActiveUsers   int64 `json:"active_users"`
	InactiveUsers int64 `json:"inactive_users"`
	Admins        int64 `json:"admins"`
	Students      int64 `json:"students"`
	Recruiters    int64 `json:"recruiters"`
}
