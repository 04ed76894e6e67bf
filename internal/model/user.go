package model

// ── 用户角色闭合枚举 ──
// 所有按角色分派的逻辑必须对三个取值显式分支，不允许默认落空

const (
	RoleAdmin     = "admin"
	RoleStudent   = "student"
	RoleRecruiter = "recruiter"
)

// ValidRole 判断角色取值是否合法
func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleStudent, RoleRecruiter:
		return true
	default:
		return false
	}
}

// User 用户表 — 对应 users
type User struct {
	UserID       string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"user_id"`
	Email        string `gorm:"type:varchar(255);not null;uniqueIndex"         json:"email"`
	PasswordHash string `gorm:"type:varchar(255);not null"                     json:"-"`
	FirstName    string `gorm:"type:varchar(100);not null"                     json:"first_name"`
	LastName     string `gorm:"type:varchar(100);not null"                     json:"last_name"`
	Role         string `gorm:"type:varchar(20);not null;default:'student'"    json:"role"`
	IsActive     bool   `gorm:"not null;default:true"                          json:"is_active"`
	BaseModel
}

// TableName 指定表名
func (User) TableName() string { return "users" }

// FullName 拼接展示用全名
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}
