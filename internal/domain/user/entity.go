package user

import (
	"time"
)

// 用户角色
const (
	RoleUser  = "user"  // 普通用户
	RoleAdmin = "admin" // 管理员
)

// User 用户实体（聚合根）
// 设计说明：
// 1. 密码只保存bcrypt哈希值，领域实体不暴露明文
// 2. Points是积分余额，只能通过积分流水操作（Repository.AddPoints）变更，
//    不允许应用层读出再覆写
// 3. 领域实体不依赖GORM tag，由infrastructure层做映射
type User struct {
	ID        uint
	Email     string
	Password  string // bcrypt哈希值
	Name      string
	Role      string // user | admin
	Points    int    // 积分余额（下限0）
	Phone     string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewUser 创建新用户（工厂方法）
// hashedPassword必须是bcrypt加密后的密码
func NewUser(email, hashedPassword, name string) *User {
	now := time.Now()
	return &User{
		Email:     email,
		Password:  hashedPassword,
		Name:      name,
		Role:      RoleUser,
		Points:    0,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// IsAdmin 是否管理员
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
