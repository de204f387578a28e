package user

import (
	"context"
)

// Repository 用户仓储接口
// 设计说明：
// 1. 由domain层定义接口，infrastructure层实现（依赖倒置）
// 2. AddPoints是积分账本的唯一写入口：以相对增量的形式在事务内执行，
//    由SQL保证下限为0（GREATEST(points + delta, 0)），
//    绝不在应用内存中读出旧值再覆写
type Repository interface {
	// Create 创建用户（邮箱唯一性由数据库UNIQUE索引保证）
	Create(ctx context.Context, user *User) error

	// FindByEmail 根据邮箱查找用户
	FindByEmail(ctx context.Context, email string) (*User, error)

	// FindByID 根据ID查找用户
	FindByID(ctx context.Context, id uint) (*User, error)

	// List 查询全部用户（管理后台）
	List(ctx context.Context) ([]*User, error)

	// AddPoints 积分增量（delta可为负，余额下限0）
	// 必须在事务中调用（通过context传递事务）
	AddPoints(ctx context.Context, id uint, delta int) error

	// Count 用户总数（管理后台统计）
	Count(ctx context.Context) (int64, error)
}
