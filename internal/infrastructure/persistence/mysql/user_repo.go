package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/zhangxy/bookshop/internal/domain/user"
	apperrors "github.com/zhangxy/bookshop/pkg/errors"
)

// userRepository 用户仓储实现(MySQL)
// 设计说明:
// 1. 实现domain/user/repository.go定义的接口
// 2. 负责domain实体与GORM模型之间的转换
// 3. 处理数据库特定的错误(如邮箱重复)，转换为业务错误
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository 创建用户仓储
func NewUserRepository(db *gorm.DB) user.Repository {
	return &userRepository{db: db}
}

// Create 创建用户
func (r *userRepository) Create(ctx context.Context, u *user.User) error {
	model := &UserModel{
		Email:    u.Email,
		Password: u.Password,
		Name:     u.Name,
		Role:     u.Role,
		Points:   u.Points,
		Phone:    u.Phone,
		Address:  u.Address,
	}

	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return user.ErrEmailDuplicate
		}
		return apperrors.Wrap(err, "创建用户失败")
	}

	u.ID = model.ID
	u.CreatedAt = model.CreatedAt
	u.UpdatedAt = model.UpdatedAt
	return nil
}

// FindByEmail 根据邮箱查找用户
func (r *userRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	var model UserModel
	err := getDB(ctx, r.db).Where("email = ?", email).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, user.ErrUserNotFound
		}
		return nil, apperrors.Wrap(err, "查询用户失败")
	}
	return toUserEntity(&model), nil
}

// FindByID 根据ID查找用户
func (r *userRepository) FindByID(ctx context.Context, id uint) (*user.User, error) {
	var model UserModel
	err := getDB(ctx, r.db).First(&model, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, user.ErrUserNotFound
		}
		return nil, apperrors.Wrap(err, "查询用户失败")
	}
	return toUserEntity(&model), nil
}

// List 查询全部用户（管理后台，按注册时间倒序）
func (r *userRepository) List(ctx context.Context) ([]*user.User, error) {
	var models []UserModel
	if err := getDB(ctx, r.db).Order("created_at DESC").Find(&models).Error; err != nil {
		return nil, apperrors.Wrap(err, "查询用户列表失败")
	}

	users := make([]*user.User, len(models))
	for i := range models {
		users[i] = toUserEntity(&models[i])
	}
	return users, nil
}

// AddPoints 积分增量更新（账本写入口）
// UPDATE users SET points = GREATEST(points + delta, 0) WHERE id = ?
// 下限0由SQL保证，绝不读出旧值再覆写
func (r *userRepository) AddPoints(ctx context.Context, id uint, delta int) error {
	if delta == 0 {
		return nil
	}

	result := getDB(ctx, r.db).Model(&UserModel{}).
		Where("id = ?", id).
		Update("points", gorm.Expr("GREATEST(points + ?, 0)", delta))

	if result.Error != nil {
		return apperrors.Wrap(result.Error, "更新积分失败")
	}
	if result.RowsAffected == 0 {
		// 可能是用户不存在，也可能是余额已在下限0上未发生变化
		// 再查一次确定原因
		var model UserModel
		if err := getDB(ctx, r.db).First(&model, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return user.ErrUserNotFound
			}
			return apperrors.Wrap(err, "查询用户失败")
		}
		// 用户存在，余额已钳在0，视为成功
	}
	return nil
}

// Count 用户总数
func (r *userRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := getDB(ctx, r.db).Model(&UserModel{}).Count(&total).Error; err != nil {
		return 0, apperrors.Wrap(err, "统计用户总数失败")
	}
	return total, nil
}

// toUserEntity GORM模型 → 领域实体
func toUserEntity(model *UserModel) *user.User {
	return &user.User{
		ID:        model.ID,
		Email:     model.Email,
		Password:  model.Password,
		Name:      model.Name,
		Role:      model.Role,
		Points:    model.Points,
		Phone:     model.Phone,
		Address:   model.Address,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
}
