package user

import (
	"context"

	"github.com/zhangxy/bookshop/internal/domain/user"
)

// ProfileUseCase 个人中心用例（查询/更新资料）
type ProfileUseCase struct {
	userRepo user.Repository
}

// NewProfileUseCase 创建个人中心用例
func NewProfileUseCase(userRepo user.Repository) *ProfileUseCase {
	return &ProfileUseCase{userRepo: userRepo}
}

// Profile 个人资料视图（含积分余额）
type Profile struct {
	ID        uint   `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	Role      string `json:"role"`
	Points    int    `json:"points"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	CreatedAt string `json:"created_at"`
}

// Get 查询个人资料
func (uc *ProfileUseCase) Get(ctx context.Context, userID uint) (*Profile, error) {
	u, err := uc.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &Profile{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		Points:    u.Points,
		Phone:     u.Phone,
		Address:   u.Address,
		CreatedAt: u.CreatedAt.Format("2006-01-02 15:04:05"),
	}, nil
}
