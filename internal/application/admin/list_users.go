package admin

import (
	"context"

	"github.com/zhangxy/bookshop/internal/domain/user"
)

// ListUsersUseCase 管理后台用户列表用例
type ListUsersUseCase struct {
	userRepo user.Repository
}

// NewListUsersUseCase 创建用户列表用例
func NewListUsersUseCase(userRepo user.Repository) *ListUsersUseCase {
	return &ListUsersUseCase{userRepo: userRepo}
}

// UserRow 用户列表行（不含密码）
type UserRow struct {
	ID        uint   `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	Role      string `json:"role"`
	Points    int    `json:"points"`
	CreatedAt string `json:"created_at"`
}

// Execute 查询全部用户
func (uc *ListUsersUseCase) Execute(ctx context.Context) ([]UserRow, error) {
	users, err := uc.userRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	rows := make([]UserRow, len(users))
	for i, u := range users {
		rows[i] = UserRow{
			ID:        u.ID,
			Email:     u.Email,
			Name:      u.Name,
			Role:      u.Role,
			Points:    u.Points,
			CreatedAt: u.CreatedAt.Format("2006-01-02 15:04:05"),
		}
	}
	return rows, nil
}
