package category

import (
	"context"
)

// Repository 分类仓储接口
type Repository interface {
	// Create 创建分类
	Create(ctx context.Context, c *Category) error

	// List 查询全部分类（公开接口，数量有限不分页）
	List(ctx context.Context) ([]*Category, error)

	// FindByID 根据ID查找分类
	FindByID(ctx context.Context, id uint) (*Category, error)

	// Delete 删除分类
	// 分类下仍有商品时的保护校验由应用层完成（见DeleteCategoryUseCase）
	Delete(ctx context.Context, id uint) error
}
