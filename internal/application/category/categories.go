package category

import (
	"context"

	"github.com/zhangxy/bookshop/internal/domain/category"
	"github.com/zhangxy/bookshop/internal/domain/product"
	apperrors "github.com/zhangxy/bookshop/pkg/errors"
)

// CategoryUseCase 分类用例（列表公开，增删仅管理端）
type CategoryUseCase struct {
	categoryRepo category.Repository
	productRepo  product.Repository
}

// NewCategoryUseCase 创建分类用例
func NewCategoryUseCase(categoryRepo category.Repository, productRepo product.Repository) *CategoryUseCase {
	return &CategoryUseCase{categoryRepo: categoryRepo, productRepo: productRepo}
}

// List 查询全部分类
func (uc *CategoryUseCase) List(ctx context.Context) ([]*category.Category, error) {
	return uc.categoryRepo.List(ctx)
}

// Create 创建分类
func (uc *CategoryUseCase) Create(ctx context.Context, name, description string) (*category.Category, error) {
	if name == "" {
		return nil, apperrors.New(apperrors.ErrCodeInvalidParams, "分类名不能为空")
	}

	c := category.NewCategory(name, description)
	if err := uc.categoryRepo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Delete 删除分类
// 保护校验:分类下仍有商品（含在售）时拒绝删除，
// 防止商品悬挂在不存在的分类上
func (uc *CategoryUseCase) Delete(ctx context.Context, id uint) error {
	if _, err := uc.categoryRepo.FindByID(ctx, id); err != nil {
		return err
	}

	count, err := uc.productRepo.CountByCategory(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return apperrors.ErrCategoryInUse
	}

	return uc.categoryRepo.Delete(ctx, id)
}
