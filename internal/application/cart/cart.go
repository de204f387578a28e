package cart

import (
	"context"

	"github.com/zhangxy/bookshop/internal/domain/cart"
	"github.com/zhangxy/bookshop/internal/domain/product"
	apperrors "github.com/zhangxy/bookshop/pkg/errors"
)

// CartUseCase 购物车用例
// 设计说明:
// 1. 加购时校验商品存在（已下架商品不可加购）
// 2. 数量上限防御性限制，防止恶意占库存的超大数量
// 3. 列表返回实时售价快照，价格最终在结算时固化
type CartUseCase struct {
	cartRepo    cart.Repository
	productRepo product.Repository
}

// NewCartUseCase 创建购物车用例
func NewCartUseCase(cartRepo cart.Repository, productRepo product.Repository) *CartUseCase {
	return &CartUseCase{cartRepo: cartRepo, productRepo: productRepo}
}

// maxQuantity 单条目数量上限
const maxQuantity = 999

// Add 加入购物车（同一商品合并数量）
func (uc *CartUseCase) Add(ctx context.Context, userID, productID uint, quantity int) error {
	if quantity <= 0 || quantity > maxQuantity {
		return apperrors.New(apperrors.ErrCodeInvalidParams, "数量必须为1-999")
	}

	if _, err := uc.productRepo.FindByID(ctx, productID); err != nil {
		return err
	}

	return uc.cartRepo.Add(ctx, userID, productID, quantity)
}

// UpdateQuantity 修改数量（<=0视为移除）
func (uc *CartUseCase) UpdateQuantity(ctx context.Context, userID, productID uint, quantity int) error {
	if quantity > maxQuantity {
		return apperrors.New(apperrors.ErrCodeInvalidParams, "数量必须为1-999")
	}
	return uc.cartRepo.UpdateQuantity(ctx, userID, productID, quantity)
}

// Remove 移除条目
func (uc *CartUseCase) Remove(ctx context.Context, userID, productID uint) error {
	return uc.cartRepo.Remove(ctx, userID, productID)
}

// CartView 购物车视图
type CartView struct {
	Lines []cart.Line `json:"lines"`
	Total int64       `json:"total"`
}

// List 查询购物车（关联商品实时售价）
func (uc *CartUseCase) List(ctx context.Context, userID uint) (*CartView, error) {
	lines, err := uc.cartRepo.Snapshot(ctx, userID)
	if err != nil {
		return nil, err
	}

	var total int64
	for _, line := range lines {
		total += line.Subtotal()
	}

	if lines == nil {
		lines = []cart.Line{}
	}
	return &CartView{Lines: lines, Total: total}, nil
}
