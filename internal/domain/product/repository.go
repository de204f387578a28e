package product

import (
	"context"
)

// Repository 商品仓储接口
// 设计说明：
// 1. UpdateStock是库存账本的唯一写入口：单条UPDATE以相对增量修改，
//    由`stock + delta >= 0`守卫防止负库存；并发扣减依赖行锁串行化
// 2. LockByID用于下单路径的悲观锁（SELECT ... FOR UPDATE），
//    必须在事务中调用
type Repository interface {
	// Create 创建商品
	Create(ctx context.Context, p *Product) error

	// Update 更新商品信息（管理后台全量更新）
	Update(ctx context.Context, p *Product) error

	// Delete 下架商品（软删除，历史订单仍可关联查询）
	Delete(ctx context.Context, id uint) error

	// FindByID 根据ID查找商品
	FindByID(ctx context.Context, id uint) (*Product, error)

	// List 分页查询商品列表（分类过滤、关键词搜索、价格/时间排序）
	List(ctx context.Context, params ListParams) ([]*Product, int64, error)

	// LockByID 悲观锁查询（下单扣库存前锁定行）
	LockByID(ctx context.Context, id uint) (*Product, error)

	// UpdateStock 库存增量（delta为负表示扣减）
	// 必须在事务中调用；库存不足返回ErrInsufficientStock
	UpdateStock(ctx context.Context, id uint, delta int) error

	// ForceUpdateStock 无守卫的库存增量，允许余额为负
	// 仅在order.allow_oversell开启时由下单路径使用
	ForceUpdateStock(ctx context.Context, id uint, delta int) error

	// CountByCategory 分类下的商品数量（删除分类前的保护校验）
	CountByCategory(ctx context.Context, categoryID uint) (int64, error)
}
