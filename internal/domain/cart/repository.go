package cart

import (
	"context"
)

// Repository 购物车仓储接口
// 设计说明：
// Snapshot是下单路径的关键读：购物车条目关联商品实时价格
// （促销价优先），结算时把快照价格固化进订单明细。
// Snapshot与Clear必须能参与下单事务（通过context传递事务）。
type Repository interface {
	// Add 加入购物车（同一商品已存在时合并数量）
	Add(ctx context.Context, userID, productID uint, quantity int) error

	// UpdateQuantity 修改数量（数量<=0视为移除）
	UpdateQuantity(ctx context.Context, userID, productID uint, quantity int) error

	// Remove 移除条目
	Remove(ctx context.Context, userID, productID uint) error

	// Snapshot 购物车快照：条目按加入顺序关联商品名称与当前实际售价
	Snapshot(ctx context.Context, userID uint) ([]Line, error)

	// Clear 清空用户购物车（下单成功后在同一事务中调用）
	Clear(ctx context.Context, userID uint) error
}
