package admin

import (
	"context"

	"github.com/zhangxy/bookshop/internal/domain/order"
	"github.com/zhangxy/bookshop/internal/domain/user"
)

// AnalyticsUseCase 管理后台经营概览用例
type AnalyticsUseCase struct {
	orderRepo order.Repository
	userRepo  user.Repository
}

// NewAnalyticsUseCase 创建经营概览用例
func NewAnalyticsUseCase(orderRepo order.Repository, userRepo user.Repository) *AnalyticsUseCase {
	return &AnalyticsUseCase{orderRepo: orderRepo, userRepo: userRepo}
}

// Overview 经营概览
// 设计说明:营收只计已完成订单；取消/退货订单计入订单总数
// 但不计入营收（积分与库存已在流转时回补）
type Overview struct {
	TotalUsers   int64                 `json:"total_users"`
	TotalOrders  int64                 `json:"total_orders"`
	TotalRevenue int64                 `json:"total_revenue"`
	StatusStats  []order.StatusStat    `json:"status_stats"`
	TopProduct   *order.TopProductStat `json:"top_product"`
}

// Execute 汇总经营数据
func (uc *AnalyticsUseCase) Execute(ctx context.Context) (*Overview, error) {
	users, err := uc.userRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	orders, err := uc.orderRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	revenue, err := uc.orderRepo.CompletedRevenue(ctx)
	if err != nil {
		return nil, err
	}

	stats, err := uc.orderRepo.StatusStats(ctx)
	if err != nil {
		return nil, err
	}

	top, err := uc.orderRepo.TopProduct(ctx)
	if err != nil {
		return nil, err
	}

	return &Overview{
		TotalUsers:   users,
		TotalOrders:  orders,
		TotalRevenue: revenue,
		StatusStats:  stats,
		TopProduct:   top,
	}, nil
}
