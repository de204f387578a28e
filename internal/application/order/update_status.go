package order

import (
	"context"

	"github.com/zhangxy/bookshop/internal/domain/order"
)

// UpdateStatusUseCase 管理端订单状态变更用例
// 设计说明:
// 1. 管理员可以把订单设置为任意合法状态（包括对用户不可逆的回退），
//    但状态字符串必须通过ParseStatus校验
// 2. 副作用完全由(旧状态, 新状态)二元组决定：
//    误点完成后改回配送中会扣回积分，再次完成会重新发放
// 3. 重复设置同一状态是幂等操作，不触发任何账本变更和通知
type UpdateStatusUseCase struct {
	orderRepo    order.Repository
	transitioner *Transitioner
}

// NewUpdateStatusUseCase 创建状态变更用例
func NewUpdateStatusUseCase(orderRepo order.Repository, transitioner *Transitioner) *UpdateStatusUseCase {
	return &UpdateStatusUseCase{orderRepo: orderRepo, transitioner: transitioner}
}

// Execute 执行状态变更
func (uc *UpdateStatusUseCase) Execute(ctx context.Context, orderID uint, rawStatus string) error {
	newStatus, err := order.ParseStatus(rawStatus)
	if err != nil {
		return err
	}

	o, err := uc.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return err
	}

	return uc.transitioner.Apply(ctx, o, newStatus)
}
