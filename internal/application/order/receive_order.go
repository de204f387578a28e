package order

import (
	"context"

	"github.com/zhangxy/bookshop/internal/domain/order"
)

// ReceiveOrderUseCase 用户确认收货用例
// 规则:仅配送中的订单可确认；货到付款订单的完成
// 必须由管理员确认收款后操作
type ReceiveOrderUseCase struct {
	orderRepo    order.Repository
	transitioner *Transitioner
}

// NewReceiveOrderUseCase 创建确认收货用例
func NewReceiveOrderUseCase(orderRepo order.Repository, transitioner *Transitioner) *ReceiveOrderUseCase {
	return &ReceiveOrderUseCase{orderRepo: orderRepo, transitioner: transitioner}
}

// Execute 执行确认收货
// 归属校验走FindByIDOfUser：他人订单与不存在的订单同样返回ErrOrderNotFound
func (uc *ReceiveOrderUseCase) Execute(ctx context.Context, userID, orderID uint) error {
	o, err := uc.orderRepo.FindByIDOfUser(ctx, orderID, userID)
	if err != nil {
		return err
	}

	if err := o.CanReceive(); err != nil {
		return err
	}

	return uc.transitioner.Apply(ctx, o, order.StatusCompleted)
}
