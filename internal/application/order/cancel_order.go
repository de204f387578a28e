package order

import (
	"context"

	"github.com/zhangxy/bookshop/internal/domain/order"
)

// CancelOrderUseCase 用户取消订单用例
// 规则:仅待发货订单可取消，取消后明细库存原数回补
type CancelOrderUseCase struct {
	orderRepo    order.Repository
	transitioner *Transitioner
}

// NewCancelOrderUseCase 创建取消订单用例
func NewCancelOrderUseCase(orderRepo order.Repository, transitioner *Transitioner) *CancelOrderUseCase {
	return &CancelOrderUseCase{orderRepo: orderRepo, transitioner: transitioner}
}

// Execute 执行取消
func (uc *CancelOrderUseCase) Execute(ctx context.Context, userID, orderID uint) error {
	o, err := uc.orderRepo.FindByIDOfUser(ctx, orderID, userID)
	if err != nil {
		return err
	}

	if err := o.CanCancel(); err != nil {
		return err
	}

	return uc.transitioner.Apply(ctx, o, order.StatusCancelled)
}
