package order

import (
	"context"
	"time"

	"github.com/zhangxy/bookshop/internal/domain/order"
)

// ReturnOrderUseCase 用户退货用例
// 规则:仅已完成订单可退，下单起退货期限内有效（到期整点边界允许）；
// 退货回补库存并扣回本单积分（余额下限0）
type ReturnOrderUseCase struct {
	orderRepo    order.Repository
	transitioner *Transitioner
	window       time.Duration
	now          func() time.Time
}

// NewReturnOrderUseCase 创建退货用例，window非正时取默认7天
func NewReturnOrderUseCase(orderRepo order.Repository, transitioner *Transitioner, window time.Duration) *ReturnOrderUseCase {
	return &ReturnOrderUseCase{
		orderRepo:    orderRepo,
		transitioner: transitioner,
		window:       window,
		now:          time.Now,
	}
}

// Execute 执行退货
func (uc *ReturnOrderUseCase) Execute(ctx context.Context, userID, orderID uint) error {
	o, err := uc.orderRepo.FindByIDOfUser(ctx, orderID, userID)
	if err != nil {
		return err
	}

	if err := o.CanReturn(uc.now(), uc.window); err != nil {
		return err
	}

	return uc.transitioner.Apply(ctx, o, order.StatusReturned)
}
