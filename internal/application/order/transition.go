package order

import (
	"context"

	"github.com/zhangxy/bookshop/internal/domain/order"
	"github.com/zhangxy/bookshop/internal/domain/storage"
	"github.com/zhangxy/bookshop/internal/domain/user"
	"github.com/zhangxy/bookshop/internal/infrastructure/notification"
	"github.com/zhangxy/bookshop/pkg/metrics"
)

// Transitioner 状态流转执行器
// 设计说明:
// 1. 用户自助操作（收货/取消/退货）和管理端改状态共用同一套
//    副作用执行逻辑，规则表只存在一份（order.TransitionEffects）
// 2. 账本变更（库存回补、积分增减）与状态写入在同一事务内，
//    要么全部生效要么全部回滚
// 3. 通知在事务提交之后发布（尽力而为），失败不影响流转结果
type Transitioner struct {
	orderRepo   order.Repository
	productRepo stockLedger
	userRepo    user.Repository
	txManager   storage.TxManager
	publisher   notification.EventPublisher
}

// stockLedger 流转只需要库存账本的增量入口
type stockLedger interface {
	UpdateStock(ctx context.Context, id uint, delta int) error
}

// NewTransitioner 创建状态流转执行器
func NewTransitioner(
	orderRepo order.Repository,
	productRepo stockLedger,
	userRepo user.Repository,
	txManager storage.TxManager,
	publisher notification.EventPublisher,
) *Transitioner {
	return &Transitioner{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		userRepo:    userRepo,
		txManager:   txManager,
		publisher:   publisher,
	}
}

// Apply 执行一次状态流转及其全部副作用
// o是流转前的订单（含明细），newStatus已通过合法性校验
func (t *Transitioner) Apply(ctx context.Context, o *order.Order, newStatus order.Status) error {
	effects := order.TransitionEffects(o.Status, newStatus)

	err := t.txManager.Transaction(ctx, func(txCtx context.Context) error {
		// 库存回补：正增量永远满足守卫条件
		if effects.Restock {
			for _, item := range o.Items {
				if err := t.productRepo.UpdateStock(txCtx, item.ProductID, item.Quantity); err != nil {
					return err
				}
			}
		}

		// 积分增减：负增量由SQL钳在下限0
		if effects.PointsDelta != 0 {
			delta := effects.PointsDelta * o.PointsEarned
			if err := t.userRepo.AddPoints(txCtx, o.UserID, delta); err != nil {
				return err
			}
		}

		// 按旧状态条件更新，并发流转导致的冲突会回滚上面的账本变更
		return t.orderRepo.UpdateStatus(txCtx, o.ID, o.Status, newStatus)
	})
	if err != nil {
		return err
	}

	metrics.OrderTransition(o.Status.String(), newStatus.String())

	// 事务已提交，从这里开始只做尽力而为的通知
	if effects.NotifyShipping || effects.NotifyCompletion {
		t.notify(ctx, o, effects)
	}
	return nil
}

// notify 发布通知事件，任何失败只记日志
func (t *Transitioner) notify(ctx context.Context, o *order.Order, effects order.Effects) {
	buyer, err := t.userRepo.FindByID(ctx, o.UserID)
	if err != nil {
		return
	}

	if effects.NotifyShipping {
		views, err := t.orderRepo.ItemViews(ctx, o.ID)
		if err != nil {
			views = nil
		}
		items := make([]notification.OrderItemLine, len(views))
		for i, v := range views {
			items[i] = notification.OrderItemLine{
				ProductName: v.ProductName,
				Quantity:    v.Quantity,
				Price:       v.Price,
			}
		}
		t.publisher.PublishShipping(ctx, notification.OrderShippingEvent{
			OrderNo:         o.OrderNo,
			Email:           buyer.Email,
			BuyerName:       buyer.Name,
			ShippingAddress: o.Shipping.Address,
			Items:           items,
		})
	}

	if effects.NotifyCompletion {
		t.publisher.PublishCompleted(ctx, notification.OrderCompletedEvent{
			OrderNo:      o.OrderNo,
			Email:        buyer.Email,
			BuyerName:    buyer.Name,
			FinalAmount:  o.FinalAmount,
			PointsEarned: o.PointsEarned,
		})
	}
}
