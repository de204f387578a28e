package order

import (
	"context"
	"testing"
	"time"

	"github.com/zhangxy/bookshop/internal/domain/order"
	"github.com/zhangxy/bookshop/internal/domain/user"
)

type transitionFixture struct {
	orderRepo   *fakeOrderRepo
	productRepo *fakeProductRepo
	userRepo    *fakeUserRepo
	publisher   *fakePublisher
	tx          *fakeTxManager
}

func newTransitionFixture(stocks map[uint]int) (*Transitioner, *transitionFixture) {
	f := &transitionFixture{
		orderRepo:   newFakeOrderRepo(),
		productRepo: newFakeProductRepo(stocks),
		userRepo:    newFakeUserRepo(),
		publisher:   &fakePublisher{},
		tx:          &fakeTxManager{},
	}
	f.userRepo.users[1] = &user.User{ID: 1, Email: "zhangsan@example.com", Name: "张三"}
	t := NewTransitioner(f.orderRepo, f.productRepo, f.userRepo, f.tx, f.publisher)
	return t, f
}

func (f *transitionFixture) seedOrder(status order.Status, points int, items []order.OrderItem) *order.Order {
	o := &order.Order{
		OrderNo:       order.GenerateOrderNo(),
		UserID:        1,
		FinalAmount:   int64(points) * order.PointsRate,
		PointsEarned:  points,
		Status:        status,
		PaymentMethod: "online",
		Items:         items,
		CreatedAt:     time.Now(),
	}
	f.orderRepo.Create(context.Background(), o)
	return o
}

// TestReceiveOrder_Shipping 配送中订单确认收货：+积分、完成通知
func TestReceiveOrder_Shipping(t *testing.T) {
	tr, f := newTransitionFixture(map[uint]int{})
	o := f.seedOrder(order.StatusShipping, 130, nil)
	uc := NewReceiveOrderUseCase(f.orderRepo, tr)

	if err := uc.Execute(context.Background(), 1, o.ID); err != nil {
		t.Fatalf("确认收货失败: %v", err)
	}

	got, _ := f.orderRepo.FindByID(context.Background(), o.ID)
	if got.Status != order.StatusCompleted {
		t.Errorf("状态应为completed, 实际: %s", got.Status)
	}
	if f.userRepo.points[1] != 130 {
		t.Errorf("应发放130积分, 实际: %d", f.userRepo.points[1])
	}
	if len(f.publisher.completed) != 1 {
		t.Errorf("应发布1条完成事件, 实际: %d", len(f.publisher.completed))
	}
}

// TestReceiveOrder_CODRejected 货到付款订单的完成必须由管理员操作
func TestReceiveOrder_CODRejected(t *testing.T) {
	tr, f := newTransitionFixture(map[uint]int{})
	o := f.seedOrder(order.StatusShipping, 130, nil)
	o.PaymentMethod = order.PaymentCOD
	f.orderRepo.orders[o.ID].PaymentMethod = order.PaymentCOD
	uc := NewReceiveOrderUseCase(f.orderRepo, tr)

	if err := uc.Execute(context.Background(), 1, o.ID); err != order.ErrPaymentPending {
		t.Errorf("货到付款订单确认收货应返回ErrPaymentPending, 实际: %v", err)
	}
	if f.userRepo.points[1] != 0 {
		t.Error("拒绝的流转不应发放积分")
	}
}

// TestReceiveOrder_PendingRejected 待发货订单不可确认收货
func TestReceiveOrder_PendingRejected(t *testing.T) {
	tr, f := newTransitionFixture(map[uint]int{})
	o := f.seedOrder(order.StatusPending, 10, nil)
	uc := NewReceiveOrderUseCase(f.orderRepo, tr)

	if err := uc.Execute(context.Background(), 1, o.ID); err != order.ErrInvalidTransition {
		t.Errorf("待发货订单确认收货应返回ErrInvalidTransition, 实际: %v", err)
	}
	if f.userRepo.points[1] != 0 {
		t.Error("拒绝的流转不应发放积分")
	}
}

// TestReceiveOrder_NotOwned 他人订单与不存在订单同样返回ErrOrderNotFound
func TestReceiveOrder_NotOwned(t *testing.T) {
	tr, f := newTransitionFixture(map[uint]int{})
	o := f.seedOrder(order.StatusShipping, 10, nil)
	uc := NewReceiveOrderUseCase(f.orderRepo, tr)

	if err := uc.Execute(context.Background(), 999, o.ID); err != order.ErrOrderNotFound {
		t.Errorf("他人订单应返回ErrOrderNotFound, 实际: %v", err)
	}
	if err := uc.Execute(context.Background(), 1, 888); err != order.ErrOrderNotFound {
		t.Errorf("不存在的订单应返回ErrOrderNotFound, 实际: %v", err)
	}
}

// TestCancelOrder_Restock 取消待发货订单回补库存
func TestCancelOrder_Restock(t *testing.T) {
	tr, f := newTransitionFixture(map[uint]int{1: 8, 2: 4})
	o := f.seedOrder(order.StatusPending, 130, []order.OrderItem{
		{ProductID: 1, Quantity: 2, Price: 50000},
		{ProductID: 2, Quantity: 1, Price: 30000},
	})
	uc := NewCancelOrderUseCase(f.orderRepo, tr)

	if err := uc.Execute(context.Background(), 1, o.ID); err != nil {
		t.Fatalf("取消失败: %v", err)
	}

	if f.productRepo.stocks[1] != 10 || f.productRepo.stocks[2] != 5 {
		t.Errorf("取消后库存应原数回补: %v", f.productRepo.stocks)
	}
	got, _ := f.orderRepo.FindByID(context.Background(), o.ID)
	if got.Status != order.StatusCancelled {
		t.Errorf("状态应为cancelled, 实际: %s", got.Status)
	}
	// pending从未完成，不涉及积分
	if f.userRepo.points[1] != 0 {
		t.Errorf("取消待发货订单不应变动积分: %d", f.userRepo.points[1])
	}
}

// TestCancelOrder_ShippingRejected 配送中订单不可取消
func TestCancelOrder_ShippingRejected(t *testing.T) {
	tr, f := newTransitionFixture(map[uint]int{1: 8})
	o := f.seedOrder(order.StatusShipping, 10, []order.OrderItem{{ProductID: 1, Quantity: 2}})
	uc := NewCancelOrderUseCase(f.orderRepo, tr)

	if err := uc.Execute(context.Background(), 1, o.ID); err != order.ErrInvalidTransition {
		t.Errorf("配送中订单取消应返回ErrInvalidTransition, 实际: %v", err)
	}
	if f.productRepo.stocks[1] != 8 {
		t.Error("拒绝的取消不应回补库存")
	}
}

// TestCancelOrder_ConcurrentConflict 基于过期快照的流转被条件更新拒绝
// 两次取消基于同一快照时，第二次事务回滚，库存只回补一次
func TestCancelOrder_ConcurrentConflict(t *testing.T) {
	tr, f := newTransitionFixture(map[uint]int{1: 8})
	o := f.seedOrder(order.StatusPending, 10, []order.OrderItem{{ProductID: 1, Quantity: 2}})

	// 第一次取消：内存快照与库中状态一致，正常生效
	stale, _ := f.orderRepo.FindByID(context.Background(), o.ID)
	if err := tr.Apply(context.Background(), stale, order.StatusCancelled); err != nil {
		t.Fatalf("首次取消失败: %v", err)
	}
	if f.productRepo.stocks[1] != 10 {
		t.Fatalf("首次取消应回补库存至10, 实际: %d", f.productRepo.stocks[1])
	}

	// 第二次取消：快照仍是pending，库中已是cancelled
	f.tx.restore = func() { f.productRepo.stocks[1] = 10 }
	if err := tr.Apply(context.Background(), stale, order.StatusCancelled); err != order.ErrInvalidTransition {
		t.Errorf("过期快照的流转应返回ErrInvalidTransition, 实际: %v", err)
	}
	if f.productRepo.stocks[1] != 10 {
		t.Errorf("库存不应被重复回补, 实际: %d", f.productRepo.stocks[1])
	}
	got, _ := f.orderRepo.FindByID(context.Background(), o.ID)
	if got.Status != order.StatusCancelled {
		t.Errorf("订单状态应保持cancelled, 实际: %s", got.Status)
	}
}

// TestReturnOrder 完成订单退货期限内：回补库存并扣回积分
func TestReturnOrder(t *testing.T) {
	tr, f := newTransitionFixture(map[uint]int{1: 8})
	o := f.seedOrder(order.StatusCompleted, 130, []order.OrderItem{
		{ProductID: 1, Quantity: 2, Price: 50000},
	})
	f.userRepo.points[1] = 130

	uc := NewReturnOrderUseCase(f.orderRepo, tr, order.ReturnWindow)
	if err := uc.Execute(context.Background(), 1, o.ID); err != nil {
		t.Fatalf("退货失败: %v", err)
	}

	if f.productRepo.stocks[1] != 10 {
		t.Errorf("退货后库存应回补至10, 实际: %d", f.productRepo.stocks[1])
	}
	if f.userRepo.points[1] != 0 {
		t.Errorf("退货应扣回130积分, 实际余额: %d", f.userRepo.points[1])
	}
	got, _ := f.orderRepo.FindByID(context.Background(), o.ID)
	if got.Status != order.StatusReturned {
		t.Errorf("状态应为returned, 实际: %s", got.Status)
	}
}

// TestReturnOrder_Expired 超过退货期限拒绝
func TestReturnOrder_Expired(t *testing.T) {
	tr, f := newTransitionFixture(map[uint]int{1: 8})
	o := f.seedOrder(order.StatusCompleted, 130, []order.OrderItem{{ProductID: 1, Quantity: 2}})

	uc := NewReturnOrderUseCase(f.orderRepo, tr, order.ReturnWindow)
	uc.now = func() time.Time { return o.CreatedAt.Add(order.ReturnWindow + time.Second) }

	if err := uc.Execute(context.Background(), 1, o.ID); err != order.ErrReturnExpired {
		t.Errorf("超期退货应返回ErrReturnExpired, 实际: %v", err)
	}
	if f.productRepo.stocks[1] != 8 {
		t.Error("拒绝的退货不应回补库存")
	}
}

// TestReturnOrder_ExactBoundary 恰好到期整点边界仍允许退货
func TestReturnOrder_ExactBoundary(t *testing.T) {
	tr, f := newTransitionFixture(map[uint]int{1: 8})
	o := f.seedOrder(order.StatusCompleted, 10, []order.OrderItem{{ProductID: 1, Quantity: 1}})

	uc := NewReturnOrderUseCase(f.orderRepo, tr, order.ReturnWindow)
	uc.now = func() time.Time { return o.CreatedAt.Add(order.ReturnWindow) }

	if err := uc.Execute(context.Background(), 1, o.ID); err != nil {
		t.Errorf("恰好到期整点应允许退货: %v", err)
	}
}

// TestAdminUpdateStatus_PointsFlipFlop 管理员误操作回退再完成：积分先扣回再发放
func TestAdminUpdateStatus_PointsFlipFlop(t *testing.T) {
	tr, f := newTransitionFixture(map[uint]int{})
	o := f.seedOrder(order.StatusShipping, 130, nil)
	uc := NewUpdateStatusUseCase(f.orderRepo, tr)
	ctx := context.Background()

	// shipping → completed：发放130
	if err := uc.Execute(ctx, o.ID, "completed"); err != nil {
		t.Fatalf("完成失败: %v", err)
	}
	if f.userRepo.points[1] != 130 {
		t.Fatalf("完成后积分应为130, 实际: %d", f.userRepo.points[1])
	}

	// completed → shipping：扣回130（同时触发发货通知）
	if err := uc.Execute(ctx, o.ID, "shipping"); err != nil {
		t.Fatalf("回退失败: %v", err)
	}
	if f.userRepo.points[1] != 0 {
		t.Fatalf("回退后积分应扣回至0, 实际: %d", f.userRepo.points[1])
	}

	// shipping → completed：重新发放
	if err := uc.Execute(ctx, o.ID, "completed"); err != nil {
		t.Fatalf("再次完成失败: %v", err)
	}
	if f.userRepo.points[1] != 130 {
		t.Errorf("再次完成后积分应为130, 实际: %d", f.userRepo.points[1])
	}
}

// TestAdminUpdateStatus_PointsFloor 用户积分已花掉时扣回只到下限0
func TestAdminUpdateStatus_PointsFloor(t *testing.T) {
	tr, f := newTransitionFixture(map[uint]int{})
	o := f.seedOrder(order.StatusCompleted, 130, nil)
	f.userRepo.points[1] = 50 // 已消费掉部分积分

	uc := NewUpdateStatusUseCase(f.orderRepo, tr)
	if err := uc.Execute(context.Background(), o.ID, "cancelled"); err != nil {
		t.Fatalf("变更失败: %v", err)
	}
	if f.userRepo.points[1] != 0 {
		t.Errorf("积分扣回应钳在0, 实际: %d", f.userRepo.points[1])
	}
}

// TestAdminUpdateStatus_SameStatusIdempotent 重复设置同一状态为幂等空操作
func TestAdminUpdateStatus_SameStatusIdempotent(t *testing.T) {
	tr, f := newTransitionFixture(map[uint]int{1: 8})
	o := f.seedOrder(order.StatusCompleted, 130, []order.OrderItem{{ProductID: 1, Quantity: 2}})
	f.userRepo.points[1] = 130

	uc := NewUpdateStatusUseCase(f.orderRepo, tr)
	if err := uc.Execute(context.Background(), o.ID, "completed"); err != nil {
		t.Fatalf("幂等设置失败: %v", err)
	}
	if f.userRepo.points[1] != 130 {
		t.Errorf("同状态设置不应变动积分: %d", f.userRepo.points[1])
	}
	if f.productRepo.stocks[1] != 8 {
		t.Errorf("同状态设置不应变动库存: %d", f.productRepo.stocks[1])
	}
	if len(f.publisher.completed) != 0 {
		t.Error("同状态设置不应发布通知")
	}
}

// TestAdminUpdateStatus_UnknownStatus 非法状态字符串拒绝
func TestAdminUpdateStatus_UnknownStatus(t *testing.T) {
	tr, f := newTransitionFixture(map[uint]int{})
	o := f.seedOrder(order.StatusPending, 10, nil)

	uc := NewUpdateStatusUseCase(f.orderRepo, tr)
	if err := uc.Execute(context.Background(), o.ID, "refunded"); err != order.ErrUnknownStatus {
		t.Errorf("非法状态应返回ErrUnknownStatus, 实际: %v", err)
	}
}

// TestTransition_ShippingNotification 发货流转发布含明细的发货事件
func TestTransition_ShippingNotification(t *testing.T) {
	tr, f := newTransitionFixture(map[uint]int{})
	o := f.seedOrder(order.StatusPending, 130, nil)
	f.orderRepo.views[o.ID] = []order.ItemView{
		{ProductID: 1, ProductName: "Go程序设计语言", Quantity: 2, Price: 50000},
	}

	uc := NewUpdateStatusUseCase(f.orderRepo, tr)
	if err := uc.Execute(context.Background(), o.ID, "shipping"); err != nil {
		t.Fatalf("发货失败: %v", err)
	}

	if len(f.publisher.shipping) != 1 {
		t.Fatalf("应发布1条发货事件, 实际: %d", len(f.publisher.shipping))
	}
	event := f.publisher.shipping[0]
	if event.Email != "zhangsan@example.com" || len(event.Items) != 1 {
		t.Errorf("发货事件内容错误: %+v", event)
	}
}
