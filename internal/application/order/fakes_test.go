package order

import (
	"context"

	"github.com/zhangxy/bookshop/internal/domain/cart"
	"github.com/zhangxy/bookshop/internal/domain/order"
	"github.com/zhangxy/bookshop/internal/domain/product"
	"github.com/zhangxy/bookshop/internal/domain/user"
	"github.com/zhangxy/bookshop/internal/infrastructure/notification"
)

// 测试用内存假实现
// 事务假实现直接执行fn；需要回滚语义的用例通过restore钩子恢复假仓储状态

type fakeTxManager struct {
	calls   int
	restore func()
}

func (m *fakeTxManager) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	m.calls++
	if err := fn(ctx); err != nil {
		if m.restore != nil {
			m.restore()
		}
		return err
	}
	return nil
}

// fakeOrderRepo 内存订单仓储
type fakeOrderRepo struct {
	orders map[uint]*order.Order
	views  map[uint][]order.ItemView
	nextID uint
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{
		orders: make(map[uint]*order.Order),
		views:  make(map[uint][]order.ItemView),
		nextID: 1,
	}
}

func (r *fakeOrderRepo) Create(ctx context.Context, o *order.Order) error {
	o.ID = r.nextID
	r.nextID++
	r.orders[o.ID] = o
	return nil
}

func (r *fakeOrderRepo) FindByID(ctx context.Context, id uint) (*order.Order, error) {
	o, ok := r.orders[id]
	if !ok {
		return nil, order.ErrOrderNotFound
	}
	cp := *o
	return &cp, nil
}

func (r *fakeOrderRepo) FindByIDOfUser(ctx context.Context, id, userID uint) (*order.Order, error) {
	o, ok := r.orders[id]
	if !ok || o.UserID != userID {
		return nil, order.ErrOrderNotFound
	}
	cp := *o
	return &cp, nil
}

func (r *fakeOrderRepo) ListByUser(ctx context.Context, userID uint, page, pageSize int) ([]*order.Order, int64, error) {
	var out []*order.Order
	for _, o := range r.orders {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeOrderRepo) ListAll(ctx context.Context, status order.Status, page, pageSize int) ([]order.AdminView, int64, error) {
	return nil, 0, nil
}

func (r *fakeOrderRepo) ItemViews(ctx context.Context, orderID uint) ([]order.ItemView, error) {
	return r.views[orderID], nil
}

func (r *fakeOrderRepo) UpdateStatus(ctx context.Context, id uint, from, to order.Status) error {
	o, ok := r.orders[id]
	if !ok {
		return order.ErrOrderNotFound
	}
	if o.Status != from {
		return order.ErrInvalidTransition
	}
	o.Status = to
	return nil
}

func (r *fakeOrderRepo) HasCompletedPurchase(ctx context.Context, userID, productID uint) (bool, error) {
	for _, o := range r.orders {
		if o.UserID != userID || o.Status != order.StatusCompleted {
			continue
		}
		for _, item := range o.Items {
			if item.ProductID == productID {
				return true, nil
			}
		}
	}
	return false, nil
}

func (r *fakeOrderRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(r.orders)), nil
}

func (r *fakeOrderRepo) CompletedRevenue(ctx context.Context) (int64, error) { return 0, nil }

func (r *fakeOrderRepo) StatusStats(ctx context.Context) ([]order.StatusStat, error) {
	return nil, nil
}

func (r *fakeOrderRepo) TopProduct(ctx context.Context) (*order.TopProductStat, error) {
	return nil, nil
}

// fakeProductRepo 只关心库存账本
type fakeProductRepo struct {
	stocks map[uint]int
}

func newFakeProductRepo(stocks map[uint]int) *fakeProductRepo {
	return &fakeProductRepo{stocks: stocks}
}

func (r *fakeProductRepo) Create(ctx context.Context, p *product.Product) error { return nil }
func (r *fakeProductRepo) Update(ctx context.Context, p *product.Product) error { return nil }
func (r *fakeProductRepo) Delete(ctx context.Context, id uint) error            { return nil }

func (r *fakeProductRepo) FindByID(ctx context.Context, id uint) (*product.Product, error) {
	stock, ok := r.stocks[id]
	if !ok {
		return nil, product.ErrProductNotFound
	}
	return &product.Product{ID: id, Stock: stock}, nil
}

func (r *fakeProductRepo) List(ctx context.Context, params product.ListParams) ([]*product.Product, int64, error) {
	return nil, 0, nil
}

func (r *fakeProductRepo) LockByID(ctx context.Context, id uint) (*product.Product, error) {
	return r.FindByID(ctx, id)
}

func (r *fakeProductRepo) UpdateStock(ctx context.Context, id uint, delta int) error {
	stock, ok := r.stocks[id]
	if !ok {
		return product.ErrProductNotFound
	}
	if stock+delta < 0 {
		return product.ErrInsufficientStock
	}
	r.stocks[id] = stock + delta
	return nil
}

func (r *fakeProductRepo) ForceUpdateStock(ctx context.Context, id uint, delta int) error {
	if _, ok := r.stocks[id]; !ok {
		return product.ErrProductNotFound
	}
	r.stocks[id] += delta
	return nil
}

func (r *fakeProductRepo) CountByCategory(ctx context.Context, categoryID uint) (int64, error) {
	return 0, nil
}

// fakeCartRepo 快照固定，Clear记录调用
type fakeCartRepo struct {
	lines   []cart.Line
	cleared bool
}

func (r *fakeCartRepo) Add(ctx context.Context, userID, productID uint, quantity int) error {
	return nil
}

func (r *fakeCartRepo) UpdateQuantity(ctx context.Context, userID, productID uint, quantity int) error {
	return nil
}

func (r *fakeCartRepo) Remove(ctx context.Context, userID, productID uint) error { return nil }

func (r *fakeCartRepo) Snapshot(ctx context.Context, userID uint) ([]cart.Line, error) {
	return r.lines, nil
}

func (r *fakeCartRepo) Clear(ctx context.Context, userID uint) error {
	r.cleared = true
	r.lines = nil
	return nil
}

// fakeUserRepo 积分账本，AddPoints与SQL实现同语义（余额下限0）
type fakeUserRepo struct {
	users  map[uint]*user.User
	points map[uint]int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		users:  make(map[uint]*user.User),
		points: make(map[uint]int),
	}
}

func (r *fakeUserRepo) Create(ctx context.Context, u *user.User) error { return nil }

func (r *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	return nil, user.ErrUserNotFound
}

func (r *fakeUserRepo) FindByID(ctx context.Context, id uint) (*user.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, user.ErrUserNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) List(ctx context.Context) ([]*user.User, error) { return nil, nil }

func (r *fakeUserRepo) AddPoints(ctx context.Context, id uint, delta int) error {
	if _, ok := r.users[id]; !ok {
		return user.ErrUserNotFound
	}
	balance := r.points[id] + delta
	if balance < 0 {
		balance = 0
	}
	r.points[id] = balance
	return nil
}

func (r *fakeUserRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(r.users)), nil
}

// fakePublisher 记录已发布事件
type fakePublisher struct {
	shipping  []notification.OrderShippingEvent
	completed []notification.OrderCompletedEvent
}

func (p *fakePublisher) PublishShipping(ctx context.Context, event notification.OrderShippingEvent) {
	p.shipping = append(p.shipping, event)
}

func (p *fakePublisher) PublishCompleted(ctx context.Context, event notification.OrderCompletedEvent) {
	p.completed = append(p.completed, event)
}
