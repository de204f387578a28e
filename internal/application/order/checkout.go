package order

import (
	"context"

	"github.com/zhangxy/bookshop/internal/domain/cart"
	"github.com/zhangxy/bookshop/internal/domain/order"
	"github.com/zhangxy/bookshop/internal/domain/product"
	"github.com/zhangxy/bookshop/internal/domain/storage"
	"github.com/zhangxy/bookshop/pkg/metrics"
)

// CheckoutUseCase 购物车结算用例
// 设计说明:这是整个系统最核心的用例
// 涉及:事务处理、并发控制（防超卖）、价格快照
type CheckoutUseCase struct {
	orderRepo     order.Repository
	productRepo   product.Repository
	cartRepo      cart.Repository
	txManager     storage.TxManager
	allowOversell bool
}

// NewCheckoutUseCase 创建结算用例
func NewCheckoutUseCase(
	orderRepo order.Repository,
	productRepo product.Repository,
	cartRepo cart.Repository,
	txManager storage.TxManager,
	allowOversell bool,
) *CheckoutUseCase {
	return &CheckoutUseCase{
		orderRepo:     orderRepo,
		productRepo:   productRepo,
		cartRepo:      cartRepo,
		txManager:     txManager,
		allowOversell: allowOversell,
	}
}

// CheckoutRequest 结算请求DTO
type CheckoutRequest struct {
	UserID          uint   // 买家用户ID(从JWT中提取)
	ShippingName    string // 收货人
	ShippingPhone   string // 收货电话
	ShippingAddress string // 收货地址
	Note            string // 备注
	PaymentMethod   string // 支付方式（空值默认cod）
}

// CheckoutResponse 结算响应DTO
type CheckoutResponse struct {
	OrderID      uint   `json:"order_id"`
	OrderNo      string `json:"order_no"`
	FinalAmount  int64  `json:"final_amount"`
	PointsEarned int    `json:"points_earned"`
	Status       string `json:"status"`
	CreatedAt    string `json:"created_at"`
}

// Execute 执行结算
//
// 完整流程（单事务）:
//  1. 读取购物车快照（关联商品实时售价，促销价优先）
//  2. 空购物车拒单
//  3. 逐行锁定商品并扣减库存（悲观锁防超卖）
//  4. 以快照价格创建订单及明细（pending状态）
//  5. 清空购物车
//
// 任意一步失败整体回滚：不会出现扣了库存没有订单、
// 或下了单购物车还在的中间态
func (uc *CheckoutUseCase) Execute(ctx context.Context, req CheckoutRequest) (*CheckoutResponse, error) {
	var result *order.Order

	err := uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		// 步骤1:购物车快照（参与事务，价格在此刻固化）
		lines, err := uc.cartRepo.Snapshot(txCtx, req.UserID)
		if err != nil {
			return err
		}
		if len(lines) == 0 {
			return order.ErrEmptyCart
		}

		// 步骤2:逐行扣减库存
		for _, line := range lines {
			if uc.allowOversell {
				// 不校验余额，库存可为负（缺货照常接单，线下补货）
				if err := uc.productRepo.ForceUpdateStock(txCtx, line.ProductID, -line.Quantity); err != nil {
					return err
				}
				continue
			}

			// SELECT FOR UPDATE锁定商品行，其他事务必须等待
			// 当前事务COMMIT或ROLLBACK后才能扣减同一商品
			p, err := uc.productRepo.LockByID(txCtx, line.ProductID)
			if err != nil {
				return err
			}
			if p.Stock < line.Quantity {
				return product.ErrInsufficientStock
			}
			if err := uc.productRepo.UpdateStock(txCtx, line.ProductID, -line.Quantity); err != nil {
				return err
			}
		}

		// 步骤3:以快照价格创建订单
		// 价格来自数据库当前售价而非前端提交，防止改价攻击
		items := make([]order.OrderItem, len(lines))
		for i, line := range lines {
			items[i] = order.OrderItem{
				ProductID: line.ProductID,
				Quantity:  line.Quantity,
				Price:     line.UnitPrice,
			}
		}

		newOrder := order.NewOrder(
			order.GenerateOrderNo(),
			req.UserID,
			items,
			order.ShippingInfo{
				Name:    req.ShippingName,
				Phone:   req.ShippingPhone,
				Address: req.ShippingAddress,
				Note:    req.Note,
			},
			req.PaymentMethod,
		)

		if err := uc.orderRepo.Create(txCtx, newOrder); err != nil {
			return err
		}

		// 步骤4:清空购物车（同一事务，失败则整单回滚）
		if err := uc.cartRepo.Clear(txCtx, req.UserID); err != nil {
			return err
		}

		result = newOrder
		return nil
	})

	if err != nil {
		return nil, err
	}

	metrics.OrderCreated()

	return &CheckoutResponse{
		OrderID:      result.ID,
		OrderNo:      result.OrderNo,
		FinalAmount:  result.FinalAmount,
		PointsEarned: result.PointsEarned,
		Status:       result.Status.String(),
		CreatedAt:    result.CreatedAt.Format("2006-01-02 15:04:05"),
	}, nil
}
