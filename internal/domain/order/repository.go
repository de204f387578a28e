package order

import (
	"context"
	"time"
)

// ItemView 订单明细的展示视图（明细快照 + 商品当前名称/封面）
type ItemView struct {
	ProductID   uint   `json:"product_id"`
	ProductName string `json:"product_name"`
	Cover       string `json:"cover"`
	Quantity    int    `json:"quantity"`
	Price       int64  `json:"price"`
}

// AdminView 管理后台订单列表行（关联买家信息）
type AdminView struct {
	ID            uint      `json:"id"`
	OrderNo       string    `json:"order_no"`
	UserID        uint      `json:"user_id"`
	BuyerName     string    `json:"buyer_name"`
	BuyerEmail    string    `json:"buyer_email"`
	FinalAmount   int64     `json:"final_amount"`
	Status        Status    `json:"status"`
	PaymentMethod string    `json:"payment_method"`
	CreatedAt     time.Time `json:"created_at"`
}

// StatusStat 按状态的订单数量统计
type StatusStat struct {
	Status Status `json:"status"`
	Count  int64  `json:"count"`
}

// TopProductStat 销量最高商品统计（仅计入completed订单）
type TopProductStat struct {
	ProductID   uint   `json:"product_id"`
	ProductName string `json:"product_name"`
	TotalSold   int64  `json:"total_sold"`
}

// Repository 订单仓储接口
// 设计说明：
// 1. FindByIDOfUser把"不存在"和"不属于该用户"统一折叠为ErrOrderNotFound，
//    避免通过错误差异探测他人订单的存在性
// 2. 所有写方法都依赖ctx中的事务句柄（TxManager注入），
//    Create必须与库存扣减在同一事务内执行
type Repository interface {
	// Create 创建订单及其全部明细（同一事务）
	Create(ctx context.Context, o *Order) error

	// FindByID 按ID查询（含明细），不校验归属，供管理端使用
	FindByID(ctx context.Context, id uint) (*Order, error)

	// FindByIDOfUser 按ID查询并校验归属，非本人订单返回ErrOrderNotFound
	FindByIDOfUser(ctx context.Context, id, userID uint) (*Order, error)

	// ListByUser 查询用户自己的订单（按创建时间倒序）
	ListByUser(ctx context.Context, userID uint, page, pageSize int) ([]*Order, int64, error)

	// ListAll 管理端订单列表（关联买家，按创建时间倒序，可按状态筛选）
	ListAll(ctx context.Context, status Status, page, pageSize int) ([]AdminView, int64, error)

	// ItemViews 订单明细视图（关联商品名称与封面）
	ItemViews(ctx context.Context, orderID uint) ([]ItemView, error)

	// UpdateStatus 将订单状态由 from 改为 to
	// 仅当当前状态等于 from 时生效，订单不存在返回 ErrOrderNotFound，
	// 状态已被并发修改返回 ErrInvalidTransition
	UpdateStatus(ctx context.Context, id uint, from, to Status) error

	// HasCompletedPurchase 用户是否存在包含该商品的已完成订单（评价资格校验）
	HasCompletedPurchase(ctx context.Context, userID, productID uint) (bool, error)

	// ===== 管理后台统计 =====

	// Count 订单总数
	Count(ctx context.Context) (int64, error)

	// CompletedRevenue 已完成订单的实付金额合计
	CompletedRevenue(ctx context.Context) (int64, error)

	// StatusStats 按状态分组的订单数
	StatusStats(ctx context.Context) ([]StatusStat, error)

	// TopProduct 已完成订单中销量最高的商品（无完成订单时返回nil）
	TopProduct(ctx context.Context) (*TopProductStat, error)
}
