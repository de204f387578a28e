package order

import (
	"context"

	"github.com/zhangxy/bookshop/internal/domain/order"
)

// OrderQueries 订单查询用例集合
// 纯读路径，不涉及事务和副作用
type OrderQueries struct {
	orderRepo order.Repository
}

// NewOrderQueries 创建订单查询用例
func NewOrderQueries(orderRepo order.Repository) *OrderQueries {
	return &OrderQueries{orderRepo: orderRepo}
}

// OrderDetail 订单详情视图
type OrderDetail struct {
	ID              uint             `json:"id"`
	OrderNo         string           `json:"order_no"`
	TotalAmount     int64            `json:"total_amount"`
	FinalAmount     int64            `json:"final_amount"`
	PointsEarned    int              `json:"points_earned"`
	Status          string           `json:"status"`
	PaymentMethod   string           `json:"payment_method"`
	ShippingName    string           `json:"shipping_name"`
	ShippingPhone   string           `json:"shipping_phone"`
	ShippingAddress string           `json:"shipping_address"`
	Note            string           `json:"note"`
	Items           []order.ItemView `json:"items"`
	CreatedAt       string           `json:"created_at"`
}

// GetDetail 用户查询自己的订单详情
// 他人订单返回ErrOrderNotFound，不暴露存在性
func (q *OrderQueries) GetDetail(ctx context.Context, userID, orderID uint) (*OrderDetail, error) {
	o, err := q.orderRepo.FindByIDOfUser(ctx, orderID, userID)
	if err != nil {
		return nil, err
	}
	return q.buildDetail(ctx, o)
}

// GetDetailAdmin 管理端查询任意订单详情
func (q *OrderQueries) GetDetailAdmin(ctx context.Context, orderID uint) (*OrderDetail, error) {
	o, err := q.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return q.buildDetail(ctx, o)
}

func (q *OrderQueries) buildDetail(ctx context.Context, o *order.Order) (*OrderDetail, error) {
	items, err := q.orderRepo.ItemViews(ctx, o.ID)
	if err != nil {
		return nil, err
	}

	return &OrderDetail{
		ID:              o.ID,
		OrderNo:         o.OrderNo,
		TotalAmount:     o.TotalAmount,
		FinalAmount:     o.FinalAmount,
		PointsEarned:    o.PointsEarned,
		Status:          o.Status.String(),
		PaymentMethod:   o.PaymentMethod,
		ShippingName:    o.Shipping.Name,
		ShippingPhone:   o.Shipping.Phone,
		ShippingAddress: o.Shipping.Address,
		Note:            o.Shipping.Note,
		Items:           items,
		CreatedAt:       o.CreatedAt.Format("2006-01-02 15:04:05"),
	}, nil
}

// OrderSummary 订单列表行（用户侧）
type OrderSummary struct {
	ID          uint   `json:"id"`
	OrderNo     string `json:"order_no"`
	FinalAmount int64  `json:"final_amount"`
	Status      string `json:"status"`
	ItemCount   int    `json:"item_count"`
	CreatedAt   string `json:"created_at"`
}

// ListMine 用户查询自己的订单列表
func (q *OrderQueries) ListMine(ctx context.Context, userID uint, page, pageSize int) ([]OrderSummary, int64, error) {
	orders, total, err := q.orderRepo.ListByUser(ctx, userID, page, pageSize)
	if err != nil {
		return nil, 0, err
	}

	summaries := make([]OrderSummary, len(orders))
	for i, o := range orders {
		count := 0
		for _, item := range o.Items {
			count += item.Quantity
		}
		summaries[i] = OrderSummary{
			ID:          o.ID,
			OrderNo:     o.OrderNo,
			FinalAmount: o.FinalAmount,
			Status:      o.Status.String(),
			ItemCount:   count,
			CreatedAt:   o.CreatedAt.Format("2006-01-02 15:04:05"),
		}
	}
	return summaries, total, nil
}

// ListAll 管理端订单列表（可按状态筛选，空字符串表示全部）
func (q *OrderQueries) ListAll(ctx context.Context, rawStatus string, page, pageSize int) ([]order.AdminView, int64, error) {
	var status order.Status
	if rawStatus != "" {
		parsed, err := order.ParseStatus(rawStatus)
		if err != nil {
			return nil, 0, err
		}
		status = parsed
	}
	return q.orderRepo.ListAll(ctx, status, page, pageSize)
}

// HasPurchased 用户是否有包含该商品的已完成订单（评价资格）
func (q *OrderQueries) HasPurchased(ctx context.Context, userID, productID uint) (bool, error) {
	return q.orderRepo.HasCompletedPurchase(ctx, userID, productID)
}
