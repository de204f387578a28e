package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/zhangxy/bookshop/internal/domain/order"
	apperrors "github.com/zhangxy/bookshop/pkg/errors"
)

// orderRepository 订单仓储实现(MySQL)
// 设计说明:
// 1. Create在同一事务内写入订单主表与明细表（GORM关联一并插入）
// 2. FindByIDOfUser把"不存在"与"不属于该用户"折叠为同一个错误，
//    防止通过错误差异探测他人订单
// 3. 统计查询只读主库，无需参与事务
type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository 创建订单仓储
func NewOrderRepository(db *gorm.DB) order.Repository {
	return &orderRepository{db: db}
}

// Create 创建订单及其全部明细
// 必须在事务中调用，与库存扣减、购物车清空保持原子性
func (r *orderRepository) Create(ctx context.Context, o *order.Order) error {
	model := toOrderModel(o)

	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			// 订单号冲突概率极低（同秒同随机数），直接报内部错误由上层重试
			return apperrors.Wrap(err, "订单号冲突")
		}
		return apperrors.Wrap(err, "创建订单失败")
	}

	o.ID = model.ID
	o.CreatedAt = model.CreatedAt
	o.UpdatedAt = model.UpdatedAt
	for i := range model.Items {
		o.Items[i].ID = model.Items[i].ID
		o.Items[i].OrderID = model.ID
	}
	return nil
}

// FindByID 按ID查询（含明细），不校验归属，供管理端使用
func (r *orderRepository) FindByID(ctx context.Context, id uint) (*order.Order, error) {
	var model OrderModel
	err := getDB(ctx, r.db).Preload("Items").First(&model, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, order.ErrOrderNotFound
		}
		return nil, apperrors.Wrap(err, "查询订单失败")
	}
	return toOrderEntity(&model), nil
}

// FindByIDOfUser 按ID查询并校验归属
// 非本人订单与不存在的订单返回同一个ErrOrderNotFound
func (r *orderRepository) FindByIDOfUser(ctx context.Context, id, userID uint) (*order.Order, error) {
	var model OrderModel
	err := getDB(ctx, r.db).Preload("Items").
		Where("id = ? AND user_id = ?", id, userID).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, order.ErrOrderNotFound
		}
		return nil, apperrors.Wrap(err, "查询订单失败")
	}
	return toOrderEntity(&model), nil
}

// ListByUser 查询用户自己的订单（按创建时间倒序）
func (r *orderRepository) ListByUser(ctx context.Context, userID uint, page, pageSize int) ([]*order.Order, int64, error) {
	var models []OrderModel
	var total int64

	query := getDB(ctx, r.db).Model(&OrderModel{}).Where("user_id = ?", userID)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询订单总数失败")
	}

	offset := (page - 1) * pageSize
	err := query.Preload("Items").
		Order("created_at DESC").
		Limit(pageSize).Offset(offset).
		Find(&models).Error
	if err != nil {
		return nil, 0, apperrors.Wrap(err, "查询订单列表失败")
	}

	orders := make([]*order.Order, len(models))
	for i := range models {
		orders[i] = toOrderEntity(&models[i])
	}
	return orders, total, nil
}

// ListAll 管理端订单列表（关联买家信息，按创建时间倒序）
func (r *orderRepository) ListAll(ctx context.Context, status order.Status, page, pageSize int) ([]order.AdminView, int64, error) {
	var total int64

	query := getDB(ctx, r.db).Model(&OrderModel{})
	if status != "" {
		query = query.Where("orders.status = ?", status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询订单总数失败")
	}

	var views []order.AdminView
	offset := (page - 1) * pageSize
	err := query.
		Select(`orders.id,
			orders.order_no,
			orders.user_id,
			users.name AS buyer_name,
			users.email AS buyer_email,
			orders.final_amount,
			orders.status,
			orders.payment_method,
			orders.created_at`).
		Joins("JOIN users ON users.id = orders.user_id").
		Order("orders.created_at DESC").
		Limit(pageSize).Offset(offset).
		Scan(&views).Error
	if err != nil {
		return nil, 0, apperrors.Wrap(err, "查询订单列表失败")
	}

	return views, total, nil
}

// ItemViews 订单明细视图（关联商品名称与封面）
// Unscoped关联：商品已下架也要能展示历史订单明细
func (r *orderRepository) ItemViews(ctx context.Context, orderID uint) ([]order.ItemView, error) {
	type itemRow struct {
		ProductID   uint
		ProductName string
		Images      string
		Quantity    int
		Price       int64
	}

	var rows []itemRow
	err := getDB(ctx, r.db).Model(&OrderItemModel{}).
		Select(`order_items.product_id,
			products.name AS product_name,
			products.images,
			order_items.quantity,
			order_items.price`).
		Joins("JOIN products ON products.id = order_items.product_id").
		Where("order_items.order_id = ?", orderID).
		Scan(&rows).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询订单明细失败")
	}

	views := make([]order.ItemView, len(rows))
	for i, row := range rows {
		views[i] = order.ItemView{
			ProductID:   row.ProductID,
			ProductName: row.ProductName,
			Cover:       firstImage(row.Images),
			Quantity:    row.Quantity,
			Price:       row.Price,
		}
	}
	return views, nil
}

// UpdateStatus 按旧状态条件更新订单状态（compare-and-swap）
// 必须在事务中与账本变更（库存、积分）一起调用
// 旧状态不匹配说明订单已被并发修改，回滚整个事务以撤销账本变更
func (r *orderRepository) UpdateStatus(ctx context.Context, id uint, from, to order.Status) error {
	result := getDB(ctx, r.db).Model(&OrderModel{}).
		Where("id = ? AND status = ?", id, string(from)).
		Update("status", string(to))

	if result.Error != nil {
		return apperrors.Wrap(result.Error, "更新订单状态失败")
	}
	if result.RowsAffected == 0 {
		// MySQL对值未变化的UPDATE也报告0行，需区分三种情况：
		// 订单不存在、同状态重复设置（幂等）、状态已被并发修改
		var model OrderModel
		err := getDB(ctx, r.db).Select("status").Where("id = ?", id).First(&model).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return order.ErrOrderNotFound
			}
			return apperrors.Wrap(err, "查询订单失败")
		}
		if from == to && model.Status == string(to) {
			return nil
		}
		return order.ErrInvalidTransition
	}
	return nil
}

// HasCompletedPurchase 用户是否存在包含该商品的已完成订单
func (r *orderRepository) HasCompletedPurchase(ctx context.Context, userID, productID uint) (bool, error) {
	var count int64
	err := getDB(ctx, r.db).Model(&OrderItemModel{}).
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("orders.user_id = ? AND orders.status = ? AND order_items.product_id = ?",
			userID, order.StatusCompleted, productID).
		Count(&count).Error
	if err != nil {
		return false, apperrors.Wrap(err, "查询购买记录失败")
	}
	return count > 0, nil
}

// Count 订单总数
func (r *orderRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := getDB(ctx, r.db).Model(&OrderModel{}).Count(&total).Error; err != nil {
		return 0, apperrors.Wrap(err, "统计订单总数失败")
	}
	return total, nil
}

// CompletedRevenue 已完成订单的实付金额合计
func (r *orderRepository) CompletedRevenue(ctx context.Context) (int64, error) {
	var revenue int64
	err := getDB(ctx, r.db).Model(&OrderModel{}).
		Where("status = ?", order.StatusCompleted).
		Select("COALESCE(SUM(final_amount), 0)").
		Scan(&revenue).Error
	if err != nil {
		return 0, apperrors.Wrap(err, "统计营收失败")
	}
	return revenue, nil
}

// StatusStats 按状态分组的订单数
func (r *orderRepository) StatusStats(ctx context.Context) ([]order.StatusStat, error) {
	var stats []order.StatusStat
	err := getDB(ctx, r.db).Model(&OrderModel{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&stats).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "统计订单状态分布失败")
	}
	return stats, nil
}

// TopProduct 已完成订单中销量最高的商品
// 无完成订单时返回nil，不报错
func (r *orderRepository) TopProduct(ctx context.Context) (*order.TopProductStat, error) {
	var stat order.TopProductStat
	err := getDB(ctx, r.db).Model(&OrderItemModel{}).
		Select(`order_items.product_id,
			products.name AS product_name,
			SUM(order_items.quantity) AS total_sold`).
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Joins("JOIN products ON products.id = order_items.product_id").
		Where("orders.status = ?", order.StatusCompleted).
		Group("order_items.product_id, products.name").
		Order("total_sold DESC").
		Limit(1).
		Scan(&stat).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "统计热销商品失败")
	}
	if stat.ProductID == 0 {
		return nil, nil
	}
	return &stat, nil
}

// =========================================
// 辅助函数:模型转换
// =========================================

// toOrderModel 领域实体 → GORM模型
func toOrderModel(o *order.Order) *OrderModel {
	items := make([]OrderItemModel, len(o.Items))
	for i, item := range o.Items {
		items[i] = OrderItemModel{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
		}
	}

	return &OrderModel{
		ID:              o.ID,
		OrderNo:         o.OrderNo,
		UserID:          o.UserID,
		TotalAmount:     o.TotalAmount,
		FinalAmount:     o.FinalAmount,
		PointsEarned:    o.PointsEarned,
		Status:          string(o.Status),
		PaymentMethod:   o.PaymentMethod,
		ShippingName:    o.Shipping.Name,
		ShippingPhone:   o.Shipping.Phone,
		ShippingAddress: o.Shipping.Address,
		ShippingNote:    o.Shipping.Note,
		Items:           items,
	}
}

// toOrderEntity GORM模型 → 领域实体
func toOrderEntity(model *OrderModel) *order.Order {
	items := make([]order.OrderItem, len(model.Items))
	for i, item := range model.Items {
		items[i] = order.OrderItem{
			ID:        item.ID,
			OrderID:   item.OrderID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
		}
	}

	return &order.Order{
		ID:            model.ID,
		OrderNo:       model.OrderNo,
		UserID:        model.UserID,
		TotalAmount:   model.TotalAmount,
		FinalAmount:   model.FinalAmount,
		PointsEarned:  model.PointsEarned,
		Status:        order.Status(model.Status),
		PaymentMethod: model.PaymentMethod,
		Shipping: order.ShippingInfo{
			Name:    model.ShippingName,
			Phone:   model.ShippingPhone,
			Address: model.ShippingAddress,
			Note:    model.ShippingNote,
		},
		Items:     items,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
}
