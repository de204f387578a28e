package mysql

import (
	"context"
	"encoding/json"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/zhangxy/bookshop/internal/domain/cart"
	apperrors "github.com/zhangxy/bookshop/pkg/errors"
)

// cartRepository 购物车仓储实现(MySQL)
// 设计说明:
// 1. (user_id, product_id)唯一索引，重复加购走ON DUPLICATE KEY合并数量
// 2. Snapshot关联商品表取实时售价（促销价优先），下单时固化进订单明细
type cartRepository struct {
	db *gorm.DB
}

// NewCartRepository 创建购物车仓储
func NewCartRepository(db *gorm.DB) cart.Repository {
	return &cartRepository{db: db}
}

// Add 加入购物车（同一商品已存在时合并数量）
// INSERT ... ON DUPLICATE KEY UPDATE quantity = quantity + VALUES(quantity)
func (r *cartRepository) Add(ctx context.Context, userID, productID uint, quantity int) error {
	model := &CartItemModel{
		UserID:    userID,
		ProductID: productID,
		Quantity:  quantity,
	}

	err := getDB(ctx, r.db).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "product_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"quantity": gorm.Expr("quantity + ?", quantity),
		}),
	}).Create(model).Error

	if err != nil {
		return apperrors.Wrap(err, "加入购物车失败")
	}
	return nil
}

// UpdateQuantity 修改数量（数量<=0视为移除）
func (r *cartRepository) UpdateQuantity(ctx context.Context, userID, productID uint, quantity int) error {
	if quantity <= 0 {
		return r.Remove(ctx, userID, productID)
	}

	result := getDB(ctx, r.db).Model(&CartItemModel{}).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Update("quantity", quantity)

	if result.Error != nil {
		return apperrors.Wrap(result.Error, "更新购物车失败")
	}
	if result.RowsAffected == 0 {
		// 数量未变化也返回0，确认条目是否存在
		var count int64
		if err := getDB(ctx, r.db).Model(&CartItemModel{}).
			Where("user_id = ? AND product_id = ?", userID, productID).
			Count(&count).Error; err != nil {
			return apperrors.Wrap(err, "查询购物车失败")
		}
		if count == 0 {
			return apperrors.ErrCartItemNotFound
		}
	}
	return nil
}

// Remove 移除条目
func (r *cartRepository) Remove(ctx context.Context, userID, productID uint) error {
	result := getDB(ctx, r.db).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&CartItemModel{})

	if result.Error != nil {
		return apperrors.Wrap(result.Error, "移除购物车条目失败")
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrCartItemNotFound
	}
	return nil
}

// snapshotRow Snapshot查询的扫描目标
type snapshotRow struct {
	ProductID uint
	Name      string
	UnitPrice int64
	Quantity  int
	Stock     int
	Images    string
}

// Snapshot 购物车快照
// 关联商品表取实时数据：实际售价 = COALESCE(促销价, 定价)
// 已下架（软删除）的商品自动排除
func (r *cartRepository) Snapshot(ctx context.Context, userID uint) ([]cart.Line, error) {
	var rows []snapshotRow
	err := getDB(ctx, r.db).Model(&CartItemModel{}).
		Select(`cart_items.product_id,
			products.name,
			COALESCE(products.sale_price, products.price) AS unit_price,
			cart_items.quantity,
			products.stock,
			products.images`).
		Joins("JOIN products ON products.id = cart_items.product_id AND products.deleted_at IS NULL").
		Where("cart_items.user_id = ?", userID).
		Order("cart_items.created_at ASC").
		Scan(&rows).Error

	if err != nil {
		return nil, apperrors.Wrap(err, "查询购物车失败")
	}

	lines := make([]cart.Line, len(rows))
	for i, row := range rows {
		lines[i] = cart.Line{
			ProductID:   row.ProductID,
			ProductName: row.Name,
			UnitPrice:   row.UnitPrice,
			Quantity:    row.Quantity,
			Stock:       row.Stock,
			Cover:       firstImage(row.Images),
		}
	}
	return lines, nil
}

// Clear 清空用户购物车（下单成功后在同一事务中调用）
func (r *cartRepository) Clear(ctx context.Context, userID uint) error {
	err := getDB(ctx, r.db).
		Where("user_id = ?", userID).
		Delete(&CartItemModel{}).Error
	if err != nil {
		return apperrors.Wrap(err, "清空购物车失败")
	}
	return nil
}

// firstImage 从JSON图片列表取第一张作为封面
func firstImage(raw string) string {
	if raw == "" {
		return ""
	}
	var images []string
	if err := json.Unmarshal([]byte(raw), &images); err != nil || len(images) == 0 {
		return ""
	}
	return images[0]
}
