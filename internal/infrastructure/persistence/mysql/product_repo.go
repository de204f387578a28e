package mysql

import (
	"context"
	"encoding/json"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/zhangxy/bookshop/internal/domain/product"
	apperrors "github.com/zhangxy/bookshop/pkg/errors"
	"github.com/zhangxy/bookshop/pkg/logger"
)

// productRepository 商品仓储实现(MySQL)
// 设计说明:
// 1. 实现domain/product/repository.go定义的接口
// 2. Images/Specs在模型里是JSON文本，这里负责编解码
// 3. UpdateStock是库存账本唯一写入口，单条UPDATE带守卫条件
type productRepository struct {
	db *gorm.DB
}

// NewProductRepository 创建商品仓储
func NewProductRepository(db *gorm.DB) product.Repository {
	return &productRepository{db: db}
}

// Create 创建商品
func (r *productRepository) Create(ctx context.Context, p *product.Product) error {
	model, err := toProductModel(p)
	if err != nil {
		return apperrors.Wrap(err, "序列化商品字段失败")
	}

	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		return apperrors.Wrap(err, "创建商品失败")
	}

	p.ID = model.ID
	p.CreatedAt = model.CreatedAt
	p.UpdatedAt = model.UpdatedAt
	return nil
}

// Update 更新商品信息
// 注意：Stock不在此更新，库存只走UpdateStock账本入口
func (r *productRepository) Update(ctx context.Context, p *product.Product) error {
	model, err := toProductModel(p)
	if err != nil {
		return apperrors.Wrap(err, "序列化商品字段失败")
	}

	result := getDB(ctx, r.db).Model(&ProductModel{}).
		Where("id = ?", p.ID).
		Select("category_id", "name", "author", "publisher", "publication_year",
			"price", "sale_price", "images", "description", "specs").
		Updates(model)

	if result.Error != nil {
		return apperrors.Wrap(result.Error, "更新商品失败")
	}
	if result.RowsAffected == 0 {
		// Updates对无变化的行也返回0，确认商品是否存在
		var count int64
		if err := getDB(ctx, r.db).Model(&ProductModel{}).
			Where("id = ?", p.ID).Count(&count).Error; err != nil {
			return apperrors.Wrap(err, "查询商品失败")
		}
		if count == 0 {
			return product.ErrProductNotFound
		}
	}
	return nil
}

// Delete 下架商品(软删除)
func (r *productRepository) Delete(ctx context.Context, id uint) error {
	result := getDB(ctx, r.db).Delete(&ProductModel{}, id)
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "删除商品失败")
	}
	if result.RowsAffected == 0 {
		return product.ErrProductNotFound
	}
	return nil
}

// FindByID 根据ID查找商品
func (r *productRepository) FindByID(ctx context.Context, id uint) (*product.Product, error) {
	var model ProductModel
	err := getDB(ctx, r.db).First(&model, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, product.ErrProductNotFound
		}
		return nil, apperrors.Wrap(err, "查询商品失败")
	}
	return toProductEntity(&model), nil
}

// List 分页查询商品列表
func (r *productRepository) List(ctx context.Context, params product.ListParams) ([]*product.Product, int64, error) {
	var models []ProductModel
	var total int64

	query := getDB(ctx, r.db).Model(&ProductModel{})

	if params.CategoryID > 0 {
		query = query.Where("category_id = ?", params.CategoryID)
	}

	// 关键词搜索(书名、作者)
	if params.Keyword != "" {
		keyword := "%" + params.Keyword + "%"
		query = query.Where("name LIKE ? OR author LIKE ?", keyword, keyword)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询商品总数失败")
	}

	// 排序：实际售价 = COALESCE(促销价, 定价)
	switch params.SortBy {
	case "price_asc":
		query = query.Order("COALESCE(sale_price, price) ASC")
	case "price_desc":
		query = query.Order("COALESCE(sale_price, price) DESC")
	default:
		query = query.Order("created_at DESC") // 默认按上架时间降序
	}

	offset := (params.Page - 1) * params.PageSize
	query = query.Limit(params.PageSize).Offset(offset)

	if err := query.Find(&models).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询商品列表失败")
	}

	products := make([]*product.Product, len(models))
	for i := range models {
		products[i] = toProductEntity(&models[i])
	}
	return products, total, nil
}

// LockByID 悲观锁查询商品(下单扣库存前锁定行)
// SELECT ... FOR UPDATE，必须在事务中调用
func (r *productRepository) LockByID(ctx context.Context, id uint) (*product.Product, error) {
	var model ProductModel
	err := getDB(ctx, r.db).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&model, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, product.ErrProductNotFound
		}
		return nil, apperrors.Wrap(err, "锁定商品失败")
	}
	return toProductEntity(&model), nil
}

// UpdateStock 库存增量更新(账本写入口)
// UPDATE products SET stock = stock + delta WHERE id = ? AND stock + delta >= 0
// 守卫条件防止库存为负；必须在事务中调用参与行锁串行化
func (r *productRepository) UpdateStock(ctx context.Context, id uint, delta int) error {
	if delta == 0 {
		return nil
	}

	db := getDB(ctx, r.db)
	result := db.Model(&ProductModel{}).
		Where("id = ?", id).
		Where("stock + ? >= 0", delta).
		Update("stock", gorm.Expr("stock + ?", delta))

	if result.Error != nil {
		return apperrors.Wrap(result.Error, "更新库存失败")
	}

	if result.RowsAffected == 0 {
		// 可能是商品不存在，或者库存不足，再查一次确定原因
		var model ProductModel
		if err := db.First(&model, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return product.ErrProductNotFound
			}
			return apperrors.Wrap(err, "查询商品失败")
		}
		return product.ErrInsufficientStock
	}

	return nil
}

// ForceUpdateStock 无守卫的库存增量，允许余额为负
// 仅在允许超卖的配置下由下单路径使用
func (r *productRepository) ForceUpdateStock(ctx context.Context, id uint, delta int) error {
	if delta == 0 {
		return nil
	}

	result := getDB(ctx, r.db).Model(&ProductModel{}).
		Where("id = ?", id).
		Update("stock", gorm.Expr("stock + ?", delta))

	if result.Error != nil {
		return apperrors.Wrap(result.Error, "更新库存失败")
	}
	if result.RowsAffected == 0 {
		return product.ErrProductNotFound
	}
	return nil
}

// CountByCategory 分类下的商品数量
func (r *productRepository) CountByCategory(ctx context.Context, categoryID uint) (int64, error) {
	var count int64
	err := getDB(ctx, r.db).Model(&ProductModel{}).
		Where("category_id = ?", categoryID).
		Count(&count).Error
	if err != nil {
		return 0, apperrors.Wrap(err, "统计分类商品数失败")
	}
	return count, nil
}

// =========================================
// 辅助函数:模型转换
// =========================================

// toProductModel 领域实体 → GORM模型（Images/Specs编码为JSON文本）
func toProductModel(p *product.Product) (*ProductModel, error) {
	images, err := json.Marshal(p.Images)
	if err != nil {
		return nil, err
	}
	specs, err := json.Marshal(p.Specs)
	if err != nil {
		return nil, err
	}

	return &ProductModel{
		ID:              p.ID,
		CategoryID:      p.CategoryID,
		Name:            p.Name,
		Author:          p.Author,
		Publisher:       p.Publisher,
		PublicationYear: p.PublicationYear,
		Price:           p.Price,
		SalePrice:       p.SalePrice,
		Stock:           p.Stock,
		Images:          string(images),
		Description:     p.Description,
		Specs:           string(specs),
		Rating:          p.Rating,
		ReviewCount:     p.ReviewCount,
	}, nil
}

// toProductEntity GORM模型 → 领域实体
func toProductEntity(model *ProductModel) *product.Product {
	p := &product.Product{
		ID:              model.ID,
		CategoryID:      model.CategoryID,
		Name:            model.Name,
		Author:          model.Author,
		Publisher:       model.Publisher,
		PublicationYear: model.PublicationYear,
		Price:           model.Price,
		SalePrice:       model.SalePrice,
		Stock:           model.Stock,
		Description:     model.Description,
		Rating:          model.Rating,
		ReviewCount:     model.ReviewCount,
		CreatedAt:       model.CreatedAt,
		UpdatedAt:       model.UpdatedAt,
	}

	// JSON字段解码失败不中断查询，记日志后按空值处理
	if model.Images != "" {
		if err := json.Unmarshal([]byte(model.Images), &p.Images); err != nil {
			logger.L().Warn("商品图片字段解码失败")
		}
	}
	if model.Specs != "" {
		if err := json.Unmarshal([]byte(model.Specs), &p.Specs); err != nil {
			logger.L().Warn("商品规格字段解码失败")
		}
	}
	return p
}
