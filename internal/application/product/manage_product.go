package product

import (
	"context"

	"github.com/zhangxy/bookshop/internal/domain/category"
	"github.com/zhangxy/bookshop/internal/domain/product"
	apperrors "github.com/zhangxy/bookshop/pkg/errors"
)

// ManageProductUseCase 商品管理用例（管理后台CRUD）
// 设计说明:
// 1. 创建/更新校验分类存在性，拒绝挂到不存在的分类
// 2. 删除是软删除：商品从列表消失但历史订单明细仍可关联
// 3. 库存不在这里改：库存只走下单/取消/退货的账本路径
type ManageProductUseCase struct {
	productRepo  product.Repository
	categoryRepo category.Repository
}

// NewManageProductUseCase 创建商品管理用例
func NewManageProductUseCase(productRepo product.Repository, categoryRepo category.Repository) *ManageProductUseCase {
	return &ManageProductUseCase{productRepo: productRepo, categoryRepo: categoryRepo}
}

// SaveProductRequest 创建/更新商品请求
type SaveProductRequest struct {
	CategoryID      uint
	Name            string
	Author          string
	Publisher       string
	PublicationYear int
	Price           int64
	SalePrice       *int64
	Stock           int // 仅创建时生效（初始库存）
	Images          []string
	Description     string
	Specs           map[string]string
}

// validate 公共参数校验
func (req SaveProductRequest) validate() error {
	if req.Name == "" {
		return apperrors.New(apperrors.ErrCodeInvalidParams, "商品名称不能为空")
	}
	if req.Price <= 0 {
		return apperrors.New(apperrors.ErrCodeInvalidParams, "价格必须大于0")
	}
	if req.SalePrice != nil && (*req.SalePrice <= 0 || *req.SalePrice >= req.Price) {
		return apperrors.New(apperrors.ErrCodeInvalidParams, "促销价必须大于0且低于定价")
	}
	return nil
}

// Create 创建商品
func (uc *ManageProductUseCase) Create(ctx context.Context, req SaveProductRequest) (*product.Product, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}
	if req.Stock < 0 {
		return nil, apperrors.New(apperrors.ErrCodeInvalidParams, "初始库存不能为负")
	}

	if _, err := uc.categoryRepo.FindByID(ctx, req.CategoryID); err != nil {
		return nil, err
	}

	p := &product.Product{
		CategoryID:      req.CategoryID,
		Name:            req.Name,
		Author:          req.Author,
		Publisher:       req.Publisher,
		PublicationYear: req.PublicationYear,
		Price:           req.Price,
		SalePrice:       req.SalePrice,
		Stock:           req.Stock,
		Images:          req.Images,
		Description:     req.Description,
		Specs:           req.Specs,
	}

	if err := uc.productRepo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Update 更新商品信息（不含库存）
func (uc *ManageProductUseCase) Update(ctx context.Context, id uint, req SaveProductRequest) error {
	if err := req.validate(); err != nil {
		return err
	}

	if _, err := uc.categoryRepo.FindByID(ctx, req.CategoryID); err != nil {
		return err
	}

	// 确认商品存在
	if _, err := uc.productRepo.FindByID(ctx, id); err != nil {
		return err
	}

	return uc.productRepo.Update(ctx, &product.Product{
		ID:              id,
		CategoryID:      req.CategoryID,
		Name:            req.Name,
		Author:          req.Author,
		Publisher:       req.Publisher,
		PublicationYear: req.PublicationYear,
		Price:           req.Price,
		SalePrice:       req.SalePrice,
		Images:          req.Images,
		Description:     req.Description,
		Specs:           req.Specs,
	})
}

// Delete 下架商品（软删除）
func (uc *ManageProductUseCase) Delete(ctx context.Context, id uint) error {
	return uc.productRepo.Delete(ctx, id)
}

// Restock 管理端补货（正增量进库存账本）
func (uc *ManageProductUseCase) Restock(ctx context.Context, id uint, quantity int) error {
	if quantity <= 0 {
		return apperrors.New(apperrors.ErrCodeInvalidParams, "补货数量必须大于0")
	}
	return uc.productRepo.UpdateStock(ctx, id, quantity)
}
