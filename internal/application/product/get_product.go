package product

import (
	"context"

	"github.com/zhangxy/bookshop/internal/domain/product"
)

// GetProductUseCase 商品详情用例（公开接口）
type GetProductUseCase struct {
	productRepo product.Repository
}

// NewGetProductUseCase 创建商品详情用例
func NewGetProductUseCase(productRepo product.Repository) *GetProductUseCase {
	return &GetProductUseCase{productRepo: productRepo}
}

// ProductDetail 商品详情视图
type ProductDetail struct {
	ID              uint              `json:"id"`
	CategoryID      uint              `json:"category_id"`
	Name            string            `json:"name"`
	Author          string            `json:"author"`
	Publisher       string            `json:"publisher"`
	PublicationYear int               `json:"publication_year"`
	Price           int64             `json:"price"`
	SalePrice       *int64            `json:"sale_price"`
	EffectivePrice  int64             `json:"effective_price"`
	Stock           int               `json:"stock"`
	Images          []string          `json:"images"`
	Description     string            `json:"description"`
	Specs           map[string]string `json:"specs"`
	Rating          float64           `json:"rating"`
	ReviewCount     int               `json:"review_count"`
}

// Execute 执行详情查询
func (uc *GetProductUseCase) Execute(ctx context.Context, id uint) (*ProductDetail, error) {
	p, err := uc.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return &ProductDetail{
		ID:              p.ID,
		CategoryID:      p.CategoryID,
		Name:            p.Name,
		Author:          p.Author,
		Publisher:       p.Publisher,
		PublicationYear: p.PublicationYear,
		Price:           p.Price,
		SalePrice:       p.SalePrice,
		EffectivePrice:  p.EffectivePrice(),
		Stock:           p.Stock,
		Images:          p.Images,
		Description:     p.Description,
		Specs:           p.Specs,
		Rating:          p.Rating,
		ReviewCount:     p.ReviewCount,
	}, nil
}
