package product

import (
	"context"

	"github.com/zhangxy/bookshop/internal/domain/product"
)

// ListProductsUseCase 商品列表用例（公开接口）
type ListProductsUseCase struct {
	productRepo product.Repository
}

// NewListProductsUseCase 创建商品列表用例
func NewListProductsUseCase(productRepo product.Repository) *ListProductsUseCase {
	return &ListProductsUseCase{productRepo: productRepo}
}

// ListRequest 列表查询请求
type ListRequest struct {
	CategoryID uint
	Keyword    string
	SortBy     string // price_asc | price_desc | 默认按上架时间降序
	Page       int
	PageSize   int
}

// ProductSummary 商品列表行
type ProductSummary struct {
	ID             uint   `json:"id"`
	Name           string `json:"name"`
	Author         string `json:"author"`
	Price          int64  `json:"price"`
	SalePrice      *int64 `json:"sale_price"`
	EffectivePrice int64  `json:"effective_price"`
	Stock          int    `json:"stock"`
	Cover          string `json:"cover"`
	Rating         float64 `json:"rating"`
	ReviewCount    int    `json:"review_count"`
}

// Execute 执行列表查询
func (uc *ListProductsUseCase) Execute(ctx context.Context, req ListRequest) ([]ProductSummary, int64, error) {
	if req.Page <= 0 {
		req.Page = 1
	}
	if req.PageSize <= 0 || req.PageSize > 100 {
		req.PageSize = 20
	}

	products, total, err := uc.productRepo.List(ctx, product.ListParams{
		CategoryID: req.CategoryID,
		Keyword:    req.Keyword,
		SortBy:     req.SortBy,
		Page:       req.Page,
		PageSize:   req.PageSize,
	})
	if err != nil {
		return nil, 0, err
	}

	summaries := make([]ProductSummary, len(products))
	for i, p := range products {
		summaries[i] = ProductSummary{
			ID:             p.ID,
			Name:           p.Name,
			Author:         p.Author,
			Price:          p.Price,
			SalePrice:      p.SalePrice,
			EffectivePrice: p.EffectivePrice(),
			Stock:          p.Stock,
			Cover:          p.Cover(),
			Rating:         p.Rating,
			ReviewCount:    p.ReviewCount,
		}
	}
	return summaries, total, nil
}
