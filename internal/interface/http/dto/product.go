package dto

// SaveProductRequest 创建/更新商品请求（管理端）
type SaveProductRequest struct {
	CategoryID      uint              `json:"category_id" binding:"required"`
	Name            string            `json:"name" binding:"required,max=200"`
	Author          string            `json:"author" binding:"max=100"`
	Publisher       string            `json:"publisher" binding:"max=100"`
	PublicationYear int               `json:"publication_year"`
	Price           int64             `json:"price" binding:"required,gt=0"`
	SalePrice       *int64            `json:"sale_price"`
	Stock           int               `json:"stock" binding:"gte=0"` // 仅创建时生效
	Images          []string          `json:"images"`
	Description     string            `json:"description"`
	Specs           map[string]string `json:"specs"`
}

// RestockRequest 补货请求（管理端）
type RestockRequest struct {
	Quantity int `json:"quantity" binding:"required,gt=0"`
}

// SaveCategoryRequest 创建分类请求（管理端）
type SaveCategoryRequest struct {
	Name        string `json:"name" binding:"required,max=50"`
	Description string `json:"description" binding:"max=255"`
}
