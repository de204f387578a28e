package product

import (
	"time"
)

// Product 商品实体（聚合根）
// 设计说明：
// 1. 价格使用int64存储，单位为货币最小单位（越南盾无小数位，1000盾=1积分），
//    全程整数运算，不引入浮点误差
// 2. SalePrice为促销价，nil表示无促销；实际售价见EffectivePrice
// 3. Stock是库存账本余额：只能通过Repository.UpdateStock以相对增量
//    在事务内变更，禁止读出再覆写
type Product struct {
	ID              uint
	CategoryID      uint
	Name            string
	Author          string
	Publisher       string
	PublicationYear int
	Price           int64  // 定价（标价）
	SalePrice       *int64 // 促销价（可空）
	Stock           int
	Images          []string
	Description     string
	Specs           map[string]string // 规格参数（开本、页数、ISBN等）
	Rating          float64
	ReviewCount     int
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// EffectivePrice 实际售价：有促销价用促销价，否则用定价
// 下单时以此价格生成订单明细快照
func (p *Product) EffectivePrice() int64 {
	if p.SalePrice != nil {
		return *p.SalePrice
	}
	return p.Price
}

// Cover 封面图（图片列表第一张）
func (p *Product) Cover() string {
	if len(p.Images) > 0 {
		return p.Images[0]
	}
	return ""
}

// ListParams 商品列表查询参数
type ListParams struct {
	CategoryID uint   // 0表示全部分类
	Keyword    string // 按书名/作者模糊搜索
	SortBy     string // price_asc | price_desc | 默认按上架时间降序
	Page       int
	PageSize   int
}
