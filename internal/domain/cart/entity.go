package cart

// Item 购物车条目
// 生命周期：加入购物车时创建，下单结算时整体消费（删除）
// 只保存ProductID和数量，价格永远在结算时按商品当前售价快照
type Item struct {
	ID        uint
	UserID    uint
	ProductID uint
	Quantity  int
}

// Line 购物车视图行（关联商品后的展示数据）
type Line struct {
	ProductID   uint   `json:"product_id"`
	ProductName string `json:"product_name"`
	UnitPrice   int64  `json:"unit_price"` // 实际售价（促销价优先）
	Quantity    int    `json:"quantity"`
	Stock       int    `json:"stock"`
	Cover       string `json:"cover"`
}

// Subtotal 行小计
func (l Line) Subtotal() int64 {
	return l.UnitPrice * int64(l.Quantity)
}
