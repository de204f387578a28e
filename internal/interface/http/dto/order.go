package dto

// AddCartItemRequest 加购请求
type AddCartItemRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required,gt=0,lte=999"`
}

// UpdateCartItemRequest 修改购物车数量请求
// 数量0表示移除条目
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" binding:"gte=0,lte=999"`
}

// CheckoutRequest 结算请求
type CheckoutRequest struct {
	ShippingName    string `json:"shipping_name" binding:"required,max=50"`
	ShippingPhone   string `json:"shipping_phone" binding:"required,max=30"`
	ShippingAddress string `json:"shipping_address" binding:"required,max=255"`
	Note            string `json:"note" binding:"max=255"`
	PaymentMethod   string `json:"payment_method" binding:"omitempty,oneof=cod online"`
}

// UpdateOrderStatusRequest 管理端改订单状态请求
// 合法性由领域层ParseStatus校验，这里不做枚举绑定
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateSettingsRequest 站点配置写入请求（管理端）
type UpdateSettingsRequest struct {
	Settings []SettingItem `json:"settings" binding:"required,dive"`
}

// SettingItem 单个配置项
type SettingItem struct {
	Key   string `json:"key" binding:"required"`
	Value string `json:"value"`
}
