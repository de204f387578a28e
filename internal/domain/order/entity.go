package order

import (
	"time"
)

// Status 订单状态
// 设计说明：
// 1. 封闭枚举：入口处用ParseStatus校验，拒绝未知状态字符串，
//    不信任调用方输入（包括管理端）
// 2. 底层用string存储，与接口层/数据库保持同一组字面值
type Status string

const (
	StatusPending   Status = "pending"   // 待发货
	StatusShipping  Status = "shipping"  // 配送中
	StatusCompleted Status = "completed" // 已完成
	StatusCancelled Status = "cancelled" // 已取消
	StatusReturned  Status = "returned"  // 已退货
)

// AllStatuses 全部合法状态（管理后台下拉、统计用）
var AllStatuses = []Status{
	StatusPending, StatusShipping, StatusCompleted, StatusCancelled, StatusReturned,
}

// ParseStatus 解析状态字符串，未知值返回ErrUnknownStatus
func ParseStatus(s string) (Status, error) {
	status := Status(s)
	for _, valid := range AllStatuses {
		if status == valid {
			return status, nil
		}
	}
	return "", ErrUnknownStatus
}

// String 实现Stringer接口
func (s Status) String() string {
	return string(s)
}

// 支付方式
const (
	PaymentCOD = "cod" // 货到付款（默认）：需管理员确认收款后才能完成
)

// PointsRate 积分兑换比例：每满1000（货币最小单位）得1积分，向下取整
const PointsRate = 1000

// ReturnWindow 退货期限：下单后7天内（含第7天整点边界，超过即拒绝）
const ReturnWindow = 7 * 24 * time.Hour

// ShippingInfo 收货信息
type ShippingInfo struct {
	Name    string
	Phone   string
	Address string
	Note    string
}

// Order 订单实体（聚合根）
// 设计说明：
// 1. Order是聚合根，OrderItem是子实体，二者必须在同一事务中创建
// 2. TotalAmount/FinalAmount冗余存储（下单时固化，防止商品改价影响历史订单）
// 3. PointsEarned在创建时一次性算定，之后不再重算；
//    状态流转只改变这些积分对用户余额的"生效与否"
// 4. 订单永不物理删除
type Order struct {
	ID            uint
	OrderNo       string // 订单号（业务主键，全局唯一）
	UserID        uint
	TotalAmount   int64  // 明细合计
	FinalAmount   int64  // 实付金额（当前无优惠引擎，恒等于TotalAmount）
	PointsEarned  int    // 完成后可获得的积分（创建时固化）
	Status        Status
	PaymentMethod string
	Shipping      ShippingInfo
	Items         []OrderItem
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// OrderItem 订单明细项
// Price记录下单时的实际售价快照，独立于商品后续调价
type OrderItem struct {
	ID        uint
	OrderID   uint
	ProductID uint
	Quantity  int
	Price     int64
}

// Subtotal 明细小计
func (i OrderItem) Subtotal() int64 {
	return i.Price * int64(i.Quantity)
}

// NewOrder 创建新订单（工厂方法）
// 金额与积分在这里一次性算定：
//   - TotalAmount = Σ(明细单价 × 数量)，全整数运算
//   - FinalAmount = TotalAmount（预留优惠引擎接入点）
//   - PointsEarned = FinalAmount / PointsRate（整除截断，绝不向上取整）
func NewOrder(orderNo string, userID uint, items []OrderItem, shipping ShippingInfo, paymentMethod string) *Order {
	var total int64
	for _, item := range items {
		total += item.Subtotal()
	}

	if paymentMethod == "" {
		paymentMethod = PaymentCOD
	}

	now := time.Now()
	return &Order{
		OrderNo:       orderNo,
		UserID:        userID,
		TotalAmount:   total,
		FinalAmount:   total,
		PointsEarned:  int(total / PointsRate),
		Status:        StatusPending,
		PaymentMethod: paymentMethod,
		Shipping:      shipping,
		Items:         items,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// IsOwnedBy 订单是否属于指定用户（权限校验）
func (o *Order) IsOwnedBy(userID uint) bool {
	return o.UserID == userID
}

// CanReceive 用户自助确认收货的前置校验
// 规则：仅配送中的订单可确认；货到付款订单的完成必须由管理员
// 确认收款后操作（返回ErrPaymentPending）
func (o *Order) CanReceive() error {
	if o.Status != StatusShipping {
		return ErrInvalidTransition
	}
	if o.PaymentMethod == PaymentCOD {
		return ErrPaymentPending
	}
	return nil
}

// CanCancel 用户自助取消的前置校验：仅待发货订单可取消
func (o *Order) CanCancel() error {
	if o.Status != StatusPending {
		return ErrInvalidTransition
	}
	return nil
}

// CanReturn 用户自助退货的前置校验
// 规则：仅已完成订单可退；下单时刻起window时间内有效，
// 恰好到期边界允许，超过即拒绝；window非正时取默认7天
func (o *Order) CanReturn(now time.Time, window time.Duration) error {
	if o.Status != StatusCompleted {
		return ErrInvalidTransition
	}
	if window <= 0 {
		window = ReturnWindow
	}
	if now.Sub(o.CreatedAt) > window {
		return ErrReturnExpired
	}
	return nil
}
