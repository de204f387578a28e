// Package notification 订单事件的发布与邮件消费
//
// 设计说明：
// 1. 订单状态流转的通知副作用通过RabbitMQ解耦：
//    事务提交后发布事件，邮件消费者异步发送
// 2. 通知永远是尽力而为：发布失败、SMTP失败只记日志和指标，
//    绝不影响订单事务的结果
package notification

import (
	"context"

	"go.uber.org/zap"

	"github.com/zhangxy/bookshop/pkg/logger"
	"github.com/zhangxy/bookshop/pkg/mq"
)

// 事件路由键
const (
	RouteOrderShipping  = "order.shipping"
	RouteOrderCompleted = "order.completed"
)

// OrderItemLine 事件中携带的明细行
type OrderItemLine struct {
	ProductName string `json:"product_name"`
	Quantity    int    `json:"quantity"`
	Price       int64  `json:"price"`
}

// OrderShippingEvent 订单发货事件
type OrderShippingEvent struct {
	OrderNo         string          `json:"order_no"`
	Email           string          `json:"email"`
	BuyerName       string          `json:"buyer_name"`
	ShippingAddress string          `json:"shipping_address"`
	Items           []OrderItemLine `json:"items"`
}

// OrderCompletedEvent 订单完成事件
type OrderCompletedEvent struct {
	OrderNo      string `json:"order_no"`
	Email        string `json:"email"`
	BuyerName    string `json:"buyer_name"`
	FinalAmount  int64  `json:"final_amount"`
	PointsEarned int    `json:"points_earned"`
}

// EventPublisher 订单事件发布器
// 应用层在事务提交后调用，失败只记日志（尽力而为语义）
type EventPublisher interface {
	PublishShipping(ctx context.Context, event OrderShippingEvent)
	PublishCompleted(ctx context.Context, event OrderCompletedEvent)
}

// mqEventPublisher 基于RabbitMQ的事件发布实现
type mqEventPublisher struct {
	publisher *mq.Publisher
}

// NewEventPublisher 创建事件发布器
func NewEventPublisher(publisher *mq.Publisher) EventPublisher {
	return &mqEventPublisher{publisher: publisher}
}

// PublishShipping 发布发货事件
func (p *mqEventPublisher) PublishShipping(ctx context.Context, event OrderShippingEvent) {
	if err := p.publisher.Publish(ctx, RouteOrderShipping, event); err != nil {
		logger.L().Error("发布发货事件失败",
			zap.String("order_no", event.OrderNo),
			zap.Error(err))
	}
}

// PublishCompleted 发布完成事件
func (p *mqEventPublisher) PublishCompleted(ctx context.Context, event OrderCompletedEvent) {
	if err := p.publisher.Publish(ctx, RouteOrderCompleted, event); err != nil {
		logger.L().Error("发布完成事件失败",
			zap.String("order_no", event.OrderNo),
			zap.Error(err))
	}
}

// NopEventPublisher 空实现（未配置MQ时使用）
type NopEventPublisher struct{}

func (NopEventPublisher) PublishShipping(ctx context.Context, event OrderShippingEvent)   {}
func (NopEventPublisher) PublishCompleted(ctx context.Context, event OrderCompletedEvent) {}
