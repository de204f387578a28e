package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"

	"github.com/zhangxy/bookshop/internal/infrastructure/config"
	"github.com/zhangxy/bookshop/pkg/circuitbreaker"
	"github.com/zhangxy/bookshop/pkg/logger"
	"github.com/zhangxy/bookshop/pkg/metrics"
	"github.com/zhangxy/bookshop/pkg/mq"
)

// Mailer 邮件消费者
// 设计说明：
// 1. 消费order.shipping/order.completed事件，渲染HTML邮件经SMTP发出
// 2. SMTP调用包在熔断器里：连续失败后快速失败，避免堆积阻塞消费
// 3. 发送失败只记日志和指标，消息不重新入队（通知是尽力而为）
type Mailer struct {
	consumer *mq.Consumer
	dialer   *gomail.Dialer
	from     string
	breaker  *circuitbreaker.CircuitBreaker
}

// NewMailer 创建邮件消费者
func NewMailer(consumer *mq.Consumer, cfg config.SMTPConfig) *Mailer {
	return &Mailer{
		consumer: consumer,
		dialer:   gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:     cfg.From,
		breaker: circuitbreaker.NewCircuitBreaker("smtp", circuitbreaker.Config{
			MaxRequests: 3,
			Interval:    time.Minute,
			Timeout:     30 * time.Second,
			ReadyToTrip: func(counts circuitbreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 5
			},
		}),
	}
}

// Run 启动消费循环，阻塞直到ctx取消
func (m *Mailer) Run(ctx context.Context) error {
	return m.consumer.Consume(ctx, func(routingKey string, body []byte) error {
		switch routingKey {
		case RouteOrderShipping:
			m.handleShipping(body)
		case RouteOrderCompleted:
			m.handleCompleted(body)
		default:
			logger.L().Warn("未知事件路由键", zap.String("routing_key", routingKey))
		}
		// 邮件失败不触发重试，始终ack
		return nil
	})
}

func (m *Mailer) handleShipping(body []byte) {
	var event OrderShippingEvent
	if err := json.Unmarshal(body, &event); err != nil {
		logger.L().Error("发货事件解码失败", zap.Error(err))
		return
	}

	subject := fmt.Sprintf("您的订单 %s 已发货", event.OrderNo)
	m.send("shipping", event.Email, subject, shippingBody(event))
}

func (m *Mailer) handleCompleted(body []byte) {
	var event OrderCompletedEvent
	if err := json.Unmarshal(body, &event); err != nil {
		logger.L().Error("完成事件解码失败", zap.Error(err))
		return
	}

	subject := fmt.Sprintf("订单 %s 已完成，感谢您的购买", event.OrderNo)
	m.send("completed", event.Email, subject, completedBody(event))
}

// send 经熔断器发送邮件，结果计入指标
func (m *Mailer) send(kind, to, subject, htmlBody string) {
	err := m.breaker.Execute(func() error {
		msg := gomail.NewMessage()
		msg.SetHeader("From", m.from)
		msg.SetHeader("To", to)
		msg.SetHeader("Subject", subject)
		msg.SetBody("text/html", htmlBody)
		return m.dialer.DialAndSend(msg)
	})

	if err != nil {
		metrics.EmailSent(kind, "failure")
		logger.L().Error("邮件发送失败",
			zap.String("kind", kind),
			zap.String("to", to),
			zap.Error(err))
		return
	}

	metrics.EmailSent(kind, "success")
	logger.L().Info("邮件发送成功",
		zap.String("kind", kind),
		zap.String("to", to))
}

// shippingBody 发货通知邮件正文
func shippingBody(event OrderShippingEvent) string {
	var rows strings.Builder
	for _, item := range event.Items {
		rows.WriteString(fmt.Sprintf(
			"<tr><td>%s</td><td>×%d</td><td>%d</td></tr>",
			item.ProductName, item.Quantity, item.Price))
	}

	return fmt.Sprintf(`<html><body>
<p>%s，您好：</p>
<p>您的订单 <b>%s</b> 已发货，商品清单：</p>
<table border="1" cellpadding="4" cellspacing="0">
<tr><th>商品</th><th>数量</th><th>单价</th></tr>
%s
</table>
<p>收货地址：%s</p>
<p>请保持电话畅通，注意查收。</p>
</body></html>`,
		event.BuyerName, event.OrderNo, rows.String(), event.ShippingAddress)
}

// completedBody 完成感谢邮件正文
func completedBody(event OrderCompletedEvent) string {
	return fmt.Sprintf(`<html><body>
<p>%s，您好：</p>
<p>您的订单 <b>%s</b> 已完成，实付金额 <b>%d</b>。</p>
<p>本单已为您累计 <b>%d</b> 积分，感谢您的惠顾，期待再次光临。</p>
</body></html>`,
		event.BuyerName, event.OrderNo, event.FinalAmount, event.PointsEarned)
}
