// Package metrics 提供基于Prometheus的业务指标收集
//
// 指标设计：
// - http_requests_total / http_request_duration_seconds：请求量与耗时分布
// - bookshop_orders_created_total：下单量
// - bookshop_order_transitions_total：订单状态流转量（按old/new状态分维度）
// - bookshop_emails_sent_total：通知邮件发送结果
//
// 访问 /metrics 端点由Prometheus Server定期抓取
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "HTTP请求总数",
	}, []string{"method", "path", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP请求耗时分布",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path"})

	ordersCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bookshop_orders_created_total",
		Help: "创建成功的订单总数",
	})

	orderTransitionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bookshop_order_transitions_total",
		Help: "订单状态流转总数",
	}, []string{"from", "to"})

	emailsSentTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bookshop_emails_sent_total",
		Help: "通知邮件发送总数",
	}, []string{"kind", "result"})
)

// Handler 返回/metrics端点的gin处理函数
func Handler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}

// GinMiddleware 请求维度指标中间件
// 使用c.FullPath()而非c.Request.URL.Path，避免路径参数导致标签基数爆炸
func GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}

		httpRequestsTotal.WithLabelValues(
			c.Request.Method, path, strconv.Itoa(c.Writer.Status()),
		).Inc()
		httpRequestDuration.WithLabelValues(c.Request.Method, path).
			Observe(time.Since(start).Seconds())
	}
}

// OrderCreated 记录一次成功下单
func OrderCreated() {
	ordersCreatedTotal.Inc()
}

// OrderTransition 记录一次订单状态流转
func OrderTransition(from, to string) {
	orderTransitionsTotal.WithLabelValues(from, to).Inc()
}

// EmailSent 记录一次邮件发送结果
// kind: shipping | completed；result: success | failure
func EmailSent(kind, result string) {
	emailsSentTotal.WithLabelValues(kind, result).Inc()
}
