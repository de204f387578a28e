package order

import (
	"testing"
	"time"
)

// TestParseStatus 测试状态解析：合法值通过，未知值拒绝
func TestParseStatus(t *testing.T) {
	for _, s := range AllStatuses {
		got, err := ParseStatus(string(s))
		if err != nil {
			t.Errorf("合法状态%q解析失败: %v", s, err)
		}
		if got != s {
			t.Errorf("解析结果不一致: 期望%q, 实际%q", s, got)
		}
	}

	for _, bad := range []string{"", "PENDING", "shipped", "done", "paid"} {
		if _, err := ParseStatus(bad); err != ErrUnknownStatus {
			t.Errorf("非法状态%q应返回ErrUnknownStatus, 实际: %v", bad, err)
		}
	}
}

// TestNewOrder_AmountsAndPoints 测试下单金额合计与积分算定
func TestNewOrder_AmountsAndPoints(t *testing.T) {
	items := []OrderItem{
		{ProductID: 1, Quantity: 2, Price: 50000},  // 100000
		{ProductID: 2, Quantity: 1, Price: 30000},  // 30000
	}
	o := NewOrder(GenerateOrderNo(), 7, items, ShippingInfo{Name: "张三"}, "")

	if o.TotalAmount != 130000 {
		t.Errorf("合计金额错误: 期望130000, 实际%d", o.TotalAmount)
	}
	if o.FinalAmount != o.TotalAmount {
		t.Errorf("实付金额应等于合计金额")
	}
	// 130000 / 1000 = 130，整除截断
	if o.PointsEarned != 130 {
		t.Errorf("积分算定错误: 期望130, 实际%d", o.PointsEarned)
	}
	if o.Status != StatusPending {
		t.Errorf("新订单状态应为pending, 实际%s", o.Status)
	}
	if o.PaymentMethod != PaymentCOD {
		t.Errorf("默认支付方式应为cod, 实际%s", o.PaymentMethod)
	}
}

// TestNewOrder_PointsTruncation 测试积分整除截断（绝不向上取整）
func TestNewOrder_PointsTruncation(t *testing.T) {
	cases := []struct {
		amount int64
		points int
	}{
		{0, 0},
		{999, 0},
		{1000, 1},
		{1999, 1},
		{130999, 130},
	}
	for _, c := range cases {
		o := NewOrder("20260101000000123456", 1,
			[]OrderItem{{ProductID: 1, Quantity: 1, Price: c.amount}},
			ShippingInfo{}, PaymentCOD)
		if o.PointsEarned != c.points {
			t.Errorf("金额%d: 期望积分%d, 实际%d", c.amount, c.points, o.PointsEarned)
		}
	}
}

// TestTransitionEffects 测试状态流转副作用表
// 副作用由(旧状态, 新状态)二元组决定，逐行覆盖规则表
func TestTransitionEffects(t *testing.T) {
	cases := []struct {
		name string
		old  Status
		new  Status
		want Effects
	}{
		{"发货", StatusPending, StatusShipping,
			Effects{NotifyShipping: true}},
		{"完成发积分", StatusPending, StatusCompleted,
			Effects{PointsDelta: 1, NotifyCompletion: true}},
		{"配送中完成", StatusShipping, StatusCompleted,
			Effects{PointsDelta: 1, NotifyCompletion: true}},
		{"取消待发货订单回补库存", StatusPending, StatusCancelled,
			Effects{Restock: true}},
		{"退货回补库存并扣回积分", StatusCompleted, StatusReturned,
			Effects{PointsDelta: -1, Restock: true}},
		{"完成订单改回配送中扣回积分", StatusCompleted, StatusShipping,
			Effects{PointsDelta: -1, NotifyShipping: true}},
		{"完成订单直接取消只扣积分不回库存", StatusCompleted, StatusCancelled,
			Effects{PointsDelta: -1}},
		{"配送中取消不回补库存", StatusShipping, StatusCancelled,
			Effects{}},
		{"重复设置同状态完全无动作", StatusCompleted, StatusCompleted,
			Effects{}},
		{"重复设置pending无动作", StatusPending, StatusPending,
			Effects{}},
	}

	for _, c := range cases {
		got := TransitionEffects(c.old, c.new)
		if got != c.want {
			t.Errorf("%s (%s→%s): 期望%+v, 实际%+v", c.name, c.old, c.new, c.want, got)
		}
	}
}

// TestCanReceive 测试用户确认收货校验
func TestCanReceive(t *testing.T) {
	o := &Order{Status: StatusShipping, PaymentMethod: "online"}
	if err := o.CanReceive(); err != nil {
		t.Errorf("配送中的在线支付订单应可确认收货: %v", err)
	}

	// 货到付款需管理员确认收款
	cod := &Order{Status: StatusShipping, PaymentMethod: PaymentCOD}
	if err := cod.CanReceive(); err != ErrPaymentPending {
		t.Errorf("货到付款订单应返回ErrPaymentPending, 实际: %v", err)
	}

	// 非配送中状态一律拒绝
	for _, s := range []Status{StatusPending, StatusCompleted, StatusCancelled, StatusReturned} {
		o := &Order{Status: s, PaymentMethod: "online"}
		if err := o.CanReceive(); err != ErrInvalidTransition {
			t.Errorf("状态%s应返回ErrInvalidTransition, 实际: %v", s, err)
		}
	}
}

// TestCanCancel 测试用户自助取消校验：仅pending可取消
func TestCanCancel(t *testing.T) {
	if err := (&Order{Status: StatusPending}).CanCancel(); err != nil {
		t.Errorf("待发货订单应可取消: %v", err)
	}
	for _, s := range []Status{StatusShipping, StatusCompleted, StatusCancelled, StatusReturned} {
		if err := (&Order{Status: s}).CanCancel(); err != ErrInvalidTransition {
			t.Errorf("状态%s应返回ErrInvalidTransition, 实际: %v", s, err)
		}
	}
}

// TestCanReturn_WindowBoundary 测试7天退货期限边界
// 恰好7天整允许，超过1秒即拒绝
func TestCanReturn_WindowBoundary(t *testing.T) {
	created := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	o := &Order{Status: StatusCompleted, CreatedAt: created}

	// 第7天整点边界：允许
	exactly := created.Add(ReturnWindow)
	if err := o.CanReturn(exactly, ReturnWindow); err != nil {
		t.Errorf("恰好7天整应允许退货: %v", err)
	}

	// 超过边界1秒：拒绝
	late := created.Add(ReturnWindow + time.Second)
	if err := o.CanReturn(late, ReturnWindow); err != ErrReturnExpired {
		t.Errorf("超过7天应返回ErrReturnExpired, 实际: %v", err)
	}

	// 下单当天：允许
	if err := o.CanReturn(created.Add(time.Hour), ReturnWindow); err != nil {
		t.Errorf("下单1小时后应允许退货: %v", err)
	}

	// window非正时回落到默认7天
	if err := o.CanReturn(late, 0); err != ErrReturnExpired {
		t.Errorf("默认窗口下超过7天应返回ErrReturnExpired, 实际: %v", err)
	}
	if err := o.CanReturn(exactly, 0); err != nil {
		t.Errorf("默认窗口下恰好7天整应允许退货: %v", err)
	}

	// 非completed状态优先按状态拒绝
	pending := &Order{Status: StatusPending, CreatedAt: created}
	if err := pending.CanReturn(created, ReturnWindow); err != ErrInvalidTransition {
		t.Errorf("非完成订单应返回ErrInvalidTransition, 实际: %v", err)
	}
}

// TestGenerateOrderNo 测试订单号格式：20位纯数字
func TestGenerateOrderNo(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		no := GenerateOrderNo()
		if !ValidateOrderNo(no) {
			t.Fatalf("订单号格式非法: %q", no)
		}
		seen[no] = true
	}
	// 同一秒内100次生成不应全部冲突
	if len(seen) < 2 {
		t.Errorf("订单号随机部分疑似失效: 100次仅生成%d个不同值", len(seen))
	}
}

// TestIsOwnedBy 测试订单归属判断
func TestIsOwnedBy(t *testing.T) {
	o := &Order{UserID: 42}
	if !o.IsOwnedBy(42) {
		t.Error("订单应属于用户42")
	}
	if o.IsOwnedBy(43) {
		t.Error("订单不应属于用户43")
	}
}
