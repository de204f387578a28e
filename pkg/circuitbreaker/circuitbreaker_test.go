package circuitbreaker

import (
	"errors"
	"testing"
	"time"
)

var errSMTPDown = errors.New("smtp服务器连接失败")

// newSMTPBreaker 按邮件发送的保护配置构造熔断器
// 连续5次发送失败跳闸，半开状态最多放行3个探测请求
func newSMTPBreaker(timeout time.Duration) *CircuitBreaker {
	return NewCircuitBreaker("smtp", Config{
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     timeout,
		ReadyToTrip: func(counts Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	})
}

// TestSMTPBreaker_HealthySends 发送正常时保持关闭状态
func TestSMTPBreaker_HealthySends(t *testing.T) {
	cb := newSMTPBreaker(30 * time.Second)

	for i := 0; i < 10; i++ {
		if err := cb.Execute(func() error { return nil }); err != nil {
			t.Fatalf("第%d次发送不应被熔断: %v", i+1, err)
		}
	}

	if cb.State() != StateClosed {
		t.Errorf("期望状态CLOSED, 实际%s", cb.State())
	}
	if counts := cb.Counts(); counts.TotalSuccesses != 10 {
		t.Errorf("期望成功10次, 实际%d次", counts.TotalSuccesses)
	}
}

// TestSMTPBreaker_TripsAfterConsecutiveFailures 连续发送失败5次后跳闸
func TestSMTPBreaker_TripsAfterConsecutiveFailures(t *testing.T) {
	cb := newSMTPBreaker(30 * time.Second)

	for i := 0; i < 5; i++ {
		if err := cb.Execute(func() error { return errSMTPDown }); err != errSMTPDown {
			t.Fatalf("第%d次失败应透传发送错误: %v", i+1, err)
		}
	}

	if cb.State() != StateOpen {
		t.Fatalf("连续失败5次后期望状态OPEN, 实际%s", cb.State())
	}

	// 打开状态下快速失败，不再触达SMTP服务器
	sends := 0
	err := cb.Execute(func() error {
		sends++
		return nil
	})
	if err != ErrOpenState {
		t.Errorf("打开状态应返回ErrOpenState, 实际: %v", err)
	}
	if sends != 0 {
		t.Error("打开状态不应再发起实际发送")
	}
}

// TestSMTPBreaker_SuccessResetsStreak 成功发送会打断连续失败计数
func TestSMTPBreaker_SuccessResetsStreak(t *testing.T) {
	cb := newSMTPBreaker(30 * time.Second)

	for i := 0; i < 4; i++ {
		cb.Execute(func() error { return errSMTPDown })
	}
	cb.Execute(func() error { return nil })
	for i := 0; i < 4; i++ {
		cb.Execute(func() error { return errSMTPDown })
	}

	if cb.State() != StateClosed {
		t.Errorf("连续失败未达5次, 期望状态CLOSED, 实际%s", cb.State())
	}
}

// TestSMTPBreaker_HalfOpenRecovery 超时后半开，探测成功恢复关闭
func TestSMTPBreaker_HalfOpenRecovery(t *testing.T) {
	cb := newSMTPBreaker(50 * time.Millisecond)

	for i := 0; i < 5; i++ {
		cb.Execute(func() error { return errSMTPDown })
	}
	if cb.State() != StateOpen {
		t.Fatalf("期望状态OPEN, 实际%s", cb.State())
	}

	time.Sleep(60 * time.Millisecond)
	if cb.State() != StateHalfOpen {
		t.Fatalf("超时后期望状态HALF_OPEN, 实际%s", cb.State())
	}

	// 半开状态下探测发送成功即恢复关闭
	if err := cb.Execute(func() error { return nil }); err != nil {
		t.Fatalf("探测发送不应被拒绝: %v", err)
	}
	if cb.State() != StateClosed {
		t.Errorf("探测成功后期望状态CLOSED, 实际%s", cb.State())
	}
}

// TestSMTPBreaker_HalfOpenFailureReopens 半开探测失败立即重新打开
func TestSMTPBreaker_HalfOpenFailureReopens(t *testing.T) {
	cb := newSMTPBreaker(50 * time.Millisecond)

	for i := 0; i < 5; i++ {
		cb.Execute(func() error { return errSMTPDown })
	}
	time.Sleep(60 * time.Millisecond)

	if err := cb.Execute(func() error { return errSMTPDown }); err != errSMTPDown {
		t.Fatalf("探测失败应透传发送错误: %v", err)
	}
	if cb.State() != StateOpen {
		t.Errorf("探测失败后期望状态OPEN, 实际%s", cb.State())
	}
}

// TestSMTPBreaker_StateChangeCallback 状态变化回调用于记录熔断日志
func TestSMTPBreaker_StateChangeCallback(t *testing.T) {
	cb := newSMTPBreaker(30 * time.Second)

	type change struct {
		from, to State
	}
	var changes []change
	cb.SetStateChangeCallback(func(name string, from, to State) {
		if name != "smtp" {
			t.Errorf("期望熔断器名称smtp, 实际%s", name)
		}
		changes = append(changes, change{from, to})
	})

	for i := 0; i < 5; i++ {
		cb.Execute(func() error { return errSMTPDown })
	}

	if len(changes) != 1 {
		t.Fatalf("期望1次状态变化, 实际%d次", len(changes))
	}
	if changes[0].from != StateClosed || changes[0].to != StateOpen {
		t.Errorf("期望CLOSED->OPEN, 实际%s->%s", changes[0].from, changes[0].to)
	}
}
