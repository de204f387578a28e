package order

import (
	"fmt"
	"math/rand"
	"time"
)

// GenerateOrderNo 生成订单号
//
// 格式：YYYYMMDDHHMMSS + 6位随机数，共20位纯数字
//   - 前14位：时间戳（精确到秒），便于按时间段查询统计
//   - 后6位：随机数，防止同一秒内重复
//
// 并发安全：全局rand在Go 1.20+已是线程安全
func GenerateOrderNo() string {
	timePart := time.Now().Format("20060102150405")
	// [100000, 1000000)，恒为6位数
	randomPart := rand.Intn(900000) + 100000
	return fmt.Sprintf("%s%d", timePart, randomPart)
}

// ValidateOrderNo 校验订单号格式：20位纯数字
func ValidateOrderNo(orderNo string) bool {
	if len(orderNo) != 20 {
		return false
	}
	for _, c := range orderNo {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
