// Package setting 站点配置（键值对），用于支付方式配置与站点展示信息
package setting

import "context"

// 预定义配置键
const (
	KeyPaymentCOD    = "payment_cod_enabled"    // 是否启用货到付款
	KeyPaymentOnline = "payment_online_enabled" // 是否启用在线支付（预留）
	KeyAnnouncement  = "site_announcement"      // 站点公告

	// 银行转账与站点联系信息，前台下单页展示
	KeyBankBIN      = "bank_bin"
	KeyBankNumber   = "bank_number"
	KeyBankName     = "bank_name"
	KeyBankTemplate = "bank_template" // 转账附言模板
	KeySiteName     = "site_name"
	KeyHotline      = "hotline"
	KeyContactEmail = "contact_email"
)

// PublicKeys 无需登录即可读取的配置键
// 只含支付与联系信息，开关类配置不在其中
var PublicKeys = []string{
	KeyBankBIN,
	KeyBankNumber,
	KeyBankName,
	KeyBankTemplate,
	KeySiteName,
	KeyHotline,
	KeyContactEmail,
}

// Setting 配置项，键为业务含义明确的短标识
type Setting struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Repository 配置仓储接口
type Repository interface {
	// List 返回全部配置项
	List(ctx context.Context) ([]Setting, error)

	// ListByKeys 按键集合查询，只返回存在的配置项
	ListByKeys(ctx context.Context, keys []string) ([]Setting, error)

	// Get 按键查询，不存在时返回空值（不报错）
	Get(ctx context.Context, key string) (string, error)

	// Upsert 写入或更新配置项
	Upsert(ctx context.Context, key, value string) error
}
