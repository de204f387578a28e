package admin

import (
	"context"

	"github.com/zhangxy/bookshop/internal/domain/setting"
	apperrors "github.com/zhangxy/bookshop/pkg/errors"
)

// SettingsUseCase 站点配置用例（管理后台）
type SettingsUseCase struct {
	settingRepo setting.Repository
}

// NewSettingsUseCase 创建站点配置用例
func NewSettingsUseCase(settingRepo setting.Repository) *SettingsUseCase {
	return &SettingsUseCase{settingRepo: settingRepo}
}

// 可写配置键白名单，拒绝写入未知键
var allowedKeys = map[string]bool{
	setting.KeyPaymentCOD:    true,
	setting.KeyPaymentOnline: true,
	setting.KeyAnnouncement:  true,
	setting.KeyBankBIN:       true,
	setting.KeyBankNumber:    true,
	setting.KeyBankName:      true,
	setting.KeyBankTemplate:  true,
	setting.KeySiteName:      true,
	setting.KeyHotline:       true,
	setting.KeyContactEmail:  true,
}

// List 查询全部配置项
func (uc *SettingsUseCase) List(ctx context.Context) ([]setting.Setting, error) {
	return uc.settingRepo.List(ctx)
}

// PaymentConfig 查询前台展示的支付与联系信息
// 只返回数据库中已配置的键，未配置的键不出现在结果里
func (uc *SettingsUseCase) PaymentConfig(ctx context.Context) (map[string]string, error) {
	settings, err := uc.settingRepo.ListByKeys(ctx, setting.PublicKeys)
	if err != nil {
		return nil, err
	}

	config := make(map[string]string, len(settings))
	for _, s := range settings {
		config[s.Key] = s.Value
	}
	return config, nil
}

// Update 批量写入配置项
func (uc *SettingsUseCase) Update(ctx context.Context, settings []setting.Setting) error {
	for _, s := range settings {
		if !allowedKeys[s.Key] {
			return apperrors.New(apperrors.ErrCodeInvalidParams, "未知的配置项: "+s.Key)
		}
	}

	for _, s := range settings {
		if err := uc.settingRepo.Upsert(ctx, s.Key, s.Value); err != nil {
			return err
		}
	}
	return nil
}
