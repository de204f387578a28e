package admin

import (
	"context"
	"sort"
	"testing"

	"github.com/zhangxy/bookshop/internal/domain/setting"
)

// fakeSettingRepo 内存配置仓储
type fakeSettingRepo struct {
	values map[string]string
}

func newFakeSettingRepo() *fakeSettingRepo {
	return &fakeSettingRepo{values: make(map[string]string)}
}

func (r *fakeSettingRepo) List(ctx context.Context) ([]setting.Setting, error) {
	keys := make([]string, 0, len(r.values))
	for k := range r.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]setting.Setting, len(keys))
	for i, k := range keys {
		out[i] = setting.Setting{Key: k, Value: r.values[k]}
	}
	return out, nil
}

func (r *fakeSettingRepo) ListByKeys(ctx context.Context, keys []string) ([]setting.Setting, error) {
	var out []setting.Setting
	for _, k := range keys {
		if v, ok := r.values[k]; ok {
			out = append(out, setting.Setting{Key: k, Value: v})
		}
	}
	return out, nil
}

func (r *fakeSettingRepo) Get(ctx context.Context, key string) (string, error) {
	return r.values[key], nil
}

func (r *fakeSettingRepo) Upsert(ctx context.Context, key, value string) error {
	r.values[key] = value
	return nil
}

// TestSettingsUpdate_UnknownKeyRejected 白名单外的配置键整批拒绝
func TestSettingsUpdate_UnknownKeyRejected(t *testing.T) {
	repo := newFakeSettingRepo()
	uc := NewSettingsUseCase(repo)

	err := uc.Update(context.Background(), []setting.Setting{
		{Key: setting.KeyBankName, Value: "工商银行"},
		{Key: "smtp_password", Value: "x"},
	})
	if err == nil {
		t.Fatal("未知配置键应被拒绝")
	}
	if len(repo.values) != 0 {
		t.Error("校验失败时不应写入任何配置项")
	}
}

// TestSettingsUpdate_BankKeys 银行转账与联系信息配置键可写
func TestSettingsUpdate_BankKeys(t *testing.T) {
	repo := newFakeSettingRepo()
	uc := NewSettingsUseCase(repo)

	err := uc.Update(context.Background(), []setting.Setting{
		{Key: setting.KeyBankBIN, Value: "970436"},
		{Key: setting.KeyBankNumber, Value: "6222020200112233"},
		{Key: setting.KeyBankName, Value: "工商银行"},
		{Key: setting.KeyBankTemplate, Value: "订单{order_no}付款"},
		{Key: setting.KeySiteName, Value: "网上书城"},
		{Key: setting.KeyHotline, Value: "400-800-1234"},
		{Key: setting.KeyContactEmail, Value: "service@bookshop.example.com"},
	})
	if err != nil {
		t.Fatalf("写入配置失败: %v", err)
	}
	if repo.values[setting.KeyBankNumber] != "6222020200112233" {
		t.Errorf("银行账号未写入, 实际: %q", repo.values[setting.KeyBankNumber])
	}
}

// TestPaymentConfig_PublicSubset 公开接口只返回已配置的公开键
func TestPaymentConfig_PublicSubset(t *testing.T) {
	repo := newFakeSettingRepo()
	repo.values[setting.KeyBankName] = "工商银行"
	repo.values[setting.KeyHotline] = "400-800-1234"
	repo.values[setting.KeyPaymentCOD] = "true" // 开关类配置不对外
	uc := NewSettingsUseCase(repo)

	config, err := uc.PaymentConfig(context.Background())
	if err != nil {
		t.Fatalf("查询支付配置失败: %v", err)
	}

	if len(config) != 2 {
		t.Fatalf("期望2个配置项, 实际%d个: %v", len(config), config)
	}
	if config[setting.KeyBankName] != "工商银行" {
		t.Errorf("银行名称不符, 实际: %q", config[setting.KeyBankName])
	}
	if _, ok := config[setting.KeyPaymentCOD]; ok {
		t.Error("支付开关不应出现在公开配置中")
	}
	if _, ok := config[setting.KeyBankNumber]; ok {
		t.Error("未配置的键不应出现在结果中")
	}
}
