package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/zhangxy/bookshop/internal/domain/setting"
	apperrors "github.com/zhangxy/bookshop/pkg/errors"
)

// settingRepository 站点配置仓储实现(MySQL)
type settingRepository struct {
	db *gorm.DB
}

// NewSettingRepository 创建配置仓储
func NewSettingRepository(db *gorm.DB) setting.Repository {
	return &settingRepository{db: db}
}

// List 返回全部配置项
func (r *settingRepository) List(ctx context.Context) ([]setting.Setting, error) {
	var models []SettingModel
	if err := getDB(ctx, r.db).Order("`key` ASC").Find(&models).Error; err != nil {
		return nil, apperrors.Wrap(err, "查询配置失败")
	}

	settings := make([]setting.Setting, len(models))
	for i, m := range models {
		settings[i] = setting.Setting{Key: m.Key, Value: m.Value}
	}
	return settings, nil
}

// ListByKeys 按键集合查询，只返回存在的配置项
func (r *settingRepository) ListByKeys(ctx context.Context, keys []string) ([]setting.Setting, error) {
	var models []SettingModel
	if err := getDB(ctx, r.db).Where("`key` IN ?", keys).
		Order("`key` ASC").Find(&models).Error; err != nil {
		return nil, apperrors.Wrap(err, "查询配置失败")
	}

	settings := make([]setting.Setting, len(models))
	for i, m := range models {
		settings[i] = setting.Setting{Key: m.Key, Value: m.Value}
	}
	return settings, nil
}

// Get 按键查询，不存在时返回空值
func (r *settingRepository) Get(ctx context.Context, key string) (string, error) {
	var model SettingModel
	err := getDB(ctx, r.db).Where("`key` = ?", key).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", apperrors.Wrap(err, "查询配置失败")
	}
	return model.Value, nil
}

// Upsert 写入或更新配置项
// INSERT ... ON DUPLICATE KEY UPDATE value = VALUES(value)
func (r *settingRepository) Upsert(ctx context.Context, key, value string) error {
	model := &SettingModel{Key: key, Value: value}
	err := getDB(ctx, r.db).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(model).Error
	if err != nil {
		return apperrors.Wrap(err, "保存配置失败")
	}
	return nil
}
