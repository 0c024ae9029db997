package repositories

import (
	"errors"
	"fmt"
	"strconv"

	"sprpay/internal/models"

	"gorm.io/gorm"
)

type settingsRepository struct {
	db *gorm.DB
}

func NewSettingsRepository(db *gorm.DB) SettingsRepository {
	return &settingsRepository{db: db}
}

func (r *settingsRepository) GetValue(key, defaultVal string) (string, error) {
	var setting models.Setting
	if err := r.db.Where("key = ?", key).First(&setting).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return defaultVal, nil
		}
		return defaultVal, fmt.Errorf("failed to get setting %q: %w", key, err)
	}
	return setting.Value, nil
}

func (r *settingsRepository) GetFloatValue(key string, defaultVal float64) (float64, error) {
	raw, err := r.GetValue(key, "")
	if err != nil {
		return defaultVal, err
	}
	if raw == "" {
		return defaultVal, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return defaultVal, nil
	}
	return f, nil
}
