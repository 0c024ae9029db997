package repositories

import (
	"errors"
	"fmt"

	"sprpay/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type rateRepository struct {
	db *gorm.DB
}

func NewRateRepository(db *gorm.DB) RateRepository {
	return &rateRepository{db: db}
}

func (r *rateRepository) GetRate(currency, target string) (*models.ExchangeRate, error) {
	var rate models.ExchangeRate
	err := r.db.Where("currency = ? AND target_currency = ?", currency, target).
		First(&rate).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrExchangeRateNotFound
		}
		return nil, fmt.Errorf("failed to get exchange rate: %w", err)
	}
	return &rate, nil
}

func (r *rateRepository) UpsertRates(base string, rates map[string]float64) error {
	for target, value := range rates {
		rate := models.ExchangeRate{
			Currency:       base,
			TargetCurrency: target,
			Rate:           value,
		}
		err := r.db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "currency"}, {Name: "target_currency"}},
			DoUpdates: clause.AssignmentColumns([]string{"rate", "updated_at"}),
		}).Create(&rate).Error
		if err != nil {
			return fmt.Errorf("failed to upsert rate %s/%s: %w", base, target, err)
		}
	}
	return nil
}
