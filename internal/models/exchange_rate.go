package models

import (
	"time"
)

// ExchangeRate is one stored conversion factor, refreshable from the external
// rate provider.
type ExchangeRate struct {
	ID             uint    `gorm:"primarykey"`
	Currency       string  `gorm:"not null;uniqueIndex:idx_currency_pair"`
	TargetCurrency string  `gorm:"not null;uniqueIndex:idx_currency_pair"`
	Rate           float64 `gorm:"not null"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
