package models

import (
	"time"
)

// Well-known setting keys
const (
	SettingPurchaseFeePercentage = "purchase_fee_percentage"
)

// Setting is one platform-wide configuration value.
type Setting struct {
	ID        uint   `gorm:"primarykey"`
	Key       string `gorm:"uniqueIndex;not null"`
	Value     string `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
