package models

import (
	"time"

	"gorm.io/gorm"
)

type Wallet struct {
	ID             uint    `gorm:"primarykey"`
	UserID         uint    `gorm:"uniqueIndex;not null"`
	Balance        float64 `gorm:"default:0"`
	TotalEarned    float64 `gorm:"default:0"`
	TotalWithdrawn float64 `gorm:"default:0"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (w *Wallet) BeforeCreate(tx *gorm.DB) error {
	// Ensure balance starts at 0
	w.Balance = 0.0
	return nil
}

// SystemWallet is the platform's own aggregate wallet. Exactly one row exists
// per account key; the ledger service owns its lazy creation.
type SystemWallet struct {
	ID         uint    `gorm:"primarykey"`
	AccountKey string  `gorm:"uniqueIndex;not null"`
	Balance    float64 `gorm:"default:0"`
	TotalIn    float64 `gorm:"default:0"`
	TotalOut   float64 `gorm:"default:0"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
