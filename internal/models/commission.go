package models

import (
	"time"
)

// Commission statuses
const (
	CommissionStatusCompleted = "completed"
	CommissionStatusFailed    = "failed"
)

// Commission records one referral payout attempt. Rows are never mutated
// after creation; a failed ledger posting leaves a "failed" row behind.
type Commission struct {
	ID            uint    `gorm:"primarykey"`
	BeneficiaryID uint    `gorm:"index;not null"`
	SourceUserID  uint    `gorm:"not null"`
	PackID        uint    `gorm:"not null"`
	Level         int     `gorm:"not null"`
	Amount        float64 `gorm:"not null"`
	Status        string  `gorm:"not null"`
	CreatedAt     time.Time
}
