package models

import (
	"time"
)

// Transaction types
const (
	TransactionTypePurchase   = "purchase"
	TransactionTypeRenewal    = "renewal"
	TransactionTypeCommission = "commission"
	TransactionTypeTransfer   = "transfer"
	TransactionTypeWithdrawal = "withdrawal"
	TransactionTypeSales      = "sales"
)

// Transaction statuses
const (
	TransactionStatusPending   = "pending"
	TransactionStatusCompleted = "completed"
	TransactionStatusFailed    = "failed"
)

// WalletTransaction is one entry of a user wallet's append-only log. Rows are
// immutable once created except for status transitions; the signed amount of
// every completed balance-mutating entry reconstructs the wallet balance.
type WalletTransaction struct {
	ID       uint    `gorm:"primarykey"`
	WalletID uint    `gorm:"index;not null"`
	Amount   float64 `gorm:"not null"`
	Type     string  `gorm:"not null"`
	Status   string  `gorm:"not null;default:'pending'"`
	// BalanceImpact marks entries that moved the cached balance; bookkeeping
	// entries recorded for external payments leave it false.
	BalanceImpact bool                `gorm:"not null;default:false"`
	Reference     string              // external correlation ID
	Metadata      TransactionMetadata `gorm:"type:jsonb"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// SystemTransaction mirrors WalletTransaction for the platform wallet.
type SystemTransaction struct {
	ID             uint    `gorm:"primarykey"`
	SystemWalletID uint    `gorm:"index;not null"`
	Amount         float64 `gorm:"not null"`
	Type           string  `gorm:"not null"`
	Status         string  `gorm:"not null;default:'pending'"`
	Reference      string
	Metadata       TransactionMetadata `gorm:"type:jsonb"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
