package ledger

import (
	"context"

	"sprpay/internal/models"
)

// Service defines the wallet ledger: the append-only transaction log plus the
// cached balance for user wallets and the platform's system wallet.
type Service interface {
	// Wallet management
	CreateWallet(ctx context.Context, userID uint) (*models.Wallet, error)
	GetWallet(ctx context.Context, userID uint) (*models.Wallet, error)

	// Balance-mutating primitives
	AddFunds(ctx context.Context, userID uint, amount float64, txType, status string, md models.TransactionMetadata) (*models.WalletTransaction, error)
	WithdrawFunds(ctx context.Context, userID uint, amount float64, txType, status string, md models.TransactionMetadata) (*models.WalletTransaction, error)

	// Bookkeeping primitives (no balance mutation)
	RecordTransaction(ctx context.Context, userID uint, amount float64, txType, status string, md models.TransactionMetadata) (*models.WalletTransaction, error)
	RecordSystemTransaction(ctx context.Context, amount float64, txType, status string, md models.TransactionMetadata) (*models.SystemTransaction, error)

	// ReconcileBalance recomputes the balance from the completed
	// balance-mutating log entries.
	ReconcileBalance(ctx context.Context, userID uint) (float64, error)
}

// CacheOperator is the wallet cache the service reads through. A nil cache is
// allowed; transaction-scoped ledgers skip caching and invalidate after commit.
type CacheOperator interface {
	GetWallet(ctx context.Context, userID uint) (*models.Wallet, error)
	SetWallet(ctx context.Context, wallet *models.Wallet) error
	InvalidateWallet(ctx context.Context, userID uint) error
}
