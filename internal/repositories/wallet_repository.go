package repositories

import (
	"errors"

	"sprpay/internal/models"
)

var (
	ErrWalletNotFound       = errors.New("wallet not found")
	ErrSystemWalletNotFound = errors.New("system wallet not found")
	ErrDuplicateWallet      = errors.New("wallet already exists")
	ErrInvalidTransaction   = errors.New("invalid transaction")
)

// WalletRepository defines the database operations behind the wallet ledger.
// The ForUpdate variants take a row lock so balance reads inside a transaction
// cannot race a concurrent mutation.
type WalletRepository interface {
	// User wallets
	Create(wallet *models.Wallet) error
	GetByUserID(userID uint) (*models.Wallet, error)
	GetByUserIDForUpdate(userID uint) (*models.Wallet, error)
	Update(wallet *models.Wallet) error

	// Wallet transaction log
	CreateTransaction(tx *models.WalletTransaction) error

	// SumCompletedAmounts totals the signed amounts of completed entries
	// that moved the balance; the result must equal the cached balance.
	SumCompletedAmounts(walletID uint) (float64, error)

	// System wallet
	GetSystemWallet(accountKey string) (*models.SystemWallet, error)
	GetSystemWalletForUpdate(accountKey string) (*models.SystemWallet, error)
	CreateSystemWallet(wallet *models.SystemWallet) error
	UpdateSystemWallet(wallet *models.SystemWallet) error
	CreateSystemTransaction(tx *models.SystemTransaction) error
}
