package repositories

import (
	"errors"
	"fmt"

	"sprpay/internal/models"

	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type walletRepository struct {
	db *gorm.DB
}

func NewWalletRepository(db *gorm.DB) WalletRepository {
	return &walletRepository{db: db}
}

// isUniqueViolation reports whether err is a postgres unique-constraint error.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

func (r *walletRepository) Create(wallet *models.Wallet) error {
	if err := r.db.Create(wallet).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateWallet
		}
		return fmt.Errorf("failed to create wallet: %w", err)
	}
	return nil
}

func (r *walletRepository) GetByUserID(userID uint) (*models.Wallet, error) {
	var wallet models.Wallet
	if err := r.db.Where("user_id = ?", userID).First(&wallet).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWalletNotFound
		}
		return nil, fmt.Errorf("failed to get wallet: %w", err)
	}
	return &wallet, nil
}

func (r *walletRepository) GetByUserIDForUpdate(userID uint) (*models.Wallet, error) {
	var wallet models.Wallet
	err := r.db.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ?", userID).
		First(&wallet).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWalletNotFound
		}
		return nil, fmt.Errorf("failed to lock wallet: %w", err)
	}
	return &wallet, nil
}

func (r *walletRepository) Update(wallet *models.Wallet) error {
	if err := r.db.Save(wallet).Error; err != nil {
		return fmt.Errorf("failed to update wallet: %w", err)
	}
	return nil
}

func (r *walletRepository) CreateTransaction(tx *models.WalletTransaction) error {
	if err := r.db.Create(tx).Error; err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}
	return nil
}

func (r *walletRepository) SumCompletedAmounts(walletID uint) (float64, error) {
	var total float64
	err := r.db.Model(&models.WalletTransaction{}).
		Where("wallet_id = ? AND status = ? AND balance_impact = ?", walletID, models.TransactionStatusCompleted, true).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, fmt.Errorf("failed to sum transactions: %w", err)
	}
	return total, nil
}

func (r *walletRepository) GetSystemWallet(accountKey string) (*models.SystemWallet, error) {
	var wallet models.SystemWallet
	if err := r.db.Where("account_key = ?", accountKey).First(&wallet).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSystemWalletNotFound
		}
		return nil, fmt.Errorf("failed to get system wallet: %w", err)
	}
	return &wallet, nil
}

func (r *walletRepository) GetSystemWalletForUpdate(accountKey string) (*models.SystemWallet, error) {
	var wallet models.SystemWallet
	err := r.db.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("account_key = ?", accountKey).
		First(&wallet).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSystemWalletNotFound
		}
		return nil, fmt.Errorf("failed to lock system wallet: %w", err)
	}
	return &wallet, nil
}

func (r *walletRepository) CreateSystemWallet(wallet *models.SystemWallet) error {
	if err := r.db.Create(wallet).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateWallet
		}
		return fmt.Errorf("failed to create system wallet: %w", err)
	}
	return nil
}

func (r *walletRepository) UpdateSystemWallet(wallet *models.SystemWallet) error {
	if err := r.db.Save(wallet).Error; err != nil {
		return fmt.Errorf("failed to update system wallet: %w", err)
	}
	return nil
}

func (r *walletRepository) CreateSystemTransaction(tx *models.SystemTransaction) error {
	if err := r.db.Create(tx).Error; err != nil {
		return fmt.Errorf("failed to create system transaction: %w", err)
	}
	return nil
}
