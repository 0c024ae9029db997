package ledger

import (
	"context"
	"errors"
	"fmt"

	"sprpay/internal/models"
	"sprpay/internal/repositories"
	"sprpay/internal/utils"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Config holds configuration for the ledger service.
type Config struct {
	SystemAccountKey string
}

type service struct {
	repo    repositories.WalletRepository
	cache   CacheOperator
	config  Config
	metrics MetricsCollector
	log     *logrus.Entry
}

// NewService creates a new ledger service. The cache may be nil; the metrics
// collector defaults to a no-op when nil.
func NewService(repo repositories.WalletRepository, cache CacheOperator, config Config, metrics MetricsCollector) Service {
	if repo == nil {
		panic("repo is required")
	}
	if config.SystemAccountKey == "" {
		config.SystemAccountKey = DefaultSystemAccountKey
	}
	if metrics == nil {
		metrics = &NoopMetricsCollector{}
	}
	return &service{
		repo:    repo,
		cache:   cache,
		config:  config,
		metrics: metrics,
		log:     logrus.WithField("component", "ledger"),
	}
}

func (s *service) CreateWallet(ctx context.Context, userID uint) (*models.Wallet, error) {
	wallet := &models.Wallet{UserID: userID}
	if err := s.repo.Create(wallet); err != nil {
		if errors.Is(err, repositories.ErrDuplicateWallet) {
			return nil, ErrDuplicateWallet
		}
		return nil, fmt.Errorf("failed to create wallet: %w", err)
	}
	if s.cache != nil {
		s.cache.SetWallet(ctx, wallet)
	}
	return wallet, nil
}

func (s *service) GetWallet(ctx context.Context, userID uint) (*models.Wallet, error) {
	if s.cache != nil {
		if wallet, err := s.cache.GetWallet(ctx, userID); err == nil {
			return wallet, nil
		}
	}

	wallet, err := s.repo.GetByUserID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrWalletNotFound) {
			return nil, ErrWalletNotFound
		}
		return nil, fmt.Errorf("failed to get wallet: %w", err)
	}

	if s.cache != nil {
		s.cache.SetWallet(ctx, wallet)
	}
	return wallet, nil
}

func (s *service) AddFunds(ctx context.Context, userID uint, amount float64, txType, status string, md models.TransactionMetadata) (*models.WalletTransaction, error) {
	if amount <= 0 {
		s.metrics.RecordError("add_funds", "invalid_amount")
		return nil, ErrInvalidAmount
	}

	wallet, err := s.repo.GetByUserIDForUpdate(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrWalletNotFound) {
			return nil, ErrWalletNotFound
		}
		return nil, fmt.Errorf("failed to lock wallet: %w", err)
	}

	oldBalance := wallet.Balance
	wallet.Balance = utils.RoundCurrency(wallet.Balance + amount)
	if earningTypes[txType] {
		wallet.TotalEarned = utils.RoundCurrency(wallet.TotalEarned + amount)
	}
	if err := s.repo.Update(wallet); err != nil {
		s.metrics.RecordError("add_funds", "update_failed")
		return nil, fmt.Errorf("%w: %v", ErrTransactionFailed, err)
	}

	tx := &models.WalletTransaction{
		WalletID:      wallet.ID,
		Amount:        amount,
		Type:          txType,
		Status:        status,
		BalanceImpact: true,
		Reference:     uuid.NewString(),
		Metadata:      md,
	}
	if err := s.repo.CreateTransaction(tx); err != nil {
		s.metrics.RecordError("add_funds", "transaction_insert_failed")
		return nil, fmt.Errorf("%w: %v", ErrTransactionFailed, err)
	}

	if s.cache != nil {
		s.cache.InvalidateWallet(ctx, userID)
	}
	s.metrics.RecordTransaction(txType, amount)
	s.metrics.RecordBalanceChange(userID, oldBalance, wallet.Balance)
	return tx, nil
}

func (s *service) WithdrawFunds(ctx context.Context, userID uint, amount float64, txType, status string, md models.TransactionMetadata) (*models.WalletTransaction, error) {
	if amount <= 0 {
		s.metrics.RecordError("withdraw_funds", "invalid_amount")
		return nil, ErrInvalidAmount
	}

	wallet, err := s.repo.GetByUserIDForUpdate(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrWalletNotFound) {
			return nil, ErrWalletNotFound
		}
		return nil, fmt.Errorf("failed to lock wallet: %w", err)
	}

	if wallet.Balance < amount {
		s.metrics.RecordError("withdraw_funds", "insufficient_funds")
		return nil, ErrInsufficientFunds
	}

	oldBalance := wallet.Balance
	wallet.Balance = utils.RoundCurrency(wallet.Balance - amount)
	wallet.TotalWithdrawn = utils.RoundCurrency(wallet.TotalWithdrawn + amount)
	if err := s.repo.Update(wallet); err != nil {
		s.metrics.RecordError("withdraw_funds", "update_failed")
		return nil, fmt.Errorf("%w: %v", ErrTransactionFailed, err)
	}

	tx := &models.WalletTransaction{
		WalletID:      wallet.ID,
		Amount:        -amount,
		Type:          txType,
		Status:        status,
		BalanceImpact: true,
		Reference:     uuid.NewString(),
		Metadata:      md,
	}
	if err := s.repo.CreateTransaction(tx); err != nil {
		s.metrics.RecordError("withdraw_funds", "transaction_insert_failed")
		return nil, fmt.Errorf("%w: %v", ErrTransactionFailed, err)
	}

	if s.cache != nil {
		s.cache.InvalidateWallet(ctx, userID)
	}
	s.metrics.RecordTransaction(txType, amount)
	s.metrics.RecordBalanceChange(userID, oldBalance, wallet.Balance)
	return tx, nil
}

func (s *service) RecordTransaction(ctx context.Context, userID uint, amount float64, txType, status string, md models.TransactionMetadata) (*models.WalletTransaction, error) {
	wallet, err := s.repo.GetByUserID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrWalletNotFound) {
			return nil, ErrWalletNotFound
		}
		return nil, fmt.Errorf("failed to get wallet: %w", err)
	}

	tx := &models.WalletTransaction{
		WalletID:  wallet.ID,
		Amount:    amount,
		Type:      txType,
		Status:    status,
		Reference: uuid.NewString(),
		Metadata:  md,
	}
	if err := s.repo.CreateTransaction(tx); err != nil {
		s.metrics.RecordError("record_transaction", "transaction_insert_failed")
		return nil, fmt.Errorf("%w: %v", ErrTransactionFailed, err)
	}
	return tx, nil
}

func (s *service) RecordSystemTransaction(ctx context.Context, amount float64, txType, status string, md models.TransactionMetadata) (*models.SystemTransaction, error) {
	wallet, err := s.systemWallet()
	if err != nil {
		return nil, err
	}

	if status == models.TransactionStatusCompleted {
		wallet.Balance = utils.RoundCurrency(wallet.Balance + amount)
		if amount >= 0 {
			wallet.TotalIn = utils.RoundCurrency(wallet.TotalIn + amount)
		} else {
			wallet.TotalOut = utils.RoundCurrency(wallet.TotalOut - amount)
		}
		if err := s.repo.UpdateSystemWallet(wallet); err != nil {
			s.metrics.RecordError("record_system_transaction", "update_failed")
			return nil, fmt.Errorf("%w: %v", ErrTransactionFailed, err)
		}
	}

	tx := &models.SystemTransaction{
		SystemWalletID: wallet.ID,
		Amount:         amount,
		Type:           txType,
		Status:         status,
		Reference:      uuid.NewString(),
		Metadata:       md,
	}
	if err := s.repo.CreateSystemTransaction(tx); err != nil {
		s.metrics.RecordError("record_system_transaction", "transaction_insert_failed")
		return nil, fmt.Errorf("%w: %v", ErrTransactionFailed, err)
	}
	s.metrics.RecordTransaction(txType, amount)
	return tx, nil
}

// systemWallet fetches the platform wallet under lock, creating it on first
// use.
func (s *service) systemWallet() (*models.SystemWallet, error) {
	wallet, err := s.repo.GetSystemWalletForUpdate(s.config.SystemAccountKey)
	if err == nil {
		return wallet, nil
	}
	if !errors.Is(err, repositories.ErrSystemWalletNotFound) {
		return nil, fmt.Errorf("failed to get system wallet: %w", err)
	}

	wallet = &models.SystemWallet{AccountKey: s.config.SystemAccountKey}
	if err := s.repo.CreateSystemWallet(wallet); err != nil {
		// Lost a creation race; re-read the winner's row.
		if errors.Is(err, repositories.ErrDuplicateWallet) {
			return s.repo.GetSystemWalletForUpdate(s.config.SystemAccountKey)
		}
		return nil, fmt.Errorf("failed to create system wallet: %w", err)
	}
	s.log.WithField("account_key", s.config.SystemAccountKey).Info("system wallet created")
	return wallet, nil
}

func (s *service) ReconcileBalance(ctx context.Context, userID uint) (float64, error) {
	wallet, err := s.repo.GetByUserID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrWalletNotFound) {
			return 0, ErrWalletNotFound
		}
		return 0, fmt.Errorf("failed to get wallet: %w", err)
	}
	total, err := s.repo.SumCompletedAmounts(wallet.ID)
	if err != nil {
		return 0, err
	}
	return utils.RoundCurrency(total), nil
}
