package repositories

import (
	"gorm.io/gorm"
)

// Manager bundles the repositories that must share one database transaction.
// ExecuteInTransaction hands the callback a Manager bound to the transaction;
// any error rolls back everything written through it.
type Manager interface {
	Wallets() WalletRepository
	Users() UserRepository
	Subscriptions() SubscriptionRepository
	Packs() PackRepository
	Commissions() CommissionRepository
	Rates() RateRepository
	Settings() SettingsRepository

	ExecuteInTransaction(fn func(Manager) error) error
}

type manager struct {
	db *gorm.DB
}

func NewManager(db *gorm.DB) Manager {
	return &manager{db: db}
}

func (m *manager) Wallets() WalletRepository             { return NewWalletRepository(m.db) }
func (m *manager) Users() UserRepository                 { return NewUserRepository(m.db) }
func (m *manager) Subscriptions() SubscriptionRepository { return NewSubscriptionRepository(m.db) }
func (m *manager) Packs() PackRepository                 { return NewPackRepository(m.db) }
func (m *manager) Commissions() CommissionRepository     { return NewCommissionRepository(m.db) }
func (m *manager) Rates() RateRepository                 { return NewRateRepository(m.db) }
func (m *manager) Settings() SettingsRepository          { return NewSettingsRepository(m.db) }

func (m *manager) ExecuteInTransaction(fn func(Manager) error) error {
	return m.db.Transaction(func(tx *gorm.DB) error {
		return fn(&manager{db: tx})
	})
}
