package subscription

import (
	"context"
	"testing"
	"time"

	"sprpay/internal/models"
	"sprpay/internal/repositories"
	"sprpay/internal/services/currency"
	"sprpay/internal/services/paymentmethod"
	"sprpay/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// In-memory repositories backing a fake unit of work. ExecuteInTransaction
// runs the callback directly; rollback behavior belongs to integration tests.

type fakeWalletRepo struct {
	wallets       map[uint]*models.Wallet
	systemWallets map[string]*models.SystemWallet
	transactions  []*models.WalletTransaction
	systemTxs     []*models.SystemTransaction
	nextID        uint
}

func (f *fakeWalletRepo) Create(w *models.Wallet) error {
	if _, ok := f.wallets[w.UserID]; ok {
		return repositories.ErrDuplicateWallet
	}
	f.nextID++
	w.ID = f.nextID
	f.wallets[w.UserID] = w
	return nil
}

func (f *fakeWalletRepo) GetByUserID(userID uint) (*models.Wallet, error) {
	w, ok := f.wallets[userID]
	if !ok {
		return nil, repositories.ErrWalletNotFound
	}
	copied := *w
	return &copied, nil
}

func (f *fakeWalletRepo) GetByUserIDForUpdate(userID uint) (*models.Wallet, error) {
	return f.GetByUserID(userID)
}

func (f *fakeWalletRepo) Update(w *models.Wallet) error {
	f.wallets[w.UserID] = w
	return nil
}

func (f *fakeWalletRepo) CreateTransaction(tx *models.WalletTransaction) error {
	f.transactions = append(f.transactions, tx)
	return nil
}

func (f *fakeWalletRepo) SumCompletedAmounts(walletID uint) (float64, error) {
	var total float64
	for _, tx := range f.transactions {
		if tx.WalletID == walletID && tx.Status == models.TransactionStatusCompleted && tx.BalanceImpact {
			total += tx.Amount
		}
	}
	return total, nil
}

func (f *fakeWalletRepo) GetSystemWallet(key string) (*models.SystemWallet, error) {
	w, ok := f.systemWallets[key]
	if !ok {
		return nil, repositories.ErrSystemWalletNotFound
	}
	return w, nil
}

func (f *fakeWalletRepo) GetSystemWalletForUpdate(key string) (*models.SystemWallet, error) {
	return f.GetSystemWallet(key)
}

func (f *fakeWalletRepo) CreateSystemWallet(w *models.SystemWallet) error {
	f.systemWallets[w.AccountKey] = w
	return nil
}

func (f *fakeWalletRepo) UpdateSystemWallet(w *models.SystemWallet) error {
	f.systemWallets[w.AccountKey] = w
	return nil
}

func (f *fakeWalletRepo) CreateSystemTransaction(tx *models.SystemTransaction) error {
	f.systemTxs = append(f.systemTxs, tx)
	return nil
}

type fakeUserRepo struct {
	users map[uint]*models.User
}

func (f *fakeUserRepo) Create(u *models.User) error {
	f.users[u.ID] = u
	return nil
}
func (f *fakeUserRepo) GetByID(id uint) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	return u, nil
}
func (f *fakeUserRepo) GetByEmail(string) (*models.User, error) {
	return nil, repositories.ErrUserNotFound
}
func (f *fakeUserRepo) AccountIDExists(string) (bool, error) { return false, nil }

type fakeSubRepo struct {
	subs   map[uint]*models.Subscription
	chain  []repositories.SponsorLink
	nextID uint
}

func (f *fakeSubRepo) Create(sub *models.Subscription) error {
	f.nextID++
	sub.ID = f.nextID
	f.subs[sub.ID] = sub
	return nil
}

func (f *fakeSubRepo) Update(sub *models.Subscription) error {
	f.subs[sub.ID] = sub
	return nil
}

func (f *fakeSubRepo) GetByID(id uint) (*models.Subscription, error) {
	sub, ok := f.subs[id]
	if !ok {
		return nil, repositories.ErrSubscriptionNotFound
	}
	copied := *sub
	return &copied, nil
}

func (f *fakeSubRepo) GetByReferralCode(code string) (*models.Subscription, error) {
	for _, sub := range f.subs {
		if sub.ReferralCode == code {
			return sub, nil
		}
	}
	return nil, repositories.ErrSubscriptionNotFound
}

func (f *fakeSubRepo) GetActiveByUserAndPack(userID, packID uint) (*models.Subscription, error) {
	for _, sub := range f.subs {
		if sub.UserID == userID && sub.PackID == packID && sub.Status == models.SubscriptionStatusActive {
			return sub, nil
		}
	}
	return nil, repositories.ErrSubscriptionNotFound
}

func (f *fakeSubRepo) ReferralCodeExists(code string) (bool, error) {
	_, err := f.GetByReferralCode(code)
	return err == nil, nil
}

func (f *fakeSubRepo) GetSponsorChain(packID, sponsorID uint, maxDepth int) ([]repositories.SponsorLink, error) {
	if len(f.chain) > maxDepth {
		return f.chain[:maxDepth], nil
	}
	return f.chain, nil
}

type fakePackRepo struct {
	packs map[uint]*models.Pack
	rates map[uint]map[int]float64
}

func (f *fakePackRepo) GetByID(id uint) (*models.Pack, error) {
	p, ok := f.packs[id]
	if !ok {
		return nil, repositories.ErrPackNotFound
	}
	return p, nil
}

func (f *fakePackRepo) GetCommissionRate(packID uint, level int) (float64, error) {
	rate, ok := f.rates[packID][level]
	if !ok {
		return 0, repositories.ErrRateNotFound
	}
	return rate, nil
}

type fakeCommissionRepo struct {
	created []*models.Commission
}

func (f *fakeCommissionRepo) Create(c *models.Commission) error {
	f.created = append(f.created, c)
	return nil
}
func (f *fakeCommissionRepo) ListByBeneficiary(uint, int, int) ([]models.Commission, error) {
	return nil, nil
}

type fakeRateRepo struct{}

func (f *fakeRateRepo) GetRate(string, string) (*models.ExchangeRate, error) {
	return nil, repositories.ErrExchangeRateNotFound
}
func (f *fakeRateRepo) UpsertRates(string, map[string]float64) error { return nil }

type fakeSettingsRepo struct {
	floats map[string]float64
}

func (f *fakeSettingsRepo) GetValue(key, defaultVal string) (string, error) {
	return defaultVal, nil
}
func (f *fakeSettingsRepo) GetFloatValue(key string, defaultVal float64) (float64, error) {
	if v, ok := f.floats[key]; ok {
		return v, nil
	}
	return defaultVal, nil
}

type fakeManager struct {
	wallets     *fakeWalletRepo
	users       *fakeUserRepo
	subs        *fakeSubRepo
	packs       *fakePackRepo
	commissions *fakeCommissionRepo
	rates       *fakeRateRepo
	settings    *fakeSettingsRepo
}

func (m *fakeManager) Wallets() repositories.WalletRepository             { return m.wallets }
func (m *fakeManager) Users() repositories.UserRepository                 { return m.users }
func (m *fakeManager) Subscriptions() repositories.SubscriptionRepository { return m.subs }
func (m *fakeManager) Packs() repositories.PackRepository                 { return m.packs }
func (m *fakeManager) Commissions() repositories.CommissionRepository     { return m.commissions }
func (m *fakeManager) Rates() repositories.RateRepository                 { return m.rates }
func (m *fakeManager) Settings() repositories.SettingsRepository          { return m.settings }

func (m *fakeManager) ExecuteInTransaction(fn func(repositories.Manager) error) error {
	return fn(m)
}

// stubConverter resolves rates from a static table.
type stubConverter struct {
	rates map[string]float64
}

func (s *stubConverter) Rate(ctx context.Context, from, to string) (float64, error) {
	if from == to {
		return 1, nil
	}
	rate, ok := s.rates[from+":"+to]
	if !ok {
		return 0, currency.ErrMissingExchangeRate
	}
	return rate, nil
}

func (s *stubConverter) Convert(ctx context.Context, amount float64, from, to string) (float64, error) {
	rate, err := s.Rate(ctx, from, to)
	if err != nil {
		return 0, err
	}
	return utils.RoundCurrency(amount * rate), nil
}

func (s *stubConverter) Refresh(ctx context.Context, base string) error { return nil }

// fixture seeds a buyer (user 1) with a wallet, a sponsor (user 2) holding an
// active Starter subscription, and a 2% purchase fee.
type fixture struct {
	manager *fakeManager
	service Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	manager := &fakeManager{
		wallets: &fakeWalletRepo{
			wallets:       make(map[uint]*models.Wallet),
			systemWallets: make(map[string]*models.SystemWallet),
		},
		users: &fakeUserRepo{users: map[uint]*models.User{
			1: {ID: 1, Name: "Buyer"},
			2: {ID: 2, Name: "Sponsor"},
		}},
		subs:        &fakeSubRepo{subs: make(map[uint]*models.Subscription)},
		commissions: &fakeCommissionRepo{},
		rates:       &fakeRateRepo{},
		packs: &fakePackRepo{
			packs: map[uint]*models.Pack{
				1: {ID: 1, Name: "Starter", Price: 50, Cadence: models.CadenceQuarterly, Active: true},
			},
			rates: map[uint]map[int]float64{1: {1: 10}},
		},
		settings: &fakeSettingsRepo{floats: map[string]float64{
			models.SettingPurchaseFeePercentage: 2,
		}},
	}

	require.NoError(t, manager.wallets.Create(&models.Wallet{UserID: 1}))
	require.NoError(t, manager.wallets.Create(&models.Wallet{UserID: 2}))
	require.NoError(t, manager.subs.Create(&models.Subscription{
		UserID:       2,
		PackID:       1,
		ReferralCode: "SPRS0001",
		Status:       models.SubscriptionStatusActive,
		ExpiryDate:   time.Now().AddDate(1, 0, 0),
	}))
	manager.subs.chain = []repositories.SponsorLink{{UserID: 2, Name: "Sponsor"}}

	converter := &stubConverter{rates: map[string]float64{"EUR:USD": 1.1}}
	svc := NewService(manager, converter, paymentmethod.NewRegistry(), nil, Config{
		BaseURL: "https://example.com",
	})
	return &fixture{manager: manager, service: svc}
}

func TestPurchaseNewPack(t *testing.T) {
	ctx := context.Background()

	t.Run("card purchase in a foreign currency", func(t *testing.T) {
		f := newFixture(t)

		sub, err := f.service.PurchaseNewPack(ctx, 1, 1, PaymentDetails{
			Method:   paymentmethod.MethodCard,
			Amount:   60,
			Currency: "EUR",
		}, 3, "SPRS0001")
		require.NoError(t, err)

		require.NotNil(t, sub.SponsorID)
		assert.Equal(t, uint(2), *sub.SponsorID)
		assert.Equal(t, models.SubscriptionStatusActive, sub.Status)
		assert.Regexp(t, `^SPRS\d{4}$`, sub.ReferralCode)
		assert.Contains(t, sub.ReferralLink, "https://example.com/register?ref=")
		assert.WithinDuration(t, time.Now().AddDate(0, 3, 0), sub.ExpiryDate, time.Minute)

		// 60 EUR + 2% fee = 61.20 EUR, at 1.1 = 67.32 USD. The card fee of
		// 2.04 EUR converts to 2.24 USD, so the sale posts at 65.08.
		system := f.manager.wallets.systemWallets["platform"]
		require.NotNil(t, system)
		assert.Equal(t, 65.08, system.Balance)

		// The buyer's balance is untouched; the purchase leaves a
		// bookkeeping entry for the 66.00 USD net.
		assert.Zero(t, f.manager.wallets.wallets[1].Balance)
		var bookkeeping *models.WalletTransaction
		for _, tx := range f.manager.wallets.transactions {
			if tx.Type == models.TransactionTypePurchase {
				bookkeeping = tx
			}
		}
		require.NotNil(t, bookkeeping)
		assert.Equal(t, 66.0, bookkeeping.Amount)
		assert.False(t, bookkeeping.BalanceImpact)

		// Level 1 commission: 10% of one quarterly period.
		assert.Equal(t, 5.0, f.manager.wallets.wallets[2].Balance)
		require.Len(t, f.manager.commissions.created, 1)
		assert.Equal(t, 5.0, f.manager.commissions.created[0].Amount)
	})

	t.Run("wallet payment debits the buyer", func(t *testing.T) {
		f := newFixture(t)
		f.manager.wallets.wallets[1].Balance = 100

		_, err := f.service.PurchaseNewPack(ctx, 1, 1, PaymentDetails{
			Method:   paymentmethod.MethodWallet,
			Amount:   55,
			Currency: "USD",
		}, 3, "")
		require.NoError(t, err)

		// 55 + 2% fee = 56.10 debited; no external sale is posted.
		assert.Equal(t, 43.90, f.manager.wallets.wallets[1].Balance)
		assert.Empty(t, f.manager.wallets.systemTxs)
	})

	t.Run("wallet payment fails on insufficient balance", func(t *testing.T) {
		f := newFixture(t)
		f.manager.wallets.wallets[1].Balance = 10

		_, err := f.service.PurchaseNewPack(ctx, 1, 1, PaymentDetails{
			Method:   paymentmethod.MethodWallet,
			Amount:   55,
			Currency: "USD",
		}, 3, "")
		assert.Error(t, err)
	})

	t.Run("payment below the pack cost", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.service.PurchaseNewPack(ctx, 1, 1, PaymentDetails{
			Method:   paymentmethod.MethodCard,
			Amount:   45,
			Currency: "USD",
		}, 3, "")
		assert.ErrorIs(t, err, ErrInsufficientPayment)
	})

	t.Run("unknown sponsor code proceeds without a sponsor", func(t *testing.T) {
		f := newFixture(t)

		sub, err := f.service.PurchaseNewPack(ctx, 1, 1, PaymentDetails{
			Method:   paymentmethod.MethodCard,
			Amount:   60,
			Currency: "USD",
		}, 3, "SPRX9999")
		require.NoError(t, err)
		assert.Nil(t, sub.SponsorID)
		assert.Empty(t, f.manager.commissions.created)
	})

	t.Run("unsupported currency", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.service.PurchaseNewPack(ctx, 1, 1, PaymentDetails{
			Method:   paymentmethod.MethodCard,
			Amount:   60,
			Currency: "XOF",
		}, 3, "")
		assert.ErrorIs(t, err, ErrUnsupportedCurrency)
	})

	t.Run("inactive pack", func(t *testing.T) {
		f := newFixture(t)
		f.manager.packs.packs[1].Active = false

		_, err := f.service.PurchaseNewPack(ctx, 1, 1, PaymentDetails{
			Method:   paymentmethod.MethodCard,
			Amount:   60,
			Currency: "USD",
		}, 3, "")
		assert.ErrorIs(t, err, ErrPackInactive)
	})

	t.Run("invalid duration", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.service.PurchaseNewPack(ctx, 1, 1, PaymentDetails{
			Method:   paymentmethod.MethodCard,
			Amount:   60,
			Currency: "USD",
		}, 0, "")
		assert.ErrorIs(t, err, ErrInvalidDuration)
	})
}

func TestRenewPack(t *testing.T) {
	ctx := context.Background()
	payment := PaymentDetails{Method: paymentmethod.MethodCard, Amount: 60, Currency: "USD"}

	t.Run("extends a live subscription from its expiry", func(t *testing.T) {
		f := newFixture(t)
		expiry := time.Now().AddDate(0, 0, 10)
		require.NoError(t, f.manager.subs.Create(&models.Subscription{
			UserID:       1,
			PackID:       1,
			ReferralCode: "SPRS0002",
			Status:       models.SubscriptionStatusActive,
			ExpiryDate:   expiry,
		}))

		sub, err := f.service.RenewPack(ctx, 1, 2, payment, 3)
		require.NoError(t, err)
		assert.WithinDuration(t, expiry.AddDate(0, 3, 0), sub.ExpiryDate, time.Second)
	})

	t.Run("extends a lapsed subscription from now", func(t *testing.T) {
		f := newFixture(t)
		require.NoError(t, f.manager.subs.Create(&models.Subscription{
			UserID:       1,
			PackID:       1,
			ReferralCode: "SPRS0002",
			Status:       models.SubscriptionStatusExpired,
			ExpiryDate:   time.Now().AddDate(0, -2, 0),
		}))

		sub, err := f.service.RenewPack(ctx, 1, 2, payment, 3)
		require.NoError(t, err)
		assert.WithinDuration(t, time.Now().AddDate(0, 3, 0), sub.ExpiryDate, time.Minute)
		assert.Equal(t, models.SubscriptionStatusActive, sub.Status)
	})

	t.Run("renewal pays the sponsor chain again", func(t *testing.T) {
		f := newFixture(t)
		sponsorID := uint(2)
		require.NoError(t, f.manager.subs.Create(&models.Subscription{
			UserID:       1,
			PackID:       1,
			SponsorID:    &sponsorID,
			ReferralCode: "SPRS0002",
			Status:       models.SubscriptionStatusActive,
			ExpiryDate:   time.Now().AddDate(0, 1, 0),
		}))

		_, err := f.service.RenewPack(ctx, 1, 2, payment, 3)
		require.NoError(t, err)
		assert.Equal(t, 5.0, f.manager.wallets.wallets[2].Balance)
	})

	t.Run("rejects renewing someone else's subscription", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.service.RenewPack(ctx, 99, 1, payment, 3)
		assert.ErrorIs(t, err, ErrSubscriptionMismatch)
	})

	t.Run("unknown subscription", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.service.RenewPack(ctx, 1, 42, payment, 3)
		assert.ErrorIs(t, err, repositories.ErrSubscriptionNotFound)
	})
}
