package ledger

import (
	"context"
	"testing"

	"sprpay/internal/models"
	"sprpay/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeWalletRepo is an in-memory WalletRepository for service tests.
type fakeWalletRepo struct {
	wallets       map[uint]*models.Wallet
	systemWallets map[string]*models.SystemWallet
	transactions  []*models.WalletTransaction
	systemTxs     []*models.SystemTransaction
	nextID        uint
}

func newFakeWalletRepo() *fakeWalletRepo {
	return &fakeWalletRepo{
		wallets:       make(map[uint]*models.Wallet),
		systemWallets: make(map[string]*models.SystemWallet),
	}
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
	if _, ok := f.systemWallets[w.AccountKey]; ok {
		return repositories.ErrDuplicateWallet
	}
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

func seedWallet(t *testing.T, repo *fakeWalletRepo, userID uint, balance float64) {
	t.Helper()
	require.NoError(t, repo.Create(&models.Wallet{UserID: userID}))
	repo.wallets[userID].Balance = balance
}

func TestAddFunds(t *testing.T) {
	ctx := context.Background()

	t.Run("credits balance and records entry", func(t *testing.T) {
		repo := newFakeWalletRepo()
		seedWallet(t, repo, 1, 10)
		svc := NewService(repo, nil, Config{}, nil)

		tx, err := svc.AddFunds(ctx, 1, 5.557, models.TransactionTypeTransfer,
			models.TransactionStatusCompleted, models.TransactionMetadata{})
		require.NoError(t, err)

		assert.Equal(t, 15.56, repo.wallets[1].Balance)
		assert.Equal(t, 5.557, tx.Amount)
		assert.True(t, tx.BalanceImpact)
		assert.NotEmpty(t, tx.Reference)
		assert.Zero(t, repo.wallets[1].TotalEarned)
	})

	t.Run("commission credit bumps total earned", func(t *testing.T) {
		repo := newFakeWalletRepo()
		seedWallet(t, repo, 1, 0)
		svc := NewService(repo, nil, Config{}, nil)

		_, err := svc.AddFunds(ctx, 1, 5, models.TransactionTypeCommission,
			models.TransactionStatusCompleted, models.TransactionMetadata{})
		require.NoError(t, err)
		assert.Equal(t, 5.0, repo.wallets[1].TotalEarned)
	})

	t.Run("rejects non-positive amounts", func(t *testing.T) {
		repo := newFakeWalletRepo()
		seedWallet(t, repo, 1, 10)
		svc := NewService(repo, nil, Config{}, nil)

		_, err := svc.AddFunds(ctx, 1, 0, models.TransactionTypeTransfer,
			models.TransactionStatusCompleted, models.TransactionMetadata{})
		assert.ErrorIs(t, err, ErrInvalidAmount)

		_, err = svc.AddFunds(ctx, 1, -3, models.TransactionTypeTransfer,
			models.TransactionStatusCompleted, models.TransactionMetadata{})
		assert.ErrorIs(t, err, ErrInvalidAmount)
		assert.Empty(t, repo.transactions)
	})

	t.Run("unknown wallet", func(t *testing.T) {
		repo := newFakeWalletRepo()
		svc := NewService(repo, nil, Config{}, nil)

		_, err := svc.AddFunds(ctx, 99, 5, models.TransactionTypeTransfer,
			models.TransactionStatusCompleted, models.TransactionMetadata{})
		assert.ErrorIs(t, err, ErrWalletNotFound)
	})
}

func TestWithdrawFunds(t *testing.T) {
	ctx := context.Background()

	t.Run("debits balance and stores negative amount", func(t *testing.T) {
		repo := newFakeWalletRepo()
		seedWallet(t, repo, 1, 100)
		svc := NewService(repo, nil, Config{}, nil)

		tx, err := svc.WithdrawFunds(ctx, 1, 40, models.TransactionTypeWithdrawal,
			models.TransactionStatusCompleted, models.TransactionMetadata{})
		require.NoError(t, err)

		assert.Equal(t, 60.0, repo.wallets[1].Balance)
		assert.Equal(t, 40.0, repo.wallets[1].TotalWithdrawn)
		assert.Equal(t, -40.0, tx.Amount)
		assert.True(t, tx.BalanceImpact)
	})

	t.Run("insufficient funds leaves wallet untouched", func(t *testing.T) {
		repo := newFakeWalletRepo()
		seedWallet(t, repo, 1, 30)
		svc := NewService(repo, nil, Config{}, nil)

		_, err := svc.WithdrawFunds(ctx, 1, 30.01, models.TransactionTypeWithdrawal,
			models.TransactionStatusCompleted, models.TransactionMetadata{})
		assert.ErrorIs(t, err, ErrInsufficientFunds)
		assert.Equal(t, 30.0, repo.wallets[1].Balance)
		assert.Empty(t, repo.transactions)
	})

	t.Run("withdrawal up to the exact balance succeeds", func(t *testing.T) {
		repo := newFakeWalletRepo()
		seedWallet(t, repo, 1, 30)
		svc := NewService(repo, nil, Config{}, nil)

		_, err := svc.WithdrawFunds(ctx, 1, 30, models.TransactionTypeWithdrawal,
			models.TransactionStatusCompleted, models.TransactionMetadata{})
		require.NoError(t, err)
		assert.Zero(t, repo.wallets[1].Balance)
	})
}

func TestReconcileBalance(t *testing.T) {
	ctx := context.Background()
	repo := newFakeWalletRepo()
	seedWallet(t, repo, 1, 0)
	svc := NewService(repo, nil, Config{}, nil)

	_, err := svc.AddFunds(ctx, 1, 100, models.TransactionTypeTransfer,
		models.TransactionStatusCompleted, models.TransactionMetadata{})
	require.NoError(t, err)
	_, err = svc.WithdrawFunds(ctx, 1, 25.50, models.TransactionTypeWithdrawal,
		models.TransactionStatusCompleted, models.TransactionMetadata{})
	require.NoError(t, err)

	// Bookkeeping entries must not count toward the reconstructed balance.
	_, err = svc.RecordTransaction(ctx, 1, 999, models.TransactionTypePurchase,
		models.TransactionStatusCompleted, models.TransactionMetadata{})
	require.NoError(t, err)

	total, err := svc.ReconcileBalance(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 74.50, total)
	assert.Equal(t, repo.wallets[1].Balance, total)
}

func TestRecordSystemTransaction(t *testing.T) {
	ctx := context.Background()

	t.Run("lazily creates the system wallet", func(t *testing.T) {
		repo := newFakeWalletRepo()
		svc := NewService(repo, nil, Config{}, nil)

		_, err := svc.RecordSystemTransaction(ctx, 100, models.TransactionTypeSales,
			models.TransactionStatusCompleted, models.TransactionMetadata{})
		require.NoError(t, err)

		wallet := repo.systemWallets[DefaultSystemAccountKey]
		require.NotNil(t, wallet)
		assert.Equal(t, 100.0, wallet.Balance)
		assert.Equal(t, 100.0, wallet.TotalIn)
	})

	t.Run("completed entries move the totals", func(t *testing.T) {
		repo := newFakeWalletRepo()
		svc := NewService(repo, nil, Config{SystemAccountKey: "main"}, nil)

		_, err := svc.RecordSystemTransaction(ctx, 100, models.TransactionTypeSales,
			models.TransactionStatusCompleted, models.TransactionMetadata{})
		require.NoError(t, err)
		_, err = svc.RecordSystemTransaction(ctx, -30, models.TransactionTypeWithdrawal,
			models.TransactionStatusCompleted, models.TransactionMetadata{})
		require.NoError(t, err)

		wallet := repo.systemWallets["main"]
		assert.Equal(t, 70.0, wallet.Balance)
		assert.Equal(t, 100.0, wallet.TotalIn)
		assert.Equal(t, 30.0, wallet.TotalOut)
	})

	t.Run("pending entries only append to the log", func(t *testing.T) {
		repo := newFakeWalletRepo()
		svc := NewService(repo, nil, Config{}, nil)

		_, err := svc.RecordSystemTransaction(ctx, 100, models.TransactionTypeSales,
			models.TransactionStatusPending, models.TransactionMetadata{})
		require.NoError(t, err)

		wallet := repo.systemWallets[DefaultSystemAccountKey]
		assert.Zero(t, wallet.Balance)
		assert.Len(t, repo.systemTxs, 1)
	})
}

func TestCreateWallet(t *testing.T) {
	ctx := context.Background()
	repo := newFakeWalletRepo()
	svc := NewService(repo, nil, Config{}, nil)

	wallet, err := svc.CreateWallet(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, uint(7), wallet.UserID)

	_, err = svc.CreateWallet(ctx, 7)
	assert.ErrorIs(t, err, ErrDuplicateWallet)
}
