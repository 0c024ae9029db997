// Package subscription orchestrates pack purchases and renewals: fee
// computation, currency conversion, payment-sufficiency checks, ledger
// postings, referral-code issuance and commission distribution, all inside
// one atomic unit of work.
package subscription

import (
	"context"
	"errors"
	"fmt"
	"time"

	"sprpay/internal/models"
	"sprpay/internal/repositories"
	"sprpay/internal/services/commission"
	"sprpay/internal/services/currency"
	"sprpay/internal/services/ledger"
	"sprpay/internal/services/paymentmethod"
	"sprpay/internal/services/referral"
	"sprpay/internal/utils"

	"github.com/sirupsen/logrus"
)

// Service exposes the purchase and renewal operations consumed by the API
// layer.
type Service interface {
	PurchaseNewPack(ctx context.Context, userID, packID uint, payment PaymentDetails, durationMonths int, sponsorReferralCode string) (*models.Subscription, error)
	RenewPack(ctx context.Context, userID, subscriptionID uint, payment PaymentDetails, durationMonths int) (*models.Subscription, error)
}

type service struct {
	repos     repositories.Manager
	converter currency.Service
	fees      *paymentmethod.Registry
	cache     ledger.CacheOperator
	config    Config
	log       *logrus.Entry
}

// NewService creates the subscription lifecycle service. The cache may be
// nil; fee registry defaults to the platform schedule when nil.
func NewService(
	repos repositories.Manager,
	converter currency.Service,
	fees *paymentmethod.Registry,
	cache ledger.CacheOperator,
	config Config,
) Service {
	if repos == nil {
		panic("repository manager is required")
	}
	if converter == nil {
		panic("currency converter is required")
	}
	if fees == nil {
		fees = paymentmethod.NewRegistry()
	}
	if config.BaseCurrency == "" {
		config.BaseCurrency = "USD"
	}
	if config.SystemAccountKey == "" {
		config.SystemAccountKey = ledger.DefaultSystemAccountKey
	}
	return &service{
		repos:     repos,
		converter: converter,
		fees:      fees,
		cache:     cache,
		config:    config,
		log:       logrus.WithField("component", "subscription"),
	}
}

func (s *service) PurchaseNewPack(ctx context.Context, userID, packID uint, payment PaymentDetails, durationMonths int, sponsorReferralCode string) (*models.Subscription, error) {
	if durationMonths <= 0 {
		return nil, ErrInvalidDuration
	}

	// Currency lookups go through the root-scoped converter, so a provider
	// refresh never writes through this unit of work or its row locks.
	var sub *models.Subscription
	err := s.repos.ExecuteInTransaction(func(m repositories.Manager) error {
		led := ledger.NewService(m.Wallets(), nil, ledger.Config{SystemAccountKey: s.config.SystemAccountKey}, nil)

		pack, err := m.Packs().GetByID(packID)
		if err != nil {
			return err
		}
		if !pack.Active {
			return ErrPackInactive
		}

		settled, err := s.settle(ctx, m, pack, payment, durationMonths)
		if err != nil {
			return err
		}

		codes := referral.NewCodeGenerator(m.Users(), m.Subscriptions(), s.config.BaseURL)
		code, err := codes.GeneratePackReferralCode(pack.Name)
		if err != nil {
			return err
		}

		var sponsorID *uint
		if sponsorReferralCode != "" {
			ref, err := m.Subscriptions().GetByReferralCode(sponsorReferralCode)
			switch {
			case err == nil:
				sponsorID = &ref.UserID
			case errors.Is(err, repositories.ErrSubscriptionNotFound):
				// Unknown code: the purchase proceeds without a sponsor.
			default:
				return err
			}
		}

		now := time.Now()
		sub = &models.Subscription{
			UserID:       userID,
			PackID:       pack.ID,
			SponsorID:    sponsorID,
			ReferralCode: code.Code,
			ReferralLink: code.Link,
			Status:       models.SubscriptionStatusActive,
			PurchaseDate: now,
			ExpiryDate:   now.AddDate(0, durationMonths, 0),
		}
		if err := m.Subscriptions().Create(sub); err != nil {
			return err
		}

		if err := s.post(ctx, led, userID, pack, payment, durationMonths, settled, models.TransactionTypePurchase); err != nil {
			return err
		}

		engine := commission.NewEngine(led, m.Users(), m.Packs(), m.Subscriptions(), m.Commissions())
		if _, err := engine.DistributeCommissions(ctx, sub, durationMonths); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidateWallets(ctx, sub)
	s.log.WithFields(logrus.Fields{
		"user": userID, "pack": packID, "months": durationMonths,
	}).Info("pack purchased")
	return sub, nil
}

func (s *service) RenewPack(ctx context.Context, userID, subscriptionID uint, payment PaymentDetails, durationMonths int) (*models.Subscription, error) {
	if durationMonths <= 0 {
		return nil, ErrInvalidDuration
	}

	var sub *models.Subscription
	err := s.repos.ExecuteInTransaction(func(m repositories.Manager) error {
		led := ledger.NewService(m.Wallets(), nil, ledger.Config{SystemAccountKey: s.config.SystemAccountKey}, nil)

		existing, err := m.Subscriptions().GetByID(subscriptionID)
		if err != nil {
			return err
		}
		if existing.UserID != userID {
			return ErrSubscriptionMismatch
		}
		pack, err := m.Packs().GetByID(existing.PackID)
		if err != nil {
			return err
		}

		settled, err := s.settle(ctx, m, pack, payment, durationMonths)
		if err != nil {
			return err
		}

		// Extend from the current expiry when it is still in the future,
		// from now otherwise.
		base := time.Now()
		if existing.ExpiryDate.After(base) {
			base = existing.ExpiryDate
		}
		existing.ExpiryDate = base.AddDate(0, durationMonths, 0)
		existing.Status = models.SubscriptionStatusActive
		if err := m.Subscriptions().Update(existing); err != nil {
			return err
		}
		sub = existing

		if err := s.post(ctx, led, userID, pack, payment, durationMonths, settled, models.TransactionTypeRenewal); err != nil {
			return err
		}

		engine := commission.NewEngine(led, m.Users(), m.Packs(), m.Subscriptions(), m.Commissions())
		if _, err := engine.DistributeCommissions(ctx, sub, durationMonths); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidateWallets(ctx, sub)
	s.log.WithFields(logrus.Fields{
		"user": userID, "subscription": subscriptionID, "months": durationMonths,
	}).Info("pack renewed")
	return sub, nil
}

// settle computes the fee breakdown in the base currency and verifies the
// payment covers the pack cost for the requested duration.
func (s *service) settle(ctx context.Context, m repositories.Manager, pack *models.Pack, payment PaymentDetails, durationMonths int) (*settlement, error) {
	globalPct, err := m.Settings().GetFloatValue(models.SettingPurchaseFeePercentage, 0)
	if err != nil {
		return nil, err
	}
	globalFees := utils.RoundCurrency(payment.Amount * globalPct / 100)
	specificFees := s.fees.Calculate(payment.Method, payment.Amount, payment.Currency)
	totalAmount := utils.RoundCurrency(payment.Amount + globalFees)

	settled := &settlement{
		AmountUSD:       totalAmount,
		GlobalFeesUSD:   globalFees,
		SpecificFeesUSD: specificFees,
		ExchangeRate:    1,
	}
	if payment.Currency != s.config.BaseCurrency {
		rate, err := s.converter.Rate(ctx, payment.Currency, s.config.BaseCurrency)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnsupportedCurrency, err)
		}
		settled.ExchangeRate = rate
		settled.AmountUSD = utils.RoundCurrency(totalAmount * rate)
		settled.GlobalFeesUSD = utils.RoundCurrency(globalFees * rate)
		settled.SpecificFeesUSD = utils.RoundCurrency(specificFees * rate)
	}
	settled.NetUSD = utils.RoundCurrency(settled.AmountUSD - settled.GlobalFeesUSD)
	settled.Periods = utils.PeriodsFor(durationMonths, pack.StepMonths())

	packCost := utils.RoundCurrency(pack.Price * float64(settled.Periods))
	if settled.NetUSD < packCost {
		return nil, ErrInsufficientPayment
	}
	return settled, nil
}

// post writes the ledger side of a settled purchase or renewal. Wallet
// payments debit the buyer directly; external payments post the sale to the
// system wallet and leave a bookkeeping entry on the buyer's log.
func (s *service) post(ctx context.Context, led ledger.Service, userID uint, pack *models.Pack, payment PaymentDetails, durationMonths int, settled *settlement, txType string) error {
	md := models.TransactionMetadata{
		Operation:     txType,
		PackName:      pack.Name,
		Duration:      fmt.Sprintf("%d mois", durationMonths),
		PaymentType:   payment.Type,
		PaymentMethod: payment.Method,
		Currency:      payment.Currency,
		ExchangeRate:  settled.ExchangeRate,
		GlobalFees:    settled.GlobalFeesUSD,
		SpecificFees:  settled.SpecificFeesUSD,
		Amount:        utils.FormatAmount(settled.NetUSD, s.config.BaseCurrency),
	}

	if payment.Method == paymentmethod.MethodWallet {
		// The money never left the platform: debit the buyer's wallet for
		// the full charged amount instead of posting the external sale.
		_, err := led.WithdrawFunds(ctx, userID, settled.AmountUSD, txType,
			models.TransactionStatusCompleted, md)
		return err
	}

	saleAmount := utils.RoundCurrency(settled.AmountUSD - settled.SpecificFeesUSD)
	if _, err := led.RecordSystemTransaction(ctx, saleAmount, models.TransactionTypeSales,
		models.TransactionStatusCompleted, md); err != nil {
		return err
	}

	_, err := led.RecordTransaction(ctx, userID, settled.NetUSD, txType,
		models.TransactionStatusCompleted, md)
	return err
}

// invalidateWallets drops cached balances touched by a committed purchase:
// the buyer's and every sponsor credited by the commission fan-out.
func (s *service) invalidateWallets(ctx context.Context, sub *models.Subscription) {
	if s.cache == nil || sub == nil {
		return
	}
	s.cache.InvalidateWallet(ctx, sub.UserID)
	if sub.SponsorID == nil {
		return
	}
	chain, err := s.repos.Subscriptions().GetSponsorChain(sub.PackID, *sub.SponsorID, commission.MaxDepth)
	if err != nil {
		s.log.WithError(err).Warn("failed to invalidate sponsor wallet caches")
		return
	}
	for _, link := range chain {
		s.cache.InvalidateWallet(ctx, link.UserID)
	}
}
