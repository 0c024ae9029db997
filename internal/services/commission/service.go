// Package commission walks a subscription's sponsor chain and credits
// referral commissions through the wallet ledger.
package commission

import (
	"context"
	"errors"
	"fmt"

	"sprpay/internal/models"
	"sprpay/internal/repositories"
	"sprpay/internal/services/ledger"
	"sprpay/internal/utils"

	"github.com/sirupsen/logrus"
)

// MaxDepth is how many referral levels a single purchase can pay.
const MaxDepth = 4

// Engine distributes commissions along a resolved sponsor chain.
type Engine struct {
	ledger      ledger.Service
	users       repositories.UserRepository
	packs       repositories.PackRepository
	subs        repositories.SubscriptionRepository
	commissions repositories.CommissionRepository
	log         *logrus.Entry
}

func NewEngine(
	ledgerSvc ledger.Service,
	users repositories.UserRepository,
	packs repositories.PackRepository,
	subs repositories.SubscriptionRepository,
	commissions repositories.CommissionRepository,
) *Engine {
	return &Engine{
		ledger:      ledgerSvc,
		users:       users,
		packs:       packs,
		subs:        subs,
		commissions: commissions,
		log:         logrus.WithField("component", "commission"),
	}
}

// DistributeCommissions pays each ancestor of the subscription's sponsor
// chain its level's percentage of the pack cost. It returns false, with no
// side effects, when the subscription has no sponsor. A chain shorter than
// MaxDepth or a missing rate at some level is normal; a failed ledger posting
// at one level is recorded as a failed commission and must not block the
// levels above it.
func (e *Engine) DistributeCommissions(ctx context.Context, sub *models.Subscription, durationMonths int) (bool, error) {
	if sub.SponsorID == nil {
		return false, nil
	}

	pack, err := e.packs.GetByID(sub.PackID)
	if err != nil {
		return false, fmt.Errorf("failed to resolve pack: %w", err)
	}
	buyer, err := e.users.GetByID(sub.UserID)
	if err != nil {
		return false, fmt.Errorf("failed to resolve buyer: %w", err)
	}

	chain, err := e.subs.GetSponsorChain(pack.ID, *sub.SponsorID, MaxDepth)
	if err != nil {
		return false, fmt.Errorf("failed to resolve sponsor chain: %w", err)
	}

	periods := utils.PeriodsFor(durationMonths, pack.StepMonths())

	for i, link := range chain {
		level := i + 1

		rate, err := e.packs.GetCommissionRate(pack.ID, level)
		if err != nil {
			if !errors.Is(err, repositories.ErrRateNotFound) {
				return false, fmt.Errorf("failed to get commission rate: %w", err)
			}
			rate = 0
		}

		amount := utils.RoundCurrency(pack.Price * float64(periods) * rate / 100)

		status := models.CommissionStatusCompleted
		if amount > 0 {
			md := models.TransactionMetadata{
				Operation:   "commission",
				PackName:    pack.Name,
				Beneficiary: link.Name,
				SourceUser:  buyer.Name,
				Amount:      utils.FormatAmount(amount, "USD"),
				Duration:    fmt.Sprintf("%d mois", durationMonths),
			}
			_, err := e.ledger.AddFunds(ctx, link.UserID, amount,
				models.TransactionTypeCommission, models.TransactionStatusCompleted, md)
			if err != nil {
				// A failed posting at this level must not abort the
				// traversal; higher levels still get paid.
				status = models.CommissionStatusFailed
				e.log.WithError(err).WithFields(logrus.Fields{
					"beneficiary": link.UserID,
					"level":       level,
					"amount":      amount,
				}).Warn("commission posting failed")
			}
		}

		commission := &models.Commission{
			BeneficiaryID: link.UserID,
			SourceUserID:  sub.UserID,
			PackID:        pack.ID,
			Level:         level,
			Amount:        amount,
			Status:        status,
		}
		if err := e.commissions.Create(commission); err != nil {
			return false, fmt.Errorf("failed to record commission: %w", err)
		}
	}

	return true, nil
}
