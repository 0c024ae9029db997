package repositories

import (
	"errors"

	"sprpay/internal/models"
)

var (
	ErrSubscriptionNotFound  = errors.New("subscription not found")
	ErrDuplicateReferralCode = errors.New("referral code already exists")
)

// SponsorLink is one resolved ancestor of a subscription's sponsor chain.
type SponsorLink struct {
	UserID uint
	Name   string
}

// SubscriptionRepository defines subscription and referral-chain persistence.
type SubscriptionRepository interface {
	Create(sub *models.Subscription) error
	Update(sub *models.Subscription) error
	GetByID(id uint) (*models.Subscription, error)
	GetByReferralCode(code string) (*models.Subscription, error)
	GetActiveByUserAndPack(userID, packID uint) (*models.Subscription, error)
	ReferralCodeExists(code string) (bool, error)

	// GetSponsorChain resolves up to maxDepth ancestors starting from
	// sponsorID, following each sponsor's own subscription for the pack.
	// A broken link ends the chain early; it is not an error.
	GetSponsorChain(packID uint, sponsorID uint, maxDepth int) ([]SponsorLink, error)
}
