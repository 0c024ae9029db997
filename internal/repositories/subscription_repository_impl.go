package repositories

import (
	"errors"
	"fmt"

	"sprpay/internal/models"

	"gorm.io/gorm"
)

type subscriptionRepository struct {
	db *gorm.DB
}

func NewSubscriptionRepository(db *gorm.DB) SubscriptionRepository {
	return &subscriptionRepository{db: db}
}

func (r *subscriptionRepository) Create(sub *models.Subscription) error {
	if err := r.db.Create(sub).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateReferralCode
		}
		return fmt.Errorf("failed to create subscription: %w", err)
	}
	return nil
}

func (r *subscriptionRepository) Update(sub *models.Subscription) error {
	if err := r.db.Save(sub).Error; err != nil {
		return fmt.Errorf("failed to update subscription: %w", err)
	}
	return nil
}

func (r *subscriptionRepository) GetByID(id uint) (*models.Subscription, error) {
	var sub models.Subscription
	if err := r.db.First(&sub, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubscriptionNotFound
		}
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}
	return &sub, nil
}

func (r *subscriptionRepository) GetByReferralCode(code string) (*models.Subscription, error) {
	var sub models.Subscription
	if err := r.db.Where("referral_code = ?", code).First(&sub).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubscriptionNotFound
		}
		return nil, fmt.Errorf("failed to get subscription by referral code: %w", err)
	}
	return &sub, nil
}

func (r *subscriptionRepository) GetActiveByUserAndPack(userID, packID uint) (*models.Subscription, error) {
	var sub models.Subscription
	err := r.db.Where("user_id = ? AND pack_id = ?", userID, packID).
		Order("expiry_date DESC").
		First(&sub).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubscriptionNotFound
		}
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}
	return &sub, nil
}

func (r *subscriptionRepository) ReferralCodeExists(code string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Subscription{}).
		Where("referral_code = ?", code).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check referral code: %w", err)
	}
	return count > 0, nil
}

func (r *subscriptionRepository) GetSponsorChain(packID uint, sponsorID uint, maxDepth int) ([]SponsorLink, error) {
	chain := make([]SponsorLink, 0, maxDepth)
	current := sponsorID
	for len(chain) < maxDepth {
		var user models.User
		if err := r.db.First(&user, current).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				break
			}
			return nil, fmt.Errorf("failed to resolve sponsor %d: %w", current, err)
		}
		chain = append(chain, SponsorLink{UserID: user.ID, Name: user.Name})

		// Follow the sponsor's own subscription for the pack to the next level.
		var sub models.Subscription
		err := r.db.Where("user_id = ? AND pack_id = ?", current, packID).
			Order("purchase_date DESC").
			First(&sub).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				break
			}
			return nil, fmt.Errorf("failed to resolve sponsor subscription: %w", err)
		}
		if sub.SponsorID == nil {
			break
		}
		current = *sub.SponsorID
	}
	return chain, nil
}
