package repositories

import (
	"sprpay/internal/models"
)

// CommissionRepository persists referral payout records.
type CommissionRepository interface {
	Create(c *models.Commission) error
	ListByBeneficiary(userID uint, limit, offset int) ([]models.Commission, error)
}
