package repositories

import (
	"fmt"

	"sprpay/internal/models"

	"gorm.io/gorm"
)

type commissionRepository struct {
	db *gorm.DB
}

func NewCommissionRepository(db *gorm.DB) CommissionRepository {
	return &commissionRepository{db: db}
}

func (r *commissionRepository) Create(c *models.Commission) error {
	if err := r.db.Create(c).Error; err != nil {
		return fmt.Errorf("failed to create commission: %w", err)
	}
	return nil
}

func (r *commissionRepository) ListByBeneficiary(userID uint, limit, offset int) ([]models.Commission, error) {
	var commissions []models.Commission
	err := r.db.Where("beneficiary_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&commissions).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list commissions: %w", err)
	}
	return commissions, nil
}
