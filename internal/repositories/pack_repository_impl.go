package repositories

import (
	"errors"
	"fmt"

	"sprpay/internal/models"

	"gorm.io/gorm"
)

type packRepository struct {
	db *gorm.DB
}

func NewPackRepository(db *gorm.DB) PackRepository {
	return &packRepository{db: db}
}

func (r *packRepository) GetByID(id uint) (*models.Pack, error) {
	var pack models.Pack
	if err := r.db.First(&pack, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPackNotFound
		}
		return nil, fmt.Errorf("failed to get pack: %w", err)
	}
	return &pack, nil
}

func (r *packRepository) GetCommissionRate(packID uint, level int) (float64, error) {
	var rate models.CommissionRate
	err := r.db.Where("pack_id = ? AND level = ?", packID, level).First(&rate).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrRateNotFound
		}
		return 0, fmt.Errorf("failed to get commission rate: %w", err)
	}
	return rate.Percentage, nil
}
