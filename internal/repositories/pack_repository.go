package repositories

import (
	"errors"

	"sprpay/internal/models"
)

var (
	ErrPackNotFound = errors.New("pack not found")
	ErrRateNotFound = errors.New("commission rate not found")
)

// PackRepository serves the pack catalog and its commission-rate table.
type PackRepository interface {
	GetByID(id uint) (*models.Pack, error)

	// GetCommissionRate returns the percentage for (pack, level) or
	// ErrRateNotFound when no row exists.
	GetCommissionRate(packID uint, level int) (float64, error)
}
