package models

import (
	"time"
)

// Subscription cadences
const (
	CadenceMonthly     = "monthly"
	CadenceQuarterly   = "quarterly"
	CadenceBiannual    = "biannual"
	CadenceAnnual      = "annual"
	CadenceTriennial   = "triennial"
	CadenceQuinquennal = "quinquennial"
)

// Pack is a purchasable subscription tier. Prices are in USD.
type Pack struct {
	ID        uint    `gorm:"primarykey"`
	Name      string  `gorm:"uniqueIndex;not null"`
	Price     float64 `gorm:"not null"`
	Cadence   string  `gorm:"not null;default:'monthly'"`
	Active    bool    `gorm:"default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// StepMonths maps the pack's cadence to its renewal step in months.
// Unknown cadences fall back to monthly.
func (p *Pack) StepMonths() int {
	switch p.Cadence {
	case CadenceMonthly:
		return 1
	case CadenceQuarterly:
		return 3
	case CadenceBiannual:
		return 6
	case CadenceAnnual:
		return 12
	case CadenceTriennial:
		return 36
	case CadenceQuinquennal:
		return 60
	default:
		return 1
	}
}

// CommissionRate is the percentage paid at one referral level of a pack.
// A missing row means 0% for that level.
type CommissionRate struct {
	ID         uint    `gorm:"primarykey"`
	PackID     uint    `gorm:"not null;uniqueIndex:idx_pack_level"`
	Level      int     `gorm:"not null;uniqueIndex:idx_pack_level"`
	Percentage float64 `gorm:"not null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
