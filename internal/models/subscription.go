package models

import (
	"time"
)

// Subscription statuses
const (
	SubscriptionStatusActive  = "active"
	SubscriptionStatusExpired = "expired"
)

// Subscription is a user's ownership of a pack. Sponsor points at the user
// credited with referring this purchase; chains of sponsors form the tree the
// commission engine walks.
type Subscription struct {
	ID           uint    `gorm:"primarykey"`
	UserID       uint    `gorm:"index;not null"`
	PackID       uint    `gorm:"index;not null"`
	SponsorID    *uint   `gorm:"index"`
	ReferralCode string  `gorm:"uniqueIndex;not null"`
	ReferralLink string
	Status       string `gorm:"not null;default:'active'"`
	PurchaseDate time.Time
	ExpiryDate   time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
