package subscription

import "errors"

// Service errors
var (
	ErrInvalidDuration      = errors.New("duration must be at least one month")
	ErrPackInactive         = errors.New("pack is not available for purchase")
	ErrInsufficientPayment  = errors.New("net payment is below the pack cost")
	ErrUnsupportedCurrency  = errors.New("currency cannot be converted, please pay in USD")
	ErrSubscriptionMismatch = errors.New("subscription does not belong to this user")
)
