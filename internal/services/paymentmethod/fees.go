// Package paymentmethod holds the per-method fee models consulted during a
// purchase. Only the Calculate contract matters to the lifecycle; gateway
// initiation and callbacks live outside this core.
package paymentmethod

import (
	"sprpay/internal/utils"
)

// Payment method identifiers
const (
	MethodWallet      = "wallet"
	MethodCard        = "card"
	MethodMobileMoney = "mobile_money"
)

// FeeModel computes the method-specific fee for a payment.
type FeeModel interface {
	Calculate(amount float64, currency string) float64
}

// RateFeeModel charges a percentage plus a fixed component.
type RateFeeModel struct {
	Percent float64
	Fixed   float64
}

func (m RateFeeModel) Calculate(amount float64, currency string) float64 {
	return utils.RoundCurrency(amount*m.Percent/100 + m.Fixed)
}

// Registry maps payment methods to their fee models. Unknown methods are
// fee-free.
type Registry struct {
	models map[string]FeeModel
}

// NewRegistry returns a registry with the platform's default fee schedule.
func NewRegistry() *Registry {
	return &Registry{
		models: map[string]FeeModel{
			MethodWallet:      RateFeeModel{},
			MethodCard:        RateFeeModel{Percent: 2.9, Fixed: 0.30},
			MethodMobileMoney: RateFeeModel{Percent: 1.5},
		},
	}
}

func (r *Registry) Register(method string, model FeeModel) {
	r.models[method] = model
}

func (r *Registry) Calculate(method string, amount float64, currency string) float64 {
	model, ok := r.models[method]
	if !ok {
		return 0
	}
	return model.Calculate(amount, currency)
}
