package paymentmethod

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegistryCalculate(t *testing.T) {
	registry := NewRegistry()

	tests := []struct {
		name   string
		method string
		amount float64
		want   float64
	}{
		{"wallet is fee free", MethodWallet, 100, 0},
		{"card percentage plus fixed", MethodCard, 100, 3.20},
		{"mobile money percentage", MethodMobileMoney, 100, 1.50},
		{"unknown method is fee free", "carrier_pigeon", 100, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, registry.Calculate(tt.method, tt.amount, "USD"))
		})
	}
}

func TestRegistryRegister(t *testing.T) {
	registry := NewRegistry()
	registry.Register("bank_transfer", RateFeeModel{Fixed: 1.25})

	assert.Equal(t, 1.25, registry.Calculate("bank_transfer", 500, "USD"))
}

func TestRateFeeModelRounding(t *testing.T) {
	model := RateFeeModel{Percent: 2.9, Fixed: 0.30}

	// 60 * 2.9% + 0.30 = 2.04 exactly at 2 decimal places.
	assert.Equal(t, 2.04, model.Calculate(60, "EUR"))
}
