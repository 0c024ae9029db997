package repositories

import (
	"errors"

	"sprpay/internal/models"
)

var ErrExchangeRateNotFound = errors.New("exchange rate not found")

// RateRepository stores the exchange-rate table the currency converter reads.
type RateRepository interface {
	GetRate(currency, target string) (*models.ExchangeRate, error)

	// UpsertRates replaces the stored rates for one base currency with a
	// fresh snapshot from the external provider.
	UpsertRates(base string, rates map[string]float64) error
}
