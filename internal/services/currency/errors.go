package currency

import "errors"

// Service errors
var (
	ErrMissingExchangeRate = errors.New("no exchange rate available for currency pair")
	ErrRateRefreshFailed   = errors.New("exchange rate refresh failed")
)
