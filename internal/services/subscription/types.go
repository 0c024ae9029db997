package subscription

// PaymentDetails describes how a purchase or renewal was paid. The gateway
// interaction itself happens outside this core; only the amounts and the
// method's fee model matter here.
type PaymentDetails struct {
	Method   string  `json:"method"` // "wallet", "card", "mobile_money", ...
	Type     string  `json:"type"`   // gateway-specific label for audit display
	Amount   float64 `json:"amount"` // amount paid, in Currency
	Currency string  `json:"currency"`
}

// Config holds configuration for the subscription lifecycle.
type Config struct {
	BaseURL          string // referral link base
	BaseCurrency     string // settlement currency, defaults to USD
	SystemAccountKey string
}

// settlement carries the USD amounts computed for one purchase or renewal.
type settlement struct {
	AmountUSD       float64
	GlobalFeesUSD   float64
	SpecificFeesUSD float64
	NetUSD          float64
	ExchangeRate    float64
	Periods         int
}
