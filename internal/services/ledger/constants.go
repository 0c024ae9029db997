package ledger

import "sprpay/internal/models"

// DefaultSystemAccountKey identifies the platform's own wallet row.
const DefaultSystemAccountKey = "platform"

// earningTypes are the transaction types that count toward total_earned.
var earningTypes = map[string]bool{
	models.TransactionTypeCommission: true,
}
