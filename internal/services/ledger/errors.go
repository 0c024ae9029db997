package ledger

import "errors"

// Service errors
var (
	ErrInvalidAmount     = errors.New("amount must be positive")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrDuplicateWallet   = errors.New("wallet already exists")
	ErrWalletNotFound    = errors.New("wallet not found")
	ErrTransactionFailed = errors.New("transaction failed")
)
