/*
Package ledger implements the wallet ledger backing every paid pack purchase.

Every wallet mutation goes through this service and leaves an immutable
WalletTransaction row behind. For any wallet, the cached balance equals the
sum of signed completed balance-mutating entries, so the balance is always
reconstructible from the log.

Usage:

	svc := ledger.NewService(repo, cache, ledger.Config{}, metrics)

	// Create a wallet at account creation
	w, err := svc.CreateWallet(ctx, userID)

	// Credit commission earnings
	tx, err := svc.AddFunds(ctx, userID, 10.00, models.TransactionTypeCommission,
		models.TransactionStatusCompleted, md)

	// Debit, failing with ErrInsufficientFunds when balance < amount
	tx, err = svc.WithdrawFunds(ctx, userID, 25.00, models.TransactionTypeWithdrawal,
		models.TransactionStatusCompleted, md)

The system wallet is addressed by the account key given in Config and is
created lazily on first use; no ambient global holds it.
*/
package ledger
