package vault

import (
	"context"
)

// TransferExecutor delivers withdrawn value to an account. It must report an error whenever the value
// was not delivered; there is no partial-success state. The vault rolls back the triggering withdrawal
// on any error it returns.
type TransferExecutor interface {
	Transfer(ctx context.Context, accountID AccountID, amount Amount) error
}

// TransferFunc is a function that implements TransferExecutor.
type TransferFunc func(ctx context.Context, accountID AccountID, amount Amount) error

func (f TransferFunc) Transfer(ctx context.Context, accountID AccountID, amount Amount) error {
	return f(ctx, accountID, amount)
}
