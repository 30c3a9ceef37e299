package vault

import (
	"github.com/iotaledger/hive.go/ierrors"
)

var (
	// ErrInvalidAmount is returned if a deposit is attempted with a zero amount.
	ErrInvalidAmount = ierrors.New("deposit amount must be greater than zero")

	// ErrInvalidLockDuration is returned if a deposit is attempted with a non-positive lock duration.
	ErrInvalidLockDuration = ierrors.New("lock duration must be greater than zero")

	// ErrNoFundsAvailable is returned if a withdrawal is attempted while none of the account's deposits is unlocked.
	ErrNoFundsAvailable = ierrors.New("no unlocked deposits available")

	// ErrTransferFailed is returned if the transfer executor reported failure during a withdrawal.
	// The removal performed by that withdrawal has been rolled back when this error surfaces.
	ErrTransferFailed = ierrors.New("value transfer failed")
)
