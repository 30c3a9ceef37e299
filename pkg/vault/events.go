package vault

import (
	"time"

	"github.com/google/uuid"

	"github.com/iotaledger/hive.go/runtime/event"
)

// DepositedEvent is triggered after a deposit has been committed to the vault.
type DepositedEvent struct {
	AccountID  AccountID
	DepositID  uuid.UUID
	Amount     Amount
	UnlockTime time.Time
}

// WithdrawnEvent is triggered after a withdrawal has been committed and the transfer confirmed.
type WithdrawnEvent struct {
	AccountID AccountID
	Total     Amount
}

// TransferFailedEvent is triggered after a withdrawal has been rolled back because the transfer
// was not confirmed.
type TransferFailedEvent struct {
	AccountID AccountID
	Total     Amount
}

type Events struct {
	Deposited      *event.Event1[*DepositedEvent]
	Withdrawn      *event.Event1[*WithdrawnEvent]
	TransferFailed *event.Event1[*TransferFailedEvent]

	event.Group[Events, *Events]
}

var NewEvents = event.CreateGroupConstructor(func() *Events {
	return &Events{
		Deposited:      event.New1[*DepositedEvent](),
		Withdrawn:      event.New1[*WithdrawnEvent](),
		TransferFailed: event.New1[*TransferFailedEvent](),
	}
})
