package vault

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/iotaledger/hive.go/ds/shrinkingmap"
	"github.com/iotaledger/hive.go/ierrors"
	"github.com/iotaledger/hive.go/kvstore"
	"github.com/iotaledger/hive.go/log"
	"github.com/iotaledger/hive.go/runtime/syncutils"
	"github.com/iotaledger/deposit-core/pkg/clock"
)

// Vault is the time-locked deposit ledger. It tracks, per account, a collection of independent deposit
// records whose value becomes withdrawable once their lock expires.
//
// Accounts are fully independent: every mutating operation takes the lock of the affected account only,
// and the removal scan of a withdrawal together with the external transfer forms one critical section
// under that lock, so two concurrent withdrawals can never pay out the same record twice.
type Vault struct {
	// accounts holds the authoritative in-memory state of all deposit records.
	accounts      *shrinkingmap.ShrinkingMap[AccountID, *accountDeposits]
	accountsMutex syncutils.RWMutex

	clock    clock.Clock
	executor TransferExecutor
	store    kvstore.KVStore

	events *Events

	log.Logger
}

// accountDeposits is the unordered record sequence of a single account together with its lock.
// Insertion order carries no meaning; only membership and per-record fields do.
type accountDeposits struct {
	records []*DepositRecord
	mutex   syncutils.RWMutex
}

func New(logger log.Logger, clockSource clock.Clock, executor TransferExecutor, store kvstore.KVStore) *Vault {
	return &Vault{
		accounts: shrinkingmap.New[AccountID, *accountDeposits](),
		clock:    clockSource,
		executor: executor,
		store:    store,
		events:   NewEvents(),
		Logger:   logger,
	}
}

// Events returns the events of the Vault.
func (v *Vault) Events() *Events {
	return v.events
}

// Deposit appends a new record with unlockTime = now + lockDuration to the account's sequence and
// returns a copy of it. No state is changed if validation fails.
func (v *Vault) Deposit(accountID AccountID, amount Amount, lockDuration time.Duration) (DepositRecord, error) {
	if amount == 0 {
		return DepositRecord{}, ierrors.Wrapf(ErrInvalidAmount, "account %s", accountID)
	}
	if lockDuration <= 0 {
		return DepositRecord{}, ierrors.Wrapf(ErrInvalidLockDuration, "account %s, duration %s", accountID, lockDuration)
	}

	account := v.accountDeposits(accountID, true)
	account.mutex.Lock()
	defer account.mutex.Unlock()

	record := &DepositRecord{
		ID:         uuid.New(),
		Amount:     amount,
		UnlockTime: v.clock.Now().Add(lockDuration),
	}
	account.records = append(account.records, record)

	if err := v.persistAccount(accountID, account.records); err != nil {
		account.records = account.records[:len(account.records)-1]

		return DepositRecord{}, ierrors.Wrapf(err, "failed to persist deposit for account %s", accountID)
	}

	v.LogDebugf("deposited %d to account %s, unlocks at %s", record.Amount, accountID, record.UnlockTime)
	v.events.Deposited.Trigger(&DepositedEvent{
		AccountID:  accountID,
		DepositID:  record.ID,
		Amount:     record.Amount,
		UnlockTime: record.UnlockTime,
	})

	return *record, nil
}

// Deposits returns two index-aligned sequences describing the account's current records: the deposited
// amounts and the time remaining until each unlocks (0 if already unlocked). Read-only.
func (v *Vault) Deposits(accountID AccountID) (amounts []Amount, timeRemaining []time.Duration) {
	account := v.accountDeposits(accountID, false)
	if account == nil {
		return nil, nil
	}

	account.mutex.RLock()
	defer account.mutex.RUnlock()

	now := v.clock.Now()
	amounts = make([]Amount, len(account.records))
	timeRemaining = make([]time.Duration, len(account.records))
	for i, record := range account.records {
		amounts[i] = record.Amount
		timeRemaining[i] = record.TimeRemaining(now)
	}

	return amounts, timeRemaining
}

// LockedBalance returns the sum of the amounts of the account's records whose unlock time has not yet
// passed. It returns 0 for an account without records. Read-only.
func (v *Vault) LockedBalance(accountID AccountID) Amount {
	account := v.accountDeposits(accountID, false)
	if account == nil {
		return 0
	}

	account.mutex.RLock()
	defer account.mutex.RUnlock()

	now := v.clock.Now()
	var locked Amount
	for _, record := range account.records {
		if !record.Unlocked(now) {
			locked += record.Amount
		}
	}

	return locked
}

// Withdraw removes exactly the currently unlocked subset of the account's records and pays out their sum
// through the transfer executor. The removal and the transfer behave as a single indivisible unit: if the
// executor reports failure, the record sequence is restored to its pre-call state before ErrTransferFailed
// is returned.
func (v *Vault) Withdraw(ctx context.Context, accountID AccountID) (Amount, error) {
	account := v.accountDeposits(accountID, false)
	if account == nil {
		return 0, ierrors.Wrapf(ErrNoFundsAvailable, "account %s has no deposits", accountID)
	}

	account.mutex.Lock()
	defer account.mutex.Unlock()

	now := v.clock.Now()
	snapshot := append([]*DepositRecord(nil), account.records...)

	// Unlocked records are compacted away in place by overwriting them with the last live record and
	// shrinking the logical length, O(1) per removal. The cursor does not advance after a swap because
	// the swapped-in record still needs to be tested.
	records := account.records
	length := len(records)
	var total Amount
	for i := 0; i < length; {
		if records[i].Unlocked(now) {
			total += records[i].Amount
			records[i] = records[length-1]
			length--

			continue
		}
		i++
	}

	if total == 0 {
		return 0, ierrors.Wrapf(ErrNoFundsAvailable, "account %s has no unlocked deposits at %s", accountID, now)
	}

	account.records = records[:length]

	// The records are removed before the executor runs: a reentrant withdrawal triggered by the transfer
	// itself can no longer observe them. The snapshot restore below is what makes this safe when the
	// transfer does not actually deliver the value.
	if err := v.executor.Transfer(ctx, accountID, total); err != nil {
		account.records = snapshot
		v.events.TransferFailed.Trigger(&TransferFailedEvent{
			AccountID: accountID,
			Total:     total,
		})

		return 0, ierrors.Wrapf(ErrTransferFailed, "account %s, amount %d: %s", accountID, total, err.Error())
	}

	if err := v.persistAccount(accountID, account.records); err != nil {
		// The transfer is confirmed, so the withdrawal stays committed in memory; the stale state on
		// disk is overwritten by the next successful persist of this account.
		v.LogErrorf("failed to persist withdrawal for account %s: %s", accountID, err.Error())
	}

	v.LogDebugf("withdrew %d from account %s", total, accountID)
	v.events.Withdrawn.Trigger(&WithdrawnEvent{
		AccountID: accountID,
		Total:     total,
	})

	return total, nil
}

// AccountCount returns the number of accounts that have been referenced by a deposit so far.
func (v *Vault) AccountCount() int {
	v.accountsMutex.RLock()
	defer v.accountsMutex.RUnlock()

	return v.accounts.Size()
}

// ForEachAccount iterates over all accounts and their record counts and locked balances.
func (v *Vault) ForEachAccount(consumer func(accountID AccountID, records int, locked Amount) bool) {
	v.accountsMutex.RLock()
	accountIDs := v.accounts.Keys()
	v.accountsMutex.RUnlock()

	for _, accountID := range accountIDs {
		account := v.accountDeposits(accountID, false)
		if account == nil {
			continue
		}

		account.mutex.RLock()
		records := len(account.records)
		account.mutex.RUnlock()

		if !consumer(accountID, records, v.LockedBalance(accountID)) {
			return
		}
	}
}

// accountDeposits returns the deposits of the given account, optionally creating an empty entry on first
// reference. Entries are never destroyed; an empty record sequence is a valid terminal state.
func (v *Vault) accountDeposits(accountID AccountID, createIfMissing bool) *accountDeposits {
	if createIfMissing {
		v.accountsMutex.Lock()
		defer v.accountsMutex.Unlock()

		account, _ := v.accounts.GetOrCreate(accountID, func() *accountDeposits {
			return &accountDeposits{}
		})

		return account
	}

	v.accountsMutex.RLock()
	defer v.accountsMutex.RUnlock()

	account, exists := v.accounts.Get(accountID)
	if !exists {
		return nil
	}

	return account
}
