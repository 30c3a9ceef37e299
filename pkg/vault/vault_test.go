package vault_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/iotaledger/hive.go/kvstore/mapdb"
	"github.com/iotaledger/hive.go/log"
	"github.com/iotaledger/deposit-core/pkg/vault"
	"github.com/iotaledger/deposit-core/pkg/vault/tpkg"
)

func newTestVault(t *testing.T) (*vault.Vault, *tpkg.ManualClock, *tpkg.MockExecutor) {
	t.Helper()

	manualClock := tpkg.NewManualClock(time.Unix(1700000000, 0))
	executor := tpkg.NewMockExecutor()
	v := vault.New(log.NewLogger().NewChildLogger(t.Name()), manualClock, executor, mapdb.NewMapDB())

	return v, manualClock, executor
}

func TestVault_DepositValidation(t *testing.T) {
	v, _, _ := newTestVault(t)
	accountID := vault.RandomAccountID()

	_, err := v.Deposit(accountID, 0, time.Minute)
	require.ErrorIs(t, err, vault.ErrInvalidAmount)

	_, err = v.Deposit(accountID, 100, 0)
	require.ErrorIs(t, err, vault.ErrInvalidLockDuration)

	_, err = v.Deposit(accountID, 100, -time.Second)
	require.ErrorIs(t, err, vault.ErrInvalidLockDuration)

	// failed deposits leave no trace
	amounts, timeRemaining := v.Deposits(accountID)
	require.Empty(t, amounts)
	require.Empty(t, timeRemaining)
	require.EqualValues(t, 0, v.LockedBalance(accountID))
}

func TestVault_LockedBalanceWindow(t *testing.T) {
	v, manualClock, _ := newTestVault(t)
	accountID := vault.RandomAccountID()

	record, err := v.Deposit(accountID, 1, 100*time.Second)
	require.NoError(t, err)
	require.Equal(t, manualClock.Now().Add(100*time.Second), record.UnlockTime)

	// locked for every query time in [T, T+L)
	require.EqualValues(t, 1, v.LockedBalance(accountID))
	manualClock.Advance(50 * time.Second)
	require.EqualValues(t, 1, v.LockedBalance(accountID))
	manualClock.Advance(49 * time.Second)
	require.EqualValues(t, 1, v.LockedBalance(accountID))

	// unlocked from T+L onwards
	manualClock.Advance(time.Second)
	require.EqualValues(t, 0, v.LockedBalance(accountID))

	total, err := v.Withdraw(context.Background(), accountID)
	require.NoError(t, err)
	require.EqualValues(t, 1, total)

	amounts, _ := v.Deposits(accountID)
	require.Empty(t, amounts)
}

func TestVault_WithdrawPartiallyUnlocked(t *testing.T) {
	v, manualClock, executor := newTestVault(t)
	accountID := vault.RandomAccountID()

	_, err := v.Deposit(accountID, 5, 10*time.Second)
	require.NoError(t, err)
	_, err = v.Deposit(accountID, 3, 5*time.Second)
	require.NoError(t, err)

	manualClock.Advance(6 * time.Second)

	require.EqualValues(t, 5, v.LockedBalance(accountID))

	total, err := v.Withdraw(context.Background(), accountID)
	require.NoError(t, err)
	require.EqualValues(t, 3, total)

	amounts, timeRemaining := v.Deposits(accountID)
	require.Equal(t, []vault.Amount{5}, amounts)
	require.Equal(t, []time.Duration{4 * time.Second}, timeRemaining)

	transfers := executor.Transfers()
	require.Len(t, transfers, 1)
	require.Equal(t, accountID, transfers[0].AccountID)
	require.EqualValues(t, 3, transfers[0].Amount)
}

func TestVault_WithdrawCompactsAroundLockedRecord(t *testing.T) {
	v, manualClock, _ := newTestVault(t)
	accountID := vault.RandomAccountID()

	_, err := v.Deposit(accountID, 10, 5*time.Second)
	require.NoError(t, err)
	_, err = v.Deposit(accountID, 20, time.Hour)
	require.NoError(t, err)
	_, err = v.Deposit(accountID, 30, 5*time.Second)
	require.NoError(t, err)

	manualClock.Advance(10 * time.Second)

	total, err := v.Withdraw(context.Background(), accountID)
	require.NoError(t, err)
	require.EqualValues(t, 40, total)

	// only the locked record survives, regardless of its storage position
	amounts, _ := v.Deposits(accountID)
	require.Equal(t, []vault.Amount{20}, amounts)
}

func TestVault_WithdrawNoFundsAvailable(t *testing.T) {
	v, _, executor := newTestVault(t)
	accountID := vault.RandomAccountID()

	// unknown account
	_, err := v.Withdraw(context.Background(), accountID)
	require.ErrorIs(t, err, vault.ErrNoFundsAvailable)

	_, err = v.Deposit(accountID, 100, time.Hour)
	require.NoError(t, err)

	amountsBefore, timeRemainingBefore := v.Deposits(accountID)

	_, err = v.Withdraw(context.Background(), accountID)
	require.ErrorIs(t, err, vault.ErrNoFundsAvailable)
	require.Empty(t, executor.Transfers())

	amountsAfter, timeRemainingAfter := v.Deposits(accountID)
	require.Equal(t, amountsBefore, amountsAfter)
	require.Equal(t, timeRemainingBefore, timeRemainingAfter)
}

func TestVault_WithdrawRollbackOnTransferFailure(t *testing.T) {
	v, manualClock, executor := newTestVault(t)
	accountID := vault.RandomAccountID()

	_, err := v.Deposit(accountID, 5, 10*time.Second)
	require.NoError(t, err)
	_, err = v.Deposit(accountID, 3, 5*time.Second)
	require.NoError(t, err)
	_, err = v.Deposit(accountID, 7, 8*time.Second)
	require.NoError(t, err)

	manualClock.Advance(20 * time.Second)
	amountsBefore, timeRemainingBefore := v.Deposits(accountID)

	var failed []*vault.TransferFailedEvent
	v.Events().TransferFailed.Hook(func(ev *vault.TransferFailedEvent) { failed = append(failed, ev) })

	executor.FailNext()
	_, err = v.Withdraw(context.Background(), accountID)
	require.ErrorIs(t, err, vault.ErrTransferFailed)

	require.Len(t, failed, 1)
	require.Equal(t, accountID, failed[0].AccountID)
	require.EqualValues(t, 15, failed[0].Total)

	// every removal is undone, no matter how many records qualified
	amountsAfter, timeRemainingAfter := v.Deposits(accountID)
	require.Equal(t, amountsBefore, amountsAfter)
	require.Equal(t, timeRemainingBefore, timeRemainingAfter)

	// the retry is the caller's responsibility and succeeds against the restored state
	total, err := v.Withdraw(context.Background(), accountID)
	require.NoError(t, err)
	require.EqualValues(t, 15, total)

	amounts, _ := v.Deposits(accountID)
	require.Empty(t, amounts)
}

func TestVault_QueriesAreIdempotent(t *testing.T) {
	v, manualClock, _ := newTestVault(t)
	accountID := vault.RandomAccountID()

	_, err := v.Deposit(accountID, 11, 30*time.Second)
	require.NoError(t, err)
	_, err = v.Deposit(accountID, 22, time.Minute)
	require.NoError(t, err)

	manualClock.Advance(10 * time.Second)

	amountsFirst, timeRemainingFirst := v.Deposits(accountID)
	amountsSecond, timeRemainingSecond := v.Deposits(accountID)
	require.Equal(t, amountsFirst, amountsSecond)
	require.Equal(t, timeRemainingFirst, timeRemainingSecond)

	require.Equal(t, v.LockedBalance(accountID), v.LockedBalance(accountID))
}

func TestVault_Events(t *testing.T) {
	v, manualClock, _ := newTestVault(t)
	accountID := vault.RandomAccountID()

	var deposited []*vault.DepositedEvent
	var withdrawn []*vault.WithdrawnEvent
	v.Events().Deposited.Hook(func(ev *vault.DepositedEvent) { deposited = append(deposited, ev) })
	v.Events().Withdrawn.Hook(func(ev *vault.WithdrawnEvent) { withdrawn = append(withdrawn, ev) })

	record, err := v.Deposit(accountID, 42, time.Second)
	require.NoError(t, err)

	require.Len(t, deposited, 1)
	require.Equal(t, accountID, deposited[0].AccountID)
	require.Equal(t, record.ID, deposited[0].DepositID)
	require.EqualValues(t, 42, deposited[0].Amount)
	require.Equal(t, record.UnlockTime, deposited[0].UnlockTime)

	manualClock.Advance(time.Second)

	_, err = v.Withdraw(context.Background(), accountID)
	require.NoError(t, err)

	require.Len(t, withdrawn, 1)
	require.Equal(t, accountID, withdrawn[0].AccountID)
	require.EqualValues(t, 42, withdrawn[0].Total)
}

func TestVault_ConcurrentWithdrawSingleAccount(t *testing.T) {
	v, manualClock, executor := newTestVault(t)
	accountID := vault.RandomAccountID()

	_, err := v.Deposit(accountID, 100, time.Second)
	require.NoError(t, err)
	manualClock.Advance(time.Second)

	// a second withdrawal issued while the transfer of the first is still in flight must not observe
	// the records again
	var secondErr error
	var wg sync.WaitGroup
	executor.OnTransfer(func(_ vault.AccountID, _ vault.Amount) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, secondErr = v.Withdraw(context.Background(), accountID)
		}()
	})

	total, err := v.Withdraw(context.Background(), accountID)
	require.NoError(t, err)
	require.EqualValues(t, 100, total)

	wg.Wait()
	require.ErrorIs(t, secondErr, vault.ErrNoFundsAvailable)
	require.Len(t, executor.Transfers(), 1)
}

func TestVault_ConcurrentDeposits(t *testing.T) {
	v, manualClock, _ := newTestVault(t)
	accountID := vault.RandomAccountID()

	const workers = 8
	const depositsPerWorker = 25

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < depositsPerWorker; i++ {
				_, err := v.Deposit(accountID, 2, time.Second)
				require.NoError(t, err)
			}
		}()
	}
	wg.Wait()

	manualClock.Advance(time.Second)

	total, err := v.Withdraw(context.Background(), accountID)
	require.NoError(t, err)
	require.EqualValues(t, workers*depositsPerWorker*2, total)
}

func TestVault_AccountsAreIndependent(t *testing.T) {
	v, manualClock, _ := newTestVault(t)
	first := vault.RandomAccountID()
	second := vault.RandomAccountID()

	_, err := v.Deposit(first, 10, time.Second)
	require.NoError(t, err)
	_, err = v.Deposit(second, 20, time.Hour)
	require.NoError(t, err)

	manualClock.Advance(time.Minute)

	total, err := v.Withdraw(context.Background(), first)
	require.NoError(t, err)
	require.EqualValues(t, 10, total)

	require.EqualValues(t, 20, v.LockedBalance(second))
	require.Equal(t, 2, v.AccountCount())
}
