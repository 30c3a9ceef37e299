package vault_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/iotaledger/hive.go/kvstore/mapdb"
	"github.com/iotaledger/hive.go/log"
	"github.com/iotaledger/deposit-core/pkg/vault"
	"github.com/iotaledger/deposit-core/pkg/vault/tpkg"
)

func TestVault_PersistenceRoundTrip(t *testing.T) {
	store := mapdb.NewMapDB()
	manualClock := tpkg.NewManualClock(time.Unix(1700000000, 0))
	executor := tpkg.NewMockExecutor()

	v := vault.New(log.NewLogger().NewChildLogger(t.Name()), manualClock, executor, store)

	first := vault.RandomAccountID()
	second := vault.RandomAccountID()

	firstRecord, err := v.Deposit(first, 100, time.Minute)
	require.NoError(t, err)
	_, err = v.Deposit(first, 200, time.Hour)
	require.NoError(t, err)
	_, err = v.Deposit(second, 300, 30*time.Second)
	require.NoError(t, err)

	// a fresh vault on the same store picks up where the old one left off
	restored := vault.New(log.NewLogger().NewChildLogger(t.Name()), manualClock, executor, store)
	require.NoError(t, restored.ReadFromDisk())

	require.Equal(t, 2, restored.AccountCount())

	amounts, timeRemaining := restored.Deposits(first)
	require.ElementsMatch(t, []vault.Amount{100, 200}, amounts)
	require.Len(t, timeRemaining, 2)
	require.EqualValues(t, 300, restored.LockedBalance(second))

	// record identity survives the restart
	restoredAmounts, restoredRemaining := restored.Deposits(first)
	originalAmounts, originalRemaining := v.Deposits(first)
	require.Equal(t, originalAmounts, restoredAmounts)
	require.Equal(t, originalRemaining, restoredRemaining)
	require.Equal(t, firstRecord.UnlockTime.UnixNano(), manualClock.Now().Add(restoredRemaining[0]).UnixNano())

	// and withdrawals work against the restored state
	manualClock.Advance(time.Minute)
	total, err := restored.Withdraw(context.Background(), first)
	require.NoError(t, err)
	require.EqualValues(t, 100, total)
}

func TestVault_PersistenceAfterWithdrawal(t *testing.T) {
	store := mapdb.NewMapDB()
	manualClock := tpkg.NewManualClock(time.Unix(1700000000, 0))
	executor := tpkg.NewMockExecutor()

	v := vault.New(log.NewLogger().NewChildLogger(t.Name()), manualClock, executor, store)
	accountID := vault.RandomAccountID()

	_, err := v.Deposit(accountID, 10, time.Second)
	require.NoError(t, err)
	_, err = v.Deposit(accountID, 20, time.Hour)
	require.NoError(t, err)

	manualClock.Advance(2 * time.Second)
	_, err = v.Withdraw(context.Background(), accountID)
	require.NoError(t, err)

	restored := vault.New(log.NewLogger().NewChildLogger(t.Name()), manualClock, executor, store)
	require.NoError(t, restored.ReadFromDisk())

	// the withdrawn record must not resurrect
	amounts, _ := restored.Deposits(accountID)
	require.Equal(t, []vault.Amount{20}, amounts)
}

func TestVault_FailedTransferNeverReachesDisk(t *testing.T) {
	store := mapdb.NewMapDB()
	manualClock := tpkg.NewManualClock(time.Unix(1700000000, 0))
	executor := tpkg.NewMockExecutor()

	v := vault.New(log.NewLogger().NewChildLogger(t.Name()), manualClock, executor, store)
	accountID := vault.RandomAccountID()

	_, err := v.Deposit(accountID, 10, time.Second)
	require.NoError(t, err)

	manualClock.Advance(2 * time.Second)
	executor.FailNext()
	_, err = v.Withdraw(context.Background(), accountID)
	require.ErrorIs(t, err, vault.ErrTransferFailed)

	restored := vault.New(log.NewLogger().NewChildLogger(t.Name()), manualClock, executor, store)
	require.NoError(t, restored.ReadFromDisk())

	amounts, _ := restored.Deposits(accountID)
	require.Equal(t, []vault.Amount{10}, amounts)
}
