// Package tpkg provides test helpers for the vault package.
package tpkg

import (
	"context"
	"time"

	"github.com/iotaledger/hive.go/ierrors"
	"github.com/iotaledger/hive.go/runtime/syncutils"
	"github.com/iotaledger/deposit-core/pkg/vault"
)

// ManualClock is a Clock whose current time is advanced explicitly by the test.
type ManualClock struct {
	now   time.Time
	mutex syncutils.RWMutex
}

func NewManualClock(now time.Time) *ManualClock {
	return &ManualClock{now: now}
}

func (c *ManualClock) Now() time.Time {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	return c.now
}

func (c *ManualClock) Advance(d time.Duration) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.now = c.now.Add(d)
}

func (c *ManualClock) Set(now time.Time) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.now = now
}

// MockExecutor is a TransferExecutor that records every transfer and can be made to fail.
type MockExecutor struct {
	transfers  []MockTransfer
	failNext   bool
	onTransfer func(accountID vault.AccountID, amount vault.Amount)
	mutex      syncutils.RWMutex
}

type MockTransfer struct {
	AccountID vault.AccountID
	Amount    vault.Amount
}

func NewMockExecutor() *MockExecutor {
	return &MockExecutor{}
}

func (m *MockExecutor) Transfer(_ context.Context, accountID vault.AccountID, amount vault.Amount) error {
	m.mutex.Lock()
	failNext := m.failNext
	m.failNext = false
	onTransfer := m.onTransfer
	m.mutex.Unlock()

	if failNext {
		return ierrors.New("transfer rejected")
	}

	if onTransfer != nil {
		onTransfer(accountID, amount)
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.transfers = append(m.transfers, MockTransfer{AccountID: accountID, Amount: amount})

	return nil
}

// FailNext makes the next transfer fail.
func (m *MockExecutor) FailNext() {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.failNext = true
}

// OnTransfer installs a callback that is invoked while a transfer is in flight,
// before it is recorded as delivered. Useful to exercise reentrancy.
func (m *MockExecutor) OnTransfer(callback func(accountID vault.AccountID, amount vault.Amount)) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.onTransfer = callback
}

// Transfers returns all delivered transfers.
func (m *MockExecutor) Transfers() []MockTransfer {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	return append([]MockTransfer(nil), m.transfers...)
}
