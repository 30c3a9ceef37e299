package metrics

import (
	"github.com/iotaledger/hive.go/runtime/event"
	"github.com/iotaledger/deposit-core/components/metrics/collector"
	vaultpkg "github.com/iotaledger/deposit-core/pkg/vault"
)

const (
	vaultNamespace = "vault"

	depositsTotal         = "deposits_total"
	depositedAmountTotal  = "deposited_amount_total"
	withdrawalsTotal      = "withdrawals_total"
	withdrawnAmountTotal  = "withdrawn_amount_total"
	transferFailuresTotal = "transfer_failures_total"
	accountsTotal         = "accounts_total"
	lockedBalanceTotal    = "locked_balance_total"
	recordsTotal          = "records_total"
)

var VaultMetrics = collector.NewCollection(vaultNamespace,
	collector.WithMetric(collector.NewMetric(depositsTotal,
		collector.WithType(collector.Counter),
		collector.WithHelp("Number of deposits placed since node start."),
		collector.WithInitFunc(func() {
			deps.Vault.Events().Deposited.Hook(func(_ *vaultpkg.DepositedEvent) {
				deps.Collector.Increment(vaultNamespace, depositsTotal)
			}, event.WithWorkerPool(Component.WorkerPool))
		}),
	)),
	collector.WithMetric(collector.NewMetric(depositedAmountTotal,
		collector.WithType(collector.Counter),
		collector.WithHelp("Sum of the deposited amounts since node start."),
		collector.WithInitFunc(func() {
			deps.Vault.Events().Deposited.Hook(func(ev *vaultpkg.DepositedEvent) {
				deps.Collector.Update(vaultNamespace, depositedAmountTotal, float64(ev.Amount))
			}, event.WithWorkerPool(Component.WorkerPool))
		}),
	)),
	collector.WithMetric(collector.NewMetric(withdrawalsTotal,
		collector.WithType(collector.Counter),
		collector.WithHelp("Number of successful withdrawals since node start."),
		collector.WithInitFunc(func() {
			deps.Vault.Events().Withdrawn.Hook(func(_ *vaultpkg.WithdrawnEvent) {
				deps.Collector.Increment(vaultNamespace, withdrawalsTotal)
			}, event.WithWorkerPool(Component.WorkerPool))
		}),
	)),
	collector.WithMetric(collector.NewMetric(withdrawnAmountTotal,
		collector.WithType(collector.Counter),
		collector.WithHelp("Sum of the withdrawn amounts since node start."),
		collector.WithInitFunc(func() {
			deps.Vault.Events().Withdrawn.Hook(func(ev *vaultpkg.WithdrawnEvent) {
				deps.Collector.Update(vaultNamespace, withdrawnAmountTotal, float64(ev.Total))
			}, event.WithWorkerPool(Component.WorkerPool))
		}),
	)),
	collector.WithMetric(collector.NewMetric(transferFailuresTotal,
		collector.WithType(collector.Counter),
		collector.WithHelp("Number of withdrawals rolled back because the transfer failed."),
		collector.WithInitFunc(func() {
			deps.Vault.Events().TransferFailed.Hook(func(_ *vaultpkg.TransferFailedEvent) {
				deps.Collector.Increment(vaultNamespace, transferFailuresTotal)
			}, event.WithWorkerPool(Component.WorkerPool))
		}),
	)),
	collector.WithMetric(collector.NewMetric(accountsTotal,
		collector.WithType(collector.Gauge),
		collector.WithHelp("Number of accounts known to the vault."),
		collector.WithCollectFunc(func() (metricValue float64, labelValues []string) {
			return float64(deps.Vault.AccountCount()), nil
		}),
	)),
	collector.WithMetric(collector.NewMetric(lockedBalanceTotal,
		collector.WithType(collector.Gauge),
		collector.WithHelp("Sum of the still locked balances over all accounts."),
		collector.WithCollectFunc(func() (metricValue float64, labelValues []string) {
			var locked vaultpkg.Amount
			deps.Vault.ForEachAccount(func(_ vaultpkg.AccountID, _ int, accountLocked vaultpkg.Amount) bool {
				locked += accountLocked

				return true
			})

			return float64(locked), nil
		}),
	)),
	collector.WithMetric(collector.NewMetric(recordsTotal,
		collector.WithType(collector.Gauge),
		collector.WithHelp("Number of live deposit records over all accounts."),
		collector.WithCollectFunc(func() (metricValue float64, labelValues []string) {
			var records int
			deps.Vault.ForEachAccount(func(_ vaultpkg.AccountID, accountRecords int, _ vaultpkg.Amount) bool {
				records += accountRecords

				return true
			})

			return float64(records), nil
		}),
	)),
)
