package vault

import (
	"context"

	"go.uber.org/dig"

	"github.com/iotaledger/hive.go/app"
	hivedb "github.com/iotaledger/hive.go/db"
	"github.com/iotaledger/hive.go/runtime/event"
	"github.com/iotaledger/deposit-core/pkg/clock"
	"github.com/iotaledger/deposit-core/pkg/clock/wallclock"
	"github.com/iotaledger/deposit-core/pkg/daemon"
	"github.com/iotaledger/deposit-core/pkg/database"
	"github.com/iotaledger/deposit-core/pkg/transfer"
	"github.com/iotaledger/deposit-core/pkg/vault"
)

func init() {
	Component = &app.Component{
		Name:      "Vault",
		DepsFunc:  func(cDeps dependencies) { deps = cDeps },
		Params:    params,
		Provide:   provide,
		Configure: configure,
		Run:       run,
	}
}

var (
	Component *app.Component
	deps      dependencies
)

type dependencies struct {
	dig.In

	Vault      *vault.Vault
	DBInstance *database.DBInstance
}

func provide(c *dig.Container) error {
	if err := c.Provide(func() *database.DBInstance {
		dbEngine, err := hivedb.EngineFromStringAllowed(ParamsVault.Database.Engine, database.AllowedEngines)
		if err != nil {
			Component.LogPanic(err.Error())
		}

		return database.NewDBInstance(database.Config{
			Engine:       dbEngine,
			Directory:    ParamsVault.Database.Directory,
			Version:      1,
			PrefixHealth: []byte{0},
		})
	}); err != nil {
		Component.LogPanic(err.Error())
	}

	if err := c.Provide(func() clock.Clock {
		return wallclock.New()
	}); err != nil {
		Component.LogPanic(err.Error())
	}

	if err := c.Provide(func() vault.TransferExecutor {
		return transfer.NewHTTPExecutor(ParamsVault.Transfer.Endpoint, transfer.WithTimeout(ParamsVault.Transfer.Timeout))
	}); err != nil {
		Component.LogPanic(err.Error())
	}

	type vaultDeps struct {
		dig.In

		DBInstance *database.DBInstance
		Clock      clock.Clock
		Executor   vault.TransferExecutor
	}

	if err := c.Provide(func(vDeps vaultDeps) *vault.Vault {
		return vault.New(Component.Logger, vDeps.Clock, vDeps.Executor, vDeps.DBInstance.KVStore())
	}); err != nil {
		Component.LogPanic(err.Error())
	}

	return nil
}

func configure() error {
	// Notification delivery is detached from the triggering operation: a slow or failing sink can
	// never block or roll back a deposit or withdrawal.
	deps.Vault.Events().Deposited.Hook(func(ev *vault.DepositedEvent) {
		Component.LogInfof("Deposited: account %s, deposit %s, amount %d, unlocks at %s", ev.AccountID, ev.DepositID, ev.Amount, ev.UnlockTime)
	}, event.WithWorkerPool(Component.WorkerPool))

	deps.Vault.Events().Withdrawn.Hook(func(ev *vault.WithdrawnEvent) {
		Component.LogInfof("Withdrawn: account %s, total %d", ev.AccountID, ev.Total)
	}, event.WithWorkerPool(Component.WorkerPool))

	deps.Vault.Events().TransferFailed.Hook(func(ev *vault.TransferFailedEvent) {
		Component.LogWarnf("Transfer failed: account %s, total %d, withdrawal rolled back", ev.AccountID, ev.Total)
	}, event.WithWorkerPool(Component.WorkerPool))

	return nil
}

func run() error {
	if err := deps.Vault.ReadFromDisk(); err != nil {
		Component.LogPanicf("failed to restore vault state: %s", err.Error())
	}
	Component.LogInfof("Restored %d accounts from disk", deps.Vault.AccountCount())

	return Component.Daemon().BackgroundWorker("Vault", func(ctx context.Context) {
		<-ctx.Done()

		Component.LogInfo("Flushing vault state ...")
		if err := deps.Vault.Flush(); err != nil {
			Component.LogErrorf("failed to flush vault store: %s", err.Error())
		}
		deps.DBInstance.Close()
		Component.LogInfo("Flushing vault state ... done")
	}, daemon.PriorityVault)
}
