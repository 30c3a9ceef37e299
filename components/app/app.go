package app

import (
	"github.com/iotaledger/hive.go/app"
	"github.com/iotaledger/hive.go/app/components/profiling"
	"github.com/iotaledger/hive.go/app/components/shutdown"
	"github.com/iotaledger/deposit-core/components/metrics"
	"github.com/iotaledger/deposit-core/components/restapi"
	"github.com/iotaledger/deposit-core/components/restapi/management"
	vaultapi "github.com/iotaledger/deposit-core/components/restapi/vault"
	"github.com/iotaledger/deposit-core/components/vault"
)

var (
	// Name of the app.
	Name = "deposit-core"

	// Version of the app.
	Version = "0.1.0"
)

func App() *app.App {
	return app.New(Name, Version,
		app.WithInitComponent(InitComponent),
		app.WithComponents(
			shutdown.Component,
			profiling.Component,
			vault.Component,
			restapi.Component,
			vaultapi.Component,
			management.Component,
			metrics.Component,
		),
	)
}

var InitComponent *app.InitComponent

func init() {
	InitComponent = &app.InitComponent{
		Component: &app.Component{
			Name: "App",
		},
		NonHiddenFlags: []string{
			"config",
			"help",
			"version",
		},
	}
}
