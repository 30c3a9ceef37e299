package management

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/dig"

	"github.com/iotaledger/hive.go/app"
	"github.com/iotaledger/deposit-core/components/restapi"
	restapipkg "github.com/iotaledger/deposit-core/pkg/restapi"
	vaultpkg "github.com/iotaledger/deposit-core/pkg/vault"
)

const (
	// RouteStats is the route for getting the aggregate vault statistics.
	// GET returns the stats.
	RouteStats = "/stats"

	// RouteAccounts is the route for getting all accounts known to the vault.
	// GET returns a list of all accounts with their record counts and locked balances.
	RouteAccounts = "/accounts"

	// RouteDatabaseFlush is the route to manually flush the vault store to disk.
	// POST flushes the database.
	RouteDatabaseFlush = "/database/flush"
)

func init() {
	Component = &app.Component{
		Name:      "ManagementAPIV1",
		DepsFunc:  func(cDeps dependencies) { deps = cDeps },
		Configure: configure,
		IsEnabled: func(_ *dig.Container) bool {
			return restapi.ParamsRestAPI.Enabled
		},
	}
}

var (
	Component *app.Component
	deps      dependencies
)

type dependencies struct {
	dig.In

	Vault            *vaultpkg.Vault
	RestRouteManager *restapipkg.RestRouteManager
}

func configure() error {
	// check if RestAPI plugin is disabled
	if !Component.App().IsComponentEnabled(restapi.Component.Identifier()) {
		Component.LogPanicf("RestAPI plugin needs to be enabled to use the %s plugin", Component.Name)
	}

	routeGroup := deps.RestRouteManager.AddRoute("management/v1")

	routeGroup.GET(RouteStats, func(c echo.Context) error {
		resp := vaultStats()

		return restapipkg.JSONResponse(c, http.StatusOK, resp)
	})

	routeGroup.GET(RouteAccounts, func(c echo.Context) error {
		resp := listAccounts()

		return restapipkg.JSONResponse(c, http.StatusOK, resp)
	})

	routeGroup.POST(RouteDatabaseFlush, func(c echo.Context) error {
		if err := deps.Vault.Flush(); err != nil {
			return err
		}

		return c.NoContent(http.StatusNoContent)
	})

	return nil
}
