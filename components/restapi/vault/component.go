package vault

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
	// RouteDeposits is the route for the deposits of an account.
	// POST places a new time-locked deposit and returns the created record.
	// GET returns the amounts and remaining lock times of all current records.
	RouteDeposits = "/accounts/:" + restapipkg.ParameterAccountID + "/deposits"

	// RouteLockedBalance is the route for getting the still locked balance of an account.
	// GET returns the sum of the amounts of all records whose lock has not yet expired.
	RouteLockedBalance = "/accounts/:" + restapipkg.ParameterAccountID + "/locked-balance"

	// RouteWithdrawals is the route for withdrawing from an account.
	// POST pays out all currently unlocked records and returns the withdrawn total.
	RouteWithdrawals = "/accounts/:" + restapipkg.ParameterAccountID + "/withdrawals"
)

func init() {
	Component = &app.Component{
		Name:      "VaultAPIV1",
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

	routeGroup := deps.RestRouteManager.AddRoute("vault/v1")

	routeGroup.POST(RouteDeposits, func(c echo.Context) error {
		resp, err := createDeposit(c)
		if err != nil {
			return err
		}
		c.Response().Header().Set(echo.HeaderLocation, resp.DepositID)

		return restapipkg.JSONResponse(c, http.StatusCreated, resp)
	})

	routeGroup.GET(RouteDeposits, func(c echo.Context) error {
		resp, err := depositsForAccount(c)
		if err != nil {
			return err
		}

		return restapipkg.JSONResponse(c, http.StatusOK, resp)
	})

	routeGroup.GET(RouteLockedBalance, func(c echo.Context) error {
		resp, err := lockedBalanceForAccount(c)
		if err != nil {
			return err
		}

		return restapipkg.JSONResponse(c, http.StatusOK, resp)
	})

	routeGroup.POST(RouteWithdrawals, func(c echo.Context) error {
		resp, err := withdrawFromAccount(c)
		if err != nil {
			return err
		}

		return restapipkg.JSONResponse(c, http.StatusOK, resp)
	})

	return nil
}
