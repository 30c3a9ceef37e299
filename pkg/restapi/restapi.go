package restapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iotaledger/hive.go/ierrors"
	"github.com/iotaledger/deposit-core/pkg/vault"
)

const (
	// ParameterAccountID is used to identify an account by its ID.
	ParameterAccountID = "accountID"
)

// ErrInvalidParameter is returned when a request contains an invalid parameter.
var ErrInvalidParameter = echo.NewHTTPError(http.StatusBadRequest, "invalid parameter")

// ParseAccountIDParam parses the accountID path parameter of the request.
func ParseAccountIDParam(c echo.Context) (vault.AccountID, error) {
	accountID, err := vault.AccountIDFromHexString(c.Param(ParameterAccountID))
	if err != nil {
		return vault.EmptyAccountID, ierrors.Wrapf(ErrInvalidParameter, "invalid accountID: %s", err.Error())
	}

	return accountID, nil
}

// JSONResponse sends the JSON response with the given status code.
func JSONResponse(c echo.Context, statusCode int, result interface{}) error {
	return c.JSON(statusCode, result)
}

// RestRouteManager keeps track of the registered API route groups.
type RestRouteManager struct {
	routes []string
	echo   *echo.Echo
}

func NewRestRouteManager(e *echo.Echo) *RestRouteManager {
	return &RestRouteManager{
		routes: []string{},
		echo:   e,
	}
}

// AddRoute adds a route to the Routes endpoint and returns the echo group to register endpoints on.
func (p *RestRouteManager) AddRoute(route string) *echo.Group {
	apiRoute := "/api/" + route

	found := false
	for _, r := range p.routes {
		if r == apiRoute {
			found = true

			break
		}
	}
	if !found {
		p.routes = append(p.routes, apiRoute)
	}

	return p.echo.Group(apiRoute)
}

// Routes returns the registered routes.
func (p *RestRouteManager) Routes() []string {
	return p.routes
}
