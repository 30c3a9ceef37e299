package restapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iotaledger/deposit-core/pkg/restapi"
)

const (
	// RouteHealth is the route for getting the health of the node.
	RouteHealth = "/health"

	// RouteRoutes is the route for getting the routes the node exposes.
	RouteRoutes = "/api/routes"
)

type RoutesResponse struct {
	Routes []string `json:"routes"`
}

func setupRoutes() {
	deps.Echo.GET(RouteHealth, func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	deps.Echo.GET(RouteRoutes, func(c echo.Context) error {
		resp := &RoutesResponse{
			Routes: deps.RestRouteManager.Routes(),
		}

		return restapi.JSONResponse(c, http.StatusOK, resp)
	})
}
