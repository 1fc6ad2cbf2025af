package routes

import (
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"trackhub/internal/authz"
	"trackhub/internal/controllers"
)

// registerAll wires every route group with nil services. Registration
// never dispatches a handler, so the controllers only need to exist.
func registerAll(t *testing.T) (*echo.Echo, *authz.RouteTable) {
	t.Helper()

	e := echo.New()
	api := e.Group("/api")
	table := authz.NewRouteTable()
	nop := zap.NewNop()

	registerAuthRoutes(api, table, controllers.NewAuthController(nil, nop))
	registerUserRoutes(api, table, controllers.NewUserController(nil, nop))
	registerEquipmentRoutes(api, table, controllers.NewEquipmentController(nil, nil, nop))
	registerInterventionRoutes(api, table, controllers.NewInterventionController(nil, nil, nop))
	registerLocationRoutes(api, table, controllers.NewLocationController(nil, nop))
	registerDictionaryRoutes(api, table,
		controllers.NewDictionaryController(nil, "equipment type", nop),
		controllers.NewDictionaryController(nil, "equipment status", nop),
		controllers.NewDictionaryController(nil, "intervention outcome", nop),
	)
	registerHomeRoutes(api, table, controllers.NewHomeController(nil, nop))

	return e, table
}

func TestEveryRegisteredRouteIsBound(t *testing.T) {
	e, table := registerAll(t)

	for _, route := range e.Routes() {
		routeID, ok := table.RouteID(route.Method, route.Path)
		require.True(t, ok, "route %s %s has no policy binding", route.Method, route.Path)

		_, ok = table.Rule(routeID)
		assert.True(t, ok, "route id %q has no rule", routeID)
	}
}

func TestMutatingUserRoutesRequireAdmin(t *testing.T) {
	_, table := registerAll(t)

	adminOnly := []string{"users:list", "users:create", "users:delete"}
	for _, routeID := range adminOnly {
		rule, ok := table.Rule(routeID)
		require.True(t, ok, routeID)
		assert.True(t, rule.AdminOnly, "%s must be admin only", routeID)
	}

	selfOrAdmin := []string{"users:get", "users:update"}
	for _, routeID := range selfOrAdmin {
		rule, ok := table.Rule(routeID)
		require.True(t, ok, routeID)
		assert.True(t, rule.SelfOrAdmin, "%s must allow the owner", routeID)
	}
}

func TestDestructiveRoutesRequireAdmin(t *testing.T) {
	_, table := registerAll(t)

	for _, routeID := range []string{"equipments:delete", "interventions:delete", "locations:delete"} {
		rule, ok := table.Rule(routeID)
		require.True(t, ok, routeID)
		assert.True(t, rule.AdminOnly, "%s must be admin only", routeID)
	}
}

func TestOnlyLoginAndMeArePublic(t *testing.T) {
	e, table := registerAll(t)

	public := map[string]bool{"auth:login": true, "auth:me": true}
	for _, route := range e.Routes() {
		routeID, ok := table.RouteID(route.Method, route.Path)
		require.True(t, ok)
		assert.Equal(t, public[routeID], table.IsRoutePublic(routeID),
			"unexpected public flag on %s", routeID)
	}
}
