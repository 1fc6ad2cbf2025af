package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"trackhub/internal/entities"
)

func demoTable() *RouteTable {
	t := NewRouteTable()
	t.Bind("POST", "/api/login", "auth:login", Rule{Public: true})
	t.Bind("GET", "/api/users/me", "users:me", Rule{Public: true})
	t.Bind("GET", "/api/equipments", "equipments:list", Rule{})
	t.Bind("POST", "/api/users", "users:create", Rule{AdminOnly: true})
	t.Bind("PUT", "/api/users/:id", "users:update", Rule{SelfOrAdmin: true})
	return t
}

func TestAuthorizeDefaultDeny(t *testing.T) {
	table := demoTable()
	admin := Requester{ID: 1, Role: entities.RoleAdmin, Authenticated: true}

	d := table.Authorize(admin, "users:export", 0)
	assert.False(t, d.Allowed, "an unregistered route must be denied even for admins")
}

func TestAuthorizePublicRoute(t *testing.T) {
	table := demoTable()

	d := table.Authorize(Requester{}, "auth:login", 0)
	assert.True(t, d.Allowed)
}

func TestAuthorizeRequiresAuthentication(t *testing.T) {
	table := demoTable()

	d := table.Authorize(Requester{}, "equipments:list", 0)
	assert.False(t, d.Allowed)

	tech := Requester{ID: 5, Role: entities.RoleTechnician, Authenticated: true}
	d = table.Authorize(tech, "equipments:list", 0)
	assert.True(t, d.Allowed)
}

func TestAuthorizeAdminOnly(t *testing.T) {
	table := demoTable()
	tech := Requester{ID: 5, Role: entities.RoleTechnician, Authenticated: true}
	admin := Requester{ID: 1, Role: entities.RoleAdmin, Authenticated: true}

	assert.False(t, table.Authorize(tech, "users:create", 0).Allowed)
	assert.True(t, table.Authorize(admin, "users:create", 0).Allowed)
}

func TestAuthorizeSelfOrAdmin(t *testing.T) {
	table := demoTable()
	tech := Requester{ID: 5, Role: entities.RoleTechnician, Authenticated: true}
	admin := Requester{ID: 1, Role: entities.RoleAdmin, Authenticated: true}

	assert.True(t, table.Authorize(tech, "users:update", 5).Allowed, "owner may update own account")
	assert.False(t, table.Authorize(tech, "users:update", 7).Allowed, "others are rejected")
	assert.True(t, table.Authorize(admin, "users:update", 7).Allowed)
}

func TestRouteIDLookup(t *testing.T) {
	table := demoTable()

	id, ok := table.RouteID("PUT", "/api/users/:id")
	assert.True(t, ok)
	assert.Equal(t, "users:update", id)

	_, ok = table.RouteID("DELETE", "/api/users/:id")
	assert.False(t, ok)

	assert.True(t, table.IsRoutePublic("users:me"))
	assert.False(t, table.IsRoutePublic("equipments:list"))
}
