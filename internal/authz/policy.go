package authz

// Rule is the access policy for one route. The table is declarative:
// every route is bound to a rule at registration time and the gate
// consults the table before dispatch. A route that is not in the table
// is denied by default.
type Rule struct {
	// Public routes skip the authentication check entirely.
	Public bool
	// AdminOnly routes return 403 for authenticated non-admins.
	AdminOnly bool
	// SelfOrAdmin routes operate on a user resource: the owner or an
	// administrator may pass. Ownership is checked by the handler via
	// Authorize, because the resource id is only known after binding.
	SelfOrAdmin bool
}

// Decision is the outcome of an Authorize call.
type Decision struct {
	Allowed bool
	Reason  string
}

func allow() Decision             { return Decision{Allowed: true} }
func deny(reason string) Decision { return Decision{Reason: reason} }

// RouteTable maps route ids to rules and registered method/path pairs
// to route ids.
type RouteTable struct {
	rules  map[string]Rule
	routes map[string]string
}

func NewRouteTable() *RouteTable {
	return &RouteTable{
		rules:  make(map[string]Rule),
		routes: make(map[string]string),
	}
}

// Bind registers the rule for routeID and remembers that the given
// method and echo path template resolve to it.
func (t *RouteTable) Bind(method, path, routeID string, rule Rule) {
	t.rules[routeID] = rule
	t.routes[method+" "+path] = routeID
}

// RouteID resolves a matched method/path pair to its route id.
func (t *RouteTable) RouteID(method, path string) (string, bool) {
	id, ok := t.routes[method+" "+path]
	return id, ok
}

func (t *RouteTable) Rule(routeID string) (Rule, bool) {
	rule, ok := t.rules[routeID]
	return rule, ok
}

func (t *RouteTable) IsRoutePublic(routeID string) bool {
	rule, ok := t.rules[routeID]
	return ok && rule.Public
}

// Authorize evaluates the full policy for a request. resourceOwnerID
// is the id of the user the route operates on, or zero when the route
// has no owner. Denial never reveals whether the resource exists.
func (t *RouteTable) Authorize(req Requester, routeID string, resourceOwnerID uint64) Decision {
	rule, ok := t.rules[routeID]
	if !ok {
		return deny("unknown route")
	}
	if rule.Public {
		return allow()
	}
	if !req.Authenticated {
		return deny("authentication required")
	}
	if rule.AdminOnly && !req.IsAdmin() {
		return deny("administrator privileges required")
	}
	if rule.SelfOrAdmin && !req.IsAdmin() && req.ID != resourceOwnerID {
		return deny("insufficient permissions")
	}
	return allow()
}
