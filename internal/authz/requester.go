package authz

import "trackhub/internal/entities"

// Requester identifies who is making the current request. It is built
// once by the gate middleware and passed explicitly to every service
// call that needs it; there is no ambient "current user".
type Requester struct {
	ID            uint64
	Role          entities.Role
	Authenticated bool
}

func (r Requester) IsAdmin() bool {
	return r.Authenticated && r.Role == entities.RoleAdmin
}
