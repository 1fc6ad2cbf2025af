package rules

import (
	"trackhub/internal/entities"
	apperrors "trackhub/pkg/errors"
)

// ValidateRoleChange guards a role edit on an existing account.
// adminCount is the number of administrators BEFORE the change is
// applied; the caller is responsible for evaluating it atomically with
// the mutation itself.
//
// Two states are forbidden:
//   - demoting the last administrator, which would leave the system
//     without any admin;
//   - promoting a technician through a role edit. Administrators are
//     only created through the dedicated creation path.
func ValidateRoleChange(current, requested entities.Role, adminCount int) error {
	if current == entities.RoleAdmin && requested != entities.RoleAdmin && adminCount <= 1 {
		return apperrors.NewInvariantViolation("cannot change role: this is the last administrator")
	}
	if current == entities.RoleTechnician && requested == entities.RoleAdmin {
		return apperrors.NewInvariantViolation("operation forbidden: a technician cannot be promoted to administrator")
	}
	return nil
}

// ValidateDeletion guards an account deletion against the same
// last-administrator invariant.
func ValidateDeletion(target entities.Role, adminCount int) error {
	if target == entities.RoleAdmin && adminCount <= 1 {
		return apperrors.NewInvariantViolation("cannot delete user: this is the last administrator")
	}
	return nil
}
