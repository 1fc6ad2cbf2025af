package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/aarondl/null/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"trackhub/internal/authz"
	"trackhub/internal/dto"
	"trackhub/internal/entities"
	apperrors "trackhub/pkg/errors"
)

func adminRequester(id uint64) authz.Requester {
	return authz.Requester{ID: id, Role: entities.RoleAdmin, Authenticated: true}
}

func newUserFixture() (*fakeUserRepo, UserServiceInterface) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo, &fakeTxManager{}, newFakeCache(), zap.NewNop())
	return repo, svc
}

func TestDeleteLastAdminRejected(t *testing.T) {
	repo, svc := newUserFixture()
	adminID := repo.add(entities.User{Username: "root", Role: entities.RoleAdmin})
	repo.add(entities.User{Username: "tech", Role: entities.RoleTechnician})

	err := svc.DeleteUser(context.Background(), adminRequester(adminID), adminID)

	var violation *apperrors.InvariantViolation
	require.ErrorAs(t, err, &violation)

	count, _ := repo.CountByRole(context.Background(), nil, entities.RoleAdmin)
	assert.Equal(t, 1, count)
}

func TestDeleteTechnicianAllowed(t *testing.T) {
	repo, svc := newUserFixture()
	adminID := repo.add(entities.User{Username: "root", Role: entities.RoleAdmin})
	techID := repo.add(entities.User{Username: "tech", Role: entities.RoleTechnician})

	err := svc.DeleteUser(context.Background(), adminRequester(adminID), techID)
	require.NoError(t, err)

	_, err = repo.FindByID(context.Background(), nil, techID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestDemoteLastAdminRejected(t *testing.T) {
	repo, svc := newUserFixture()
	adminID := repo.add(entities.User{Username: "root", Role: entities.RoleAdmin})

	_, err := svc.UpdateUser(context.Background(), adminRequester(adminID), adminID, dto.UpdateUserDTO{
		Role: null.StringFrom("technician"),
	})

	var violation *apperrors.InvariantViolation
	require.ErrorAs(t, err, &violation)

	user, _ := repo.FindByID(context.Background(), nil, adminID)
	assert.Equal(t, entities.RoleAdmin, user.Role)
}

func TestPromoteTechnicianRejected(t *testing.T) {
	repo, svc := newUserFixture()
	adminID := repo.add(entities.User{Username: "root", Role: entities.RoleAdmin})
	repo.add(entities.User{Username: "root2", Role: entities.RoleAdmin})
	techID := repo.add(entities.User{Username: "tech", Role: entities.RoleTechnician})

	_, err := svc.UpdateUser(context.Background(), adminRequester(adminID), techID, dto.UpdateUserDTO{
		Role: null.StringFrom("admin"),
	})

	var violation *apperrors.InvariantViolation
	require.ErrorAs(t, err, &violation)
}

func TestDemoteAdminWithAnotherAdminAllowed(t *testing.T) {
	repo, svc := newUserFixture()
	firstID := repo.add(entities.User{Username: "root", Role: entities.RoleAdmin})
	secondID := repo.add(entities.User{Username: "backup", Role: entities.RoleAdmin})

	updated, err := svc.UpdateUser(context.Background(), adminRequester(firstID), secondID, dto.UpdateUserDTO{
		Role: null.StringFrom("technician"),
	})
	require.NoError(t, err)
	assert.Equal(t, "technician", updated.Role)
}

func TestTechnicianCannotTouchOtherAccounts(t *testing.T) {
	repo, svc := newUserFixture()
	repo.add(entities.User{Username: "root", Role: entities.RoleAdmin})
	techID := repo.add(entities.User{Username: "tech", Role: entities.RoleTechnician})
	otherID := repo.add(entities.User{Username: "tech2", Role: entities.RoleTechnician})

	requester := authz.Requester{ID: techID, Role: entities.RoleTechnician, Authenticated: true}

	_, err := svc.UpdateUser(context.Background(), requester, otherID, dto.UpdateUserDTO{
		FirstName: null.StringFrom("Eve"),
	})
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	err = svc.DeleteUser(context.Background(), requester, otherID)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
}

func TestTechnicianCannotChangeOwnRole(t *testing.T) {
	repo, svc := newUserFixture()
	techID := repo.add(entities.User{Username: "tech", Role: entities.RoleTechnician})

	requester := authz.Requester{ID: techID, Role: entities.RoleTechnician, Authenticated: true}
	_, err := svc.UpdateUser(context.Background(), requester, techID, dto.UpdateUserDTO{
		Role: null.StringFrom("admin"),
	})
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
}

// With two admins, many concurrent demotions may succeed once at most:
// the second success would leave the system without any admin.
func TestConcurrentDemotionsKeepOneAdmin(t *testing.T) {
	repo, svc := newUserFixture()
	firstID := repo.add(entities.User{Username: "root", Role: entities.RoleAdmin})
	secondID := repo.add(entities.User{Username: "backup", Role: entities.RoleAdmin})

	const attempts = 32
	targets := []uint64{firstID, secondID}

	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		target := targets[i%2]
		requester := targets[(i+1)%2]
		go func() {
			defer wg.Done()
			_, _ = svc.UpdateUser(context.Background(), adminRequester(requester), target, dto.UpdateUserDTO{
				Role: null.StringFrom("technician"),
			})
		}()
	}
	wg.Wait()

	adminCount, err := repo.CountByRole(context.Background(), nil, entities.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, 1, adminCount, "one admin must always survive")
}

func TestConcurrentDeletesRemoveExactlyOneAdmin(t *testing.T) {
	repo, svc := newUserFixture()
	firstID := repo.add(entities.User{Username: "root", Role: entities.RoleAdmin})
	secondID := repo.add(entities.User{Username: "backup", Role: entities.RoleAdmin})

	const attempts = 32
	targets := []uint64{firstID, secondID}
	results := make(chan error, attempts)

	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		target := targets[i%2]
		requester := targets[(i+1)%2]
		go func() {
			defer wg.Done()
			results <- svc.DeleteUser(context.Background(), adminRequester(requester), target)
		}()
	}
	wg.Wait()
	close(results)

	var successes, violations int
	for err := range results {
		var violation *apperrors.InvariantViolation
		switch {
		case err == nil:
			successes++
		case errors.As(err, &violation):
			violations++
		}
	}

	assert.Equal(t, 1, successes, "only one admin deletion may go through")
	assert.Greater(t, violations, 0)

	adminCount, err := repo.CountByRole(context.Background(), nil, entities.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, 1, adminCount)
}
