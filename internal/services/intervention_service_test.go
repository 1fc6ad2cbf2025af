package services

import (
	"context"
	"database/sql"
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

func newInterventionFixture() (*fakeInterventionRepo, *fakeEquipmentRepo, InterventionServiceInterface) {
	interventionRepo := newFakeInterventionRepo()
	equipmentRepo := newFakeEquipmentRepo()
	svc := NewInterventionService(interventionRepo, equipmentRepo, &fakeTxManager{}, newFakeCache(), zap.NewNop())
	return interventionRepo, equipmentRepo, svc
}

func TestCreateInterventionResolvedMarksEquipmentWorking(t *testing.T) {
	_, equipmentRepo, svc := newInterventionFixture()
	equipmentID := equipmentRepo.add(entities.Equipment{Name: "Printer", StatusID: entities.StatusUnderRepair, TypeID: 1})

	_, err := svc.CreateIntervention(context.Background(), authz.Requester{ID: 7, Authenticated: true}, dto.CreateInterventionDTO{
		Date:        "2026-03-14",
		Description: "replaced fuser unit",
		EquipmentID: equipmentID,
		OutcomeID:   null.Int64From(int64(entities.OutcomeResolved)),
	})
	require.NoError(t, err)

	equipment, err := equipmentRepo.FindByID(context.Background(), nil, equipmentID)
	require.NoError(t, err)
	assert.Equal(t, uint64(entities.StatusWorking), equipment.StatusID)
}

func TestCreateInterventionPendingMarksEquipmentUnderRepair(t *testing.T) {
	_, equipmentRepo, svc := newInterventionFixture()
	equipmentID := equipmentRepo.add(entities.Equipment{Name: "Scanner", StatusID: entities.StatusWorking, TypeID: 1})

	_, err := svc.CreateIntervention(context.Background(), authz.Requester{ID: 7, Authenticated: true}, dto.CreateInterventionDTO{
		Description: "awaiting spare part",
		EquipmentID: equipmentID,
		OutcomeID:   null.Int64From(int64(entities.OutcomePending)),
	})
	require.NoError(t, err)

	equipment, err := equipmentRepo.FindByID(context.Background(), nil, equipmentID)
	require.NoError(t, err)
	assert.Equal(t, uint64(entities.StatusUnderRepair), equipment.StatusID)
}

func TestCreateInterventionInvalidatesDashboardCache(t *testing.T) {
	interventionRepo := newFakeInterventionRepo()
	equipmentRepo := newFakeEquipmentRepo()
	cache := newFakeCache()
	svc := NewInterventionService(interventionRepo, equipmentRepo, &fakeTxManager{}, cache, zap.NewNop())

	equipmentID := equipmentRepo.add(entities.Equipment{Name: "Switch", StatusID: entities.StatusWorking, TypeID: 1})
	require.NoError(t, cache.Set(context.Background(), dashboardStatsCacheKey, "{}", 0))

	_, err := svc.CreateIntervention(context.Background(), authz.Requester{ID: 7, Authenticated: true}, dto.CreateInterventionDTO{
		Description: "patched firmware",
		EquipmentID: equipmentID,
	})
	require.NoError(t, err)

	_, err = cache.Get(context.Background(), dashboardStatsCacheKey)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestCreateInterventionNoOutcomeLeavesStatusAlone(t *testing.T) {
	_, equipmentRepo, svc := newInterventionFixture()
	equipmentID := equipmentRepo.add(entities.Equipment{Name: "Router", StatusID: entities.StatusWorking, TypeID: 1})

	_, err := svc.CreateIntervention(context.Background(), authz.Requester{ID: 7, Authenticated: true}, dto.CreateInterventionDTO{
		Description: "routine inspection",
		EquipmentID: equipmentID,
	})
	require.NoError(t, err)

	equipment, err := equipmentRepo.FindByID(context.Background(), nil, equipmentID)
	require.NoError(t, err)
	assert.Equal(t, uint64(entities.StatusWorking), equipment.StatusID)
}

func TestCreateInterventionDefaultsUserToRequester(t *testing.T) {
	interventionRepo, equipmentRepo, svc := newInterventionFixture()
	equipmentID := equipmentRepo.add(entities.Equipment{Name: "Switch", StatusID: entities.StatusWorking, TypeID: 1})

	created, err := svc.CreateIntervention(context.Background(), authz.Requester{ID: 42, Authenticated: true}, dto.CreateInterventionDTO{
		Description: "firmware update",
		EquipmentID: equipmentID,
	})
	require.NoError(t, err)

	stored, err := interventionRepo.FindByID(context.Background(), nil, created.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(42), stored.UserID.Int64)
}

// Moving an intervention to different equipment re-applies the stored
// outcome to that equipment, even when the update itself carries none.
func TestUpdateInterventionStoredOutcomeFollowsEquipment(t *testing.T) {
	interventionRepo, equipmentRepo, svc := newInterventionFixture()
	firstID := equipmentRepo.add(entities.Equipment{Name: "PC-1", StatusID: entities.StatusWorking, TypeID: 1})
	secondID := equipmentRepo.add(entities.Equipment{Name: "PC-2", StatusID: entities.StatusWorking, TypeID: 1})

	interventionID := interventionRepo.add(entities.Intervention{
		Description: "disk check",
		EquipmentID: firstID,
		OutcomeID:   sql.NullInt64{Int64: int64(entities.OutcomePending), Valid: true},
	})

	_, err := svc.UpdateIntervention(context.Background(), interventionID, dto.UpdateInterventionDTO{
		EquipmentID: null.Int64From(int64(secondID)),
	})
	require.NoError(t, err)

	second, err := equipmentRepo.FindByID(context.Background(), nil, secondID)
	require.NoError(t, err)
	assert.Equal(t, uint64(entities.StatusUnderRepair), second.StatusID)
}

func TestUpdateInterventionNewOutcomeWins(t *testing.T) {
	interventionRepo, equipmentRepo, svc := newInterventionFixture()
	equipmentID := equipmentRepo.add(entities.Equipment{Name: "UPS", StatusID: entities.StatusUnderRepair, TypeID: 1})

	interventionID := interventionRepo.add(entities.Intervention{
		Description: "battery swap",
		EquipmentID: equipmentID,
		OutcomeID:   sql.NullInt64{Int64: int64(entities.OutcomePending), Valid: true},
	})

	_, err := svc.UpdateIntervention(context.Background(), interventionID, dto.UpdateInterventionDTO{
		OutcomeID: null.Int64From(int64(entities.OutcomeResolved)),
	})
	require.NoError(t, err)

	equipment, err := equipmentRepo.FindByID(context.Background(), nil, equipmentID)
	require.NoError(t, err)
	assert.Equal(t, uint64(entities.StatusWorking), equipment.StatusID)
}

// An intervention can outlive its equipment; syncing against a missing
// record is not an error.
func TestSyncSkipsMissingEquipment(t *testing.T) {
	interventionRepo, _, svc := newInterventionFixture()

	interventionID := interventionRepo.add(entities.Intervention{
		Description: "orphaned record",
		EquipmentID: 999,
		OutcomeID:   sql.NullInt64{Int64: int64(entities.OutcomeResolved), Valid: true},
	})

	_, err := svc.UpdateIntervention(context.Background(), interventionID, dto.UpdateInterventionDTO{
		Description: null.StringFrom("still orphaned"),
	})
	assert.NoError(t, err)
}
