package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"trackhub/internal/entities"
	apperrors "trackhub/pkg/errors"
)

func TestDeleteEquipmentCascadesInterventions(t *testing.T) {
	equipmentRepo := newFakeEquipmentRepo()
	interventionRepo := newFakeInterventionRepo()
	svc := NewEquipmentService(equipmentRepo, interventionRepo, &fakeTxManager{}, newFakeCache(), zap.NewNop())

	equipmentID := equipmentRepo.add(entities.Equipment{Name: "Plotter", StatusID: entities.StatusWorking, TypeID: 1})
	otherID := equipmentRepo.add(entities.Equipment{Name: "Projector", StatusID: entities.StatusWorking, TypeID: 1})

	interventionRepo.add(entities.Intervention{Description: "first", EquipmentID: equipmentID})
	interventionRepo.add(entities.Intervention{Description: "second", EquipmentID: equipmentID})
	keptID := interventionRepo.add(entities.Intervention{Description: "unrelated", EquipmentID: otherID})

	result, err := svc.DeleteEquipment(context.Background(), equipmentID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), result.DeletedInterventions)

	_, err = equipmentRepo.FindByID(context.Background(), nil, equipmentID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	remaining, err := interventionRepo.GetByEquipment(context.Background(), equipmentID)
	require.NoError(t, err)
	assert.Empty(t, remaining)

	_, err = interventionRepo.FindByID(context.Background(), nil, keptID)
	assert.NoError(t, err, "interventions of other equipment must survive")
}

func TestEquipmentMutationsInvalidateDashboardCache(t *testing.T) {
	equipmentRepo := newFakeEquipmentRepo()
	cache := newFakeCache()
	svc := NewEquipmentService(equipmentRepo, newFakeInterventionRepo(), &fakeTxManager{}, cache, zap.NewNop())

	equipmentID := equipmentRepo.add(entities.Equipment{Name: "Scanner", StatusID: entities.StatusWorking, TypeID: 1})

	require.NoError(t, cache.Set(context.Background(), dashboardStatsCacheKey, "{}", 0))
	_, err := svc.DeleteEquipment(context.Background(), equipmentID)
	require.NoError(t, err)

	_, err = cache.Get(context.Background(), dashboardStatsCacheKey)
	assert.ErrorIs(t, err, apperrors.ErrNotFound, "stale dashboard stats must be dropped after a write")
}

func TestDeleteEquipmentUnknownID(t *testing.T) {
	svc := NewEquipmentService(newFakeEquipmentRepo(), newFakeInterventionRepo(), &fakeTxManager{}, newFakeCache(), zap.NewNop())

	_, err := svc.DeleteEquipment(context.Background(), 12345)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
