package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"trackhub/internal/entities"
	"trackhub/pkg/types"
)

func TestEquipmentWorkbookLayout(t *testing.T) {
	equipmentRepo := newFakeEquipmentRepo()
	interventionRepo := newFakeInterventionRepo()
	equipmentSvc := NewEquipmentService(equipmentRepo, interventionRepo, &fakeTxManager{}, newFakeCache(), zap.NewNop())
	interventionSvc := NewInterventionService(interventionRepo, equipmentRepo, &fakeTxManager{}, newFakeCache(), zap.NewNop())
	svc := NewExportService(equipmentSvc, interventionSvc)

	equipmentRepo.add(entities.Equipment{Name: "Projector", TypeID: 1, StatusID: entities.StatusWorking})

	workbook, err := svc.EquipmentWorkbook(context.Background(), types.Filter{})
	require.NoError(t, err)
	defer workbook.Close()

	rows, err := workbook.GetRows("Equipments")
	require.NoError(t, err)
	require.Len(t, rows, 2, "header plus one data row")

	assert.Equal(t, "ID", rows[0][0])
	assert.Equal(t, "Name", rows[0][1])
	assert.Equal(t, "Projector", rows[1][1])
}

func TestInterventionWorkbookEmpty(t *testing.T) {
	equipmentRepo := newFakeEquipmentRepo()
	interventionRepo := newFakeInterventionRepo()
	equipmentSvc := NewEquipmentService(equipmentRepo, interventionRepo, &fakeTxManager{}, newFakeCache(), zap.NewNop())
	interventionSvc := NewInterventionService(interventionRepo, equipmentRepo, &fakeTxManager{}, newFakeCache(), zap.NewNop())
	svc := NewExportService(equipmentSvc, interventionSvc)

	workbook, err := svc.InterventionWorkbook(context.Background(), types.Filter{})
	require.NoError(t, err)
	defer workbook.Close()

	rows, err := workbook.GetRows("Interventions")
	require.NoError(t, err)
	require.Len(t, rows, 1, "only the header row")
	assert.Equal(t, "Date", rows[0][1])
}
