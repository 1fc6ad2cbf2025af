package services

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"trackhub/pkg/types"
)

// ExportServiceInterface produces xlsx workbooks for the equipment
// and intervention registries.
type ExportServiceInterface interface {
	EquipmentWorkbook(ctx context.Context, filter types.Filter) (*excelize.File, error)
	InterventionWorkbook(ctx context.Context, filter types.Filter) (*excelize.File, error)
}

type ExportService struct {
	equipmentService    EquipmentServiceInterface
	interventionService InterventionServiceInterface
}

func NewExportService(
	equipmentService EquipmentServiceInterface,
	interventionService InterventionServiceInterface,
) ExportServiceInterface {
	return &ExportService{
		equipmentService:    equipmentService,
		interventionService: interventionService,
	}
}

// buildWorkbook lays out one sheet: a bolded header row followed by
// the data rows.
func buildWorkbook(sheet string, headers []string, rows [][]interface{}) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("renaming sheet: %w", err)
	}

	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("creating header style: %w", err)
	}

	for i, header := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return nil, err
		}
		if err := f.SetCellStyle(sheet, cell, cell, style); err != nil {
			return nil, err
		}
	}

	for rowIdx, row := range rows {
		for colIdx, value := range row {
			cell, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return nil, err
			}
		}
	}

	lastCol, err := excelize.ColumnNumberToName(len(headers))
	if err != nil {
		return nil, err
	}
	if err := f.SetColWidth(sheet, "A", lastCol, 22); err != nil {
		return nil, err
	}

	return f, nil
}

func (s *ExportService) EquipmentWorkbook(ctx context.Context, filter types.Filter) (*excelize.File, error) {
	filter.WithPagination = false
	equipments, _, err := s.equipmentService.GetEquipments(ctx, filter)
	if err != nil {
		return nil, err
	}

	headers := []string{"ID", "Name", "Description", "Type", "Status", "Location", "Created At"}
	rows := make([][]interface{}, 0, len(equipments))
	for _, e := range equipments {
		rows = append(rows, []interface{}{
			e.ID, e.Name, e.Description.String,
			e.TypeDescription.String, e.StatusDescription.String, e.LocationName.String,
			e.CreatedAt,
		})
	}
	return buildWorkbook("Equipments", headers, rows)
}

func (s *ExportService) InterventionWorkbook(ctx context.Context, filter types.Filter) (*excelize.File, error) {
	filter.WithPagination = false
	interventions, _, err := s.interventionService.GetInterventions(ctx, filter)
	if err != nil {
		return nil, err
	}

	headers := []string{"ID", "Date", "Description", "Duration (min)", "Equipment", "Technician", "Outcome"}
	rows := make([][]interface{}, 0, len(interventions))
	for _, i := range interventions {
		rows = append(rows, []interface{}{
			i.ID, i.Date, i.Description, i.DurationMinutes,
			i.EquipmentName.String, i.TechnicianName.String, i.OutcomeDescription.String,
		})
	}
	return buildWorkbook("Interventions", headers, rows)
}
