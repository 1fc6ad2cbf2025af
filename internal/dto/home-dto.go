package dto

// DashboardStatsDTO feeds the admin landing page: headline counters
// plus the chart breakdowns.
type DashboardStatsDTO struct {
	TotalEquipments        uint64            `json:"total_equipments"`
	TotalInterventions     uint64            `json:"total_interventions"`
	TotalUsers             uint64            `json:"total_users"`
	EquipmentByStatus      []ChartSegmentDTO `json:"equipment_by_status"`
	EquipmentByType        []ChartSegmentDTO `json:"equipment_by_type"`
	InterventionsByOutcome []ChartSegmentDTO `json:"interventions_by_outcome"`
}

type ChartSegmentDTO struct {
	ID    uint64 `json:"id"`
	Label string `json:"label"`
	Count uint64 `json:"count"`
}

// TechnicianActivityDTO summarizes one technician's workload.
type TechnicianActivityDTO struct {
	Technician        ShortUserDTO `json:"technician"`
	InterventionCount uint64       `json:"intervention_count"`
}

// PriorityEquipmentDTO is one row of the attention list: equipment
// whose status marks it as out of service.
type PriorityEquipmentDTO struct {
	Equipment EquipmentResponseDTO `json:"equipment"`
}
