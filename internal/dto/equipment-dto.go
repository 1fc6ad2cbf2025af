package dto

import "github.com/aarondl/null/v8"

type CreateEquipmentDTO struct {
	Name        string      `json:"name" validate:"required"`
	Description null.String `json:"description"`
	TypeID      uint64      `json:"type_id" validate:"required"`
	StatusID    uint64      `json:"status_id" validate:"required"`
	LocationID  null.Int64  `json:"location_id"`
}

type UpdateEquipmentDTO struct {
	Name        null.String `json:"name"`
	Description null.String `json:"description"`
	TypeID      null.Int64  `json:"type_id"`
	StatusID    null.Int64  `json:"status_id"`
	LocationID  null.Int64  `json:"location_id"`
}

type EquipmentResponseDTO struct {
	ID                uint64      `json:"id"`
	Name              string      `json:"name"`
	Description       null.String `json:"description,omitempty"`
	TypeID            uint64      `json:"type_id"`
	TypeDescription   null.String `json:"type_description,omitempty"`
	StatusID          uint64      `json:"status_id"`
	StatusDescription null.String `json:"status_description,omitempty"`
	LocationID        null.Int64  `json:"location_id,omitempty"`
	LocationName      null.String `json:"location_name,omitempty"`
	CreatedAt         string      `json:"created_at"`
	UpdatedAt         string      `json:"updated_at"`
}

// EquipmentDeleteResultDTO reports how many interventions were removed
// together with the equipment record.
type EquipmentDeleteResultDTO struct {
	DeletedInterventions int64 `json:"deleted_interventions"`
}
