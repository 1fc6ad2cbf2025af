package dto

import "github.com/aarondl/null/v8"

type CreateInterventionDTO struct {
	Date            string     `json:"date"`
	Description     string     `json:"description" validate:"required"`
	DurationMinutes int        `json:"duration_minutes" validate:"gte=0"`
	EquipmentID     uint64     `json:"equipment_id" validate:"required"`
	UserID          null.Int64 `json:"user_id"`
	OutcomeID       null.Int64 `json:"outcome_id"`
}

type UpdateInterventionDTO struct {
	Date            null.String `json:"date"`
	Description     null.String `json:"description"`
	DurationMinutes null.Int    `json:"duration_minutes"`
	EquipmentID     null.Int64  `json:"equipment_id"`
	UserID          null.Int64  `json:"user_id"`
	OutcomeID       null.Int64  `json:"outcome_id"`
}

type InterventionResponseDTO struct {
	ID                 uint64      `json:"id"`
	Date               string      `json:"date"`
	Description        string      `json:"description"`
	DurationMinutes    int         `json:"duration_minutes"`
	EquipmentID        uint64      `json:"equipment_id"`
	EquipmentName      null.String `json:"equipment_name,omitempty"`
	UserID             null.Int64  `json:"user_id,omitempty"`
	TechnicianName     null.String `json:"technician_name,omitempty"`
	OutcomeID          null.Int64  `json:"outcome_id,omitempty"`
	OutcomeDescription null.String `json:"outcome_description,omitempty"`
	CreatedAt          string      `json:"created_at"`
	UpdatedAt          string      `json:"updated_at"`
}
