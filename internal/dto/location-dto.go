package dto

import "github.com/aarondl/null/v8"

type CreateLocationDTO struct {
	Name       string      `json:"name" validate:"required"`
	Building   null.String `json:"building"`
	Floor      null.String `json:"floor"`
	Department null.String `json:"department"`
}

type UpdateLocationDTO struct {
	Name       null.String `json:"name"`
	Building   null.String `json:"building"`
	Floor      null.String `json:"floor"`
	Department null.String `json:"department"`
}

type LocationResponseDTO struct {
	ID         uint64      `json:"id"`
	Name       string      `json:"name"`
	Building   null.String `json:"building,omitempty"`
	Floor      null.String `json:"floor,omitempty"`
	Department null.String `json:"department,omitempty"`
	CreatedAt  string      `json:"created_at"`
	UpdatedAt  string      `json:"updated_at"`
}
