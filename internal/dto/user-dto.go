package dto

import "github.com/aarondl/null/v8"

type CreateUserDTO struct {
	Username  string      `json:"username" validate:"required,min=3"`
	Password  string      `json:"password" validate:"required,min=6"`
	Role      string      `json:"role" validate:"required,oneof=admin technician"`
	FirstName string      `json:"first_name" validate:"required"`
	LastName  string      `json:"last_name" validate:"required"`
	Email     null.String `json:"email" validate:"omitempty"`
	Phone     null.String `json:"phone"`
}

type UpdateUserDTO struct {
	Username  null.String `json:"username"`
	Password  null.String `json:"password"`
	Role      null.String `json:"role" validate:"omitempty,oneof=admin technician"`
	FirstName null.String `json:"first_name"`
	LastName  null.String `json:"last_name"`
	Email     null.String `json:"email"`
	Phone     null.String `json:"phone"`
}

type UserResponseDTO struct {
	ID        uint64      `json:"id"`
	Username  string      `json:"username"`
	Role      string      `json:"role"`
	FirstName string      `json:"first_name"`
	LastName  string      `json:"last_name"`
	FullName  string      `json:"full_name"`
	Email     null.String `json:"email,omitempty"`
	Phone     null.String `json:"phone,omitempty"`
	CreatedAt string      `json:"created_at"`
	UpdatedAt string      `json:"updated_at"`
}

type ShortUserDTO struct {
	ID       uint64 `json:"id"`
	FullName string `json:"full_name"`
}
