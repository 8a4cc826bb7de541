package dto

import "time"

// ProfileRequest datos del formulario de registro (POST /api/profile).
type ProfileRequest struct {
	Nombre          string `json:"nombre" validate:"required,min=4,max=20"`
	ApellidoPaterno string `json:"apellido_paterno" validate:"required,min=4,max=20"`
	ApellidoMaterno string `json:"apellido_materno" validate:"required,min=4,max=20"`
	RUT             string `json:"rut" validate:"required,rut"`
	Email           string `json:"email" validate:"required,min=8,max=45,email"`
	AccountKind     string `json:"account_kind" validate:"required,oneof=Cliente Empresa"`
}

// UpdateUserRequest edición de un usuario por el superadmin (perfil + rol).
type UpdateUserRequest struct {
	DisplayName     string `json:"display_name"`
	Nombre          string `json:"nombre" validate:"omitempty,min=4,max=20"`
	ApellidoPaterno string `json:"apellido_paterno" validate:"omitempty,min=4,max=20"`
	ApellidoMaterno string `json:"apellido_materno" validate:"omitempty,min=4,max=20"`
	RUT             string `json:"rut" validate:"omitempty,rut"`
	AccountKind     string `json:"account_kind" validate:"omitempty,oneof=Cliente Empresa"`
	Role            string `json:"role" validate:"omitempty,oneof=client company admin superadmin"`
}

// SetRoleRequest cambio de rol.
type SetRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=client company admin superadmin"`
}

// UserResponse perfil expuesto por la API.
type UserResponse struct {
	ID              string    `json:"id"`
	Email           string    `json:"email"`
	DisplayName     string    `json:"display_name"`
	Nombre          string    `json:"nombre,omitempty"`
	ApellidoPaterno string    `json:"apellido_paterno,omitempty"`
	ApellidoMaterno string    `json:"apellido_materno,omitempty"`
	RUT             string    `json:"rut,omitempty"`
	Role            string    `json:"role"`
	AccountKind     string    `json:"account_kind"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
