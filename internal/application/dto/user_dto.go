package dto

import "time"

// RegisterRequest body para POST /api/usuarios (contraseña en texto, se hashea en el caso de uso).
type RegisterRequest struct {
	Name       string `json:"nombre" validate:"required,max=200"`
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"contrasena" validate:"required"`
	Role       string `json:"rol,omitempty"`
	Phone      string `json:"telefono,omitempty"`
	NationalID string `json:"ci,omitempty"`
}

// UpdateUserRequest body para PUT /api/usuarios/:id. Contraseña vacía = no se cambia.
type UpdateUserRequest struct {
	Name       string `json:"nombre" validate:"required,max=200"`
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"contrasena,omitempty"`
	Role       string `json:"rol" validate:"required"`
	Phone      string `json:"telefono,omitempty"`
	NationalID string `json:"ci,omitempty"`
}

// UserResponse salida de un usuario (sin contraseña).
type UserResponse struct {
	ID         string    `json:"id"`
	Name       string    `json:"nombre"`
	Email      string    `json:"email"`
	Role       string    `json:"rol"`
	Phone      string    `json:"telefono,omitempty"`
	NationalID string    `json:"ci,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// LoginRequest body para POST /api/usuarios/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"contrasena" validate:"required"`
}

// LoginResponse token JWT y datos del usuario.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"usuario"`
}

// ForgotPasswordRequest body para POST /api/usuarios/olvide-contrasena.
type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ResetPasswordRequest body para POST /api/usuarios/restablecer-contrasena/:token.
type ResetPasswordRequest struct {
	Password string `json:"contrasena" validate:"required"`
}
