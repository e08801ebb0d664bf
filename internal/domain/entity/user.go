package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin   = "admin"
	RoleUsuario = "usuario"
)

// User representa un usuario del sistema.
type User struct {
	ID           string
	Name         string
	Email        string // único, almacenado en minúsculas
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Role         string // admin, usuario
	Phone        string
	NationalID   string // carnet de identidad
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsAdmin indica si el usuario tiene rol de administrador.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}
