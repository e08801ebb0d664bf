package dto

import "time"

// ClientRequest body para POST y PUT /api/clientes (PUT reemplaza el registro completo).
type ClientRequest struct {
	FirstName string  `json:"nombre" validate:"required,max=100"`
	LastName  string  `json:"apellido" validate:"required,max=100"`
	Phone     string  `json:"telefono" validate:"required"`
	OrderDate *string `json:"fecha_pedido,omitempty"`
}

// ClientResponse cliente en respuestas.
type ClientResponse struct {
	ID        string    `json:"id"`
	FirstName string    `json:"nombre"`
	LastName  string    `json:"apellido"`
	Phone     string    `json:"telefono"`
	OrderDate *string   `json:"fecha_pedido,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
