package dto

import "time"

// InventoryItemRequest body para POST y PUT /api/inventario.
type InventoryItemRequest struct {
	Name        string  `json:"nombre" validate:"required,max=200"`
	Quantity    int     `json:"cantidad" validate:"gte=0"`
	Description string  `json:"descripcion" validate:"max=1000"`
	SoldByDozen bool    `json:"por_docena"`
	Dozens      int     `json:"docenas" validate:"gte=0"`
	EntryDate   *string `json:"fecha_ingreso,omitempty"`
}

// InventoryItemResponse ítem de inventario en respuestas.
type InventoryItemResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"nombre"`
	Quantity    int       `json:"cantidad"`
	Description string    `json:"descripcion"`
	SoldByDozen bool      `json:"por_docena"`
	Dozens      int       `json:"docenas"`
	EntryDate   string    `json:"fecha_ingreso"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
