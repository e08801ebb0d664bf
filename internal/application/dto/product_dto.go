package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductRequest body para POST y PUT /api/productos.
type ProductRequest struct {
	Name        string          `json:"nombre" validate:"required,min=1,max=200"`
	Description string          `json:"descripcion" validate:"max=1000"`
	Price       decimal.Decimal `json:"precio"`
	Category    string          `json:"categoria" validate:"required"`
	Materials   []string        `json:"materiales" validate:"omitempty,dive,required"`
}

// MaterialResponse proyección de un material: solo id y nombre.
type MaterialResponse struct {
	ID   string `json:"id"`
	Name string `json:"nombre"`
}

// ProductResponse salida de un producto con sus materiales expandidos.
type ProductResponse struct {
	ID          string             `json:"id"`
	Name        string             `json:"nombre"`
	Description string             `json:"descripcion"`
	Price       string             `json:"precio"`
	Category    string             `json:"categoria"`
	Materials   []MaterialResponse `json:"materiales"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
}
