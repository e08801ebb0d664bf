package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateOrderRequest body para POST /api/pedidos.
// No incluye total ni saldo: se calculan en el servidor con el precio vigente del producto.
type CreateOrderRequest struct {
	ClientID     string          `json:"cliente_id" validate:"required"`
	ProductID    string          `json:"producto_id" validate:"required"`
	Quantity     int             `json:"cantidad" validate:"required,min=1"`
	Payment      decimal.Decimal `json:"pago"`
	DeliveryDate *string         `json:"fecha_entrega,omitempty"`
}

// UpdateOrderRequest body para PUT /api/pedidos/:id (registro completo).
// cliente_id y producto_id vacíos conservan los del pedido.
type UpdateOrderRequest struct {
	ClientID     string          `json:"cliente_id,omitempty"`
	ProductID    string          `json:"producto_id,omitempty"`
	Quantity     int             `json:"cantidad" validate:"required,min=1"`
	Payment      decimal.Decimal `json:"pago"`
	Status       string          `json:"estado" validate:"required"`
	DeliveryDate *string         `json:"fecha_entrega,omitempty"`
}

// ChangeOrderStatusRequest body para PATCH /api/pedidos/:id/estado.
type ChangeOrderStatusRequest struct {
	Status string `json:"estado" validate:"required"`
}

// OrderResponse pedido en respuestas. Los montos van con dos decimales.
type OrderResponse struct {
	ID           string    `json:"id"`
	ClientID     string    `json:"cliente_id,omitempty"`
	ClientName   string    `json:"cliente_nombre"`
	ProductID    string    `json:"producto_id,omitempty"`
	ProductName  string    `json:"producto_nombre"`
	Quantity     int       `json:"cantidad"`
	UnitPrice    string    `json:"precio_unitario"`
	TotalPrice   string    `json:"precio_total"`
	Payment      string    `json:"pago"`
	Balance      string    `json:"saldo"`
	Status       string    `json:"estado"`
	DeliveryDate *string   `json:"fecha_entrega,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
