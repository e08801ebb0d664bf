package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus estado de un pedido.
type OrderStatus string

// Estados de un pedido. El inicial es Pendiente.
const (
	StatusPendiente OrderStatus = "Pendiente"
	StatusEnProceso OrderStatus = "En proceso"
	StatusEntregado OrderStatus = "Entregado"
	StatusCancelado OrderStatus = "Cancelado"
)

// OrderStatuses lista de estados en orden del flujo.
var OrderStatuses = []OrderStatus{StatusPendiente, StatusEnProceso, StatusEntregado, StatusCancelado}

// IsTerminal indica si el estado ya no admite transiciones.
func (s OrderStatus) IsTerminal() bool {
	return s == StatusEntregado || s == StatusCancelado
}

// HoldsStock indica si un pedido en este estado mantiene reservado el inventario.
func (s OrderStatus) HoldsStock() bool {
	return s == StatusPendiente || s == StatusEnProceso
}

// Order representa un pedido de un cliente: una cantidad de un producto con seguimiento de pago.
// ClientName y ProductName están desnormalizados para sobrevivir al borrado del cliente o producto.
// UnitPrice, TotalPrice y Balance se calculan siempre en el servidor.
type Order struct {
	ID          string
	ClientID    string
	ClientName  string
	ProductID   string
	ProductName string
	Quantity    int
	UnitPrice   decimal.Decimal
	TotalPrice  decimal.Decimal
	Payment     decimal.Decimal
	Balance     decimal.Decimal
	Status      OrderStatus
	// ReservedMaterials ítems de inventario descontados al reservar; se devuelven al liberar.
	ReservedMaterials []string
	DeliveryDate      *time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
