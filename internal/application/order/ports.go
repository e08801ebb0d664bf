package order

import (
	"context"

	"github.com/imprentacamiri/imprenta-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Garantiza que la reserva de inventario y el pedido se confirmen o se descarten juntos.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		orderRepo repository.OrderRepository,
		productRepo repository.ProductRepository,
		inventoryRepo repository.InventoryRepository,
	) error) error
}

// Metrics contadores de negocio de pedidos.
type Metrics interface {
	OrderCreated()
	OrderStatusChanged(from, to string)
}

type nopMetrics struct{}

func (nopMetrics) OrderCreated()                  {}
func (nopMetrics) OrderStatusChanged(_, _ string) {}
