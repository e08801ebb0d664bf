package repository

import (
	"context"

	"github.com/imprentacamiri/imprenta-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// DashboardRepository consultas de solo lectura para el resumen del panel.
type DashboardRepository interface {
	CountOrdersByStatus(ctx context.Context) (map[entity.OrderStatus]int, error)
	// OrderTotals suma total facturado y pagado de los pedidos no cancelados.
	OrderTotals(ctx context.Context) (billed, paid decimal.Decimal, err error)
	LowStockItems(ctx context.Context, threshold int) ([]*entity.InventoryItem, error)
}
