package postgres

import (
	"context"
	"fmt"

	"github.com/imprentacamiri/imprenta-api/internal/domain/entity"
	"github.com/imprentacamiri/imprenta-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var _ repository.DashboardRepository = (*DashboardRepo)(nil)

// DashboardRepo consultas agregadas de solo lectura para el panel.
type DashboardRepo struct {
	q Querier
}

// NewDashboardRepository construye el repositorio del panel.
func NewDashboardRepository(q Querier) *DashboardRepo {
	return &DashboardRepo{q: q}
}

// CountOrdersByStatus cuenta pedidos por estado; los estados sin pedidos valen 0.
func (r *DashboardRepo) CountOrdersByStatus(ctx context.Context) (map[entity.OrderStatus]int, error) {
	counts := make(map[entity.OrderStatus]int, len(entity.OrderStatuses))
	for _, s := range entity.OrderStatuses {
		counts[s] = 0
	}
	rows, err := r.q.Query(ctx, `SELECT status, COUNT(*) FROM orders GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("count orders by status: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			status string
			n      int
		)
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("scan order count: %w", err)
		}
		counts[entity.OrderStatus(status)] = n
	}
	return counts, rows.Err()
}

// OrderTotals suma total y pagado de los pedidos no cancelados.
func (r *DashboardRepo) OrderTotals(ctx context.Context) (billed, paid decimal.Decimal, err error) {
	query := `
		SELECT COALESCE(SUM(total_price), 0), COALESCE(SUM(payment), 0)
		FROM orders WHERE status <> $1`
	if err = r.q.QueryRow(ctx, query, string(entity.StatusCancelado)).Scan(&billed, &paid); err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("order totals: %w", err)
	}
	return billed, paid, nil
}

// LowStockItems ítems con cantidad por debajo del umbral, de menor a mayor.
func (r *DashboardRepo) LowStockItems(ctx context.Context, threshold int) ([]*entity.InventoryItem, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+inventoryColumns+` FROM inventory_items WHERE quantity < $1 ORDER BY quantity, created_at, id`,
		threshold,
	)
	if err != nil {
		return nil, fmt.Errorf("low stock items: %w", err)
	}
	return collectInventoryItems(rows)
}
