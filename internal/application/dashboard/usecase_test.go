package dashboard

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imprentacamiri/imprenta-api/internal/domain/entity"
	"github.com/imprentacamiri/imprenta-api/internal/infrastructure/memory"
)

func TestGetSummary_AgregaPedidosEInventarioBajo(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	orders := memory.NewOrderRepository(store)
	inventory := memory.NewInventoryRepository(store)

	add := func(id string, status entity.OrderStatus, total, paid string) {
		require.NoError(t, orders.Create(ctx, &entity.Order{
			ID: id, Status: status, Quantity: 1,
			TotalPrice: decimal.RequireFromString(total), Payment: decimal.RequireFromString(paid),
		}))
	}
	add("p1", entity.StatusPendiente, "150.00", "50.00")
	add("p2", entity.StatusEntregado, "80.50", "80.50")
	add("p3", entity.StatusCancelado, "999.00", "10.00")
	require.NoError(t, inventory.Create(ctx, &entity.InventoryItem{ID: "i1", Name: "Papel", Quantity: 3}))
	require.NoError(t, inventory.Create(ctx, &entity.InventoryItem{ID: "i2", Name: "Tinta", Quantity: 50}))
	require.NoError(t, inventory.Create(ctx, &entity.InventoryItem{ID: "i3", Name: "Sobres", Quantity: 0}))

	uc := NewUseCase(memory.NewDashboardRepository(store), 5)
	uc.now = func() time.Time { return time.Date(2026, time.October, 16, 0, 0, 0, 0, time.UTC) }

	out, err := uc.GetSummary(ctx)

	require.NoError(t, err)
	assert.Equal(t, map[string]int{"Pendiente": 1, "En proceso": 0, "Entregado": 1, "Cancelado": 1}, out.OrdersByStatus)
	assert.Equal(t, "230.50", out.TotalBilled)
	assert.Equal(t, "130.50", out.TotalPaid)
	assert.Equal(t, "100.00", out.OutstandingBalance)
	require.Len(t, out.LowStock, 2)
	assert.Equal(t, "Sobres", out.LowStock[0].Name)
	assert.Equal(t, "Papel", out.LowStock[1].Name)
	assert.Equal(t, "Octubre 2026", out.DateLabel)
}

type failingRepo struct{ *memory.DashboardRepository }

func (failingRepo) OrderTotals(context.Context) (decimal.Decimal, decimal.Decimal, error) {
	return decimal.Zero, decimal.Zero, errors.New("conexión perdida")
}

func TestGetSummary_PropagaErrores(t *testing.T) {
	repo := failingRepo{memory.NewDashboardRepository(memory.NewStore())}
	uc := NewUseCase(repo, 5)

	_, err := uc.GetSummary(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "totales")
}
