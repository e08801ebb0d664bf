package memory

import (
	"context"
	"sort"

	"github.com/imprentacamiri/imprenta-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// DashboardRepository agrega sobre el almacén en memoria.
type DashboardRepository struct {
	store *Store
}

// NewDashboardRepository construye el repositorio.
func NewDashboardRepository(store *Store) *DashboardRepository {
	return &DashboardRepository{store: store}
}

func (r *DashboardRepository) CountOrdersByStatus(_ context.Context) (map[entity.OrderStatus]int, error) {
	out := make(map[entity.OrderStatus]int, len(entity.OrderStatuses))
	for _, s := range entity.OrderStatuses {
		out[s] = 0
	}
	err := r.store.access(false, func(st *state) error {
		for _, rw := range st.orders {
			out[rw.val.Status]++
		}
		return nil
	})
	return out, err
}

func (r *DashboardRepository) OrderTotals(_ context.Context) (billed, paid decimal.Decimal, err error) {
	err = r.store.access(false, func(st *state) error {
		for _, rw := range st.orders {
			if rw.val.Status == entity.StatusCancelado {
				continue
			}
			billed = billed.Add(rw.val.TotalPrice)
			paid = paid.Add(rw.val.Payment)
		}
		return nil
	})
	return billed, paid, err
}

// LowStockItems ítems con cantidad menor al umbral, de menor a mayor cantidad.
func (r *DashboardRepository) LowStockItems(_ context.Context, threshold int) ([]*entity.InventoryItem, error) {
	var out []*entity.InventoryItem
	err := r.store.access(false, func(st *state) error {
		for _, it := range sorted(st.inventory) {
			if it.Quantity < threshold {
				out = append(out, &it)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Quantity < out[j].Quantity })
	return out, nil
}
