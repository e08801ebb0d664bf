package memory

import (
	"context"

	"github.com/imprentacamiri/imprenta-api/internal/domain"
	"github.com/imprentacamiri/imprenta-api/internal/domain/entity"
)

// OrderRepository implementación en memoria de repository.OrderRepository.
type OrderRepository struct {
	store *Store
	inTx  bool
}

// NewOrderRepository construye el repositorio.
func NewOrderRepository(store *Store) *OrderRepository {
	return &OrderRepository{store: store}
}

func (r *OrderRepository) Create(_ context.Context, o *entity.Order) error {
	return r.store.access(r.inTx, func(st *state) error {
		if _, ok := st.orders[o.ID]; ok {
			return domain.ErrDuplicate
		}
		st.orders[o.ID] = row[entity.Order]{seq: st.next(), val: copyOrder(*o)}
		return nil
	})
}

func (r *OrderRepository) GetByID(_ context.Context, id string) (*entity.Order, error) {
	var out *entity.Order
	err := r.store.access(r.inTx, func(st *state) error {
		if rw, ok := st.orders[id]; ok {
			o := copyOrder(rw.val)
			out = &o
		}
		return nil
	})
	return out, err
}

func (r *OrderRepository) GetForUpdate(ctx context.Context, id string) (*entity.Order, error) {
	return r.GetByID(ctx, id)
}

func (r *OrderRepository) Update(_ context.Context, o *entity.Order) error {
	return r.store.access(r.inTx, func(st *state) error {
		rw, ok := st.orders[o.ID]
		if !ok {
			return domain.ErrNotFound
		}
		rw.val = copyOrder(*o)
		st.orders[o.ID] = rw
		return nil
	})
}

func (r *OrderRepository) List(_ context.Context) ([]*entity.Order, error) {
	var out []*entity.Order
	err := r.store.access(r.inTx, func(st *state) error {
		for _, o := range sorted(st.orders) {
			o = copyOrder(o)
			out = append(out, &o)
		}
		return nil
	})
	return out, err
}

func (r *OrderRepository) Delete(_ context.Context, id string) error {
	return r.store.access(r.inTx, func(st *state) error {
		if _, ok := st.orders[id]; !ok {
			return domain.ErrNotFound
		}
		delete(st.orders, id)
		return nil
	})
}
