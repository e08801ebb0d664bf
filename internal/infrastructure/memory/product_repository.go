package memory

import (
	"context"

	"github.com/imprentacamiri/imprenta-api/internal/domain"
	"github.com/imprentacamiri/imprenta-api/internal/domain/entity"
)

// ProductRepository implementación en memoria de repository.ProductRepository.
// Con inTx las operaciones corren bajo el mutex tomado por TxRunner.
type ProductRepository struct {
	store *Store
	inTx  bool
}

// NewProductRepository construye el repositorio.
func NewProductRepository(store *Store) *ProductRepository {
	return &ProductRepository{store: store}
}

func (r *ProductRepository) Create(_ context.Context, p *entity.Product) error {
	return r.store.access(r.inTx, func(st *state) error {
		if _, ok := st.products[p.ID]; ok {
			return domain.ErrDuplicate
		}
		st.products[p.ID] = row[entity.Product]{seq: st.next(), val: copyProduct(*p)}
		return nil
	})
}

func (r *ProductRepository) GetByID(_ context.Context, id string) (*entity.Product, error) {
	var out *entity.Product
	err := r.store.access(r.inTx, func(st *state) error {
		if rw, ok := st.products[id]; ok {
			p := copyProduct(rw.val)
			out = &p
		}
		return nil
	})
	return out, err
}

func (r *ProductRepository) Update(_ context.Context, p *entity.Product) error {
	return r.store.access(r.inTx, func(st *state) error {
		rw, ok := st.products[p.ID]
		if !ok {
			return domain.ErrNotFound
		}
		rw.val = copyProduct(*p)
		st.products[p.ID] = rw
		return nil
	})
}

func (r *ProductRepository) List(_ context.Context) ([]*entity.Product, error) {
	var out []*entity.Product
	err := r.store.access(r.inTx, func(st *state) error {
		for _, p := range sorted(st.products) {
			p := copyProduct(p)
			out = append(out, &p)
		}
		return nil
	})
	return out, err
}

// Delete elimina el producto sin tocar el inventario; los pedidos pierden la referencia.
func (r *ProductRepository) Delete(_ context.Context, id string) error {
	return r.store.access(r.inTx, func(st *state) error {
		if _, ok := st.products[id]; !ok {
			return domain.ErrNotFound
		}
		delete(st.products, id)
		for oid, rw := range st.orders {
			if rw.val.ProductID == id {
				rw.val.ProductID = ""
				st.orders[oid] = rw
			}
		}
		return nil
	})
}
