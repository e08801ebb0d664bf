package memory

import (
	"context"

	"github.com/imprentacamiri/imprenta-api/internal/domain"
	"github.com/imprentacamiri/imprenta-api/internal/domain/entity"
)

// ClientRepository implementación en memoria de repository.ClientRepository.
type ClientRepository struct {
	store *Store
}

// NewClientRepository construye el repositorio.
func NewClientRepository(store *Store) *ClientRepository {
	return &ClientRepository{store: store}
}

func (r *ClientRepository) Create(_ context.Context, c *entity.Client) error {
	return r.store.access(false, func(st *state) error {
		if _, ok := st.clients[c.ID]; ok {
			return domain.ErrDuplicate
		}
		st.clients[c.ID] = row[entity.Client]{seq: st.next(), val: *c}
		return nil
	})
}

func (r *ClientRepository) GetByID(_ context.Context, id string) (*entity.Client, error) {
	var out *entity.Client
	err := r.store.access(false, func(st *state) error {
		if rw, ok := st.clients[id]; ok {
			c := rw.val
			out = &c
		}
		return nil
	})
	return out, err
}

func (r *ClientRepository) Update(_ context.Context, c *entity.Client) error {
	return r.store.access(false, func(st *state) error {
		rw, ok := st.clients[c.ID]
		if !ok {
			return domain.ErrNotFound
		}
		rw.val = *c
		st.clients[c.ID] = rw
		return nil
	})
}

func (r *ClientRepository) List(_ context.Context) ([]*entity.Client, error) {
	var out []*entity.Client
	err := r.store.access(false, func(st *state) error {
		for _, c := range sorted(st.clients) {
			out = append(out, &c)
		}
		return nil
	})
	return out, err
}

// Delete elimina el cliente. Los pedidos conservan el nombre desnormalizado y pierden la referencia.
func (r *ClientRepository) Delete(_ context.Context, id string) error {
	return r.store.access(false, func(st *state) error {
		if _, ok := st.clients[id]; !ok {
			return domain.ErrNotFound
		}
		delete(st.clients, id)
		for oid, rw := range st.orders {
			if rw.val.ClientID == id {
				rw.val.ClientID = ""
				st.orders[oid] = rw
			}
		}
		return nil
	})
}
