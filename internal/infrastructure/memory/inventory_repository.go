package memory

import (
	"context"

	"github.com/imprentacamiri/imprenta-api/internal/domain"
	"github.com/imprentacamiri/imprenta-api/internal/domain/entity"
)

// InventoryRepository implementación en memoria de repository.InventoryRepository.
type InventoryRepository struct {
	store *Store
	inTx  bool
}

// NewInventoryRepository construye el repositorio.
func NewInventoryRepository(store *Store) *InventoryRepository {
	return &InventoryRepository{store: store}
}

func (r *InventoryRepository) Create(_ context.Context, item *entity.InventoryItem) error {
	return r.store.access(r.inTx, func(st *state) error {
		if _, ok := st.inventory[item.ID]; ok {
			return domain.ErrDuplicate
		}
		st.inventory[item.ID] = row[entity.InventoryItem]{seq: st.next(), val: *item}
		return nil
	})
}

func (r *InventoryRepository) GetByID(_ context.Context, id string) (*entity.InventoryItem, error) {
	var out *entity.InventoryItem
	err := r.store.access(r.inTx, func(st *state) error {
		if rw, ok := st.inventory[id]; ok {
			it := rw.val
			out = &it
		}
		return nil
	})
	return out, err
}

// GetForUpdate en memoria equivale a GetByID: la transacción ya tiene el almacén bloqueado.
func (r *InventoryRepository) GetForUpdate(ctx context.Context, id string) (*entity.InventoryItem, error) {
	return r.GetByID(ctx, id)
}

func (r *InventoryRepository) Update(_ context.Context, item *entity.InventoryItem) error {
	return r.store.access(r.inTx, func(st *state) error {
		rw, ok := st.inventory[item.ID]
		if !ok {
			return domain.ErrNotFound
		}
		rw.val = *item
		st.inventory[item.ID] = rw
		return nil
	})
}

func (r *InventoryRepository) UpdateQuantity(_ context.Context, id string, quantity int) error {
	return r.store.access(r.inTx, func(st *state) error {
		rw, ok := st.inventory[id]
		if !ok {
			return domain.ErrNotFound
		}
		rw.val.Quantity = quantity
		st.inventory[id] = rw
		return nil
	})
}

func (r *InventoryRepository) List(_ context.Context) ([]*entity.InventoryItem, error) {
	var out []*entity.InventoryItem
	err := r.store.access(r.inTx, func(st *state) error {
		for _, it := range sorted(st.inventory) {
			out = append(out, &it)
		}
		return nil
	})
	return out, err
}

// NamesByIDs omite los ids inexistentes.
func (r *InventoryRepository) NamesByIDs(_ context.Context, ids []string) (map[string]string, error) {
	out := make(map[string]string, len(ids))
	err := r.store.access(r.inTx, func(st *state) error {
		for _, id := range ids {
			if rw, ok := st.inventory[id]; ok {
				out[id] = rw.val.Name
			}
		}
		return nil
	})
	return out, err
}

// Delete elimina el ítem y lo retira de los materiales de todos los productos.
func (r *InventoryRepository) Delete(_ context.Context, id string) error {
	return r.store.access(r.inTx, func(st *state) error {
		if _, ok := st.inventory[id]; !ok {
			return domain.ErrNotFound
		}
		delete(st.inventory, id)
		for pid, rw := range st.products {
			if !rw.val.HasMaterial(id) {
				continue
			}
			kept := make([]string, 0, len(rw.val.Materials))
			for _, m := range rw.val.Materials {
				if m != id {
					kept = append(kept, m)
				}
			}
			rw.val.Materials = kept
			st.products[pid] = rw
		}
		return nil
	})
}
