package repository

import (
	"context"

	"github.com/imprentacamiri/imprenta-api/internal/domain/entity"
)

// InventoryRepository define el puerto de persistencia para InventoryItem.
// Delete retira además el ítem de la lista de materiales de todos los productos.
type InventoryRepository interface {
	Create(ctx context.Context, item *entity.InventoryItem) error
	GetByID(ctx context.Context, id string) (*entity.InventoryItem, error)
	// GetForUpdate bloquea la fila hasta el fin de la transacción (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, id string) (*entity.InventoryItem, error)
	Update(ctx context.Context, item *entity.InventoryItem) error
	UpdateQuantity(ctx context.Context, id string, quantity int) error
	List(ctx context.Context) ([]*entity.InventoryItem, error)
	// NamesByIDs proyección id → nombre para expandir materiales.
	NamesByIDs(ctx context.Context, ids []string) (map[string]string, error)
	Delete(ctx context.Context, id string) error
}
