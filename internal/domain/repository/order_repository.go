package repository

import (
	"context"

	"github.com/imprentacamiri/imprenta-api/internal/domain/entity"
)

// OrderRepository define el puerto de persistencia para Order.
// List devuelve los pedidos en orden de creación.
type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	GetByID(ctx context.Context, id string) (*entity.Order, error)
	// GetForUpdate bloquea el pedido hasta el fin de la transacción.
	GetForUpdate(ctx context.Context, id string) (*entity.Order, error)
	Update(ctx context.Context, order *entity.Order) error
	List(ctx context.Context) ([]*entity.Order, error)
	Delete(ctx context.Context, id string) error
}
