package repository

import (
	"context"

	"github.com/imprentacamiri/imprenta-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product.
// Create y Update persisten también la lista ordenada de materiales.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	List(ctx context.Context) ([]*entity.Product, error)
	Delete(ctx context.Context, id string) error
}
