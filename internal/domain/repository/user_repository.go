package repository

import (
	"context"

	"github.com/imprentacamiri/imprenta-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
// Get* devuelven (nil, nil) si no existe; Update y Delete devuelven domain.ErrNotFound.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	List(ctx context.Context) ([]*entity.User, error)
	Delete(ctx context.Context, id string) error
}
