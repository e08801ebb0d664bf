package memory

import (
	"context"

	"github.com/imprentacamiri/imprenta-api/internal/domain"
	"github.com/imprentacamiri/imprenta-api/internal/domain/entity"
)

// UserRepository implementación en memoria de repository.UserRepository.
type UserRepository struct {
	store *Store
}

// NewUserRepository construye el repositorio.
func NewUserRepository(store *Store) *UserRepository {
	return &UserRepository{store: store}
}

// Create persiste un usuario. El email es único.
func (r *UserRepository) Create(_ context.Context, u *entity.User) error {
	return r.store.access(false, func(st *state) error {
		for _, existing := range st.users {
			if existing.val.Email == u.Email {
				return domain.ErrEmailAlreadyExists
			}
		}
		if _, ok := st.users[u.ID]; ok {
			return domain.ErrDuplicate
		}
		st.users[u.ID] = row[entity.User]{seq: st.next(), val: *u}
		return nil
	})
}

// GetByID obtiene un usuario por ID; (nil, nil) si no existe.
func (r *UserRepository) GetByID(_ context.Context, id string) (*entity.User, error) {
	var out *entity.User
	err := r.store.access(false, func(st *state) error {
		if rw, ok := st.users[id]; ok {
			u := rw.val
			out = &u
		}
		return nil
	})
	return out, err
}

// GetByEmail obtiene un usuario por email; (nil, nil) si no existe.
func (r *UserRepository) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	var out *entity.User
	err := r.store.access(false, func(st *state) error {
		for _, rw := range st.users {
			if rw.val.Email == email {
				u := rw.val
				out = &u
				return nil
			}
		}
		return nil
	})
	return out, err
}

// Update reemplaza un usuario existente.
func (r *UserRepository) Update(_ context.Context, u *entity.User) error {
	return r.store.access(false, func(st *state) error {
		rw, ok := st.users[u.ID]
		if !ok {
			return domain.ErrUserNotFound
		}
		for id, existing := range st.users {
			if id != u.ID && existing.val.Email == u.Email {
				return domain.ErrEmailAlreadyExists
			}
		}
		rw.val = *u
		st.users[u.ID] = rw
		return nil
	})
}

// List devuelve los usuarios en orden de creación.
func (r *UserRepository) List(_ context.Context) ([]*entity.User, error) {
	var out []*entity.User
	err := r.store.access(false, func(st *state) error {
		for _, u := range sorted(st.users) {
			out = append(out, &u)
		}
		return nil
	})
	return out, err
}

// Delete elimina un usuario.
func (r *UserRepository) Delete(_ context.Context, id string) error {
	return r.store.access(false, func(st *state) error {
		if _, ok := st.users[id]; !ok {
			return domain.ErrUserNotFound
		}
		delete(st.users, id)
		return nil
	})
}
