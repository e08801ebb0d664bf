package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/imprentacamiri/imprenta-api/internal/application/dto"
	"github.com/imprentacamiri/imprenta-api/internal/domain"
	"github.com/imprentacamiri/imprenta-api/internal/domain/entity"
	"github.com/imprentacamiri/imprenta-api/internal/domain/repository"
	"github.com/imprentacamiri/imprenta-api/internal/domain/validation"
	"golang.org/x/crypto/bcrypt"
)

// UserUseCase aplica reglas de negocio para la gestión de usuarios (editor de administración).
// El alta y el login viven en el paquete auth.
type UserUseCase struct {
	repo        repository.UserRepository
	emailDomain string
}

// NewUserUseCase construye el caso de uso. emailDomain es el sufijo exigido al editar (vacío = sin restricción).
func NewUserUseCase(repo repository.UserRepository, emailDomain string) *UserUseCase {
	return &UserUseCase{repo: repo, emailDomain: emailDomain}
}

// GetByID obtiene un usuario por ID.
func (uc *UserUseCase) GetByID(ctx context.Context, id string) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return ToUserResponse(user), nil
}

// List lista todos los usuarios.
func (uc *UserUseCase) List(ctx context.Context) ([]dto.UserResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		out = append(out, *ToUserResponse(u))
	}
	return out, nil
}

// Update reemplaza los datos de un usuario. Solo un admin puede editar a otros o cambiar roles;
// un usuario normal puede editar sus propios datos conservando su rol.
func (uc *UserUseCase) Update(ctx context.Context, actor *entity.User, id string, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	if actor == nil {
		return nil, domain.ErrUnauthorized
	}
	if !actor.IsAdmin() && actor.ID != id {
		return nil, domain.ErrForbidden
	}
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if err := validation.Required(
		validation.Field{Name: "nombre", Value: in.Name},
		validation.Field{Name: "email", Value: in.Email},
	); err != nil {
		return nil, err
	}
	if err := validation.EmailDomain(in.Email, uc.emailDomain); err != nil {
		return nil, err
	}
	in.Phone = strings.TrimSpace(in.Phone)
	if in.Phone != "" {
		if err := validation.Phone(in.Phone); err != nil {
			return nil, err
		}
	}
	role, err := validation.NormalizeRole(in.Role)
	if err != nil {
		return nil, err
	}

	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if role != user.Role && !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	if in.Email != user.Email {
		existing, err := uc.repo.GetByEmail(ctx, in.Email)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, domain.ErrEmailAlreadyExists
		}
	}
	if in.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}
	user.Name = in.Name
	user.Email = in.Email
	user.Role = role
	user.Phone = in.Phone
	user.NationalID = strings.TrimSpace(in.NationalID)
	user.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return ToUserResponse(user), nil
}

// Delete elimina un usuario. Un admin no puede eliminarse a sí mismo.
func (uc *UserUseCase) Delete(ctx context.Context, actor *entity.User, id string) error {
	if actor != nil && actor.ID == id {
		return domain.NewValidationError("id", "no puede eliminar su propio usuario")
	}
	return uc.repo.Delete(ctx, id)
}

// ToUserResponse proyecta un usuario sin su hash de contraseña.
func ToUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:         u.ID,
		Name:       u.Name,
		Email:      u.Email,
		Role:       u.Role,
		Phone:      u.Phone,
		NationalID: u.NationalID,
		CreatedAt:  u.CreatedAt,
		UpdatedAt:  u.UpdatedAt,
	}
}
