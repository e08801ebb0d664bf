package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/imprentacamiri/imprenta-api/internal/application/dto"
	"github.com/imprentacamiri/imprenta-api/internal/domain"
	"github.com/imprentacamiri/imprenta-api/internal/domain/entity"
	"github.com/imprentacamiri/imprenta-api/internal/domain/repository"
	"github.com/imprentacamiri/imprenta-api/internal/domain/validation"
)

// ClientUseCase casos de uso CRUD para clientes. Borrar un cliente no afecta sus pedidos.
type ClientUseCase struct {
	repo repository.ClientRepository
}

// NewClientUseCase construye el caso de uso.
func NewClientUseCase(repo repository.ClientRepository) *ClientUseCase {
	return &ClientUseCase{repo: repo}
}

// Create crea un cliente. Nombre, apellido y teléfono son obligatorios.
func (uc *ClientUseCase) Create(ctx context.Context, in dto.ClientRequest) (*dto.ClientResponse, error) {
	orderDate, err := validateClient(&in)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	client := &entity.Client{
		ID:        uuid.New().String(),
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Phone:     in.Phone,
		OrderDate: orderDate,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, client); err != nil {
		return nil, err
	}
	return toClientResponse(client), nil
}

// GetByID obtiene un cliente por ID.
func (uc *ClientUseCase) GetByID(ctx context.Context, id string) (*dto.ClientResponse, error) {
	client, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, domain.ErrNotFound
	}
	return toClientResponse(client), nil
}

// Update reemplaza el registro completo del cliente.
func (uc *ClientUseCase) Update(ctx context.Context, id string, in dto.ClientRequest) (*dto.ClientResponse, error) {
	orderDate, err := validateClient(&in)
	if err != nil {
		return nil, err
	}
	client, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, domain.ErrNotFound
	}
	client.FirstName = in.FirstName
	client.LastName = in.LastName
	client.Phone = in.Phone
	client.OrderDate = orderDate
	client.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, client); err != nil {
		return nil, err
	}
	return toClientResponse(client), nil
}

// List lista todos los clientes.
func (uc *ClientUseCase) List(ctx context.Context) ([]dto.ClientResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ClientResponse, 0, len(list))
	for _, c := range list {
		out = append(out, *toClientResponse(c))
	}
	return out, nil
}

// Delete elimina un cliente. domain.ErrNotFound si no existe.
func (uc *ClientUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}

func validateClient(in *dto.ClientRequest) (*time.Time, error) {
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	in.Phone = strings.TrimSpace(in.Phone)
	if err := validation.Required(
		validation.Field{Name: "nombre", Value: in.FirstName},
		validation.Field{Name: "apellido", Value: in.LastName},
		validation.Field{Name: "telefono", Value: in.Phone},
	); err != nil {
		return nil, err
	}
	if err := validation.Phone(in.Phone); err != nil {
		return nil, err
	}
	return dto.ParseDate("fecha_pedido", in.OrderDate)
}

func toClientResponse(c *entity.Client) *dto.ClientResponse {
	return &dto.ClientResponse{
		ID:        c.ID,
		FirstName: c.FirstName,
		LastName:  c.LastName,
		Phone:     c.Phone,
		OrderDate: dto.FormatDate(c.OrderDate),
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
