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

// InventoryUseCase casos de uso CRUD para ítems de inventario.
// La cantidad solo cambia por edición manual o por la reserva de pedidos.
type InventoryUseCase struct {
	repo repository.InventoryRepository
}

// NewInventoryUseCase construye el caso de uso.
func NewInventoryUseCase(repo repository.InventoryRepository) *InventoryUseCase {
	return &InventoryUseCase{repo: repo}
}

// Create registra un ítem. Sin fecha de ingreso se usa la fecha actual.
func (uc *InventoryUseCase) Create(ctx context.Context, in dto.InventoryItemRequest) (*dto.InventoryItemResponse, error) {
	entryDate, err := validateInventoryItem(&in)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	if entryDate == nil {
		entryDate = &now
	}
	item := &entity.InventoryItem{
		ID:          uuid.New().String(),
		Name:        in.Name,
		Quantity:    in.Quantity,
		Description: in.Description,
		SoldByDozen: in.SoldByDozen,
		Dozens:      in.Dozens,
		EntryDate:   *entryDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, item); err != nil {
		return nil, err
	}
	return toInventoryItemResponse(item), nil
}

// GetByID obtiene un ítem por ID.
func (uc *InventoryUseCase) GetByID(ctx context.Context, id string) (*dto.InventoryItemResponse, error) {
	item, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	return toInventoryItemResponse(item), nil
}

// Update reemplaza el registro completo del ítem.
func (uc *InventoryUseCase) Update(ctx context.Context, id string, in dto.InventoryItemRequest) (*dto.InventoryItemResponse, error) {
	entryDate, err := validateInventoryItem(&in)
	if err != nil {
		return nil, err
	}
	item, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	item.Name = in.Name
	item.Quantity = in.Quantity
	item.Description = in.Description
	item.SoldByDozen = in.SoldByDozen
	item.Dozens = in.Dozens
	if entryDate != nil {
		item.EntryDate = *entryDate
	}
	item.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, item); err != nil {
		return nil, err
	}
	return toInventoryItemResponse(item), nil
}

// List lista el inventario.
func (uc *InventoryUseCase) List(ctx context.Context) ([]dto.InventoryItemResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.InventoryItemResponse, 0, len(list))
	for _, it := range list {
		out = append(out, *toInventoryItemResponse(it))
	}
	return out, nil
}

// Delete elimina un ítem; desaparece de los materiales de los productos que lo usaban.
func (uc *InventoryUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}

func validateInventoryItem(in *dto.InventoryItemRequest) (*time.Time, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)
	if err := validation.Required(validation.Field{Name: "nombre", Value: in.Name}); err != nil {
		return nil, err
	}
	if in.Quantity < 0 {
		return nil, domain.NewValidationError("cantidad", "no puede ser negativa")
	}
	if in.Dozens < 0 {
		return nil, domain.NewValidationError("docenas", "no puede ser negativo")
	}
	if !in.SoldByDozen {
		in.Dozens = 0
	}
	return dto.ParseDate("fecha_ingreso", in.EntryDate)
}

func toInventoryItemResponse(it *entity.InventoryItem) *dto.InventoryItemResponse {
	return &dto.InventoryItemResponse{
		ID:          it.ID,
		Name:        it.Name,
		Quantity:    it.Quantity,
		Description: it.Description,
		SoldByDozen: it.SoldByDozen,
		Dozens:      it.Dozens,
		EntryDate:   it.EntryDate.Format(dto.DateLayout),
		CreatedAt:   it.CreatedAt,
		UpdatedAt:   it.UpdatedAt,
	}
}
