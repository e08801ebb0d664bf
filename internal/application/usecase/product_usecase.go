package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/imprentacamiri/imprenta-api/internal/application/dto"
	"github.com/imprentacamiri/imprenta-api/internal/domain"
	"github.com/imprentacamiri/imprenta-api/internal/domain/entity"
	"github.com/imprentacamiri/imprenta-api/internal/domain/repository"
	"github.com/imprentacamiri/imprenta-api/internal/domain/validation"
	"github.com/shopspring/decimal"
)

// ProductUseCase casos de uso CRUD para productos y su lista de materiales.
// Ninguna operación de producto modifica registros de inventario.
type ProductUseCase struct {
	repo          repository.ProductRepository
	inventoryRepo repository.InventoryRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, inventoryRepo repository.InventoryRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo, inventoryRepo: inventoryRepo}
}

// Create crea un producto. Los materiales deben existir en inventario.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.ProductRequest) (*dto.ProductResponse, error) {
	category, materials, err := uc.validate(ctx, &in)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	product := &entity.Product{
		ID:          uuid.New().String(),
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Category:    category,
		Materials:   materials,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	return uc.toResponse(ctx, product)
}

// GetByID obtiene un producto con sus materiales expandidos a {id, nombre}.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return uc.toResponse(ctx, product)
}

// Update reemplaza el registro completo del producto, incluida la lista de materiales.
// Un cambio de precio no recalcula pedidos existentes: cada pedido guarda el precio con que se registró.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.ProductRequest) (*dto.ProductResponse, error) {
	category, materials, err := uc.validate(ctx, &in)
	if err != nil {
		return nil, err
	}
	product, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	product.Name = in.Name
	product.Description = in.Description
	product.Price = in.Price
	product.Category = category
	product.Materials = materials
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	return uc.toResponse(ctx, product)
}

// List lista los productos. Los nombres de materiales se resuelven con una sola consulta.
func (uc *ProductUseCase) List(ctx context.Context) ([]dto.ProductResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	var ids []string
	for _, p := range list {
		ids = append(ids, p.Materials...)
	}
	names, err := uc.inventoryRepo.NamesByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		out = append(out, toProductResponse(p, names))
	}
	return out, nil
}

// Delete elimina un producto. El inventario referenciado no se toca.
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}

// AddMaterial agrega un ítem de inventario a los materiales del producto.
// Si ya estaba, no hace nada. No reserva ni consume cantidad.
func (uc *ProductUseCase) AddMaterial(ctx context.Context, productID, itemID string) (*dto.ProductResponse, error) {
	product, err := uc.get(ctx, productID)
	if err != nil {
		return nil, err
	}
	item, err := uc.inventoryRepo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, fmt.Errorf("material %s: %w", itemID, domain.ErrNotFound)
	}
	if !product.HasMaterial(itemID) {
		product.Materials = append(product.Materials, itemID)
		product.UpdatedAt = time.Now()
		if err := uc.repo.Update(ctx, product); err != nil {
			return nil, err
		}
	}
	return uc.toResponse(ctx, product)
}

// RemoveMaterial quita un ítem de los materiales del producto. Si no estaba, no hace nada.
func (uc *ProductUseCase) RemoveMaterial(ctx context.Context, productID, itemID string) (*dto.ProductResponse, error) {
	product, err := uc.get(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product.HasMaterial(itemID) {
		kept := make([]string, 0, len(product.Materials)-1)
		for _, id := range product.Materials {
			if id != itemID {
				kept = append(kept, id)
			}
		}
		product.Materials = kept
		product.UpdatedAt = time.Now()
		if err := uc.repo.Update(ctx, product); err != nil {
			return nil, err
		}
	}
	return uc.toResponse(ctx, product)
}

func (uc *ProductUseCase) get(ctx context.Context, id string) (*entity.Product, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return product, nil
}

// validate normaliza la entrada y comprueba que los materiales existan (sin duplicados, orden conservado).
func (uc *ProductUseCase) validate(ctx context.Context, in *dto.ProductRequest) (string, []string, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)
	if err := validation.Required(validation.Field{Name: "nombre", Value: in.Name}); err != nil {
		return "", nil, err
	}
	if in.Price.LessThan(decimal.Zero) {
		return "", nil, domain.NewValidationError("precio", "no puede ser negativo")
	}
	if !in.Price.Equal(in.Price.Round(2)) {
		return "", nil, domain.NewValidationError("precio", "admite como máximo 2 decimales")
	}
	category, err := validation.NormalizeCategory(in.Category)
	if err != nil {
		return "", nil, err
	}
	materials := make([]string, 0, len(in.Materials))
	seen := make(map[string]bool, len(in.Materials))
	for _, id := range in.Materials {
		if seen[id] {
			continue
		}
		seen[id] = true
		materials = append(materials, id)
	}
	if len(materials) > 0 {
		names, err := uc.inventoryRepo.NamesByIDs(ctx, materials)
		if err != nil {
			return "", nil, err
		}
		for _, id := range materials {
			if _, ok := names[id]; !ok {
				return "", nil, domain.NewValidationError("materiales", "ítem de inventario inexistente: "+id)
			}
		}
	}
	return category, materials, nil
}

func (uc *ProductUseCase) toResponse(ctx context.Context, p *entity.Product) (*dto.ProductResponse, error) {
	names, err := uc.inventoryRepo.NamesByIDs(ctx, p.Materials)
	if err != nil {
		return nil, err
	}
	out := toProductResponse(p, names)
	return &out, nil
}

func toProductResponse(p *entity.Product, names map[string]string) dto.ProductResponse {
	materials := make([]dto.MaterialResponse, 0, len(p.Materials))
	for _, id := range p.Materials {
		materials = append(materials, dto.MaterialResponse{ID: id, Name: names[id]})
	}
	return dto.ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price.StringFixed(2),
		Category:    p.Category,
		Materials:   materials,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
