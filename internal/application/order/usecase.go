// Package order orquesta el ciclo de vida de un pedido: alta con reserva de inventario,
// edición, cambios de estado y baja con devolución de lo reservado.
package order

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/imprentacamiri/imprenta-api/internal/application/dto"
	"github.com/imprentacamiri/imprenta-api/internal/domain"
	"github.com/imprentacamiri/imprenta-api/internal/domain/entity"
	domorder "github.com/imprentacamiri/imprenta-api/internal/domain/order"
	"github.com/imprentacamiri/imprenta-api/internal/domain/repository"
	"github.com/imprentacamiri/imprenta-api/internal/domain/validation"
	"github.com/imprentacamiri/imprenta-api/pkg/logger"
)

// UseCase casos de uso de pedidos. Toda operación que toca inventario corre en una transacción
// con las filas de inventario bloqueadas (SELECT FOR UPDATE).
type UseCase struct {
	txRunner   TxRunner
	orderRepo  repository.OrderRepository
	clientRepo repository.ClientRepository
	metrics    Metrics
	log        *logger.Logger
}

// NewUseCase construye el caso de uso. metrics y log pueden ser nil.
func NewUseCase(
	txRunner TxRunner,
	orderRepo repository.OrderRepository,
	clientRepo repository.ClientRepository,
	metrics Metrics,
	log *logger.Logger,
) *UseCase {
	if metrics == nil {
		metrics = nopMetrics{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &UseCase{
		txRunner:   txRunner,
		orderRepo:  orderRepo,
		clientRepo: clientRepo,
		metrics:    metrics,
		log:        log,
	}
}

// Create registra un pedido Pendiente. Dentro de la transacción bloquea cada material del producto,
// exige cantidad disponible ≥ cantidad pedida y la descuenta. Si falta stock no se persiste nada.
func (uc *UseCase) Create(ctx context.Context, in dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	if err := validation.Required(
		validation.Field{Name: "cliente_id", Value: in.ClientID},
		validation.Field{Name: "producto_id", Value: in.ProductID},
	); err != nil {
		return nil, err
	}
	deliveryDate, err := validateOrderInput(in.Quantity, in.Payment, in.DeliveryDate)
	if err != nil {
		return nil, err
	}
	client, err := uc.getClient(ctx, in.ClientID)
	if err != nil {
		return nil, err
	}

	var created *entity.Order
	err = uc.txRunner.Run(ctx, func(
		orderRepo repository.OrderRepository,
		productRepo repository.ProductRepository,
		inventoryRepo repository.InventoryRepository,
	) error {
		product, err := getProduct(ctx, productRepo, in.ProductID)
		if err != nil {
			return err
		}
		total, err := domorder.Total(product.Price, in.Quantity)
		if err != nil {
			return err
		}
		reserved, err := reserve(ctx, inventoryRepo, product.Materials, in.Quantity)
		if err != nil {
			return err
		}
		now := time.Now()
		o := &entity.Order{
			ID:                uuid.New().String(),
			ClientID:          client.ID,
			ClientName:        client.FullName(),
			ProductID:         product.ID,
			ProductName:       product.Name,
			Quantity:          in.Quantity,
			UnitPrice:         product.Price,
			TotalPrice:        total,
			Payment:           in.Payment,
			Balance:           domorder.Balance(total, in.Payment),
			Status:            entity.StatusPendiente,
			ReservedMaterials: reserved,
			DeliveryDate:      deliveryDate,
			CreatedAt:         now,
			UpdatedAt:         now,
		}
		if err := orderRepo.Create(ctx, o); err != nil {
			return err
		}
		created = o
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.metrics.OrderCreated()
	uc.log.Info().
		Str("pedido_id", created.ID).
		Str("producto_id", created.ProductID).
		Int("cantidad", created.Quantity).
		Strs("materiales", created.ReservedMaterials).
		Msg("pedido creado, inventario reservado")
	return toOrderResponse(created), nil
}

// Get obtiene un pedido por ID.
func (uc *UseCase) Get(ctx context.Context, id string) (*dto.OrderResponse, error) {
	o, err := uc.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, domain.ErrNotFound
	}
	return toOrderResponse(o), nil
}

// List devuelve los pedidos en orden de creación; estado vacío = todos.
func (uc *UseCase) List(ctx context.Context, estado string) ([]dto.OrderResponse, error) {
	var status entity.OrderStatus
	if strings.TrimSpace(estado) != "" {
		s, err := domorder.ParseStatus(estado)
		if err != nil {
			return nil, err
		}
		status = s
	}
	list, err := uc.orderRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	filtered := domorder.FilterByStatus(list, status)
	out := make([]dto.OrderResponse, 0, len(filtered))
	for _, o := range filtered {
		out = append(out, *toOrderResponse(o))
	}
	return out, nil
}

// Update reemplaza el pedido completo. Precio unitario, total y saldo se recalculan con el precio
// vigente del producto. Producto y cantidad solo cambian mientras el pedido está Pendiente:
// la reserva anterior se devuelve y la nueva se descuenta en la misma transacción.
// cliente_id o producto_id vacíos conservan los datos registrados en el pedido; lo mismo ocurre
// cuando el cliente o producto del pedido ya fue eliminado.
func (uc *UseCase) Update(ctx context.Context, id string, in dto.UpdateOrderRequest) (*dto.OrderResponse, error) {
	in.ClientID = strings.TrimSpace(in.ClientID)
	in.ProductID = strings.TrimSpace(in.ProductID)
	deliveryDate, err := validateOrderInput(in.Quantity, in.Payment, in.DeliveryDate)
	if err != nil {
		return nil, err
	}
	status, err := domorder.ParseStatus(in.Status)
	if err != nil {
		return nil, err
	}
	// El cliente se busca fuera de la transacción; nil = no existe.
	var client *entity.Client
	if in.ClientID != "" {
		if client, err = uc.clientRepo.GetByID(ctx, in.ClientID); err != nil {
			return nil, err
		}
	}

	var updated *entity.Order
	var from entity.OrderStatus
	err = uc.txRunner.Run(ctx, func(
		orderRepo repository.OrderRepository,
		productRepo repository.ProductRepository,
		inventoryRepo repository.InventoryRepository,
	) error {
		o, err := orderRepo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if o == nil {
			return domain.ErrNotFound
		}
		from = o.Status
		if err := domorder.ValidateTransition(o.Status, status); err != nil {
			return err
		}
		// Una referencia inexistente solo se tolera si la del pedido ya fue eliminada.
		if in.ClientID != "" && client == nil && o.ClientID != "" {
			return fmt.Errorf("cliente %s: %w", in.ClientID, domain.ErrNotFound)
		}

		productID := in.ProductID
		if productID == "" {
			productID = o.ProductID
		}
		var product *entity.Product
		if productID != "" {
			if product, err = productRepo.GetByID(ctx, productID); err != nil {
				return err
			}
			if product == nil && o.ProductID != "" {
				return fmt.Errorf("producto %s: %w", productID, domain.ErrNotFound)
			}
		}
		productChanged := product != nil && product.ID != o.ProductID
		changed := productChanged || in.Quantity != o.Quantity
		if changed && o.Status != entity.StatusPendiente {
			return fmt.Errorf("%w: producto y cantidad solo se modifican en pedidos Pendiente", domain.ErrConflict)
		}
		if changed && product == nil {
			return fmt.Errorf("%w: el producto del pedido fue eliminado, no se puede cambiar la cantidad", domain.ErrConflict)
		}

		// Entregado consume lo reservado; solo un cambio de producto o la cancelación lo devuelven.
		if o.Status.HoldsStock() && (changed || status == entity.StatusCancelado) {
			if err := release(ctx, inventoryRepo, o.ReservedMaterials, o.Quantity); err != nil {
				return err
			}
			o.ReservedMaterials = nil
		}
		if changed && status.HoldsStock() {
			reserved, err := reserve(ctx, inventoryRepo, product.Materials, in.Quantity)
			if err != nil {
				return err
			}
			o.ReservedMaterials = reserved
		}

		// Un producto eliminado conserva el precio y nombre registrados en el pedido.
		if product != nil {
			o.ProductID = product.ID
			o.ProductName = product.Name
			o.UnitPrice = product.Price
		}
		total, err := domorder.Total(o.UnitPrice, in.Quantity)
		if err != nil {
			return err
		}
		if client != nil {
			o.ClientID = client.ID
			o.ClientName = client.FullName()
		}
		o.Quantity = in.Quantity
		o.TotalPrice = total
		o.Payment = in.Payment
		o.Balance = domorder.Balance(total, in.Payment)
		o.Status = status
		o.DeliveryDate = deliveryDate
		o.UpdatedAt = time.Now()
		if err := orderRepo.Update(ctx, o); err != nil {
			return err
		}
		updated = o
		return nil
	})
	if err != nil {
		return nil, err
	}
	if from != updated.Status {
		uc.metrics.OrderStatusChanged(string(from), string(updated.Status))
	}
	uc.log.Info().Str("pedido_id", updated.ID).Str("estado", string(updated.Status)).Int("cantidad", updated.Quantity).Msg("pedido actualizado")
	return toOrderResponse(updated), nil
}

// ChangeStatus aplica una transición de estado. Pasar a Cancelado devuelve lo reservado al inventario.
func (uc *UseCase) ChangeStatus(ctx context.Context, id, estado string) (*dto.OrderResponse, error) {
	status, err := domorder.ParseStatus(estado)
	if err != nil {
		return nil, err
	}
	var updated *entity.Order
	var from entity.OrderStatus
	err = uc.txRunner.Run(ctx, func(
		orderRepo repository.OrderRepository,
		_ repository.ProductRepository,
		inventoryRepo repository.InventoryRepository,
	) error {
		o, err := orderRepo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if o == nil {
			return domain.ErrNotFound
		}
		from = o.Status
		if err := domorder.ValidateTransition(o.Status, status); err != nil {
			return err
		}
		updated = o
		if o.Status == status {
			return nil
		}
		if status == entity.StatusCancelado && o.Status.HoldsStock() {
			if err := release(ctx, inventoryRepo, o.ReservedMaterials, o.Quantity); err != nil {
				return err
			}
			o.ReservedMaterials = nil
		}
		o.Status = status
		o.UpdatedAt = time.Now()
		return orderRepo.Update(ctx, o)
	})
	if err != nil {
		return nil, err
	}
	if from != updated.Status {
		uc.metrics.OrderStatusChanged(string(from), string(updated.Status))
		uc.log.Info().Str("pedido_id", updated.ID).Str("desde", string(from)).Str("hacia", string(updated.Status)).Msg("estado de pedido cambiado")
	}
	return toOrderResponse(updated), nil
}

// Delete elimina un pedido. Si aún mantenía inventario reservado, lo devuelve.
func (uc *UseCase) Delete(ctx context.Context, id string) error {
	var released []string
	err := uc.txRunner.Run(ctx, func(
		orderRepo repository.OrderRepository,
		_ repository.ProductRepository,
		inventoryRepo repository.InventoryRepository,
	) error {
		o, err := orderRepo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if o == nil {
			return domain.ErrNotFound
		}
		if o.Status.HoldsStock() {
			if err := release(ctx, inventoryRepo, o.ReservedMaterials, o.Quantity); err != nil {
				return err
			}
			released = o.ReservedMaterials
		}
		return orderRepo.Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	uc.log.Info().Str("pedido_id", id).Strs("materiales_devueltos", released).Msg("pedido eliminado")
	return nil
}

func (uc *UseCase) getClient(ctx context.Context, id string) (*entity.Client, error) {
	client, err := uc.clientRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, fmt.Errorf("cliente %s: %w", id, domain.ErrNotFound)
	}
	return client, nil
}

func getProduct(ctx context.Context, repo repository.ProductRepository, id string) (*entity.Product, error) {
	product, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("producto %s: %w", id, domain.ErrNotFound)
	}
	return product, nil
}

// reserve bloquea y descuenta quantity de cada material. Las filas se bloquean en orden de id
// para que dos transacciones concurrentes no se esperen mutuamente.
func reserve(ctx context.Context, repo repository.InventoryRepository, materials []string, quantity int) ([]string, error) {
	ids := slices.Clone(materials)
	slices.Sort(ids)
	ids = slices.Compact(ids)
	reserved := make([]string, 0, len(ids))
	for _, id := range ids {
		item, err := repo.GetForUpdate(ctx, id)
		if err != nil {
			return nil, err
		}
		if item == nil {
			continue
		}
		if item.Quantity < quantity {
			return nil, fmt.Errorf("%w: %s (disponible %d, requerido %d)", domain.ErrInsufficientStock, item.Name, item.Quantity, quantity)
		}
		if err := repo.UpdateQuantity(ctx, id, item.Quantity-quantity); err != nil {
			return nil, err
		}
		reserved = append(reserved, id)
	}
	return reserved, nil
}

// release devuelve quantity a cada material reservado. Los ítems ya eliminados se omiten.
func release(ctx context.Context, repo repository.InventoryRepository, reserved []string, quantity int) error {
	ids := slices.Clone(reserved)
	slices.Sort(ids)
	for _, id := range ids {
		item, err := repo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if item == nil {
			continue
		}
		if err := repo.UpdateQuantity(ctx, id, item.Quantity+quantity); err != nil {
			return err
		}
	}
	return nil
}

func validateOrderInput(quantity int, payment decimal.Decimal, deliveryDate *string) (*time.Time, error) {
	if quantity < 1 {
		return nil, domain.NewValidationError("cantidad", "debe ser al menos 1")
	}
	if payment.IsNegative() {
		return nil, domain.NewValidationError("pago", "no puede ser negativo")
	}
	if !payment.Equal(payment.Round(2)) {
		return nil, domain.NewValidationError("pago", "admite como máximo 2 decimales")
	}
	return dto.ParseDate("fecha_entrega", deliveryDate)
}

func toOrderResponse(o *entity.Order) *dto.OrderResponse {
	return &dto.OrderResponse{
		ID:           o.ID,
		ClientID:     o.ClientID,
		ClientName:   o.ClientName,
		ProductID:    o.ProductID,
		ProductName:  o.ProductName,
		Quantity:     o.Quantity,
		UnitPrice:    o.UnitPrice.StringFixed(2),
		TotalPrice:   o.TotalPrice.StringFixed(2),
		Payment:      o.Payment.StringFixed(2),
		Balance:      o.Balance.StringFixed(2),
		Status:       string(o.Status),
		DeliveryDate: dto.FormatDate(o.DeliveryDate),
		CreatedAt:    o.CreatedAt,
		UpdatedAt:    o.UpdatedAt,
	}
}
