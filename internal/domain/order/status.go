package order

import (
	"fmt"
	"strings"

	"github.com/imprentacamiri/imprenta-api/internal/domain"
	"github.com/imprentacamiri/imprenta-api/internal/domain/entity"
)

// transitions tabla de transiciones legales. Entregado y Cancelado son terminales.
var transitions = map[entity.OrderStatus][]entity.OrderStatus{
	entity.StatusPendiente: {entity.StatusEnProceso, entity.StatusCancelado},
	entity.StatusEnProceso: {entity.StatusEntregado, entity.StatusCancelado},
}

// ParseStatus reconoce un estado sin distinguir mayúsculas ni espacios alrededor.
func ParseStatus(s string) (entity.OrderStatus, error) {
	s = strings.TrimSpace(s)
	for _, st := range entity.OrderStatuses {
		if strings.EqualFold(s, string(st)) {
			return st, nil
		}
	}
	return "", domain.NewValidationError("estado", fmt.Sprintf("estado desconocido %q", s))
}

// CanTransition indica si se puede pasar de from a to. Repetir el mismo estado siempre es válido.
func CanTransition(from, to entity.OrderStatus) bool {
	if from == to {
		return true
	}
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// ValidateTransition devuelve domain.ErrInvalidTransition si el cambio no está permitido.
func ValidateTransition(from, to entity.OrderStatus) error {
	if !CanTransition(from, to) {
		return fmt.Errorf("%w: %s → %s", domain.ErrInvalidTransition, from, to)
	}
	return nil
}

// FilterByStatus devuelve los pedidos cuyo estado coincide exactamente, en el mismo orden.
// Un filtro vacío devuelve la lista original.
func FilterByStatus(orders []*entity.Order, status entity.OrderStatus) []*entity.Order {
	if status == "" {
		return orders
	}
	out := make([]*entity.Order, 0, len(orders))
	for _, o := range orders {
		if o.Status == status {
			out = append(out, o)
		}
	}
	return out
}
