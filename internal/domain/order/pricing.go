// Package order contiene las reglas puras del flujo de pedidos: precio, saldo,
// transiciones de estado y filtrado.
package order

import (
	"github.com/imprentacamiri/imprenta-api/internal/domain"
	"github.com/shopspring/decimal"
)

// Total = precio unitario × cantidad. La cantidad mínima es 1.
func Total(unitPrice decimal.Decimal, quantity int) (decimal.Decimal, error) {
	if quantity < 1 {
		return decimal.Zero, domain.NewValidationError("cantidad", "debe ser al menos 1")
	}
	if unitPrice.IsNegative() {
		return decimal.Zero, domain.NewValidationError("precio", "no puede ser negativo")
	}
	return unitPrice.Mul(decimal.NewFromInt(int64(quantity))), nil
}

// Balance = total − pago. Sin piso en cero: un sobrepago deja saldo negativo.
func Balance(total, payment decimal.Decimal) decimal.Decimal {
	return total.Sub(payment)
}
