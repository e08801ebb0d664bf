package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Categorías de producto conocidas.
const (
	CategoryBanner     = "banner"
	CategoryPoster     = "poster"
	CategoryAgenda     = "agenda"
	CategoryTarjeta    = "tarjeta"
	CategoryVolante    = "volante"
	CategorySticker    = "sticker"
	CategorySello      = "sello"
	CategoryCalendario = "calendario"
	CategoryOtro       = "otro"
)

// Categories lista ordenada de categorías aceptadas.
var Categories = []string{
	CategoryBanner, CategoryPoster, CategoryAgenda, CategoryTarjeta, CategoryVolante,
	CategorySticker, CategorySello, CategoryCalendario, CategoryOtro,
}

// Product representa un producto del catálogo de la imprenta.
// Price es la única entrada para calcular el total de un pedido.
// Materials es la lista ordenada de ítems de inventario que consume (lista de materiales).
type Product struct {
	ID          string
	Name        string
	Description string
	Price       decimal.Decimal
	Category    string
	Materials   []string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// HasMaterial indica si el ítem de inventario ya forma parte de los materiales.
func (p *Product) HasMaterial(itemID string) bool {
	for _, id := range p.Materials {
		if id == itemID {
			return true
		}
	}
	return false
}
