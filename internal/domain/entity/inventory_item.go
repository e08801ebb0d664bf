package entity

import "time"

// InventoryItem representa un insumo o existencia del inventario.
// Dozens solo tiene sentido cuando SoldByDozen es verdadero.
type InventoryItem struct {
	ID          string
	Name        string
	Quantity    int
	Description string
	SoldByDozen bool
	Dozens      int
	EntryDate   time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
