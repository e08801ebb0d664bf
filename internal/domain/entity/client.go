package entity

import "time"

// Client representa un cliente de la imprenta.
// OrderDate es el campo heredado de la primera versión; los pedidos nuevos usan Order.DeliveryDate.
type Client struct {
	ID        string
	FirstName string
	LastName  string
	Phone     string
	OrderDate *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// FullName nombre y apellido del cliente.
func (c *Client) FullName() string {
	if c.LastName == "" {
		return c.FirstName
	}
	return c.FirstName + " " + c.LastName
}
