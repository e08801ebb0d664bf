package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/imprentacamiri/imprenta-api/internal/domain"
	"github.com/imprentacamiri/imprenta-api/internal/domain/entity"
	"github.com/imprentacamiri/imprenta-api/internal/domain/repository"
	"github.com/jackc/pgx/v5"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

const orderColumns = `id, client_id, client_name, product_id, product_name, quantity, unit_price,
	total_price, payment, balance, status, reserved_materials, delivery_date, created_at, updated_at`

// OrderRepo implementación del puerto OrderRepository sobre PostgreSQL (usable con pool o tx).
// client_id y product_id quedan en NULL si se borra el cliente o el producto.
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador de pedidos. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

// Create persiste un nuevo pedido.
func (r *OrderRepo) Create(ctx context.Context, o *entity.Order) error {
	query := `
		INSERT INTO orders (` + orderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(ctx, query,
		o.ID, nullString(o.ClientID), o.ClientName, nullString(o.ProductID), o.ProductName, o.Quantity,
		o.UnitPrice, o.TotalPrice, o.Payment, o.Balance, string(o.Status), reserved(o.ReservedMaterials),
		o.DeliveryDate, o.CreatedAt, o.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return fmt.Errorf("cliente o producto: %w", domain.ErrNotFound)
		}
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

// GetByID obtiene un pedido por ID.
func (r *OrderRepo) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	return r.findOne(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id)
}

// GetForUpdate obtiene el pedido con bloqueo de fila. Usar solo dentro de una tx.
func (r *OrderRepo) GetForUpdate(ctx context.Context, id string) (*entity.Order, error) {
	return r.findOne(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1 FOR UPDATE`, id)
}

func (r *OrderRepo) findOne(ctx context.Context, query, id string) (*entity.Order, error) {
	o, err := scanOrder(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	return o, nil
}

// Update reescribe el pedido completo.
func (r *OrderRepo) Update(ctx context.Context, o *entity.Order) error {
	query := `
		UPDATE orders SET client_id = $2, client_name = $3, product_id = $4, product_name = $5,
			quantity = $6, unit_price = $7, total_price = $8, payment = $9, balance = $10, status = $11,
			reserved_materials = $12, delivery_date = $13, updated_at = $14
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		o.ID, nullString(o.ClientID), o.ClientName, nullString(o.ProductID), o.ProductName, o.Quantity,
		o.UnitPrice, o.TotalPrice, o.Payment, o.Balance, string(o.Status), reserved(o.ReservedMaterials),
		o.DeliveryDate, o.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("cliente o producto: %w", domain.ErrNotFound)
		}
		return fmt.Errorf("update order: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List devuelve todos los pedidos en orden de creación.
func (r *OrderRepo) List(ctx context.Context) ([]*entity.Order, error) {
	rows, err := r.q.Query(ctx, `SELECT `+orderColumns+` FROM orders ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()
	var list []*entity.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		list = append(list, o)
	}
	return list, rows.Err()
}

// Delete elimina un pedido por ID.
func (r *OrderRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete order: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// reserved evita enviar NULL a la columna NOT NULL reserved_materials.
func reserved(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return ids
}

func scanOrder(row pgx.Row) (*entity.Order, error) {
	var (
		o                   entity.Order
		clientID, productID *string
		status              string
	)
	err := row.Scan(
		&o.ID, &clientID, &o.ClientName, &productID, &o.ProductName, &o.Quantity, &o.UnitPrice,
		&o.TotalPrice, &o.Payment, &o.Balance, &status, &o.ReservedMaterials, &o.DeliveryDate,
		&o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	o.ClientID = derefString(clientID)
	o.ProductID = derefString(productID)
	o.Status = entity.OrderStatus(status)
	return &o, nil
}
