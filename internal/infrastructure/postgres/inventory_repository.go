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

var _ repository.InventoryRepository = (*InventoryRepo)(nil)

const inventoryColumns = `id, name, quantity, description, sold_by_dozen, dozens, entry_date, created_at, updated_at`

// InventoryRepo implementación del puerto InventoryRepository sobre PostgreSQL (usable con pool o tx).
// Al borrar un ítem, product_materials lo retira de los productos (ON DELETE CASCADE).
type InventoryRepo struct {
	q Querier
}

// NewInventoryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryRepository(q Querier) *InventoryRepo {
	return &InventoryRepo{q: q}
}

// Create persiste un nuevo ítem de inventario.
func (r *InventoryRepo) Create(ctx context.Context, item *entity.InventoryItem) error {
	query := `
		INSERT INTO inventory_items (` + inventoryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		item.ID, item.Name, item.Quantity, item.Description, item.SoldByDozen, item.Dozens,
		item.EntryDate, item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert inventory item: %w", err)
	}
	return nil
}

// GetByID obtiene un ítem por ID.
func (r *InventoryRepo) GetByID(ctx context.Context, id string) (*entity.InventoryItem, error) {
	return r.findOne(ctx, `SELECT `+inventoryColumns+` FROM inventory_items WHERE id = $1`, id)
}

// GetForUpdate obtiene el ítem con bloqueo de fila (SELECT FOR UPDATE). Usar solo dentro de una tx.
func (r *InventoryRepo) GetForUpdate(ctx context.Context, id string) (*entity.InventoryItem, error) {
	return r.findOne(ctx, `SELECT `+inventoryColumns+` FROM inventory_items WHERE id = $1 FOR UPDATE`, id)
}

func (r *InventoryRepo) findOne(ctx context.Context, query, id string) (*entity.InventoryItem, error) {
	item, err := scanInventoryItem(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventory item: %w", err)
	}
	return item, nil
}

// Update actualiza todos los campos editables del ítem.
func (r *InventoryRepo) Update(ctx context.Context, item *entity.InventoryItem) error {
	query := `
		UPDATE inventory_items SET name = $2, quantity = $3, description = $4, sold_by_dozen = $5,
			dozens = $6, entry_date = $7, updated_at = $8
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		item.ID, item.Name, item.Quantity, item.Description, item.SoldByDozen, item.Dozens,
		item.EntryDate, item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update inventory item: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateQuantity fija la cantidad disponible (usado por la reserva de pedidos).
func (r *InventoryRepo) UpdateQuantity(ctx context.Context, id string, quantity int) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE inventory_items SET quantity = $2, updated_at = now() WHERE id = $1`,
		id, quantity,
	)
	if err != nil {
		return fmt.Errorf("update inventory quantity: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List devuelve todos los ítems en orden de alta.
func (r *InventoryRepo) List(ctx context.Context) ([]*entity.InventoryItem, error) {
	rows, err := r.q.Query(ctx, `SELECT `+inventoryColumns+` FROM inventory_items ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("list inventory: %w", err)
	}
	return collectInventoryItems(rows)
}

// NamesByIDs devuelve id → nombre de los ítems existentes; los ids desconocidos se omiten.
func (r *InventoryRepo) NamesByIDs(ctx context.Context, ids []string) (map[string]string, error) {
	names := make(map[string]string, len(ids))
	if len(ids) == 0 {
		return names, nil
	}
	rows, err := r.q.Query(ctx, `SELECT id, name FROM inventory_items WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, fmt.Errorf("inventory names: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var id, name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, fmt.Errorf("scan inventory name: %w", err)
		}
		names[id] = name
	}
	return names, rows.Err()
}

// Delete elimina un ítem por ID.
func (r *InventoryRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM inventory_items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete inventory item: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func collectInventoryItems(rows pgx.Rows) ([]*entity.InventoryItem, error) {
	defer rows.Close()
	var list []*entity.InventoryItem
	for rows.Next() {
		item, err := scanInventoryItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan inventory item: %w", err)
		}
		list = append(list, item)
	}
	return list, rows.Err()
}

func scanInventoryItem(row pgx.Row) (*entity.InventoryItem, error) {
	var i entity.InventoryItem
	err := row.Scan(
		&i.ID, &i.Name, &i.Quantity, &i.Description, &i.SoldByDozen, &i.Dozens,
		&i.EntryDate, &i.CreatedAt, &i.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &i, nil
}
