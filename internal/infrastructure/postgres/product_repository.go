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

var _ repository.ProductRepository = (*ProductRepo)(nil)

// productSelect carga el producto con sus materiales ordenados por posición.
const productSelect = `
	SELECT p.id, p.name, p.description, p.price, p.category, p.created_at, p.updated_at,
		COALESCE(array_agg(pm.inventory_item_id ORDER BY pm.position)
			FILTER (WHERE pm.inventory_item_id IS NOT NULL), '{}') AS materials
	FROM products p
	LEFT JOIN product_materials pm ON pm.product_id = p.id`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un nuevo producto junto con su lista de materiales.
func (r *ProductRepo) Create(ctx context.Context, product *entity.Product) error {
	return pgx.BeginFunc(ctx, r.q, func(tx pgx.Tx) error {
		query := `
			INSERT INTO products (id, name, description, price, category, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`
		_, err := tx.Exec(ctx, query,
			product.ID, product.Name, product.Description, product.Price, product.Category,
			product.CreatedAt, product.UpdatedAt,
		)
		if err != nil {
			if isUniqueViolation(err) {
				return domain.ErrDuplicate
			}
			return fmt.Errorf("insert product: %w", err)
		}
		return insertMaterials(ctx, tx, product.ID, product.Materials)
	})
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, productSelect+` WHERE p.id = $1 GROUP BY p.id`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// Update actualiza el producto y reemplaza su lista de materiales.
func (r *ProductRepo) Update(ctx context.Context, product *entity.Product) error {
	return pgx.BeginFunc(ctx, r.q, func(tx pgx.Tx) error {
		query := `
			UPDATE products SET name = $2, description = $3, price = $4, category = $5, updated_at = $6
			WHERE id = $1`
		cmd, err := tx.Exec(ctx, query,
			product.ID, product.Name, product.Description, product.Price, product.Category, product.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("update product: %w", err)
		}
		if cmd.RowsAffected() == 0 {
			return domain.ErrNotFound
		}
		if _, err := tx.Exec(ctx, `DELETE FROM product_materials WHERE product_id = $1`, product.ID); err != nil {
			return fmt.Errorf("clear product materials: %w", err)
		}
		return insertMaterials(ctx, tx, product.ID, product.Materials)
	})
}

// List devuelve todos los productos en orden de alta.
func (r *ProductRepo) List(ctx context.Context) ([]*entity.Product, error) {
	rows, err := r.q.Query(ctx, productSelect+` GROUP BY p.id ORDER BY p.created_at, p.id`)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// Delete elimina un producto; sus pedidos conservan el nombre desnormalizado.
func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func insertMaterials(ctx context.Context, tx pgx.Tx, productID string, materials []string) error {
	if len(materials) == 0 {
		return nil
	}
	query := `
		INSERT INTO product_materials (product_id, inventory_item_id, position)
		SELECT $1, m.id, m.pos FROM unnest($2::text[]) WITH ORDINALITY AS m(id, pos)`
	if _, err := tx.Exec(ctx, query, productID, materials); err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("material: %w", domain.ErrNotFound)
		}
		return fmt.Errorf("insert product materials: %w", err)
	}
	return nil
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(
		&p.ID, &p.Name, &p.Description, &p.Price, &p.Category, &p.CreatedAt, &p.UpdatedAt, &p.Materials,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
