package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/product-catalog/internal/domain/entity"
	"github.com/jhoicas/product-catalog/internal/domain/repository"
)

var _ repository.ProductStore = (*ProductRepo)(nil)

const queryTimeout = 5 * time.Second

// ProductRepo implementación del puerto ProductStore sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// List devuelve todas las filas sin filtro ni orden explícito.
func (r *ProductRepo) List(ctx context.Context) ([]*entity.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	rows, err := r.q.Query(ctx, `SELECT id, name, description, price, stock FROM products`)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	list := make([]*entity.Product, 0)
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Stock); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return list, nil
}

// Create inserta el producto; la fila devuelta por RETURNING reemplaza los campos del llamador.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	err := r.q.QueryRow(ctx, `
		INSERT INTO products (name, description, price, stock)
		VALUES ($1, $2, $3, $4)
		RETURNING id, name, description, price, stock`,
		p.Name, p.Description, p.Price, p.Stock,
	).Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Stock)
	if err != nil {
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// ClassifyError traduce unique_violation (23505) a conflicto.
func (r *ProductRepo) ClassifyError(err error) repository.ErrorClass {
	if isUniqueViolation(err) {
		return repository.ErrorClassConflict
	}
	return repository.ErrorClassOther
}
