package repository

import (
	"context"

	"github.com/jhoicas/product-catalog/internal/domain/entity"
)

// ErrorClass clasificación de errores del almacén que le importa al caso de uso.
type ErrorClass int

const (
	ErrorClassOther ErrorClass = iota
	ErrorClassConflict
)

// ProductStore define el puerto de persistencia para Product (DIP).
// Cada adaptador sabe clasificar sus propios errores, el caso de uso nunca mira códigos del motor.
type ProductStore interface {
	List(ctx context.Context) ([]*entity.Product, error)
	// Create inserta el producto y completa su ID.
	Create(ctx context.Context, product *entity.Product) error
	ClassifyError(err error) ErrorClass
}
