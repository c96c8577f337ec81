package entity

import "github.com/shopspring/decimal"

// Product es la única entidad del catálogo. ID lo asigna el almacén.
type Product struct {
	ID          int64
	Name        string
	Description *string // nil = sin descripción
	Price       decimal.Decimal
	Stock       int
}

// InStock indica si hay existencias.
func (p *Product) InStock() bool { return p.Stock > 0 }
