package dto

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto.
// Price y Stock son punteros para distinguir "no enviado" de cero.
type CreateProductRequest struct {
	Name        string           `json:"name" example:"Widget"`
	Description *string          `json:"description,omitempty" example:"Widget de aluminio"`
	Price       *decimal.Decimal `json:"price" swaggertype:"string" example:"9.99"`
	Stock       *int             `json:"stock" example:"5"`
}

// UnmarshalJSON acepta stock como número o como texto numérico ("5"), igual que price.
func (r *CreateProductRequest) UnmarshalJSON(data []byte) error {
	type alias CreateProductRequest
	aux := struct {
		*alias
		Stock *json.Number `json:"stock"`
	}{alias: (*alias)(r)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	r.Stock = nil
	if aux.Stock != nil {
		n, err := strconv.Atoi(aux.Stock.String())
		if err != nil {
			return fmt.Errorf("stock: %w", err)
		}
		r.Stock = &n
	}
	return nil
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Description *string         `json:"description"`
	Price       decimal.Decimal `json:"price" swaggertype:"string" example:"9.99"`
	Stock       int             `json:"stock"`
}
