package web

import (
	"errors"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/product-catalog/internal/application/dto"
)

var validate = validator.New()

// ProductForm campos del formulario tal como los escribe el usuario.
type ProductForm struct {
	Name        string `form:"name" validate:"required"`
	Description string `form:"description"`
	Price       string `form:"price" validate:"required,numeric"`
	Stock       string `form:"stock" validate:"required,number"`
}

// FormError error de validación del formulario, listo para mostrar.
type FormError struct {
	Message string
}

func (e *FormError) Error() string { return e.Message }

var fieldMessages = map[string]map[string]string{
	"Name":  {"required": "El nombre es obligatorio."},
	"Price": {"required": "El precio es obligatorio.", "numeric": "El precio debe ser un número."},
	"Stock": {"required": "El stock es obligatorio.", "number": "El stock debe ser un entero no negativo."},
}

// Parse valida y convierte el formulario en la petición de alta.
// Rechaza nombre vacío, precio no numérico o negativo y stock no entero o negativo.
func (f ProductForm) Parse() (dto.CreateProductRequest, error) {
	f.Name = strings.TrimSpace(f.Name)
	f.Price = strings.TrimSpace(f.Price)
	f.Stock = strings.TrimSpace(f.Stock)

	if err := validate.Struct(f); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			if msg, ok := fieldMessages[fe.Field()][fe.Tag()]; ok {
				return dto.CreateProductRequest{}, &FormError{Message: msg}
			}
		}
		return dto.CreateProductRequest{}, &FormError{Message: "Formulario inválido."}
	}

	price, err := decimal.NewFromString(f.Price)
	if err != nil {
		return dto.CreateProductRequest{}, &FormError{Message: "El precio debe ser un número."}
	}
	if price.IsNegative() {
		return dto.CreateProductRequest{}, &FormError{Message: "El precio no puede ser negativo."}
	}
	stock, err := strconv.Atoi(f.Stock)
	if err != nil {
		return dto.CreateProductRequest{}, &FormError{Message: "El stock debe ser un entero no negativo."}
	}

	req := dto.CreateProductRequest{Name: f.Name, Price: &price, Stock: &stock}
	if d := strings.TrimSpace(f.Description); d != "" {
		req.Description = &d
	}
	return req, nil
}
