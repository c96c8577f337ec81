package web

import (
	"context"
	"errors"

	"github.com/jhoicas/product-catalog/internal/application/dto"
)

// ListState estado del panel de listado.
type ListState int

const (
	ListLoading ListState = iota
	ListReady
)

// FormState estado del panel del formulario.
type FormState int

const (
	FormIdle FormState = iota
	FormSubmitting
)

// CatalogAPI las dos operaciones del servicio que usa la página.
type CatalogAPI interface {
	ListProducts(ctx context.Context) ([]dto.ProductResponse, error)
	CreateProduct(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error)
}

// Page estado de una instancia de la página del catálogo.
type Page struct {
	api CatalogAPI

	List        ListState
	Products    []dto.ProductResponse
	ListError   string
	Form        ProductForm
	FormState   FormState
	SubmitError string
}

// NewPage crea la página en ListLoading, antes del primer Load.
func NewPage(api CatalogAPI) *Page {
	return &Page{api: api, List: ListLoading, FormState: FormIdle}
}

// Load pide el listado completo. Si falla, los productos previos quedan como estaban.
func (p *Page) Load(ctx context.Context) {
	p.List = ListLoading
	defer func() { p.List = ListReady }()

	products, err := p.api.ListProducts(ctx)
	if err != nil {
		p.ListError = userMessage(err, MsgListFailed)
		return
	}
	if products == nil {
		products = []dto.ProductResponse{}
	}
	p.Products = products
	p.ListError = ""
}

// Submit valida el formulario y crea el producto. En éxito limpia los campos y recarga el listado.
func (p *Page) Submit(ctx context.Context) bool {
	p.SubmitError = ""
	p.FormState = FormSubmitting
	defer func() { p.FormState = FormIdle }()

	req, err := p.Form.Parse()
	if err != nil {
		p.SubmitError = userMessage(err, MsgCreateFailed)
		return false
	}
	if _, err := p.api.CreateProduct(ctx, req); err != nil {
		p.SubmitError = userMessage(err, MsgCreateFailed)
		return false
	}
	p.Form = ProductForm{}
	p.Load(ctx)
	return true
}

func userMessage(err error, fallback string) string {
	var apiErr *APIError
	var netErr *NetworkError
	var formErr *FormError
	switch {
	case errors.As(err, &formErr):
		return formErr.Message
	case errors.As(err, &apiErr) && apiErr.Message != "":
		return apiErr.Message
	case errors.As(err, &netErr):
		return netErr.Error()
	default:
		return fallback
	}
}
