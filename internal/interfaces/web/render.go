package web

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/jhoicas/product-catalog/internal/application/dto"
)

//go:embed templates/*
var templateFS embed.FS

const noDescription = "Sin descripción"

// Renderer ejecuta la plantilla de la página ya parseada.
type Renderer struct {
	tmpl *template.Template
}

// NewRenderer parsea las plantillas embebidas una sola vez.
func NewRenderer() (*Renderer, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/index.gohtml")
	if err != nil {
		return nil, fmt.Errorf("parsear plantillas: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

type productView struct {
	ID          int64
	Name        string
	Description string
	Price       string
	Stock       int
	StockClass  string
}

type pageView struct {
	Loading     bool
	ListError   string
	Products    []productView
	Form        ProductForm
	Submitting  bool
	SubmitError string
}

// Render escribe el HTML de la página en su estado actual.
func (r *Renderer) Render(w io.Writer, p *Page) error {
	return r.tmpl.ExecuteTemplate(w, "index.gohtml", newPageView(p))
}

func newPageView(p *Page) pageView {
	v := pageView{
		Loading:     p.List == ListLoading,
		ListError:   p.ListError,
		Form:        p.Form,
		Submitting:  p.FormState == FormSubmitting,
		SubmitError: p.SubmitError,
		Products:    make([]productView, 0, len(p.Products)),
	}
	for _, prod := range p.Products {
		v.Products = append(v.Products, newProductView(prod))
	}
	return v
}

func newProductView(p dto.ProductResponse) productView {
	desc := noDescription
	if p.Description != nil && *p.Description != "" {
		desc = *p.Description
	}
	class := "stock-out"
	if p.Stock > 0 {
		class = "stock-in"
	}
	return productView{
		ID:          p.ID,
		Name:        p.Name,
		Description: desc,
		Price:       "$" + p.Price.StringFixed(2),
		Stock:       p.Stock,
		StockClass:  class,
	}
}
