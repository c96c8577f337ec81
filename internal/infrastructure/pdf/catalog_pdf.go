// Package pdf genera el catálogo de productos en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título del catálogo  │  Fecha + total de productos │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: # | Nombre | Descripción | Precio | Stock           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: unidades en stock                                  │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/product-catalog/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorRed     = &props.Color{Red: 170, Green: 30, Blue: 30}
)

const noDescription = "Sin descripción"

// ── Generator ─────────────────────────────────────────────────────────────────

// CatalogGenerator implementa usecase.CatalogPDFGenerator usando Maroto v2.
type CatalogGenerator struct {
	title string
	now   func() time.Time
}

// NewCatalogGenerator construye el generador; title va en cabecera y metadatos.
func NewCatalogGenerator(title string) *CatalogGenerator {
	return &CatalogGenerator{title: title, now: time.Now}
}

// GenerateCatalogPDF genera el PDF y devuelve sus bytes.
func (g *CatalogGenerator) GenerateCatalogPDF(ctx context.Context, products []*entity.Product) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(g.title, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(g.title, g.now(), len(products)))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	if len(products) == 0 {
		m.AddRows(row.New(10).Add(col.New(12).Add(
			text.New("No hay productos para mostrar.", props.Text{
				Size: 9, Align: align.Center, Color: colorGray, Top: 3,
			}),
		)))
	}
	m.AddRows(productRows(products)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(footerRow(products))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(title string, at time.Time, total int) core.Row {
	return row.New(16).Add(
		col.New(8).Add(
			text.New(title, props.Text{
				Style: fontstyle.Bold, Size: 14, Color: colorPrimary, Top: 2,
			}),
		),
		col.New(4).Add(
			text.New("Fecha: "+at.Format("02/01/2006"), props.Text{
				Size: 8, Align: align.Right, Top: 2, Color: colorGray,
			}),
			text.New(fmt.Sprintf("%d productos", total), props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 8,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("#", 1, align.Center),
		h("Nombre", 3, align.Left),
		h("Descripción", 4, align.Left),
		h("Precio", 2, align.Right),
		h("Stock", 2, align.Center),
	)
}

// productRows: una fila por producto, stock agotado en rojo.
func productRows(products []*entity.Product) []core.Row {
	result := make([]core.Row, 0, len(products))
	for _, p := range products {
		desc := noDescription
		if p.Description != nil && *p.Description != "" {
			desc = *p.Description
		}
		stockText := props.Text{Size: 8, Align: align.Center, Top: 1}
		if !p.InStock() {
			stockText.Color = colorRed
			stockText.Style = fontstyle.Bold
		}
		result = append(result, row.New(7).Add(
			col.New(1).Add(text.New(strconv.FormatInt(p.ID, 10),
				props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(3).Add(text.New(p.Name,
				props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(4).Add(text.New(desc,
				props.Text{Size: 8, Top: 1, Left: 1, Color: colorGray})),
			col.New(2).Add(text.New("$"+p.Price.StringFixed(2),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New(strconv.Itoa(p.Stock), stockText)),
		))
	}
	return result
}

func footerRow(products []*entity.Product) core.Row {
	units := 0
	for _, p := range products {
		if p.InStock() {
			units += p.Stock
		}
	}
	return row.New(8).Add(
		col.New(12).Add(text.New(fmt.Sprintf("Unidades en stock: %d", units), props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 2, Right: 1,
		})),
	)
}
