package feed

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/product-catalog/internal/application/dto"
)

// Parse lee un documento <catalog> (mismo formato que Build) y devuelve las altas a realizar.
// Se ignoran id y availability: los asigna o calcula el almacén.
func Parse(r io.Reader) ([]dto.CreateProductRequest, error) {
	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(r); err != nil {
		return nil, fmt.Errorf("feed: leer XML: %w", err)
	}
	root := doc.SelectElement("catalog")
	if root == nil {
		return nil, fmt.Errorf("feed: falta el elemento <catalog>")
	}

	products := root.SelectElements("product")
	out := make([]dto.CreateProductRequest, 0, len(products))
	for i, el := range products {
		in := dto.CreateProductRequest{Name: childText(el, "name")}
		if d := el.SelectElement("description"); d != nil {
			text := d.Text()
			in.Description = &text
		}
		if s := childText(el, "price"); s != "" {
			price, err := decimal.NewFromString(s)
			if err != nil {
				return nil, fmt.Errorf("feed: producto %d: precio %q: %w", i+1, s, err)
			}
			in.Price = &price
		}
		if s := childText(el, "stock"); s != "" {
			stock, err := strconv.Atoi(s)
			if err != nil {
				return nil, fmt.Errorf("feed: producto %d: stock %q: %w", i+1, s, err)
			}
			in.Stock = &stock
		}
		out = append(out, in)
	}
	return out, nil
}

func childText(el *etree.Element, tag string) string {
	if c := el.SelectElement(tag); c != nil {
		return strings.TrimSpace(c.Text())
	}
	return ""
}
