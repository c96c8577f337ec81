// Package feed construye el feed XML del catálogo y su ETag.
package feed

import (
	"bytes"
	"encoding/hex"
	"encoding/xml"
	"fmt"
	"sort"
	"strconv"

	"github.com/beevik/etree"
	"github.com/ucarion/c14n"
	"golang.org/x/crypto/blake2b"

	"github.com/jhoicas/product-catalog/internal/domain/entity"
)

const (
	availabilityInStock    = "in_stock"
	availabilityOutOfStock = "out_of_stock"
)

// Builder implementa usecase.CatalogFeedBuilder.
type Builder struct{}

// NewBuilder construye el generador del feed.
func NewBuilder() *Builder { return &Builder{} }

// Build genera <catalog> con un <product> por entrada, ordenado por id.
// El ETag es BLAKE2b-256 de la forma canónica (C14N), así no depende de la indentación.
func (b *Builder) Build(products []*entity.Product) ([]byte, string, error) {
	sorted := make([]*entity.Product, len(products))
	copy(sorted, products)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })

	doc := etree.NewDocument()
	root := doc.CreateElement("catalog")
	root.CreateAttr("count", strconv.Itoa(len(sorted)))
	for _, p := range sorted {
		el := root.CreateElement("product")
		el.CreateAttr("id", strconv.FormatInt(p.ID, 10))
		el.CreateElement("name").SetText(p.Name)
		if p.Description != nil {
			el.CreateElement("description").SetText(*p.Description)
		}
		el.CreateElement("price").SetText(p.Price.StringFixed(2))
		el.CreateElement("stock").SetText(strconv.Itoa(p.Stock))
		availability := availabilityOutOfStock
		if p.InStock() {
			availability = availabilityInStock
		}
		el.CreateElement("availability").SetText(availability)
	}

	raw, err := doc.WriteToBytes()
	if err != nil {
		return nil, "", fmt.Errorf("feed: serializar: %w", err)
	}
	canonical, err := canonicalizeXML(raw)
	if err != nil {
		return nil, "", fmt.Errorf("feed: c14n: %w", err)
	}
	sum := blake2b.Sum256(canonical)
	etag := `"` + hex.EncodeToString(sum[:]) + `"`

	doc.Indent(2)
	pretty, err := doc.WriteToBytes()
	if err != nil {
		return nil, "", fmt.Errorf("feed: serializar: %w", err)
	}
	body := make([]byte, 0, len(xml.Header)+len(pretty))
	body = append(body, xml.Header...)
	body = append(body, pretty...)
	return body, etag, nil
}

func canonicalizeXML(data []byte) ([]byte, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	dec.Entity = map[string]string{}
	return c14n.Canonicalize(dec)
}
