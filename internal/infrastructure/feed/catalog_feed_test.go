package feed_test

import (
	"testing"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/product-catalog/internal/domain/entity"
	"github.com/jhoicas/product-catalog/internal/infrastructure/feed"
)

func sample() []*entity.Product {
	desc := "Azul & barato"
	return []*entity.Product{
		{ID: 2, Name: "Gadget", Price: decimal.NewFromInt(20), Stock: 0},
		{ID: 1, Name: "Widget", Description: &desc, Price: decimal.RequireFromString("9.99"), Stock: 5},
	}
}

func TestBuilder_Build(t *testing.T) {
	body, etag, err := feed.NewBuilder().Build(sample())
	require.NoError(t, err)
	assert.Regexp(t, `^"[0-9a-f]{64}"$`, etag)

	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromBytes(body))
	root := doc.SelectElement("catalog")
	require.NotNil(t, root)
	assert.Equal(t, "2", root.SelectAttrValue("count", ""))

	products := root.SelectElements("product")
	require.Len(t, products, 2)
	assert.Equal(t, "1", products[0].SelectAttrValue("id", ""))
	assert.Equal(t, "Azul & barato", products[0].SelectElement("description").Text())
	assert.Equal(t, "9.99", products[0].SelectElement("price").Text())
	assert.Equal(t, "in_stock", products[0].SelectElement("availability").Text())

	assert.Nil(t, products[1].SelectElement("description"))
	assert.Equal(t, "20.00", products[1].SelectElement("price").Text())
	assert.Equal(t, "out_of_stock", products[1].SelectElement("availability").Text())
}

func TestBuilder_ETagIsStable(t *testing.T) {
	b := feed.NewBuilder()
	list := sample()
	_, first, err := b.Build(list)
	require.NoError(t, err)

	reversed := []*entity.Product{list[1], list[0]}
	_, second, err := b.Build(reversed)
	require.NoError(t, err)
	assert.Equal(t, first, second, "el orden de entrada no cambia el ETag")

	list[0].Stock = 3
	_, third, err := b.Build(list)
	require.NoError(t, err)
	assert.NotEqual(t, first, third)
}

func TestBuilder_Empty(t *testing.T) {
	body, etag, err := feed.NewBuilder().Build(nil)
	require.NoError(t, err)
	assert.NotEmpty(t, etag)
	assert.Contains(t, string(body), `<catalog count="0"`)
}
