package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/product-catalog/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC *usecase.ProductUseCase
	ExportUC  *usecase.ExportUseCase
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")
	api.Get("/openapi.json", OpenAPI)

	products := api.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Get("/", productHandler.List)
	products.Post("/", productHandler.Create)

	// Exportaciones (solo si hay caso de uso)
	if deps.ExportUC != nil {
		exportHandler := NewExportHandler(deps.ExportUC)
		products.Get("/catalog.pdf", exportHandler.CatalogPDF)
		products.Get("/feed.xml", exportHandler.Feed)
	}
}
