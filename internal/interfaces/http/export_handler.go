package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/product-catalog/internal/application/usecase"
)

// ExportHandler sirve el catálogo en PDF y como feed XML.
type ExportHandler struct {
	uc *usecase.ExportUseCase
}

// NewExportHandler construye el handler.
func NewExportHandler(uc *usecase.ExportUseCase) *ExportHandler {
	return &ExportHandler{uc: uc}
}

// CatalogPDF godoc
// @Summary      Catálogo en PDF
// @Tags         products
// @Produce      application/pdf
// @Success      200  {file}    binary
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/products/catalog.pdf [get]
func (h *ExportHandler) CatalogPDF(c *fiber.Ctx) error {
	doc, err := h.uc.PDF(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="catalogo.pdf"`)
	return c.Send(doc)
}

// Feed godoc
// @Summary      Feed XML del catálogo
// @Tags         products
// @Produce      xml
// @Param        If-None-Match  header  string  false  "ETag de una respuesta anterior"
// @Success      200  {string}  string
// @Success      304
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/products/feed.xml [get]
func (h *ExportHandler) Feed(c *fiber.Ctx) error {
	feed, err := h.uc.Feed(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderETag, feed.ETag)
	if c.Get(fiber.HeaderIfNoneMatch) == feed.ETag {
		return c.SendStatus(fiber.StatusNotModified)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationXMLCharsetUTF8)
	return c.Send(feed.Body)
}
