package web

import (
	"bytes"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/product-catalog/pkg/logger"
)

// Handler sirve la página del catálogo.
type Handler struct {
	api      CatalogAPI
	renderer *Renderer
	log      *logger.Logger
}

// NewHandler construye el handler de la UI.
func NewHandler(api CatalogAPI, renderer *Renderer, log *logger.Logger) *Handler {
	if log == nil {
		log = logger.Nop()
	}
	return &Handler{api: api, renderer: renderer, log: log.Named("web")}
}

// Register monta GET / y POST /.
func (h *Handler) Register(app fiber.Router) {
	app.Get("/", h.Show)
	app.Post("/", h.Submit)
}

// Show monta la página y carga el listado.
func (h *Handler) Show(c *fiber.Ctx) error {
	p := NewPage(h.api)
	p.Load(c.UserContext())
	return h.render(c, p)
}

// Submit recibe el formulario, crea el producto y devuelve la página resultante.
// En éxito Page.Submit ya recarga el listado; solo se carga aquí si el alta falla.
func (h *Handler) Submit(c *fiber.Ctx) error {
	p := NewPage(h.api)
	p.Form = ProductForm{
		Name:        c.FormValue("name"),
		Description: c.FormValue("description"),
		Price:       c.FormValue("price"),
		Stock:       c.FormValue("stock"),
	}
	if !p.Submit(c.UserContext()) {
		h.log.Debug().Str("error", p.SubmitError).Msg("alta rechazada")
		p.Load(c.UserContext())
	}
	return h.render(c, p)
}

func (h *Handler) render(c *fiber.Ctx, p *Page) error {
	var buf bytes.Buffer
	if err := h.renderer.Render(&buf, p); err != nil {
		h.log.Error().Err(err).Msg("renderizar página")
		return fiber.ErrInternalServerError
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Send(buf.Bytes())
}
