package usecase

import (
	"context"

	"github.com/jhoicas/product-catalog/internal/domain"
	"github.com/jhoicas/product-catalog/internal/domain/entity"
	"github.com/jhoicas/product-catalog/internal/domain/repository"
	"github.com/jhoicas/product-catalog/pkg/logger"
)

// CatalogPDFGenerator genera el catálogo imprimible.
type CatalogPDFGenerator interface {
	GenerateCatalogPDF(ctx context.Context, products []*entity.Product) ([]byte, error)
}

// CatalogFeedBuilder construye el feed XML y su ETag.
type CatalogFeedBuilder interface {
	Build(products []*entity.Product) (body []byte, etag string, err error)
}

// CatalogFeed cuerpo del feed listo para servir.
type CatalogFeed struct {
	Body []byte
	ETag string
}

// ExportUseCase exporta el catálogo completo (PDF y feed XML).
type ExportUseCase struct {
	store repository.ProductStore
	pdf   CatalogPDFGenerator
	feed  CatalogFeedBuilder
	log   *logger.Logger
}

// NewExportUseCase construye el caso de uso.
func NewExportUseCase(store repository.ProductStore, pdf CatalogPDFGenerator, feed CatalogFeedBuilder, log *logger.Logger) *ExportUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &ExportUseCase{store: store, pdf: pdf, feed: feed, log: log.Named("export_usecase")}
}

// PDF devuelve el catálogo en PDF.
func (uc *ExportUseCase) PDF(ctx context.Context) ([]byte, error) {
	products, err := uc.store.List(ctx)
	if err != nil {
		uc.log.Error().Err(err).Msg("exportar pdf: listar productos")
		return nil, domain.ErrInternal
	}
	doc, err := uc.pdf.GenerateCatalogPDF(ctx, products)
	if err != nil {
		uc.log.Error().Err(err).Msg("exportar pdf")
		return nil, domain.ErrInternal
	}
	return doc, nil
}

// Feed devuelve el feed XML del catálogo.
func (uc *ExportUseCase) Feed(ctx context.Context) (*CatalogFeed, error) {
	products, err := uc.store.List(ctx)
	if err != nil {
		uc.log.Error().Err(err).Msg("exportar feed: listar productos")
		return nil, domain.ErrInternal
	}
	body, etag, err := uc.feed.Build(products)
	if err != nil {
		uc.log.Error().Err(err).Msg("exportar feed")
		return nil, domain.ErrInternal
	}
	return &CatalogFeed{Body: body, ETag: etag}, nil
}
