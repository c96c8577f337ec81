package usecase

import (
	"context"

	"golang.org/x/text/unicode/norm"

	"github.com/jhoicas/product-catalog/internal/application/dto"
	"github.com/jhoicas/product-catalog/internal/domain"
	"github.com/jhoicas/product-catalog/internal/domain/entity"
	"github.com/jhoicas/product-catalog/internal/domain/repository"
	"github.com/jhoicas/product-catalog/pkg/logger"
)

// ProductEventPublisher puerto de salida para los eventos del catálogo.
type ProductEventPublisher interface {
	PublishProductCreated(ctx context.Context, product *entity.Product) error
}

type noopPublisher struct{}

func (noopPublisher) PublishProductCreated(context.Context, *entity.Product) error { return nil }

// ProductUseCase lista y crea productos. Ningún error crudo del almacén sale de aquí:
// se registra en el log y se traduce a domain.ErrConflict o domain.ErrInternal.
type ProductUseCase struct {
	store  repository.ProductStore
	events ProductEventPublisher
	log    *logger.Logger
}

// NewProductUseCase construye el caso de uso. events y log pueden ser nil.
func NewProductUseCase(store repository.ProductStore, events ProductEventPublisher, log *logger.Logger) *ProductUseCase {
	if events == nil {
		events = noopPublisher{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &ProductUseCase{store: store, events: events, log: log.Named("product_usecase")}
}

// List devuelve todos los productos en el orden natural del almacén.
func (uc *ProductUseCase) List(ctx context.Context) ([]dto.ProductResponse, error) {
	list, err := uc.store.List(ctx)
	if err != nil {
		uc.log.Error().Err(err).Msg("listar productos")
		return nil, domain.ErrInternal
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return items, nil
}

// Create valida campos requeridos e inserta un producto.
// No hay validación de rangos: precio o stock negativos se aceptan tal cual.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.Name == "" || in.Price == nil || in.Stock == nil {
		return nil, domain.ErrValidation
	}
	product := &entity.Product{
		Name:        norm.NFC.String(in.Name),
		Description: in.Description,
		Price:       *in.Price,
		Stock:       *in.Stock,
	}
	if err := uc.store.Create(ctx, product); err != nil {
		if uc.store.ClassifyError(err) == repository.ErrorClassConflict {
			return nil, domain.ErrConflict
		}
		uc.log.Error().Err(err).Str("name", product.Name).Msg("crear producto")
		return nil, domain.ErrInternal
	}
	if err := uc.events.PublishProductCreated(ctx, product); err != nil {
		uc.log.Warn().Err(err).Int64("id", product.ID).Msg("publicar product.created")
	}
	return toProductResponse(product), nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Stock:       p.Stock,
	}
}
