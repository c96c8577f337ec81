package gormstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
	"gorm.io/gorm/schema"

	"github.com/jhoicas/product-catalog/internal/domain/entity"
	"github.com/jhoicas/product-catalog/internal/domain/repository"
	"github.com/jhoicas/product-catalog/pkg/config"
)

var _ repository.ProductStore = (*ProductStore)(nil)

// productRecord fila de la tabla products tal como la mapea GORM.
type productRecord struct {
	ID          int64           `gorm:"primaryKey;autoIncrement"`
	Name        string          `gorm:"not null;uniqueIndex:products_name_key"`
	Description *string
	Price       price           `gorm:"not null"`
	Stock       int             `gorm:"not null"`
}

func (productRecord) TableName() string { return "products" }

// price decimal con tipo de columna por dialecto: NUMERIC en PostgreSQL, TEXT en SQLite.
// En SQLite NUMERIC tiene afinidad REAL y el valor volvería como float64.
type price struct {
	decimal.Decimal
}

func (price) GormDBDataType(db *gorm.DB, _ *schema.Field) string {
	if db.Dialector.Name() == "sqlite" {
		return "TEXT"
	}
	return "NUMERIC"
}

// Open abre la base según el driver configurado (gorm-postgres o sqlite) con traducción de errores activa.
func Open(cfg config.DBConfig) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case config.StoreDriverGormPostgres:
		dialector = postgres.Open(cfg.ConnectionString())
	case config.StoreDriverSQLite:
		dialector = sqlite.Open(cfg.SQLitePath)
	default:
		return nil, fmt.Errorf("driver no soportado por gorm: %q", cfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("abrir %s: %w", cfg.Driver, err)
	}
	return db, nil
}

// Migrate crea o actualiza la tabla products.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&productRecord{})
}

// ProductStore adaptador ProductStore sobre GORM.
type ProductStore struct {
	db *gorm.DB
}

// NewProductStore construye el adaptador. La base debe estar migrada.
func NewProductStore(db *gorm.DB) *ProductStore {
	return &ProductStore{db: db}
}

func (s *ProductStore) List(ctx context.Context) ([]*entity.Product, error) {
	var records []productRecord
	if err := s.db.WithContext(ctx).Find(&records).Error; err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	list := make([]*entity.Product, 0, len(records))
	for i := range records {
		list = append(list, records[i].toEntity())
	}
	return list, nil
}

// Create inserta y relee la fila, así el llamador recibe lo que quedó guardado.
func (s *ProductStore) Create(ctx context.Context, p *entity.Product) error {
	rec := productRecord{
		Name:        p.Name,
		Description: p.Description,
		Price:       price{p.Price},
		Stock:       p.Stock,
	}
	db := s.db.WithContext(ctx)
	if err := db.Create(&rec).Error; err != nil {
		return fmt.Errorf("insert product: %w", err)
	}
	var stored productRecord
	if err := db.First(&stored, rec.ID).Error; err != nil {
		return fmt.Errorf("reload product %d: %w", rec.ID, err)
	}
	*p = *stored.toEntity()
	return nil
}

// ClassifyError: con TranslateError los drivers devuelven gorm.ErrDuplicatedKey ante UNIQUE.
func (s *ProductStore) ClassifyError(err error) repository.ErrorClass {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return repository.ErrorClassConflict
	}
	return repository.ErrorClassOther
}

func (r productRecord) toEntity() *entity.Product {
	return &entity.Product{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		Price:       r.Price.Decimal,
		Stock:       r.Stock,
	}
}
