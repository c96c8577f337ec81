// Package storage elige el adaptador de ProductStore según STORE_DRIVER.
package storage

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"gorm.io/gorm"

	"github.com/jhoicas/product-catalog/internal/domain/repository"
	"github.com/jhoicas/product-catalog/internal/infrastructure/gormstore"
	"github.com/jhoicas/product-catalog/internal/infrastructure/postgres"
	"github.com/jhoicas/product-catalog/pkg/config"
)

// Store almacén abierto junto con sus operaciones de ciclo de vida.
type Store struct {
	repository.ProductStore
	Driver string

	pool *pgxpool.Pool
	db   *gorm.DB
}

// Open abre el almacén configurado. El llamador debe invocar Close.
func Open(ctx context.Context, cfg config.DBConfig) (*Store, error) {
	switch cfg.Driver {
	case config.StoreDriverPGX:
		pool, err := postgres.NewPool(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return &Store{ProductStore: postgres.NewProductRepository(pool), Driver: cfg.Driver, pool: pool}, nil
	case config.StoreDriverGormPostgres, config.StoreDriverSQLite:
		db, err := gormstore.Open(cfg)
		if err != nil {
			return nil, err
		}
		return &Store{ProductStore: gormstore.NewProductStore(db), Driver: cfg.Driver, db: db}, nil
	default:
		return nil, fmt.Errorf("STORE_DRIVER desconocido: %q", cfg.Driver)
	}
}

// Migrate crea la tabla products si no existe.
func (s *Store) Migrate(ctx context.Context) error {
	if s.pool != nil {
		_, err := postgres.Migrate(ctx, s.pool)
		return err
	}
	return gormstore.Migrate(s.db.WithContext(ctx))
}

// Close libera pool o conexión.
func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
	if s.db != nil {
		if sqlDB, err := s.db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
}
