package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/jhoicas/product-catalog/internal/application/dto"
	"github.com/jhoicas/product-catalog/internal/application/usecase"
	"github.com/jhoicas/product-catalog/internal/domain"
	"github.com/jhoicas/product-catalog/internal/infrastructure/feed"
	infrapdf "github.com/jhoicas/product-catalog/internal/infrastructure/pdf"
	"github.com/jhoicas/product-catalog/internal/infrastructure/storage"
	"github.com/jhoicas/product-catalog/pkg/config"
	"github.com/jhoicas/product-catalog/pkg/logger"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "catalogctl",
		Short:         "Administración del catálogo de productos",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newMigrateCmd(), newSeedCmd(), newExportCmd())
	return root
}

// withStore carga configuración, abre el almacén y lo migra antes de ejecutar fn.
func withStore(ctx context.Context, fn func(*storage.Store, *logger.Logger) error) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("cargar configuración: %w", err)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Out: os.Stderr})

	store, err := storage.Open(ctx, cfg.DB)
	if err != nil {
		return err
	}
	defer store.Close()
	if err := store.Migrate(ctx); err != nil {
		return fmt.Errorf("migrar: %w", err)
	}
	return fn(store, log)
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Crea la tabla products si no existe",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withStore(cmd.Context(), func(s *storage.Store, log *logger.Logger) error {
				log.Info().Str("store", s.Driver).Msg("esquema al día")
				return nil
			})
		},
	}
}

func newSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed <catalogo.xml>",
		Short: "Carga productos desde un feed XML; los nombres repetidos se omiten",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("abrir %s: %w", args[0], err)
			}
			defer f.Close()
			items, err := feed.Parse(f)
			if err != nil {
				return err
			}
			return withStore(cmd.Context(), func(s *storage.Store, log *logger.Logger) error {
				res := seed(cmd.Context(), usecase.NewProductUseCase(s, nil, log), items)
				fmt.Fprintf(cmd.OutOrStdout(), "creados: %d, repetidos: %d, inválidos: %d\n",
					res.Created, res.Duplicates, res.Invalid)
				if res.Failed > 0 {
					return fmt.Errorf("%d altas fallaron", res.Failed)
				}
				return nil
			})
		},
	}
}

type seedResult struct {
	Created    int
	Duplicates int
	Invalid    int
	Failed     int
}

func seed(ctx context.Context, uc *usecase.ProductUseCase, items []dto.CreateProductRequest) seedResult {
	var res seedResult
	for _, in := range items {
		_, err := uc.Create(ctx, in)
		switch {
		case err == nil:
			res.Created++
		case errors.Is(err, domain.ErrConflict):
			res.Duplicates++
		case errors.Is(err, domain.ErrValidation):
			res.Invalid++
		default:
			res.Failed++
		}
	}
	return res
}

func newExportCmd() *cobra.Command {
	var format, out string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Exporta el catálogo completo en PDF o XML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if format != "pdf" && format != "xml" {
				return fmt.Errorf("formato no soportado: %q (pdf|xml)", format)
			}
			return withStore(cmd.Context(), func(s *storage.Store, log *logger.Logger) error {
				uc := usecase.NewExportUseCase(s, infrapdf.NewCatalogGenerator("Catálogo de Productos"), feed.NewBuilder(), log)
				var data []byte
				if format == "pdf" {
					doc, err := uc.PDF(cmd.Context())
					if err != nil {
						return err
					}
					data = doc
				} else {
					fd, err := uc.Feed(cmd.Context())
					if err != nil {
						return err
					}
					data = fd.Body
				}
				return writeOutput(cmd.OutOrStdout(), out, data)
			})
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "pdf", "pdf | xml")
	cmd.Flags().StringVarP(&out, "out", "o", "", "archivo de salida (por defecto stdout)")
	return cmd
}

func writeOutput(stdout io.Writer, path string, data []byte) error {
	if path == "" {
		_, err := stdout.Write(data)
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
