package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	_ "github.com/jhoicas/product-catalog/docs"
	"github.com/jhoicas/product-catalog/internal/application/usecase"
	"github.com/jhoicas/product-catalog/internal/infrastructure/events"
	"github.com/jhoicas/product-catalog/internal/infrastructure/feed"
	infrapdf "github.com/jhoicas/product-catalog/internal/infrastructure/pdf"
	"github.com/jhoicas/product-catalog/internal/infrastructure/storage"
	httpRouter "github.com/jhoicas/product-catalog/internal/interfaces/http"
	"github.com/jhoicas/product-catalog/internal/interfaces/web"
	"github.com/jhoicas/product-catalog/pkg/config"
	"github.com/jhoicas/product-catalog/pkg/logger"
)

// @title        Product Catalog API
// @version      1.0
// @description  Catálogo de productos: listado y alta.
// @BasePath     /
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.DB.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	store, err := storage.Open(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("abrir almacén de productos")
	}
	defer store.Close()
	if err := store.Migrate(ctx); err != nil {
		log.Fatal().Err(err).Msg("migrar esquema")
	}

	// Eventos: solo si hay RABBITMQ_URL; si el broker no responde se sigue sin eventos.
	var publisher usecase.ProductEventPublisher
	if cfg.RabbitMQ.URL != "" {
		pub, err := events.Dial(cfg.RabbitMQ.URL, cfg.RabbitMQ.Exchange)
		if err != nil {
			log.Warn().Err(err).Msg("RabbitMQ no disponible, eventos desactivados")
		} else {
			defer pub.Close()
			publisher = pub
		}
	}

	productUC := usecase.NewProductUseCase(store, publisher, log)
	exportUC := usecase.NewExportUseCase(store, infrapdf.NewCatalogGenerator("Catálogo de Productos"), feed.NewBuilder(), log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: httpRouter.ErrorHandler,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestID())
	app.Use(httpRouter.RequestLogger(log))

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(cfg.HTTP.SwaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: cfg.HTTP.SwaggerFile,
			Path:     "docs",
			Title:    "Product Catalog API",
		}))
	} else {
		log.Warn().Str("file", cfg.HTTP.SwaggerFile).Msg("swagger.json no encontrado, /docs desactivado")
	}

	app.Get("/health", httpRouter.Health(cfg.App.Name))

	httpRouter.Router(app, httpRouter.RouterDeps{
		ProductUC: productUC,
		ExportUC:  exportUC,
	})

	if cfg.Web.Enabled {
		renderer, err := web.NewRenderer()
		if err != nil {
			log.Fatal().Err(err).Msg("plantillas de la UI")
		}
		web.NewHandler(web.NewAPIClient(cfg.Web.APIBaseURL), renderer, log).Register(app)
	}

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
