package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/Badkirked/quoteforge/internal/application/importer"
	"github.com/Badkirked/quoteforge/internal/application/usecase"
	infrapdf "github.com/Badkirked/quoteforge/internal/infrastructure/pdf"
	"github.com/Badkirked/quoteforge/internal/infrastructure/postgres"
	"github.com/Badkirked/quoteforge/internal/infrastructure/xlsx"
	httpRouter "github.com/Badkirked/quoteforge/internal/interfaces/http"
	"github.com/Badkirked/quoteforge/pkg/config"
	"github.com/Badkirked/quoteforge/pkg/logger"
)

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
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	customerRepo := postgres.NewCustomerRepository(pool)
	jobRepo := postgres.NewJobRepository(pool)
	materialRepo := postgres.NewMaterialRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	customerUC := usecase.NewCustomerUseCase(customerRepo, jobRepo)
	jobUC := usecase.NewJobUseCase(customerRepo, jobRepo, materialRepo)

	pdfGenerator := infrapdf.NewMarotoPDFGenerator(cfg.Business)
	pdfUC := usecase.NewPDFUseCase(jobRepo, customerRepo, materialRepo, pdfGenerator)

	driver, err := importer.NewDriver(
		xlsx.NewSource(), txRunner, customerRepo, jobRepo,
		importer.DefaultColumnMap(), cfg.Import, log,
	)
	if err != nil {
		log.Fatal().Err(err).Msg("configurar importador")
	}
	importUC := usecase.NewImportUseCase(driver)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		CustomerUC: customerUC,
		JobUC:      jobUC,
		PDFUC:      pdfUC,
		ImportUC:   importUC,
	})

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
