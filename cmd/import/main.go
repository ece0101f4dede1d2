package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Badkirked/quoteforge/internal/application/importer"
	"github.com/Badkirked/quoteforge/internal/infrastructure/postgres"
	"github.com/Badkirked/quoteforge/internal/infrastructure/xlsx"
	"github.com/Badkirked/quoteforge/pkg/config"
	"github.com/Badkirked/quoteforge/pkg/logger"
)

// CLI de importación de planillas. Corre una única corrida en el modo
// indicado y escribe el resumen como JSON en stdout.
//
//	go run ./cmd/import -mode full_reload
//	go run ./cmd/import -mode incremental
//	go run ./cmd/import -mode multi_sheet
func main() {
	modeFlag := flag.String("mode", string(importer.ModeIncremental), "modo de corrida: full_reload | incremental | multi_sheet")
	flag.Parse()

	mode, err := importer.ParseMode(*modeFlag)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})

	// Ctrl+C cancela la corrida; los lotes ya confirmados se conservan.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	driver, err := importer.NewDriver(
		xlsx.NewSource(),
		postgres.NewTxRunner(pool),
		postgres.NewCustomerRepository(pool),
		postgres.NewJobRepository(pool),
		importer.DefaultColumnMap(),
		cfg.Import,
		log,
	)
	if err != nil {
		log.Fatal().Err(err).Msg("configurar importador")
	}

	summary, runErr := driver.Run(ctx, mode)
	if summary != nil {
		out, _ := json.MarshalIndent(summary, "", "  ")
		fmt.Println(string(out))
	}
	if runErr != nil {
		log.Error().Err(runErr).Msg("corrida de importación con error")
		os.Exit(1)
	}
}
