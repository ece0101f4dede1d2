package importer

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Badkirked/quoteforge/internal/domain"
	"github.com/Badkirked/quoteforge/internal/domain/entity"
	"github.com/Badkirked/quoteforge/internal/domain/repository"
	"github.com/Badkirked/quoteforge/pkg/config"
	"github.com/Badkirked/quoteforge/pkg/logger"
)

// Mode modo de corrida del importador.
type Mode string

const (
	// ModeFullReload recarga completa contra una base recién inicializada.
	// Conserva los números de cotización de la fuente y no deduplica.
	ModeFullReload Mode = "full_reload"
	// ModeIncremental importa solo filas con fecha posterior a la marca de
	// agua, con detección de duplicados por (cliente, fecha, descripción).
	ModeIncremental Mode = "incremental"
	// ModeMultiSheet recorre las hojas con nombre de año del primer archivo
	// disponible, usando el año de la hoja como fallback de fecha.
	ModeMultiSheet Mode = "multi_sheet"
)

// ParseMode valida el modo recibido por CLI/HTTP.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeFullReload, ModeIncremental, ModeMultiSheet:
		return Mode(s), nil
	}
	return "", fmt.Errorf("modo de importación desconocido %q: %w", s, domain.ErrInvalidInput)
}

// Summary resultado de una corrida, para auditoría del operador.
type Summary struct {
	Imported          int       `json:"imported"`
	SkippedDuplicates int       `json:"skippedDuplicates"`
	SkippedInvalid    int       `json:"skippedInvalid"`
	TotalCustomers    int       `json:"totalCustomers"`
	TotalJobs         int       `json:"totalJobs"`
	LatestDate        time.Time `json:"latestDate"`
}

// runState estado mutable de una corrida: caché de identidad, asignador y
// contadores. Se crea al entrar a Run y se descarta al salir; nada vive en
// globals entre corridas.
type runState struct {
	identity *IdentityResolver
	alloc    *QuoteAllocator
	summary  *Summary
}

// sheetRun una hoja a procesar con su año de fallback.
type sheetRun struct {
	name string
	year int
}

// Driver orquesta una corrida de importación: abre la fuente, normaliza
// fila por fila en orden estricto, resuelve clientes, asigna números de
// cotización y confirma por lotes al intervalo configurado.
//
// El motor es secuencial por diseño: la asignación de secuencia, la
// coherencia del caché de identidad y la deduplicación contra estado
// parcialmente escrito dependen del orden de las filas.
type Driver struct {
	source    Source
	tx        TxRunner
	customers repository.CustomerRepository // atado al pool, para lecturas fuera de lote
	jobs      repository.JobRepository
	cols      ColumnMap
	cfg       config.ImportConfig
	log       *logger.Logger
	now       func() time.Time
}

// NewDriver construye el driver y valida el mapeo de columnas una sola vez.
func NewDriver(
	source Source,
	tx TxRunner,
	customers repository.CustomerRepository,
	jobs repository.JobRepository,
	cols ColumnMap,
	cfg config.ImportConfig,
	log *logger.Logger,
) (*Driver, error) {
	if err := cols.Validate(); err != nil {
		return nil, fmt.Errorf("mapeo de columnas: %w", err)
	}
	if cfg.CommitInterval < 1 {
		return nil, fmt.Errorf("commit interval %d: %w", cfg.CommitInterval, domain.ErrInvalidInput)
	}
	if cfg.StartRow < 1 {
		return nil, fmt.Errorf("start row %d: %w", cfg.StartRow, domain.ErrInvalidInput)
	}
	return &Driver{
		source:    source,
		tx:        tx,
		customers: customers,
		jobs:      jobs,
		cols:      cols,
		cfg:       cfg,
		log:       log.Named("importer"),
		now:       time.Now,
	}, nil
}

// Run ejecuta una corrida completa en el modo indicado y devuelve el
// resumen. Si el contexto se cancela, deja de procesar filas y devuelve el
// resumen parcial junto con ctx.Err(); los lotes ya confirmados persisten.
func (d *Driver) Run(ctx context.Context, mode Mode) (*Summary, error) {
	path, err := d.firstExistingFile()
	if err != nil {
		return nil, err
	}

	if mode == ModeFullReload {
		count, err := d.jobs.Count()
		if err != nil {
			return nil, fmt.Errorf("contar trabajos: %w", err)
		}
		if count > 0 {
			return nil, fmt.Errorf("full_reload con %d trabajos existentes: %w", count, domain.ErrStoreNotEmpty)
		}
	}

	wb, err := d.source.Open(path)
	if err != nil {
		return nil, fmt.Errorf("abrir fuente %s: %w", path, err)
	}
	defer wb.Close()

	sheets, err := d.planSheets(wb, mode)
	if err != nil {
		return nil, err
	}

	state := &runState{
		identity: NewIdentityResolver(),
		summary:  &Summary{},
	}
	if mode == ModeIncremental {
		// La secuencia continúa después del mayor número ya guardado.
		state.alloc, err = SeedAllocator(d.jobs)
		if err != nil {
			return nil, err
		}
	} else {
		state.alloc = NewQuoteAllocator(1)
	}

	d.log.Info().Str("file", path).Str("mode", string(mode)).Int("sheets", len(sheets)).Msg("corrida de importación iniciada")

	for _, sheet := range sheets {
		if err := d.importSheet(ctx, wb, sheet, mode, state); err != nil {
			return state.summary, err
		}
	}

	if err := d.fillTotals(state.summary); err != nil {
		return state.summary, err
	}

	d.log.Info().
		Int("imported", state.summary.Imported).
		Int("skipped_duplicates", state.summary.SkippedDuplicates).
		Int("skipped_invalid", state.summary.SkippedInvalid).
		Int("total_customers", state.summary.TotalCustomers).
		Int("total_jobs", state.summary.TotalJobs).
		Time("latest_date", state.summary.LatestDate).
		Msg("corrida de importación completa")

	return state.summary, nil
}

// importSheet procesa una hoja por lotes de CommitInterval filas, cada lote
// en su propia transacción. Una caída a mitad de corrida pierde a lo sumo
// un lote; la deduplicación evita reprocesar lo ya confirmado.
func (d *Driver) importSheet(ctx context.Context, wb Workbook, sheet sheetRun, mode Mode, state *runState) error {
	rows, err := wb.Rows(sheet.name)
	if err != nil {
		return fmt.Errorf("leer hoja %s: %w", sheet.name, err)
	}
	if len(rows) < d.cfg.StartRow {
		d.log.Warn().Str("sheet", sheet.name).Int("rows", len(rows)).Msg("hoja sin filas de datos")
		return nil
	}
	data := rows[d.cfg.StartRow-1:]

	opts := RowOptions{FallbackYear: sheet.year}
	if mode == ModeIncremental {
		opts.RequireDate = true
		opts.Watermark = d.cfg.Watermark
	}
	dedupe := mode != ModeFullReload
	preserve := mode == ModeFullReload

	for start := 0; start < len(data); start += d.cfg.CommitInterval {
		if err := ctx.Err(); err != nil {
			d.log.Warn().Str("sheet", sheet.name).Int("imported", state.summary.Imported).Msg("corrida cancelada; lotes confirmados se conservan")
			return err
		}
		end := start + d.cfg.CommitInterval
		if end > len(data) {
			end = len(data)
		}
		chunk := data[start:end]

		err := d.tx.Run(ctx, func(
			customers repository.CustomerRepository,
			jobs repository.JobRepository,
			materials repository.MaterialRepository,
		) error {
			for _, row := range chunk {
				if err := d.importRow(customers, jobs, materials, row, opts, state, dedupe, preserve); err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			return fmt.Errorf("hoja %s: %w", sheet.name, err)
		}

		d.log.Debug().
			Str("sheet", sheet.name).
			Int("imported", state.summary.Imported).
			Int("skipped_duplicates", state.summary.SkippedDuplicates).
			Msg("lote confirmado")
	}
	return nil
}

// importRow procesa una fila: normaliza, resuelve cliente, deduplica,
// asigna número y escribe. Las filas descartadas cuentan en el resumen, no
// son errores.
func (d *Driver) importRow(
	customers repository.CustomerRepository,
	jobs repository.JobRepository,
	materials repository.MaterialRepository,
	row []string,
	opts RowOptions,
	state *runState,
	dedupe, preserve bool,
) error {
	norm, skip := NormalizeRow(d.cols, row, opts)
	if skip != SkipNone {
		state.summary.SkippedInvalid++
		return nil
	}

	now := d.now()
	customerID, err := state.identity.Resolve(customers, norm.Customer, now)
	if err != nil {
		return err
	}

	if dedupe {
		existing, err := jobs.GetByOrigin(customerID, norm.Job.Date, norm.Job.Description)
		if err != nil {
			return fmt.Errorf("buscar trabajo duplicado: %w", err)
		}
		if existing != nil {
			state.summary.SkippedDuplicates++
			return nil
		}
	}

	var qn string
	if preserve && norm.Job.QuoteRaw != "" {
		qn, err = PreserveQuoteNumber(jobs, norm.Job.QuoteRaw, state.summary.Imported)
	} else {
		qn, err = state.alloc.NextFresh(jobs)
	}
	if err != nil {
		return err
	}

	job := &entity.Job{
		ID:          uuid.New().String(),
		CustomerID:  customerID,
		QuoteNumber: qn,
		Description: norm.Job.Description,
		Price:       norm.Job.Price,
		Deposit:     decimal.Zero,
		Status:      entity.StatusCompleted, // las filas históricas se asumen terminadas
		Date:        norm.Job.Date,
		CreatedAt:   now,
	}
	if err := jobs.Create(job); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			// El constraint único ganó la carrera: conflicto reintentable,
			// nunca se descarta la fila en silencio.
			return fmt.Errorf("insertar trabajo %s: %w", qn, domain.ErrQuoteConflict)
		}
		return fmt.Errorf("insertar trabajo %s: %w", qn, err)
	}

	if len(norm.Materials) > 0 {
		items := make([]*entity.Material, 0, len(norm.Materials))
		for _, m := range norm.Materials {
			items = append(items, &entity.Material{
				ID:          uuid.New().String(),
				JobID:       job.ID,
				Category:    m.Category,
				Description: m.Description,
				Cost:        m.Cost,
				CreatedAt:   now,
			})
		}
		if err := materials.CreateBatch(job.ID, items); err != nil {
			return fmt.Errorf("insertar materiales del trabajo %s: %w", qn, err)
		}
	}

	state.summary.Imported++
	return nil
}

// planSheets decide qué hojas procesar según el modo.
func (d *Driver) planSheets(wb Workbook, mode Mode) ([]sheetRun, error) {
	if mode == ModeMultiSheet {
		var sheets []sheetRun
		for _, name := range wb.SheetNames() {
			year, err := strconv.Atoi(name)
			if err != nil {
				continue // solo hojas cuyo nombre es un año
			}
			sheets = append(sheets, sheetRun{name: name, year: year})
		}
		if len(sheets) == 0 {
			return nil, fmt.Errorf("la fuente no tiene hojas con nombre de año: %w", domain.ErrInvalidInput)
		}
		return sheets, nil
	}

	return []sheetRun{{name: d.cfg.MasterSheet, year: d.cfg.FallbackYear}}, nil
}

// firstExistingFile devuelve el primer archivo de la lista de prioridad que
// existe en disco.
func (d *Driver) firstExistingFile() (string, error) {
	for _, path := range d.cfg.Files {
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", fmt.Errorf("ninguno de los %d archivos fuente configurados existe: %w", len(d.cfg.Files), domain.ErrNotFound)
}

// fillTotals completa el resumen con los totales del libro.
func (d *Driver) fillTotals(s *Summary) error {
	var err error
	if s.TotalCustomers, err = d.customers.Count(); err != nil {
		return fmt.Errorf("contar clientes: %w", err)
	}
	if s.TotalJobs, err = d.jobs.Count(); err != nil {
		return fmt.Errorf("contar trabajos: %w", err)
	}
	if s.LatestDate, err = d.jobs.LatestDate(); err != nil {
		return fmt.Errorf("fecha máxima: %w", err)
	}
	return nil
}
