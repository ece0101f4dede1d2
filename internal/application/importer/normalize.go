package importer

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// CustomerCandidate cliente candidato extraído de una fila, antes de
// resolver identidad contra el almacenamiento.
type CustomerCandidate struct {
	Name    string
	Phone   string
	Email   string
	Address string
}

// JobCandidate trabajo candidato extraído de una fila.
type JobCandidate struct {
	Description string
	Date        time.Time
	QuoteRaw    string // número de cotización provisto por la fuente, sin prefijo
	Price       decimal.Decimal
}

// MaterialCandidate línea de costo candidata. Las exportaciones históricas
// no traen columnas de materiales, pero el triple normalizado las contempla
// para fuentes futuras.
type MaterialCandidate struct {
	Category    string
	Description string
	Cost        decimal.Decimal
}

// NormalizedRow triple (cliente, trabajo, materiales) listo para el driver.
type NormalizedRow struct {
	Customer  CustomerCandidate
	Job       JobCandidate
	Materials []MaterialCandidate
}

// SkipReason motivo por el que una fila no es un dato importable.
type SkipReason string

const (
	SkipNone SkipReason = ""
	// SkipEmptyRow: sin nombre y sin descripción; cabecera, separador o pie.
	SkipEmptyRow SkipReason = "empty_row"
	// SkipBeforeWatermark: modo incremental, la fecha falta o no supera la
	// marca de agua. No es un error de parseo: es el filtro que evita
	// reimportar filas históricas ya presentes.
	SkipBeforeWatermark SkipReason = "before_watermark"
)

// RowOptions parámetros de normalización para una hoja.
type RowOptions struct {
	// FallbackYear año al que se bucketea una fecha faltante en modo masivo
	// (1 de enero de ese año).
	FallbackYear int
	// RequireDate modo incremental: exige fecha real posterior a Watermark
	// y descarta la fila si no la hay.
	RequireDate bool
	Watermark   time.Time
}

// NormalizeRow mapea una fila posicional al triple normalizado, o devuelve
// el motivo de descarte. Nunca falla: los valores sucios degradan según las
// reglas del parser de celdas.
func NormalizeRow(cols ColumnMap, row []string, opts RowOptions) (*NormalizedRow, SkipReason) {
	name := Text(cellAt(row, cols.Name))
	description := Text(cellAt(row, cols.Description))
	if name == "" && description == "" {
		return nil, SkipEmptyRow
	}

	date := ParseDate(cellAt(row, cols.Date))
	if opts.RequireDate {
		if !date.Valid || !date.Time.After(opts.Watermark) {
			return nil, SkipBeforeWatermark
		}
	} else if !date.Valid {
		date.Time = time.Date(opts.FallbackYear, time.January, 1, 0, 0, 0, 0, time.UTC)
	}

	if name == "" {
		name = placeholderName(opts.FallbackYear)
	}
	if description == "" {
		description = "No description"
	}

	phone := Text(cellAt(row, cols.Phone))
	if IsPhonePlaceholder(phone) {
		phone = ""
	}

	return &NormalizedRow{
		Customer: CustomerCandidate{
			Name:    name,
			Phone:   phone,
			Address: Text(cellAt(row, cols.Address)),
		},
		Job: JobCandidate{
			Description: description,
			Date:        date.Time,
			QuoteRaw:    Text(cellAt(row, cols.QuoteNumber)),
			Price:       ParseMoney(cellAt(row, cols.Price)).Amount,
		},
	}, SkipNone
}

// placeholderName sentinel para filas sin nombre, distinguible por año de
// origen para poder auditarlas después.
func placeholderName(year int) string {
	if year <= 0 {
		return "Unknown"
	}
	return fmt.Sprintf("Unknown %d", year)
}
