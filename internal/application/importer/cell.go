// Package importer implementa el motor de importación de planillas
// históricas: parser de celdas, normalización de filas, resolución de
// identidad de clientes, asignación de números de cotización y el driver
// que orquesta una corrida completa contra el almacenamiento.
package importer

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// FallbackReason explica por qué una celda degradó a su valor neutro.
// La tolerancia a datos sucios es política deliberada: el parser nunca
// devuelve error, pero el motivo queda visible y testeable.
type FallbackReason string

const (
	FallbackNone        FallbackReason = ""
	FallbackEmpty       FallbackReason = "empty"
	FallbackPending     FallbackReason = "pending" // la celda contiene "x": trabajo aún no realizado
	FallbackUnparseable FallbackReason = "unparseable"
)

// DateValue resultado de parsear una celda como fecha.
type DateValue struct {
	Time   time.Time
	Valid  bool
	Reason FallbackReason
}

// MoneyValue resultado de parsear una celda como monto.
type MoneyValue struct {
	Amount decimal.Decimal
	Valid  bool
	Reason FallbackReason
}

// Formatos de fecha aceptados, en orden de preferencia. Los años de dos
// dígitos van al final para que un año completo nunca se trunque.
var dateFormats = []string{
	"02/01/2006",
	"2006-01-02",
	"02-01-2006",
	"02/01/06",
	"02-01-06",
}

// Rango de seriales Excel aceptados como fecha (aprox. 1954–2118). Fuera de
// ese rango un número suelto se trata como texto, no como fecha.
const (
	minDateSerial = 20000
	maxDateSerial = 80000
)

// ParseDate interpreta una celda como fecha de trabajo.
//
// Acepta los formatos de texto listados en dateFormats y seriales Excel
// (las celdas de fecha llegan como serial cuando el workbook se lee con
// valores crudos). Una celda que contenga "x" en cualquier posición marca
// el trabajo como pendiente y no produce fecha.
func ParseDate(raw string) DateValue {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return DateValue{Reason: FallbackEmpty}
	}
	if strings.ContainsAny(raw, "xX") {
		return DateValue{Reason: FallbackPending}
	}

	if serial, err := strconv.ParseFloat(raw, 64); err == nil {
		if serial < minDateSerial || serial > maxDateSerial {
			return DateValue{Reason: FallbackUnparseable}
		}
		t, err := excelize.ExcelDateToTime(serial, false)
		if err != nil {
			return DateValue{Reason: FallbackUnparseable}
		}
		return DateValue{Time: truncateToDay(t), Valid: true}
	}

	for _, layout := range dateFormats {
		if t, err := time.Parse(layout, raw); err == nil {
			return DateValue{Time: t, Valid: true}
		}
	}
	return DateValue{Reason: FallbackUnparseable}
}

// ParseMoney interpreta una celda como monto en dinero. Quita el símbolo de
// moneda y los separadores de miles; cualquier fallo degrada a 0 sin error.
func ParseMoney(raw string) MoneyValue {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return MoneyValue{Amount: decimal.Zero, Reason: FallbackEmpty}
	}
	cleaned := strings.NewReplacer("$", "", ",", "", " ", "").Replace(raw)
	amount, err := decimal.NewFromString(cleaned)
	if err != nil {
		return MoneyValue{Amount: decimal.Zero, Reason: FallbackUnparseable}
	}
	return MoneyValue{Amount: amount, Valid: true}
}

// Text limpia una celda de texto libre. El literal "None" es el sentinel de
// valor ausente que dejaron exportaciones viejas.
func Text(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "None" {
		return ""
	}
	return s
}

// IsPhonePlaceholder reconoce el "0" literal usado como teléfono vacío en
// las hojas históricas.
func IsPhonePlaceholder(phone string) bool {
	return phone == "0"
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
