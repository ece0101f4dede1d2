package importer

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/Badkirked/quoteforge/internal/domain"
	"github.com/Badkirked/quoteforge/internal/domain/repository"
)

// FormatQuoteNumber arma el identificador humano "Q" + secuencia de cinco
// dígitos con ceros a la izquierda.
func FormatQuoteNumber(n int) string {
	return fmt.Sprintf("Q%05d", n)
}

// QuoteAllocator asigna números de cotización frescos y globalmente únicos.
// La unicidad se verifica contra el almacenamiento en el momento de asignar;
// el constraint único de la tabla queda como autoridad de última instancia.
type QuoteAllocator struct {
	next int
}

// NewQuoteAllocator crea el asignador arrancando en next (mínimo 1).
func NewQuoteAllocator(next int) *QuoteAllocator {
	if next < 1 {
		next = 1
	}
	return &QuoteAllocator{next: next}
}

// SeedAllocator crea el asignador a partir del mayor sufijo numérico ya
// guardado. Los números malformados cuentan como ausentes, no como error.
func SeedAllocator(jobs repository.JobRepository) (*QuoteAllocator, error) {
	max, err := jobs.MaxQuoteSequence()
	if err != nil {
		return nil, fmt.Errorf("leer secuencia máxima de cotización: %w", err)
	}
	return NewQuoteAllocator(max + 1), nil
}

// NextFresh devuelve el próximo número libre, avanzando el contador por
// encima de cualquier colisión con números ya existentes.
func (a *QuoteAllocator) NextFresh(jobs repository.JobRepository) (string, error) {
	for {
		qn := FormatQuoteNumber(a.next)
		a.next++
		exists, err := jobs.QuoteNumberExists(qn)
		if err != nil {
			return "", fmt.Errorf("verificar número de cotización %s: %w", qn, err)
		}
		if !exists {
			return qn, nil
		}
	}
}

// PreserveQuoteNumber conserva un número provisto por la fuente,
// prefijándolo con "Q". En colisión deriva un identificador desambiguado
// con el contador de la corrida y reintenta una única vez; si también
// colisiona devuelve domain.ErrQuoteConflict (la fila nunca se descarta en
// silencio).
func PreserveQuoteNumber(jobs repository.JobRepository, raw string, counter int) (string, error) {
	qn := "Q" + normalizeRawQuote(raw)

	exists, err := jobs.QuoteNumberExists(qn)
	if err != nil {
		return "", fmt.Errorf("verificar número de cotización %s: %w", qn, err)
	}
	if !exists {
		return qn, nil
	}

	disambiguated := fmt.Sprintf("%s-%d", qn, counter)
	exists, err = jobs.QuoteNumberExists(disambiguated)
	if err != nil {
		return "", fmt.Errorf("verificar número de cotización %s: %w", disambiguated, err)
	}
	if exists {
		return "", fmt.Errorf("número %s y su derivado %s ya existen: %w", qn, disambiguated, domain.ErrQuoteConflict)
	}
	return disambiguated, nil
}

// normalizeRawQuote limpia el número fuente: las celdas numéricas pueden
// llegar como "1234.0"; un entero se conserva sin la parte decimal.
func normalizeRawQuote(raw string) string {
	raw = strings.TrimSpace(raw)
	if f, err := strconv.ParseFloat(raw, 64); err == nil && f == math.Trunc(f) && math.Abs(f) < 1e12 {
		return strconv.FormatInt(int64(f), 10)
	}
	return raw
}
