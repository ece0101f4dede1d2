package repository

import (
	"time"

	"github.com/Badkirked/quoteforge/internal/domain/entity"
)

// JobRepository define el puerto de persistencia para Job.
// Los Get* devuelven (nil, nil) cuando no hay coincidencia.
type JobRepository interface {
	Create(job *entity.Job) error
	GetByID(id string) (*entity.Job, error)
	GetByQuoteNumber(qn string) (*entity.Job, error)
	// GetByOrigin busca por la tripleta (cliente, fecha, descripción) usada
	// para detectar filas ya importadas en corridas anteriores.
	GetByOrigin(customerID string, date time.Time, description string) (*entity.Job, error)
	List(limit, offset int) ([]*entity.Job, error)
	ListByCustomer(customerID string) ([]*entity.Job, error)
	QuoteNumberExists(qn string) (bool, error)
	// MaxQuoteSequence devuelve el mayor sufijo numérico entre los números
	// "Q<n>" existentes; los números malformados se ignoran. 0 si no hay.
	MaxQuoteSequence() (int, error)
	Update(job *entity.Job) error
	Delete(id string) error
	Count() (int, error)
	// LatestDate fecha de trabajo más reciente; cero si el libro está vacío.
	LatestDate() (time.Time, error)
}
