package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/Badkirked/quoteforge/internal/domain"
	"github.com/Badkirked/quoteforge/internal/domain/entity"
	"github.com/Badkirked/quoteforge/internal/domain/repository"
)

var _ repository.JobRepository = (*JobRepo)(nil)

const jobColumns = `id, customer_id, quote_number, description, price, deposit, status, notes, date, created_at`

// JobRepo implementación de JobRepository (usable con pool o tx).
type JobRepo struct {
	q Querier
}

// NewJobRepository construye el adaptador. Pasar pool o tx (Querier).
func NewJobRepository(q Querier) *JobRepo {
	return &JobRepo{q: q}
}

// Create persiste un nuevo trabajo. Una violación del constraint único de
// quote_number vuelve como domain.ErrDuplicate.
func (r *JobRepo) Create(job *entity.Job) error {
	query := `
		INSERT INTO jobs (id, customer_id, quote_number, description, price, deposit, status, notes, date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		job.ID, job.CustomerID, job.QuoteNumber, job.Description, job.Price, job.Deposit,
		job.Status, nullIfEmpty(job.Notes), job.Date, job.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert job: %w", err)
	}
	return nil
}

// GetByID obtiene un trabajo por ID.
func (r *JobRepo) GetByID(id string) (*entity.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE id = $1`
	return r.one(query, id)
}

// GetByQuoteNumber obtiene un trabajo por su número de cotización.
func (r *JobRepo) GetByQuoteNumber(qn string) (*entity.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE quote_number = $1`
	return r.one(query, qn)
}

// GetByOrigin busca por la tripleta (cliente, fecha, descripción) que
// identifica una fila de planilla ya importada.
func (r *JobRepo) GetByOrigin(customerID string, date time.Time, description string) (*entity.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE customer_id = $1 AND date = $2 AND description = $3`
	return r.one(query, customerID, date, description)
}

// List lista trabajos del más reciente al más viejo, con paginación.
func (r *JobRepo) List(limit, offset int) ([]*entity.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs ORDER BY date DESC, created_at DESC LIMIT $1 OFFSET $2`
	return r.many(query, limit, offset)
}

// ListByCustomer lista los trabajos de un cliente, del más reciente al más viejo.
func (r *JobRepo) ListByCustomer(customerID string) ([]*entity.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE customer_id = $1 ORDER BY date DESC, created_at DESC`
	return r.many(query, customerID)
}

// QuoteNumberExists verifica si un número de cotización ya está tomado.
func (r *JobRepo) QuoteNumberExists(qn string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(context.Background(),
		`SELECT EXISTS(SELECT 1 FROM jobs WHERE quote_number = $1)`, qn).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("quote number exists: %w", err)
	}
	return exists, nil
}

// MaxQuoteSequence devuelve el mayor sufijo numérico entre los números
// "Q<n>" guardados. La captura por regex hace que los números malformados
// (sin sufijo puramente numérico) queden afuera en vez de romper el CAST.
func (r *JobRepo) MaxQuoteSequence() (int, error) {
	var max *int
	err := r.q.QueryRow(context.Background(),
		`SELECT MAX((substring(quote_number FROM '^Q(\d+)$'))::int) FROM jobs`).Scan(&max)
	if err != nil {
		return 0, fmt.Errorf("max quote sequence: %w", err)
	}
	if max == nil {
		return 0, nil
	}
	return *max, nil
}

// Update actualiza los campos editables de un trabajo.
func (r *JobRepo) Update(job *entity.Job) error {
	query := `
		UPDATE jobs SET customer_id = $2, quote_number = $3, description = $4, price = $5,
			deposit = $6, status = $7, notes = $8, date = $9
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		job.ID, job.CustomerID, job.QuoteNumber, job.Description, job.Price, job.Deposit,
		job.Status, nullIfEmpty(job.Notes), job.Date,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update job: %w", err)
	}
	return nil
}

// Delete elimina un trabajo; los materiales caen por el FK ON DELETE CASCADE.
func (r *JobRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM jobs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete job: %w", err)
	}
	return nil
}

// Count total de trabajos en el libro.
func (r *JobRepo) Count() (int, error) {
	var n int
	err := r.q.QueryRow(context.Background(), `SELECT COUNT(*) FROM jobs`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count jobs: %w", err)
	}
	return n, nil
}

// LatestDate fecha de trabajo más reciente; cero si no hay trabajos.
func (r *JobRepo) LatestDate() (time.Time, error) {
	var latest *time.Time
	err := r.q.QueryRow(context.Background(), `SELECT MAX(date) FROM jobs`).Scan(&latest)
	if err != nil {
		return time.Time{}, fmt.Errorf("latest job date: %w", err)
	}
	if latest == nil {
		return time.Time{}, nil
	}
	return *latest, nil
}

func (r *JobRepo) one(query string, args ...any) (*entity.Job, error) {
	var j entity.Job
	var notes *string
	err := r.q.QueryRow(context.Background(), query, args...).Scan(
		&j.ID, &j.CustomerID, &j.QuoteNumber, &j.Description, &j.Price, &j.Deposit,
		&j.Status, &notes, &j.Date, &j.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get job: %w", err)
	}
	j.Notes = orEmpty(notes)
	return &j, nil
}

func (r *JobRepo) many(query string, args ...any) ([]*entity.Job, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	defer rows.Close()
	var list []*entity.Job
	for rows.Next() {
		var j entity.Job
		var notes *string
		if err := rows.Scan(&j.ID, &j.CustomerID, &j.QuoteNumber, &j.Description, &j.Price,
			&j.Deposit, &j.Status, &notes, &j.Date, &j.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan job: %w", err)
		}
		j.Notes = orEmpty(notes)
		list = append(list, &j)
	}
	return list, rows.Err()
}
