package postgres

import (
	"context"
	"fmt"

	"github.com/Badkirked/quoteforge/internal/domain/entity"
	"github.com/Badkirked/quoteforge/internal/domain/repository"
)

var _ repository.MaterialRepository = (*MaterialRepo)(nil)

// MaterialRepo implementación de MaterialRepository (usable con pool o tx).
type MaterialRepo struct {
	q Querier
}

// NewMaterialRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMaterialRepository(q Querier) *MaterialRepo {
	return &MaterialRepo{q: q}
}

// CreateBatch inserta las líneas de costo de un trabajo.
func (r *MaterialRepo) CreateBatch(jobID string, items []*entity.Material) error {
	query := `
		INSERT INTO materials (id, job_id, category, description, cost, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	for _, m := range items {
		_, err := r.q.Exec(context.Background(), query,
			m.ID, jobID, m.Category, m.Description, m.Cost, m.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("insert material: %w", err)
		}
	}
	return nil
}

// ListByJob lista las líneas de costo de un trabajo en orden de creación.
func (r *MaterialRepo) ListByJob(jobID string) ([]*entity.Material, error) {
	query := `
		SELECT id, job_id, category, description, cost, created_at
		FROM materials WHERE job_id = $1 ORDER BY created_at, id`
	rows, err := r.q.Query(context.Background(), query, jobID)
	if err != nil {
		return nil, fmt.Errorf("list materials: %w", err)
	}
	defer rows.Close()
	var list []*entity.Material
	for rows.Next() {
		var m entity.Material
		if err := rows.Scan(&m.ID, &m.JobID, &m.Category, &m.Description, &m.Cost, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan material: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

// ReplaceForJob borra las líneas existentes y crea las nuevas; la edición
// de un trabajo reemplaza sus líneas completas.
func (r *MaterialRepo) ReplaceForJob(jobID string, items []*entity.Material) error {
	if err := r.DeleteByJob(jobID); err != nil {
		return err
	}
	return r.CreateBatch(jobID, items)
}

// DeleteByJob elimina todas las líneas de costo de un trabajo.
func (r *MaterialRepo) DeleteByJob(jobID string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM materials WHERE job_id = $1`, jobID)
	if err != nil {
		return fmt.Errorf("delete materials: %w", err)
	}
	return nil
}
