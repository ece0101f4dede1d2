package repository

import "github.com/Badkirked/quoteforge/internal/domain/entity"

// MaterialRepository define el puerto de persistencia para las líneas de
// costo de un trabajo.
type MaterialRepository interface {
	CreateBatch(jobID string, items []*entity.Material) error
	ListByJob(jobID string) ([]*entity.Material, error)
	// ReplaceForJob borra las líneas existentes del trabajo y crea las nuevas
	// (la edición reemplaza las líneas completas).
	ReplaceForJob(jobID string, items []*entity.Material) error
	DeleteByJob(jobID string) error
}
