package importer

import (
	"context"

	"github.com/Badkirked/quoteforge/internal/domain/repository"
)

// Source abre archivos de planilla fuente.
type Source interface {
	Open(path string) (Workbook, error)
}

// Workbook acceso de solo lectura a un archivo ya abierto. Rows devuelve
// las filas en orden de origen, cada una recortada a su última celda con
// valor (celdas intermedias vacías quedan como "").
type Workbook interface {
	SheetNames() []string
	Rows(sheet string) ([][]string, error)
	Close() error
}

// TxRunner ejecuta un lote del importador dentro de una transacción: los
// repos recibidos quedan atados a la tx y el commit ocurre al retornar sin
// error. Un fallo revierte solo el lote en curso; lo confirmado por lotes
// anteriores persiste.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		customers repository.CustomerRepository,
		jobs repository.JobRepository,
		materials repository.MaterialRepository,
	) error) error
}
