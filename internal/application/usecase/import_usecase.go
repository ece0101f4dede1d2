package usecase

import (
	"context"

	"github.com/Badkirked/quoteforge/internal/application/importer"
)

// ImportUseCase expone las corridas de importación a las interfaces.
type ImportUseCase struct {
	driver *importer.Driver
}

// NewImportUseCase construye el caso de uso.
func NewImportUseCase(driver *importer.Driver) *ImportUseCase {
	return &ImportUseCase{driver: driver}
}

// Run valida el modo recibido y ejecuta la corrida.
func (uc *ImportUseCase) Run(ctx context.Context, mode string) (*importer.Summary, error) {
	m, err := importer.ParseMode(mode)
	if err != nil {
		return nil, err
	}
	return uc.driver.Run(ctx, m)
}
