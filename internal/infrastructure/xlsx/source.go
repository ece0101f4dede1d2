// Package xlsx adapta workbooks de Excel al puerto Source del importador
// usando excelize. Las celdas se leen con valor crudo: las fechas reales
// llegan como serial Excel y el parser de celdas las convierte, así no
// dependemos del formato de visualización de cada hoja.
package xlsx

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/Badkirked/quoteforge/internal/application/importer"
)

var _ importer.Source = (*Source)(nil)

// Source abre archivos .xlsx del disco.
type Source struct{}

// NewSource construye el adaptador.
func NewSource() *Source { return &Source{} }

// Open abre el archivo y devuelve el workbook listo para leer.
func (s *Source) Open(path string) (importer.Workbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("abrir workbook %s: %w", path, err)
	}
	return &workbook{f: f}, nil
}

type workbook struct {
	f *excelize.File
}

// SheetNames devuelve los nombres de hoja en el orden del archivo.
func (w *workbook) SheetNames() []string {
	return w.f.GetSheetList()
}

// Rows devuelve todas las filas de la hoja con valores crudos. Cada fila
// queda recortada a su última celda con valor, igual que GetRows la entrega.
func (w *workbook) Rows(sheet string) ([][]string, error) {
	rows, err := w.f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("leer hoja %s: %w", sheet, err)
	}
	return rows, nil
}

// Close libera el archivo.
func (w *workbook) Close() error {
	return w.f.Close()
}
