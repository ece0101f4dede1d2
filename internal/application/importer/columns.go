package importer

import "fmt"

// ColumnMap posiciones (0-based) de cada campo dentro de una fila fuente.
// Centraliza el layout de la planilla: si el esquema de exportación cambia,
// se ajusta acá y no en literales repartidos por el código.
type ColumnMap struct {
	Date        int
	Name        int
	Address     int
	Phone       int
	Description int
	QuoteNumber int
	Price       int
}

// DefaultColumnMap layout observado en las exportaciones históricas:
// B=fecha, C=nombre, D=dirección, E=teléfono, H=descripción, I=número de
// cotización, J=precio.
func DefaultColumnMap() ColumnMap {
	return ColumnMap{
		Date:        1,
		Name:        2,
		Address:     3,
		Phone:       4,
		Description: 7,
		QuoteNumber: 8,
		Price:       9,
	}
}

// Validate verifica el mapeo una sola vez al arranque: sin índices
// negativos ni posiciones repetidas.
func (m ColumnMap) Validate() error {
	indexes := map[int]string{}
	fields := []struct {
		name string
		idx  int
	}{
		{"date", m.Date},
		{"name", m.Name},
		{"address", m.Address},
		{"phone", m.Phone},
		{"description", m.Description},
		{"quote_number", m.QuoteNumber},
		{"price", m.Price},
	}
	for _, f := range fields {
		if f.idx < 0 {
			return fmt.Errorf("columna %s: índice negativo %d", f.name, f.idx)
		}
		if other, ok := indexes[f.idx]; ok {
			return fmt.Errorf("columna %s: índice %d repetido con %s", f.name, f.idx, other)
		}
		indexes[f.idx] = f.name
	}
	return nil
}

// cellAt devuelve la celda idx de la fila, o "" si la fila es más corta
// (las filas de planilla llegan recortadas a la última celda con valor).
func cellAt(row []string, idx int) string {
	if idx >= len(row) {
		return ""
	}
	return row[idx]
}
