package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Categorías habituales de línea de costo. Category es texto libre; estas
// constantes solo cubren las usadas por el formulario original.
const (
	CategoryLabour    = "Labour"
	CategoryMaterials = "Materials"
	CategoryFreight   = "Freight"
)

// Material línea de costo (COGS) de un trabajo. Pertenece a un único Job y
// se elimina junto con él o cuando la edición reemplaza las líneas completas.
type Material struct {
	ID          string
	JobID       string
	Category    string
	Description string
	Cost        decimal.Decimal
	CreatedAt   time.Time
}
