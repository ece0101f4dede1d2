package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un trabajo (cotización/factura).
const (
	StatusQuoted      = "quoted"
	StatusDepositPaid = "deposit_paid"
	StatusInProgress  = "in_progress"
	StatusCompleted   = "completed" // filas históricas importadas caen acá
	StatusCancelled   = "cancelled"
)

// GSTRate IVA australiano (10%) aplicado sobre el precio sin impuesto.
var GSTRate = decimal.NewFromFloat(0.10)

// Job representa una cotización/factura de un cliente.
type Job struct {
	ID          string
	CustomerID  string
	QuoteNumber string // "Q" + secuencia con ceros; único en todo el libro
	Description string
	Price       decimal.Decimal // precio sin GST
	Deposit     decimal.Decimal
	Status      string
	Notes       string
	Date        time.Time
	CreatedAt   time.Time
}

// GST devuelve el impuesto sobre el precio.
func (j *Job) GST() decimal.Decimal {
	return j.Price.Mul(GSTRate)
}

// PriceIncGST devuelve el precio con GST incluido.
func (j *Job) PriceIncGST() decimal.Decimal {
	return j.Price.Add(j.GST())
}

// TotalCOGS suma el costo de los materiales del trabajo.
func (j *Job) TotalCOGS(materials []*Material) decimal.Decimal {
	total := decimal.Zero
	for _, m := range materials {
		total = total.Add(m.Cost)
	}
	return total
}

// GrossProfit precio sin GST menos costo de materiales.
func (j *Job) GrossProfit(materials []*Material) decimal.Decimal {
	return j.Price.Sub(j.TotalCOGS(materials))
}

// ValidStatus indica si s es uno de los estados conocidos.
func ValidStatus(s string) bool {
	switch s {
	case StatusQuoted, StatusDepositPaid, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}
