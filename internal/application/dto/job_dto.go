package dto

import "github.com/shopspring/decimal"

// MaterialItem línea de costo dentro de un trabajo.
type MaterialItem struct {
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Cost        decimal.Decimal `json:"cost"`
}

// CreateJobRequest body para POST /api/jobs.
type CreateJobRequest struct {
	CustomerID  string          `json:"customer_id"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Deposit     decimal.Decimal `json:"deposit"`
	Status      string          `json:"status,omitempty"`
	Notes       string          `json:"notes,omitempty"`
	Date        string          `json:"date,omitempty"` // YYYY-MM-DD, hoy si se omite
	Materials   []MaterialItem  `json:"materials,omitempty"`
}

// UpdateJobRequest body para PUT /api/jobs/:id. Los materiales
// reemplazan por completo a los existentes.
type UpdateJobRequest struct {
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Deposit     decimal.Decimal `json:"deposit"`
	Status      string          `json:"status"`
	Notes       string          `json:"notes,omitempty"`
	Date        string          `json:"date,omitempty"`
	Materials   []MaterialItem  `json:"materials,omitempty"`
}

// JobResponse trabajo en respuestas.
type JobResponse struct {
	ID          string          `json:"id"`
	CustomerID  string          `json:"customer_id"`
	QuoteNumber string          `json:"quote_number"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Deposit     decimal.Decimal `json:"deposit"`
	Status      string          `json:"status"`
	Notes       string          `json:"notes,omitempty"`
	Date        string          `json:"date"`
}

// JobDetailResponse trabajo con materiales y totales derivados.
type JobDetailResponse struct {
	JobResponse
	Materials   []MaterialItem  `json:"materials"`
	GST         decimal.Decimal `json:"gst"`
	PriceIncGST decimal.Decimal `json:"price_inc_gst"`
	TotalCOGS   decimal.Decimal `json:"total_cogs"`
	GrossProfit decimal.Decimal `json:"gross_profit"`
}
