// Package pdf implementa la generación del PDF de cotización que se envía
// al cliente.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Negocio + ABN  │  N° Cotización + Fecha            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CLIENTE: Nombre + contacto + dirección                     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  DESCRIPCIÓN DEL TRABAJO                                    │
//	│  TABLA: Categoría | Detalle | Costo (si hay materiales)     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Precio / GST 10% / TOTAL / Depósito / Saldo       │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	marotoconfig "github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/Badkirked/quoteforge/internal/domain/entity"
	"github.com/Badkirked/quoteforge/pkg/config"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 30, Green: 60, Blue: 90}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa usecase.QuotePDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct {
	business config.BusinessConfig
}

// NewMarotoPDFGenerator construye el generador con los datos del negocio.
func NewMarotoPDFGenerator(business config.BusinessConfig) *MarotoPDFGenerator {
	return &MarotoPDFGenerator{business: business}
}

// GenerateQuotePDF genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateQuotePDF(
	_ context.Context,
	job *entity.Job,
	customer *entity.Customer,
	materials []*entity.Material,
) ([]byte, error) {
	cfg := marotoconfig.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Quote "+job.QuoteNumber, true).
		WithAuthor(g.business.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(job))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(customerRow(customer))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(descriptionRows(job)...)

	if len(materials) > 0 {
		m.AddRows(tableHeaderRow())
		for _, r := range tableMaterialRows(materials) {
			m.AddRows(r)
		}
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(job))

	if job.Notes != "" {
		m.AddRows(notesRows(job)...)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: negocio + ABN (izq) y N° de cotización + fecha (der).
func (g *MarotoPDFGenerator) headerRow(job *entity.Job) core.Row {
	fecha := job.Date.Format("02/01/2006")

	left := []core.Component{
		text.New(g.business.Name, props.Text{
			Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
		}),
	}
	if g.business.ABN != "" {
		left = append(left, text.New("ABN: "+g.business.ABN, props.Text{
			Size: 9, Top: 9, Color: colorGray,
		}))
	}

	return row.New(18).Add(
		col.New(7).Add(left...),
		col.New(5).Add(
			text.New("QUOTE", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(job.QuoteNumber, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Date: "+fecha, props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// customerRow: datos del cliente.
func customerRow(customer *entity.Customer) core.Row {
	return row.New(14).Add(
		col.New(12).Add(
			text.New("CUSTOMER", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(customer.Name, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(fmt.Sprintf("Phone: %s   |   Email: %s   |   Address: %s",
				nonEmpty(customer.Phone, "—"),
				nonEmpty(customer.Email, "—"),
				nonEmpty(customer.Address, "—"),
			), props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

// descriptionRows: descripción del trabajo cotizado.
func descriptionRows(job *entity.Job) []core.Row {
	return []core.Row{
		row.New(6).Add(col.New(12).Add(
			text.New("JOB DESCRIPTION", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
		)),
		row.New(10).Add(col.New(12).Add(
			text.New(job.Description, props.Text{Size: 9, Top: 1, Left: 1}),
		)),
	}
}

// tableHeaderRow: cabecera de la tabla de materiales.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Category", 2, align.Left),
		h("Detail", 7, align.Left),
		h("Cost", 3, align.Right),
	)
}

// tableMaterialRows: una fila por línea de costo.
func tableMaterialRows(materials []*entity.Material) []core.Row {
	result := make([]core.Row, 0, len(materials))
	for _, mat := range materials {
		result = append(result, row.New(7).Add(
			col.New(2).Add(text.New(
				mat.Category,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(7).Add(text.New(
				mat.Description,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(3).Add(text.New(
				money(mat.Cost),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

// totalsRow: bloque de totales alineado a la derecha. El saldo es el total
// con GST menos el depósito ya pagado.
func totalsRow(job *entity.Job) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2,
		})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1})
	}
	grandLabel := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 2,
		})
	}
	grandValue := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 1,
		})
	}

	balance := job.PriceIncGST().Sub(job.Deposit)

	return row.New(36).Add(
		col.New(4),
		col.New(4).Add(
			label("Price (ex GST):"),
			label("GST (10%):"),
			grandLabel("TOTAL (inc GST):"),
			label("Deposit paid:"),
			label("Balance due:"),
		),
		col.New(4).Add(
			value(money(job.Price)),
			value(money(job.GST())),
			grandValue(money(job.PriceIncGST())),
			value(money(job.Deposit)),
			value(money(balance)),
		),
	)
}

// notesRows: notas internas u observaciones para el cliente.
func notesRows(job *entity.Job) []core.Row {
	return []core.Row{
		row.New(3),
		row.New(6).Add(col.New(12).Add(
			text.New("NOTES", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
		)),
		row.New(8).Add(col.New(12).Add(
			text.New(job.Notes, props.Text{Size: 8, Color: colorGray, Top: 1, Left: 1}),
		)),
	}
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// money formatea un monto con símbolo y separador de miles: 1234.5 → "$1,234.50".
func money(d decimal.Decimal) string {
	s := d.StringFixed(2)
	neg := false
	if len(s) > 0 && s[0] == '-' {
		neg = true
		s = s[1:]
	}
	intPart := s[:len(s)-3]
	frac := s[len(s)-3:]

	n := len(intPart)
	buf := make([]byte, 0, n+n/3)
	for i := 0; i < n; i++ {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, ',')
		}
		buf = append(buf, intPart[i])
	}
	out := "$" + string(buf) + frac
	if neg {
		out = "-" + out
	}
	return out
}
