package importer_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Badkirked/quoteforge/internal/application/importer"
)

// makeRow arma una fila posicional con el layout de las hojas históricas:
// col 1 fecha, 2 nombre, 3 dirección, 4 teléfono, 7 descripción, 8 número,
// 9 precio.
func makeRow(date, name, address, phone, desc, quote, price string) []string {
	return []string{"", date, name, address, phone, "", "", desc, quote, price}
}

func TestNormalizeRow_FilaCompleta(t *testing.T) {
	row := makeRow("05/03/2023", "Alice Smith", "12 High St", "0412345678", "Fix fence", "5001", "$1,200.00")

	norm, skip := importer.NormalizeRow(importer.DefaultColumnMap(), row, importer.RowOptions{FallbackYear: 2014})
	require.Equal(t, importer.SkipNone, skip)

	assert.Equal(t, "Alice Smith", norm.Customer.Name)
	assert.Equal(t, "0412345678", norm.Customer.Phone)
	assert.Equal(t, "12 High St", norm.Customer.Address)
	assert.Equal(t, "Fix fence", norm.Job.Description)
	assert.Equal(t, "5001", norm.Job.QuoteRaw)
	assert.Equal(t, "1200", norm.Job.Price.String())
	assert.True(t, norm.Job.Date.Equal(time.Date(2023, time.March, 5, 0, 0, 0, 0, time.UTC)))
}

func TestNormalizeRow_FilaSinNombreNiDescripcionSeDescarta(t *testing.T) {
	row := makeRow("05/03/2023", "", "", "", "", "", "")
	norm, skip := importer.NormalizeRow(importer.DefaultColumnMap(), row, importer.RowOptions{FallbackYear: 2014})
	assert.Nil(t, norm)
	assert.Equal(t, importer.SkipEmptyRow, skip)
}

func TestNormalizeRow_FechaFaltanteBucketeaAlAnioFallback(t *testing.T) {
	row := makeRow("x", "Bob", "", "", "Paint shed", "", "300")
	norm, skip := importer.NormalizeRow(importer.DefaultColumnMap(), row, importer.RowOptions{FallbackYear: 2014})
	require.Equal(t, importer.SkipNone, skip)
	assert.True(t, norm.Job.Date.Equal(time.Date(2014, time.January, 1, 0, 0, 0, 0, time.UTC)),
		"una fecha faltante cae al 1 de enero del año fallback")
}

func TestNormalizeRow_DefaultsDeNombreYDescripcion(t *testing.T) {
	cols := importer.DefaultColumnMap()

	sinNombre, skip := importer.NormalizeRow(cols, makeRow("", "", "", "", "Some job", "", ""), importer.RowOptions{FallbackYear: 2014})
	require.Equal(t, importer.SkipNone, skip)
	assert.Equal(t, "Unknown 2014", sinNombre.Customer.Name)

	sinDesc, skip := importer.NormalizeRow(cols, makeRow("", "Carol", "", "", "", "", ""), importer.RowOptions{FallbackYear: 2014})
	require.Equal(t, importer.SkipNone, skip)
	assert.Equal(t, "No description", sinDesc.Job.Description)
}

func TestNormalizeRow_TelefonoPlaceholderSeDescarta(t *testing.T) {
	row := makeRow("", "Dave", "", "0", "Job", "", "")
	norm, skip := importer.NormalizeRow(importer.DefaultColumnMap(), row, importer.RowOptions{FallbackYear: 2014})
	require.Equal(t, importer.SkipNone, skip)
	assert.Equal(t, "", norm.Customer.Phone, "el 0 literal es teléfono ausente")
}

func TestNormalizeRow_ModoIncrementalFiltraPorMarcaDeAgua(t *testing.T) {
	opts := importer.RowOptions{
		FallbackYear: 2014,
		RequireDate:  true,
		Watermark:    time.Date(2022, time.December, 14, 0, 0, 0, 0, time.UTC),
	}
	cols := importer.DefaultColumnMap()

	// Fecha anterior a la marca: descartada.
	_, skip := importer.NormalizeRow(cols, makeRow("01/01/2020", "Eve", "", "", "Old job", "", ""), opts)
	assert.Equal(t, importer.SkipBeforeWatermark, skip)

	// Fecha igual a la marca: también descartada (debe ser posterior).
	_, skip = importer.NormalizeRow(cols, makeRow("14/12/2022", "Eve", "", "", "Same day", "", ""), opts)
	assert.Equal(t, importer.SkipBeforeWatermark, skip)

	// Sin fecha: descartada.
	_, skip = importer.NormalizeRow(cols, makeRow("x", "Eve", "", "", "Pending", "", ""), opts)
	assert.Equal(t, importer.SkipBeforeWatermark, skip)

	// Fecha posterior: pasa.
	norm, skip := importer.NormalizeRow(cols, makeRow("15/12/2022", "Eve", "", "", "New job", "", ""), opts)
	require.Equal(t, importer.SkipNone, skip)
	assert.Equal(t, "New job", norm.Job.Description)
}

func TestNormalizeRow_FilaCorta(t *testing.T) {
	// Una fila recortada antes de las columnas de descripción y precio no
	// debe hacer panic; degrada a sus defaults.
	short := []string{"", "05/03/2023", "Frank"}
	norm, skip := importer.NormalizeRow(importer.DefaultColumnMap(), short, importer.RowOptions{FallbackYear: 2014})
	require.Equal(t, importer.SkipNone, skip)
	assert.Equal(t, "Frank", norm.Customer.Name)
	assert.Equal(t, "No description", norm.Job.Description)
	assert.True(t, norm.Job.Price.IsZero())
}
