package importer_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Badkirked/quoteforge/internal/application/importer"
)

// ── ParseDate ─────────────────────────────────────────────────────────────────

func TestParseDate_FormatosAceptados(t *testing.T) {
	expected := time.Date(2023, time.March, 5, 0, 0, 0, 0, time.UTC)

	for _, raw := range []string{
		"05/03/2023",
		"2023-03-05",
		"05-03-2023",
		"05/03/23",
		"05-03-23",
	} {
		got := importer.ParseDate(raw)
		require.True(t, got.Valid, "el formato %q debe parsearse como fecha", raw)
		assert.True(t, expected.Equal(got.Time), "el formato %q debe producir el mismo día", raw)
	}
}

func TestParseDate_SerialExcel(t *testing.T) {
	// 45000 = 15 de marzo de 2023 en el epoch de Excel.
	got := importer.ParseDate("45000")
	require.True(t, got.Valid, "un serial Excel dentro de rango debe ser fecha válida")
	assert.Equal(t, time.Date(2023, time.March, 15, 0, 0, 0, 0, time.UTC), got.Time)
}

func TestParseDate_SerialFueraDeRango(t *testing.T) {
	got := importer.ParseDate("1234")
	assert.False(t, got.Valid, "un número fuera del rango de seriales no es fecha")
	assert.Equal(t, importer.FallbackUnparseable, got.Reason)
}

func TestParseDate_MarcaPendiente(t *testing.T) {
	for _, raw := range []string{"x", "X", " x ", "xx"} {
		got := importer.ParseDate(raw)
		assert.False(t, got.Valid, "%q marca trabajo pendiente, no fecha", raw)
		assert.Equal(t, importer.FallbackPending, got.Reason)
	}
}

func TestParseDate_VaciaYIlegible(t *testing.T) {
	empty := importer.ParseDate("  ")
	assert.Equal(t, importer.FallbackEmpty, empty.Reason)
	assert.False(t, empty.Valid)

	garbage := importer.ParseDate("no es fecha")
	assert.Equal(t, importer.FallbackUnparseable, garbage.Reason)
	assert.False(t, garbage.Valid)
}

// ── ParseMoney ────────────────────────────────────────────────────────────────

func TestParseMoney_QuitaSimboloYSeparadores(t *testing.T) {
	got := importer.ParseMoney("$1,234.50")
	require.True(t, got.Valid)
	assert.Equal(t, "1234.5", got.Amount.String())
}

func TestParseMoney_MontoSimple(t *testing.T) {
	got := importer.ParseMoney("850")
	require.True(t, got.Valid)
	assert.Equal(t, "850", got.Amount.String())
}

func TestParseMoney_IlegibleDegradaACero(t *testing.T) {
	got := importer.ParseMoney("a convenir")
	assert.False(t, got.Valid, "un monto ilegible nunca es error, degrada a cero")
	assert.True(t, got.Amount.IsZero())
	assert.Equal(t, importer.FallbackUnparseable, got.Reason)
}

func TestParseMoney_VaciaDegradaACero(t *testing.T) {
	got := importer.ParseMoney("")
	assert.False(t, got.Valid)
	assert.True(t, got.Amount.IsZero())
	assert.Equal(t, importer.FallbackEmpty, got.Reason)
}

// ── Text y teléfono ───────────────────────────────────────────────────────────

func TestText_SentinelNone(t *testing.T) {
	assert.Equal(t, "", importer.Text("None"), "el literal None es valor ausente")
	assert.Equal(t, "Juan", importer.Text("  Juan  "))
}

func TestIsPhonePlaceholder(t *testing.T) {
	assert.True(t, importer.IsPhonePlaceholder("0"))
	assert.False(t, importer.IsPhonePlaceholder("0412345678"))
}

// ── ColumnMap ─────────────────────────────────────────────────────────────────

func TestColumnMap_DefaultEsValido(t *testing.T) {
	assert.NoError(t, importer.DefaultColumnMap().Validate())
}

func TestColumnMap_RechazaIndicesRepetidos(t *testing.T) {
	cols := importer.DefaultColumnMap()
	cols.Price = cols.Date
	assert.Error(t, cols.Validate(), "dos campos no pueden compartir columna")
}

func TestColumnMap_RechazaIndiceNegativo(t *testing.T) {
	cols := importer.DefaultColumnMap()
	cols.Name = -1
	assert.Error(t, cols.Validate())
}
