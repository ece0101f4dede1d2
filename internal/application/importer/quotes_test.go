package importer_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Badkirked/quoteforge/internal/application/importer"
	"github.com/Badkirked/quoteforge/internal/domain"
	"github.com/Badkirked/quoteforge/internal/domain/entity"
)

func seedJobs(t *testing.T, repo *fakeJobRepo, quoteNumbers ...string) {
	t.Helper()
	for i, qn := range quoteNumbers {
		require.NoError(t, repo.Create(&entity.Job{ID: fmt.Sprintf("j%d", i), QuoteNumber: qn}))
	}
}

func TestFormatQuoteNumber(t *testing.T) {
	assert.Equal(t, "Q00001", importer.FormatQuoteNumber(1))
	assert.Equal(t, "Q00042", importer.FormatQuoteNumber(42))
	assert.Equal(t, "Q123456", importer.FormatQuoteNumber(123456), "más de cinco dígitos no se trunca")
}

func TestSeedAllocator_ContinuaDespuesDelMaximo(t *testing.T) {
	repo := newFakeJobRepo()
	seedJobs(t, repo, "Q00001", "Q00010", "Q00003")

	alloc, err := importer.SeedAllocator(repo)
	require.NoError(t, err)

	qn, err := alloc.NextFresh(repo)
	require.NoError(t, err)
	assert.Equal(t, "Q00011", qn, "la secuencia continúa después del mayor número guardado")
}

func TestSeedAllocator_LibroVacioArrancaEnUno(t *testing.T) {
	repo := newFakeJobRepo()
	alloc, err := importer.SeedAllocator(repo)
	require.NoError(t, err)

	qn, err := alloc.NextFresh(repo)
	require.NoError(t, err)
	assert.Equal(t, "Q00001", qn)
}

func TestNextFresh_SaltaColisiones(t *testing.T) {
	repo := newFakeJobRepo()
	seedJobs(t, repo, "Q00002", "Q00003")

	alloc := importer.NewQuoteAllocator(1)
	first, err := alloc.NextFresh(repo)
	require.NoError(t, err)
	assert.Equal(t, "Q00001", first)

	second, err := alloc.NextFresh(repo)
	require.NoError(t, err)
	assert.Equal(t, "Q00004", second, "los números ocupados se saltan, nunca se reusan")
}

func TestPreserveQuoteNumber_SinColision(t *testing.T) {
	repo := newFakeJobRepo()
	qn, err := importer.PreserveQuoteNumber(repo, "5001", 0)
	require.NoError(t, err)
	assert.Equal(t, "Q5001", qn)
}

func TestPreserveQuoteNumber_LimpiaArtefactoFlotante(t *testing.T) {
	repo := newFakeJobRepo()
	// Las celdas numéricas llegan como "5001.0" al leerse crudas.
	qn, err := importer.PreserveQuoteNumber(repo, "5001.0", 0)
	require.NoError(t, err)
	assert.Equal(t, "Q5001", qn)
}

func TestPreserveQuoteNumber_ColisionDerivaConContador(t *testing.T) {
	repo := newFakeJobRepo()
	seedJobs(t, repo, "Q5001")

	qn, err := importer.PreserveQuoteNumber(repo, "5001", 37)
	require.NoError(t, err)
	assert.Equal(t, "Q5001-37", qn)
}

func TestPreserveQuoteNumber_DobleColisionEsConflicto(t *testing.T) {
	repo := newFakeJobRepo()
	seedJobs(t, repo, "Q5001", "Q5001-37")

	_, err := importer.PreserveQuoteNumber(repo, "5001", 37)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrQuoteConflict, "la fila nunca se descarta en silencio")
}
