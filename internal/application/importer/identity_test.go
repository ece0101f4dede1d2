package importer_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Badkirked/quoteforge/internal/application/importer"
	"github.com/Badkirked/quoteforge/internal/domain/entity"
)

var testNow = time.Date(2023, time.June, 1, 0, 0, 0, 0, time.UTC)

func TestResolve_CreaClienteNuevo(t *testing.T) {
	repo := newFakeCustomerRepo()
	r := importer.NewIdentityResolver()

	id, err := r.Resolve(repo, importer.CustomerCandidate{Name: "Alice", Phone: "0412"}, testNow)
	require.NoError(t, err)
	require.NotEmpty(t, id)

	created, err := repo.GetByID(id)
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, "Alice", created.Name)
	assert.Equal(t, "0412", created.Phone)
}

func TestResolve_CoincidePorTelefono(t *testing.T) {
	repo := newFakeCustomerRepo()
	require.NoError(t, repo.Create(&entity.Customer{ID: "c1", Name: "Alice Smith", Phone: "0412"}))

	r := importer.NewIdentityResolver()
	// Mismo teléfono con nombre escrito distinto: es el mismo cliente.
	id, err := r.Resolve(repo, importer.CustomerCandidate{Name: "A. Smith", Phone: "0412"}, testNow)
	require.NoError(t, err)
	assert.Equal(t, "c1", id)

	count, _ := repo.Count()
	assert.Equal(t, 1, count, "no debe crearse un segundo cliente")
}

func TestResolve_CoincidePorNombreSinDistinguirMayusculas(t *testing.T) {
	repo := newFakeCustomerRepo()
	require.NoError(t, repo.Create(&entity.Customer{ID: "c1", Name: "Bob Jones"}))

	r := importer.NewIdentityResolver()
	id, err := r.Resolve(repo, importer.CustomerCandidate{Name: "BOB JONES"}, testNow)
	require.NoError(t, err)
	assert.Equal(t, "c1", id)
}

func TestResolve_CompletaContactoSinPisar(t *testing.T) {
	repo := newFakeCustomerRepo()
	require.NoError(t, repo.Create(&entity.Customer{ID: "c1", Name: "Carol", Phone: "0400"}))

	r := importer.NewIdentityResolver()
	_, err := r.Resolve(repo, importer.CustomerCandidate{Name: "Carol", Phone: "0499", Address: "9 Low St"}, testNow)
	require.NoError(t, err)

	got, _ := repo.GetByID("c1")
	assert.Equal(t, "0400", got.Phone, "un teléfono ya guardado nunca se pisa")
	assert.Equal(t, "9 Low St", got.Address, "la dirección vacía se completa con lo observado")
}

func TestResolve_CacheaDentroDeLaCorrida(t *testing.T) {
	repo := newFakeCustomerRepo()
	r := importer.NewIdentityResolver()

	cand := importer.CustomerCandidate{Name: "Dave", Phone: "0411"}
	id1, err := r.Resolve(repo, cand, testNow)
	require.NoError(t, err)
	id2, err := r.Resolve(repo, cand, testNow)
	require.NoError(t, err)

	assert.Equal(t, id1, id2, "la misma clave dentro de una corrida devuelve el mismo ID")
	count, _ := repo.Count()
	assert.Equal(t, 1, count)
}

func TestResolve_NombresIgualesTelefonosDistintosSonClientesDistintos(t *testing.T) {
	repo := newFakeCustomerRepo()
	r := importer.NewIdentityResolver()

	id1, err := r.Resolve(repo, importer.CustomerCandidate{Name: "John Smith", Phone: ""}, testNow)
	require.NoError(t, err)

	// Sin teléfono el nombre manda: el mismo nombre vuelve a resolver al
	// cliente existente aunque el caché use otra clave.
	id2, err := r.Resolve(repo, importer.CustomerCandidate{Name: "john smith", Phone: ""}, testNow)
	require.NoError(t, err)
	assert.Equal(t, id1, id2)
}
