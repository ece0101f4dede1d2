package importer

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Badkirked/quoteforge/internal/domain/entity"
	"github.com/Badkirked/quoteforge/internal/domain/repository"
)

// identityKey clave del caché de identidad dentro de una corrida.
type identityKey struct {
	name  string // en minúsculas
	phone string
}

// IdentityResolver resuelve un cliente candidato contra el almacenamiento:
// primero por teléfono (clave fuerte), después por nombre exacto sin
// distinguir mayúsculas, y si no existe lo crea.
//
// El caché por corrida solo ahorra consultas repetidas para filas del mismo
// cliente dentro de un lote; es puramente de rendimiento y nunca puede
// divergir de lo que devolvería una consulta fresca.
//
// Limitación aceptada: dos clientes reales que comparten teléfono (línea
// fija compartida) se fusionan en uno, igual que en las corridas históricas.
type IdentityResolver struct {
	cache map[identityKey]string // -> customer ID
}

// NewIdentityResolver crea el resolutor con caché vacío.
func NewIdentityResolver() *IdentityResolver {
	return &IdentityResolver{cache: make(map[identityKey]string)}
}

// Resolve devuelve el ID del cliente existente que coincide con el
// candidato, o crea uno nuevo. En coincidencia, completa teléfono/email/
// dirección vacíos en el registro con los valores observados (nunca pisa
// un valor ya guardado).
func (r *IdentityResolver) Resolve(customers repository.CustomerRepository, cand CustomerCandidate, now time.Time) (string, error) {
	key := identityKey{name: strings.ToLower(cand.Name), phone: cand.Phone}
	if id, ok := r.cache[key]; ok {
		return id, nil
	}

	var existing *entity.Customer
	var err error
	if cand.Phone != "" {
		existing, err = customers.GetByPhone(cand.Phone)
		if err != nil {
			return "", fmt.Errorf("buscar cliente por teléfono: %w", err)
		}
	}
	if existing == nil {
		existing, err = customers.GetByName(cand.Name)
		if err != nil {
			return "", fmt.Errorf("buscar cliente por nombre: %w", err)
		}
	}

	if existing != nil {
		if cand.Phone != "" || cand.Email != "" || cand.Address != "" {
			if err := customers.FillContact(existing.ID, cand.Phone, cand.Email, cand.Address); err != nil {
				return "", fmt.Errorf("completar contacto del cliente %s: %w", existing.ID, err)
			}
		}
		r.cache[key] = existing.ID
		return existing.ID, nil
	}

	customer := &entity.Customer{
		ID:        uuid.New().String(),
		Name:      cand.Name,
		Phone:     cand.Phone,
		Email:     cand.Email,
		Address:   cand.Address,
		CreatedAt: now,
	}
	if err := customers.Create(customer); err != nil {
		return "", fmt.Errorf("crear cliente %q: %w", cand.Name, err)
	}
	r.cache[key] = customer.ID
	return customer.ID, nil
}
