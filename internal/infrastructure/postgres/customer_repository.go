package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/Badkirked/quoteforge/internal/domain"
	"github.com/Badkirked/quoteforge/internal/domain/entity"
	"github.com/Badkirked/quoteforge/internal/domain/repository"
)

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

const customerColumns = `id, name, phone, email, address, created_at`

// CustomerRepo implementación de CustomerRepository (usable con pool o tx).
type CustomerRepo struct {
	q Querier
}

// NewCustomerRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCustomerRepository(q Querier) *CustomerRepo {
	return &CustomerRepo{q: q}
}

// Create persiste un nuevo cliente.
func (r *CustomerRepo) Create(customer *entity.Customer) error {
	query := `
		INSERT INTO customers (id, name, phone, email, address, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		customer.ID, customer.Name, nullIfEmpty(customer.Phone), nullIfEmpty(customer.Email),
		nullIfEmpty(customer.Address), customer.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert customer: %w", err)
	}
	return nil
}

// GetByID obtiene un cliente por ID.
func (r *CustomerRepo) GetByID(id string) (*entity.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE id = $1`
	return r.one(query, id)
}

// GetByPhone obtiene un cliente por teléfono exacto.
func (r *CustomerRepo) GetByPhone(phone string) (*entity.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE phone = $1`
	return r.one(query, phone)
}

// GetByName obtiene un cliente por nombre exacto sin distinguir mayúsculas.
func (r *CustomerRepo) GetByName(name string) (*entity.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE LOWER(name) = LOWER($1)`
	return r.one(query, name)
}

// List lista clientes ordenados por nombre, con paginación.
func (r *CustomerRepo) List(limit, offset int) ([]*entity.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers ORDER BY name LIMIT $1 OFFSET $2`
	return r.many(query, limit, offset)
}

// Search busca clientes por nombre, teléfono o email (substring, sin
// distinguir mayúsculas).
func (r *CustomerRepo) Search(q string, limit int) ([]*entity.Customer, error) {
	query := `
		SELECT ` + customerColumns + ` FROM customers
		WHERE name ILIKE '%' || $1 || '%'
		   OR phone ILIKE '%' || $1 || '%'
		   OR email ILIKE '%' || $1 || '%'
		ORDER BY name LIMIT $2`
	return r.many(query, q, limit)
}

// Update actualiza todos los campos editables de un cliente.
func (r *CustomerRepo) Update(customer *entity.Customer) error {
	query := `
		UPDATE customers SET name = $2, phone = $3, email = $4, address = $5
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		customer.ID, customer.Name, nullIfEmpty(customer.Phone), nullIfEmpty(customer.Email),
		nullIfEmpty(customer.Address),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update customer: %w", err)
	}
	return nil
}

// FillContact completa teléfono/email/dirección solo donde el registro está
// vacío; COALESCE garantiza que nunca se pisa un valor ya guardado.
func (r *CustomerRepo) FillContact(id, phone, email, address string) error {
	query := `
		UPDATE customers SET
			phone   = COALESCE(phone, $2),
			email   = COALESCE(email, $3),
			address = COALESCE(address, $4)
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		id, nullIfEmpty(phone), nullIfEmpty(email), nullIfEmpty(address),
	)
	if err != nil {
		return fmt.Errorf("fill customer contact: %w", err)
	}
	return nil
}

// Delete elimina un cliente por ID.
func (r *CustomerRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM customers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete customer: %w", err)
	}
	return nil
}

// Count total de clientes en el libro.
func (r *CustomerRepo) Count() (int, error) {
	var n int
	err := r.q.QueryRow(context.Background(), `SELECT COUNT(*) FROM customers`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count customers: %w", err)
	}
	return n, nil
}

func (r *CustomerRepo) one(query string, args ...any) (*entity.Customer, error) {
	var c entity.Customer
	var phone, email, address *string
	err := r.q.QueryRow(context.Background(), query, args...).Scan(
		&c.ID, &c.Name, &phone, &email, &address, &c.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get customer: %w", err)
	}
	c.Phone, c.Email, c.Address = orEmpty(phone), orEmpty(email), orEmpty(address)
	return &c, nil
}

func (r *CustomerRepo) many(query string, args ...any) ([]*entity.Customer, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	defer rows.Close()
	var list []*entity.Customer
	for rows.Next() {
		var c entity.Customer
		var phone, email, address *string
		if err := rows.Scan(&c.ID, &c.Name, &phone, &email, &address, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan customer: %w", err)
		}
		c.Phone, c.Email, c.Address = orEmpty(phone), orEmpty(email), orEmpty(address)
		list = append(list, &c)
	}
	return list, rows.Err()
}
