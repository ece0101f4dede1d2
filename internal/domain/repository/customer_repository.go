package repository

import "github.com/Badkirked/quoteforge/internal/domain/entity"

// CustomerRepository define el puerto de persistencia para Customer.
// Los Get* devuelven (nil, nil) cuando no hay coincidencia.
type CustomerRepository interface {
	Create(customer *entity.Customer) error
	GetByID(id string) (*entity.Customer, error)
	GetByPhone(phone string) (*entity.Customer, error)
	// GetByName compara el nombre exacto sin distinguir mayúsculas.
	GetByName(name string) (*entity.Customer, error)
	List(limit, offset int) ([]*entity.Customer, error)
	Search(query string, limit int) ([]*entity.Customer, error)
	Update(customer *entity.Customer) error
	// FillContact completa phone/email/address vacíos en el registro con los
	// valores no vacíos recibidos. Nunca pisa un valor ya guardado.
	FillContact(id, phone, email, address string) error
	Delete(id string) error
	Count() (int, error)
}
