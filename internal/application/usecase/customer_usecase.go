package usecase

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Badkirked/quoteforge/internal/application/dto"
	"github.com/Badkirked/quoteforge/internal/domain"
	"github.com/Badkirked/quoteforge/internal/domain/entity"
	"github.com/Badkirked/quoteforge/internal/domain/repository"
)

// CustomerUseCase casos de uso para clientes.
type CustomerUseCase struct {
	customers repository.CustomerRepository
	jobs      repository.JobRepository
}

// NewCustomerUseCase construye el caso de uso.
func NewCustomerUseCase(customers repository.CustomerRepository, jobs repository.JobRepository) *CustomerUseCase {
	return &CustomerUseCase{customers: customers, jobs: jobs}
}

// Create crea un nuevo cliente.
func (uc *CustomerUseCase) Create(in dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.customers.GetByName(name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	customer := &entity.Customer{
		ID:        uuid.New().String(),
		Name:      name,
		Phone:     strings.TrimSpace(in.Phone),
		Email:     strings.TrimSpace(in.Email),
		Address:   strings.TrimSpace(in.Address),
		CreatedAt: time.Now(),
	}
	if err := uc.customers.Create(customer); err != nil {
		return nil, err
	}
	return customerToResponse(customer), nil
}

// Get devuelve la ficha del cliente con sus trabajos.
func (uc *CustomerUseCase) Get(id string) (*dto.CustomerDetailResponse, error) {
	customer, err := uc.customers.GetByID(id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}
	jobs, err := uc.jobs.ListByCustomer(id)
	if err != nil {
		return nil, err
	}
	out := &dto.CustomerDetailResponse{
		CustomerResponse: *customerToResponse(customer),
		Jobs:             make([]dto.JobResponse, 0, len(jobs)),
	}
	for _, j := range jobs {
		out.Jobs = append(out.Jobs, *jobToResponse(j))
	}
	return out, nil
}

// List lista clientes paginados.
func (uc *CustomerUseCase) List(page dto.PageRequest) ([]*dto.CustomerResponse, error) {
	page.DefaultPage()
	list, err := uc.customers.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.CustomerResponse, 0, len(list))
	for _, c := range list {
		out = append(out, customerToResponse(c))
	}
	return out, nil
}

// Search busca clientes por nombre parcial.
func (uc *CustomerUseCase) Search(query string, limit int) ([]*dto.CustomerResponse, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, domain.ErrInvalidInput
	}
	if limit <= 0 {
		limit = 20
	}
	list, err := uc.customers.Search(query, limit)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.CustomerResponse, 0, len(list))
	for _, c := range list {
		out = append(out, customerToResponse(c))
	}
	return out, nil
}

// Update actualiza los datos de contacto del cliente.
func (uc *CustomerUseCase) Update(id string, in dto.UpdateCustomerRequest) (*dto.CustomerResponse, error) {
	customer, err := uc.customers.GetByID(id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	customer.Name = name
	customer.Phone = strings.TrimSpace(in.Phone)
	customer.Email = strings.TrimSpace(in.Email)
	customer.Address = strings.TrimSpace(in.Address)
	if err := uc.customers.Update(customer); err != nil {
		return nil, err
	}
	return customerToResponse(customer), nil
}

// Delete elimina un cliente. Un cliente con trabajos no se puede borrar.
func (uc *CustomerUseCase) Delete(id string) error {
	customer, err := uc.customers.GetByID(id)
	if err != nil {
		return err
	}
	if customer == nil {
		return domain.ErrNotFound
	}
	jobs, err := uc.jobs.ListByCustomer(id)
	if err != nil {
		return err
	}
	if len(jobs) > 0 {
		return domain.ErrConflict
	}
	return uc.customers.Delete(id)
}

func customerToResponse(c *entity.Customer) *dto.CustomerResponse {
	return &dto.CustomerResponse{
		ID:      c.ID,
		Name:    c.Name,
		Phone:   c.Phone,
		Email:   c.Email,
		Address: c.Address,
	}
}
