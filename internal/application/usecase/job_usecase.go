package usecase

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Badkirked/quoteforge/internal/application/dto"
	"github.com/Badkirked/quoteforge/internal/application/importer"
	"github.com/Badkirked/quoteforge/internal/domain"
	"github.com/Badkirked/quoteforge/internal/domain/entity"
	"github.com/Badkirked/quoteforge/internal/domain/repository"
)

const dateLayout = "2006-01-02"

// JobUseCase casos de uso para trabajos (cotizaciones/facturas).
type JobUseCase struct {
	customers repository.CustomerRepository
	jobs      repository.JobRepository
	materials repository.MaterialRepository
}

// NewJobUseCase construye el caso de uso.
func NewJobUseCase(
	customers repository.CustomerRepository,
	jobs repository.JobRepository,
	materials repository.MaterialRepository,
) *JobUseCase {
	return &JobUseCase{customers: customers, jobs: jobs, materials: materials}
}

// Create crea un trabajo con el próximo número de cotización libre.
func (uc *JobUseCase) Create(in dto.CreateJobRequest) (*dto.JobDetailResponse, error) {
	customer, err := uc.customers.GetByID(in.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, fmt.Errorf("cliente %s: %w", in.CustomerID, domain.ErrNotFound)
	}
	if strings.TrimSpace(in.Description) == "" {
		return nil, domain.ErrInvalidInput
	}
	status := in.Status
	if status == "" {
		status = entity.StatusQuoted
	}
	if !entity.ValidStatus(status) {
		return nil, fmt.Errorf("estado %q: %w", status, domain.ErrInvalidInput)
	}
	date, err := parseDateOrToday(in.Date)
	if err != nil {
		return nil, err
	}

	alloc, err := importer.SeedAllocator(uc.jobs)
	if err != nil {
		return nil, err
	}
	qn, err := alloc.NextFresh(uc.jobs)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	job := &entity.Job{
		ID:          uuid.New().String(),
		CustomerID:  in.CustomerID,
		QuoteNumber: qn,
		Description: strings.TrimSpace(in.Description),
		Price:       in.Price,
		Deposit:     in.Deposit,
		Status:      status,
		Notes:       in.Notes,
		Date:        date,
		CreatedAt:   now,
	}
	if err := uc.jobs.Create(job); err != nil {
		return nil, err
	}

	items := materialsFromItems(job.ID, in.Materials, now)
	if len(items) > 0 {
		if err := uc.materials.CreateBatch(job.ID, items); err != nil {
			return nil, err
		}
	}
	return uc.detail(job, items), nil
}

// Get devuelve el trabajo con materiales y totales derivados.
func (uc *JobUseCase) Get(id string) (*dto.JobDetailResponse, error) {
	job, err := uc.jobs.GetByID(id)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, domain.ErrNotFound
	}
	items, err := uc.materials.ListByJob(id)
	if err != nil {
		return nil, err
	}
	return uc.detail(job, items), nil
}

// List lista trabajos paginados.
func (uc *JobUseCase) List(page dto.PageRequest) ([]*dto.JobResponse, error) {
	page.DefaultPage()
	list, err := uc.jobs.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.JobResponse, 0, len(list))
	for _, j := range list {
		out = append(out, jobToResponse(j))
	}
	return out, nil
}

// Update actualiza el trabajo; los materiales recibidos reemplazan por
// completo a los existentes.
func (uc *JobUseCase) Update(id string, in dto.UpdateJobRequest) (*dto.JobDetailResponse, error) {
	job, err := uc.jobs.GetByID(id)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, domain.ErrNotFound
	}
	if strings.TrimSpace(in.Description) == "" {
		return nil, domain.ErrInvalidInput
	}
	if !entity.ValidStatus(in.Status) {
		return nil, fmt.Errorf("estado %q: %w", in.Status, domain.ErrInvalidInput)
	}
	date := job.Date
	if in.Date != "" {
		if date, err = time.Parse(dateLayout, in.Date); err != nil {
			return nil, fmt.Errorf("fecha %q: %w", in.Date, domain.ErrInvalidInput)
		}
	}

	job.Description = strings.TrimSpace(in.Description)
	job.Price = in.Price
	job.Deposit = in.Deposit
	job.Status = in.Status
	job.Notes = in.Notes
	job.Date = date
	if err := uc.jobs.Update(job); err != nil {
		return nil, err
	}

	items := materialsFromItems(job.ID, in.Materials, time.Now())
	if err := uc.materials.ReplaceForJob(job.ID, items); err != nil {
		return nil, err
	}
	return uc.detail(job, items), nil
}

// Delete elimina el trabajo y sus materiales.
func (uc *JobUseCase) Delete(id string) error {
	job, err := uc.jobs.GetByID(id)
	if err != nil {
		return err
	}
	if job == nil {
		return domain.ErrNotFound
	}
	return uc.jobs.Delete(id)
}

// NextQuoteNumber devuelve el número que recibiría el próximo trabajo,
// sin reservarlo.
func (uc *JobUseCase) NextQuoteNumber() (string, error) {
	max, err := uc.jobs.MaxQuoteSequence()
	if err != nil {
		return "", err
	}
	return importer.FormatQuoteNumber(max + 1), nil
}

func (uc *JobUseCase) detail(job *entity.Job, items []*entity.Material) *dto.JobDetailResponse {
	out := &dto.JobDetailResponse{
		JobResponse: *jobToResponse(job),
		Materials:   make([]dto.MaterialItem, 0, len(items)),
		GST:         job.GST(),
		PriceIncGST: job.PriceIncGST(),
		TotalCOGS:   job.TotalCOGS(items),
		GrossProfit: job.GrossProfit(items),
	}
	for _, m := range items {
		out.Materials = append(out.Materials, dto.MaterialItem{
			Category:    m.Category,
			Description: m.Description,
			Cost:        m.Cost,
		})
	}
	return out
}

func jobToResponse(j *entity.Job) *dto.JobResponse {
	return &dto.JobResponse{
		ID:          j.ID,
		CustomerID:  j.CustomerID,
		QuoteNumber: j.QuoteNumber,
		Description: j.Description,
		Price:       j.Price,
		Deposit:     j.Deposit,
		Status:      j.Status,
		Notes:       j.Notes,
		Date:        j.Date.Format(dateLayout),
	}
}

// parseDateOrToday interpreta una fecha YYYY-MM-DD; vacía es hoy (solo día).
func parseDateOrToday(s string) (time.Time, error) {
	if s == "" {
		now := time.Now().UTC()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	date, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("fecha %q: %w", s, domain.ErrInvalidInput)
	}
	return date, nil
}

func materialsFromItems(jobID string, in []dto.MaterialItem, now time.Time) []*entity.Material {
	items := make([]*entity.Material, 0, len(in))
	for _, m := range in {
		category := m.Category
		if category == "" {
			category = entity.CategoryMaterials
		}
		cost := m.Cost
		if cost.IsNegative() {
			cost = decimal.Zero
		}
		items = append(items, &entity.Material{
			ID:          uuid.New().String(),
			JobID:       jobID,
			Category:    category,
			Description: m.Description,
			Cost:        cost,
			CreatedAt:   now,
		})
	}
	return items
}
