package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/Badkirked/quoteforge/internal/domain"
	"github.com/Badkirked/quoteforge/internal/domain/entity"
	"github.com/Badkirked/quoteforge/internal/domain/repository"
)

// QuotePDFGenerator puerto de generación del PDF de cotización.
type QuotePDFGenerator interface {
	GenerateQuotePDF(
		ctx context.Context,
		job *entity.Job,
		customer *entity.Customer,
		materials []*entity.Material,
	) ([]byte, error)
}

// PDFUseCase genera el PDF de una cotización para enviar al cliente.
type PDFUseCase struct {
	jobs      repository.JobRepository
	customers repository.CustomerRepository
	materials repository.MaterialRepository
	generator QuotePDFGenerator
}

// NewPDFUseCase construye el caso de uso inyectando sus dependencias.
func NewPDFUseCase(
	jobs repository.JobRepository,
	customers repository.CustomerRepository,
	materials repository.MaterialRepository,
	generator QuotePDFGenerator,
) *PDFUseCase {
	return &PDFUseCase{
		jobs:      jobs,
		customers: customers,
		materials: materials,
		generator: generator,
	}
}

// DownloadQuotePDF carga el trabajo con su cliente y materiales y genera el
// PDF. Devuelve los bytes y un nombre de archivo basado en el número de
// cotización.
func (uc *PDFUseCase) DownloadQuotePDF(ctx context.Context, jobID string) (pdfBytes []byte, filename string, err error) {
	job, err := uc.jobs.GetByID(jobID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener trabajo: %w", err)
	}
	if job == nil {
		return nil, "", domain.ErrNotFound
	}

	customer, err := uc.customers.GetByID(job.CustomerID)
	if err != nil || customer == nil {
		return nil, "", fmt.Errorf("pdf: obtener cliente: %w", err)
	}

	items, err := uc.materials.ListByJob(jobID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener materiales: %w", err)
	}

	pdfBytes, err = uc.generator.GenerateQuotePDF(ctx, job, customer, items)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generación fallida: %w", err)
	}

	filename = fmt.Sprintf("quote_%s.pdf", strings.ToLower(job.QuoteNumber))
	return pdfBytes, filename, nil
}
