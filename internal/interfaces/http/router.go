package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Badkirked/quoteforge/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CustomerUC *usecase.CustomerUseCase
	JobUC      *usecase.JobUseCase
	PDFUC      *usecase.PDFUseCase
	ImportUC   *usecase.ImportUseCase
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Customers
	customers := api.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers.Post("/", customerHandler.Create)
	customers.Get("/", customerHandler.List)
	customers.Get("/:id", customerHandler.GetByID)
	customers.Put("/:id", customerHandler.Update)
	customers.Delete("/:id", customerHandler.Delete)

	// Jobs
	jobs := api.Group("/jobs")
	jobHandler := NewJobHandler(deps.JobUC, deps.PDFUC)
	jobs.Post("/", jobHandler.Create)
	jobs.Get("/", jobHandler.List)
	jobs.Get("/next-number", jobHandler.NextQuoteNumber)
	jobs.Get("/:id", jobHandler.GetByID)
	jobs.Put("/:id", jobHandler.Update)
	jobs.Delete("/:id", jobHandler.Delete)
	jobs.Get("/:id/pdf", jobHandler.DownloadPDF)

	// Imports
	imports := api.Group("/imports")
	importHandler := NewImportHandler(deps.ImportUC)
	imports.Post("/", importHandler.Run)
}
