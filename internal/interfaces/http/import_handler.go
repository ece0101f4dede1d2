package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/Badkirked/quoteforge/internal/application/dto"
	"github.com/Badkirked/quoteforge/internal/application/usecase"
	"github.com/Badkirked/quoteforge/internal/domain"
)

// ImportHandler dispara corridas de importación de planillas.
type ImportHandler struct {
	uc *usecase.ImportUseCase
}

// NewImportHandler construye el handler.
func NewImportHandler(uc *usecase.ImportUseCase) *ImportHandler {
	return &ImportHandler{uc: uc}
}

// Run POST /api/imports
//
// La corrida es sincrónica: la respuesta llega cuando el libro completo fue
// procesado. Si el cliente corta la conexión, el contexto se cancela y los
// lotes ya confirmados se conservan.
func (h *ImportHandler) Run(c *fiber.Ctx) error {
	var in dto.RunImportRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	summary, err := h.uc.Run(c.Context(), in.Mode)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
		}
		if errors.Is(err, domain.ErrStoreNotEmpty) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "STORE_NOT_EMPTY", Message: "full_reload requiere una base vacía"})
		}
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NO_SOURCE", Message: "ningún archivo fuente configurado existe"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "IMPORT_FAILED", Message: err.Error()})
	}
	return c.JSON(summary)
}
