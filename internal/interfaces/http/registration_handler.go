package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/torneos-admin-api/internal/application/dto"
)

// registrationService lo implementa *registration.UseCase.
type registrationService interface {
	Create(ctx context.Context, callerID string, callerRole int, in dto.CreateRegistrationRequest) (*dto.RegistrationResponse, error)
	List(ctx context.Context, event string) (*dto.RegistrationListResponse, error)
	Delete(ctx context.Context, id string) error
	ExportPDF(ctx context.Context, event string) ([]byte, string, error)
}

// RegistrationHandler inscripciones de equipos a eventos.
type RegistrationHandler struct {
	uc registrationService
}

// NewRegistrationHandler construye el handler.
func NewRegistrationHandler(uc registrationService) *RegistrationHandler {
	return &RegistrationHandler{uc: uc}
}

// Create godoc
// @Summary      Inscribir equipo
// @Description  Líderes de equipo inscriben a su nombre; un administrador puede indicar responsable_id.
// @Tags         registrations
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      dto.CreateRegistrationRequest  true  "evento, equipo, categoria, cuota"
// @Success      201   {object}  dto.RegistrationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/registrations [post]
func (h *RegistrationHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateRegistrationRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Create(c.Context(), GetUserID(c), GetRole(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar inscripciones
// @Tags         registrations
// @Produce      json
// @Security     BearerAuth
// @Param        evento  query     string  false  "filtrar por evento"
// @Success      200     {object}  dto.RegistrationListResponse
// @Router       /api/registrations [get]
func (h *RegistrationHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Context(), c.Query("evento"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar inscripción
// @Tags         registrations
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "ID de la inscripción"
// @Success      200  {object}  dto.SuccessResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/registrations/{id} [delete]
func (h *RegistrationHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.SuccessResponse{Success: true})
}

// ExportPDF godoc
// @Summary      Planilla PDF de inscripciones
// @Tags         registrations
// @Produce      application/pdf
// @Security     BearerAuth
// @Param        evento  query  string  true  "evento"
// @Success      200     {file}  binary
// @Failure      400     {object}  dto.ErrorResponse
// @Failure      404     {object}  dto.ErrorResponse
// @Router       /api/registrations/export.pdf [get]
func (h *RegistrationHandler) ExportPDF(c *fiber.Ctx) error {
	pdfBytes, filename, err := h.uc.ExportPDF(c.Context(), c.Query("evento"))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdfBytes)
}
