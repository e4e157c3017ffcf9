package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/torneos-admin-api/internal/application/dto"
)

type roleLister interface {
	List(ctx context.Context) ([]dto.RoleResponse, error)
}

// RoleHandler catálogo de roles.
type RoleHandler struct {
	uc roleLister
}

// NewRoleHandler construye el handler.
func NewRoleHandler(uc roleLister) *RoleHandler {
	return &RoleHandler{uc: uc}
}

// List godoc
// @Summary      Listar roles
// @Tags         roles
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  dto.RoleResponse
// @Router       /api/roles [get]
func (h *RoleHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
