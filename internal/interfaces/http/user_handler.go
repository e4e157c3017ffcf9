package http

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/torneos-admin-api/internal/application/dto"
	"github.com/jhoicas/torneos-admin-api/internal/domain"
)

// userProvisioner alta y baja de usuarios. Lo implementa *provisioning.Service.
type userProvisioner interface {
	CreateUser(ctx context.Context, in dto.CreateUserRequest) (*dto.CreateUserResponse, error)
	DeleteUser(ctx context.Context, userID string) error
	BulkDeleteUsersByRole(ctx context.Context, in dto.BulkDeleteRequest) (*dto.BulkDeleteResponse, error)
	PublicRegister(ctx context.Context, in dto.RegisterRequest) (*dto.SuccessResponse, error)
}

// userAdmin consulta y cambio de rol. Lo implementa *usecase.UserUseCase.
type userAdmin interface {
	List(ctx context.Context, roleID int, page dto.PageRequest) (*dto.UserListResponse, error)
	UpdateRole(ctx context.Context, userID string, in dto.UpdateRoleRequest) (*dto.UserResponse, error)
}

// UserHandler endpoints de administración de usuarios (solo administradores).
type UserHandler struct {
	prov  userProvisioner
	admin userAdmin
}

// NewUserHandler construye el handler.
func NewUserHandler(prov userProvisioner, admin userAdmin) *UserHandler {
	return &UserHandler{prov: prov, admin: admin}
}

// Create godoc
// @Summary      Crear usuario
// @Description  Crea la identidad, el perfil y la asignación de rol. Si el email ya existe reutiliza la identidad.
// @Tags         admin-users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      dto.CreateUserRequest  true  "full_name, email, password, role_id"
// @Success      201   {object}  dto.CreateUserResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/admin/users [post]
func (h *UserHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateUserRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.prov.CreateUser(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Delete godoc
// @Summary      Eliminar usuario
// @Description  Borra asignaciones de rol, perfil e identidad. El id va en la ruta, en el body o en ?user_id=.
// @Tags         admin-users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                 false  "ID del usuario"
// @Param        user_id  query     string                 false  "ID del usuario"
// @Param        body     body      dto.DeleteUserRequest  false  "user_id"
// @Success      200      {object}  dto.SuccessResponse
// @Failure      400      {object}  dto.ErrorResponse
// @Failure      500      {object}  dto.ErrorResponse
// @Router       /api/admin/users/{id} [delete]
// @Router       /api/admin/users [delete]
func (h *UserHandler) Delete(c *fiber.Ctx) error {
	userID := c.Params("id")
	if userID == "" && len(c.Body()) > 0 {
		var in dto.DeleteUserRequest
		if err := c.BodyParser(&in); err != nil {
			return invalidBody(c)
		}
		userID = in.UserID
	}
	if userID == "" {
		userID = c.Query("user_id")
	}
	if err := h.prov.DeleteUser(c.Context(), userID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.SuccessResponse{Success: true})
}

// BulkDelete godoc
// @Summary      Eliminar usuarios por rol
// @Description  Borra todos los usuarios con alguno de los roles indicados. Los fallos por usuario van en errors.
// @Tags         admin-users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      dto.BulkDeleteRequest  true  "role_ids"
// @Success      200   {object}  dto.BulkDeleteResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.BulkDeleteResponse
// @Router       /api/admin/users/bulk-delete [post]
func (h *UserHandler) BulkDelete(c *fiber.Ctx) error {
	var in dto.BulkDeleteRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.prov.BulkDeleteUsersByRole(c.Context(), in)
	if err != nil {
		if out == nil {
			return respondError(c, err)
		}
		// Fallo tras borrar identidades: se devuelve el resultado parcial.
		step := domain.FailedStep(err)
		log.Error().Err(err).Str("path", c.Path()).Str("step", step).Int("deleted", out.Deleted).Msg("borrado masivo incompleto")
		out.Code = "PROVISIONING_FAILED"
		out.Error = "falló el paso " + step
		return c.Status(fiber.StatusInternalServerError).JSON(out)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar usuarios
// @Tags         admin-users
// @Produce      json
// @Security     BearerAuth
// @Param        limit    query     int  false  "máx. 100"
// @Param        offset   query     int  false  "desplazamiento"
// @Param        role_id  query     int  false  "filtrar por rol"
// @Success      200      {object}  dto.UserListResponse
// @Router       /api/admin/users [get]
func (h *UserHandler) List(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	out, err := h.admin.List(c.Context(), c.QueryInt("role_id", 0), page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// UpdateRole godoc
// @Summary      Cambiar rol de un usuario
// @Tags         admin-users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                 true  "ID del usuario"
// @Param        body  body      dto.UpdateRoleRequest  true  "role_id"
// @Success      200   {object}  dto.UserResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/admin/users/{id}/role [put]
func (h *UserHandler) UpdateRole(c *fiber.Ctx) error {
	var in dto.UpdateRoleRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.admin.UpdateRole(c.Context(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
