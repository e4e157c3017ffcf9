package http

import (
	"context"
	"slices"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/torneos-admin-api/internal/application/dto"
	"github.com/jhoicas/torneos-admin-api/pkg/jwt"
)

// Locals keys que cargan los middlewares de auth.
const (
	LocalUserID = "user_id"
	LocalEmail  = "email"
	LocalRoleID = "role_id"
)

// RoleResolver resuelve el rol vigente de un usuario (0 = sin rol). Lo implementa *auth.AuthUseCase.
type RoleResolver interface {
	RoleOf(ctx context.Context, userID string) (int, error)
}

// AuthMiddleware valida el Bearer Token JWT y extrae UserID y Email a c.Locals.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Error: "Authorization header requerido"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Error: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Error: "token vacío"})
		}
		userID, email, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Error: "token inválido o expirado"})
		}
		c.Locals(LocalUserID, userID)
		c.Locals(LocalEmail, email)
		return c.Next()
	}
}

// RequireRole autoriza solo a los usuarios cuyo rol en user_roles esté entre roleIDs.
// El rol no se toma del token: se consulta en cada petición. Debe ir DESPUÉS de AuthMiddleware.
//
// Comportamiento:
//   - 401 si no hay user_id en el contexto.
//   - 403 si el usuario no tiene rol o su rol no está permitido.
//   - 503 si falla la consulta del rol.
func RequireRole(resolver RoleResolver, roleIDs ...int) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := GetUserID(c)
		if userID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Error: "token inválido"})
		}
		roleID, err := resolver.RoleOf(c.Context(), userID)
		if err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
				Code:  "ROLE_CHECK_FAILED",
				Error: "no se pudo verificar el rol, intente más tarde",
			})
		}
		if roleID == 0 || !slices.Contains(roleIDs, roleID) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Error: "rol sin permiso para este recurso"})
		}
		c.Locals(LocalRoleID, roleID)
		return c.Next()
	}
}

// GetUserID devuelve el UserID del contexto (después del middleware de auth).
func GetUserID(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalUserID).(string)
	return s
}

// GetEmail devuelve el email del token.
func GetEmail(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalEmail).(string)
	return s
}

// GetRole devuelve el rol resuelto por RequireRole (0 si no pasó por él).
func GetRole(c *fiber.Ctx) int {
	r, _ := c.Locals(LocalRoleID).(int)
	return r
}
