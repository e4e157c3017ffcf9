package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/torneos-admin-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AppName       string
	Provisioning  userProvisioner
	Users         userAdmin
	Sessions      sessionService
	Roles         roleLister
	Registrations registrationService
	RoleResolver  RoleResolver
	JWTSecret     string
}

// Router registra las rutas de la API, /health y /metrics.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": deps.AppName})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	api := app.Group("/api")
	authMW := AuthMiddleware(deps.JWTSecret)

	// Auth: registro y login públicos, /me protegido
	authHandler := NewAuthHandler(deps.Provisioning, deps.Sessions)
	authGroup := api.Group("/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Get("/me", authMW, authHandler.Me)

	// Roles (cualquier usuario autenticado)
	roleHandler := NewRoleHandler(deps.Roles)
	api.Get("/roles", authMW, roleHandler.List)

	// Administración de usuarios (solo administrador)
	userHandler := NewUserHandler(deps.Provisioning, deps.Users)
	admin := api.Group("/admin", authMW, RequireRole(deps.RoleResolver, entity.RoleAdministrador))
	users := admin.Group("/users")
	users.Post("/", userHandler.Create)
	users.Get("/", userHandler.List)
	users.Delete("/", userHandler.Delete)
	users.Post("/bulk-delete", userHandler.BulkDelete)
	users.Delete("/:id", userHandler.Delete)
	users.Put("/:id/role", userHandler.UpdateRole)

	// Inscripciones
	regHandler := NewRegistrationHandler(deps.Registrations)
	regs := api.Group("/registrations", authMW)
	regs.Get("/", RequireRole(deps.RoleResolver, allRoles()...), regHandler.List)
	regs.Get("/export.pdf", RequireRole(deps.RoleResolver, entity.RoleAdministrador, entity.RoleLiderEquipo), regHandler.ExportPDF)
	regs.Post("/", RequireRole(deps.RoleResolver, entity.RoleAdministrador, entity.RoleLiderEquipo), regHandler.Create)
	regs.Delete("/:id", RequireRole(deps.RoleResolver, entity.RoleAdministrador), regHandler.Delete)
}

func allRoles() []int {
	roles := entity.DefaultRoles()
	ids := make([]int, 0, len(roles))
	for _, r := range roles {
		ids = append(ids, r.ID)
	}
	return ids
}
