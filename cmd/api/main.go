package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	_ "github.com/jhoicas/torneos-admin-api/docs"
	"github.com/jhoicas/torneos-admin-api/internal/application/auth"
	"github.com/jhoicas/torneos-admin-api/internal/application/provisioning"
	"github.com/jhoicas/torneos-admin-api/internal/application/registration"
	"github.com/jhoicas/torneos-admin-api/internal/application/usecase"
	"github.com/jhoicas/torneos-admin-api/internal/infrastructure/gotrue"
	"github.com/jhoicas/torneos-admin-api/internal/infrastructure/messaging"
	infrapdf "github.com/jhoicas/torneos-admin-api/internal/infrastructure/pdf"
	"github.com/jhoicas/torneos-admin-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/torneos-admin-api/internal/interfaces/http"
	"github.com/jhoicas/torneos-admin-api/pkg/config"
	"github.com/jhoicas/torneos-admin-api/pkg/logger"
)

// @title                       Torneos Admin API
// @version                     1.0
// @description                 Administración de usuarios, roles e inscripciones de eventos deportivos.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("identity_provider", cfg.Identity.Provider).
		Msg("iniciando aplicación")
	if cfg.JWT.Secret == "" {
		log.Warn().Msg("JWT_SECRET vacío: ningún token será aceptado")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	profileRepo := postgres.NewProfileRepository(pool)
	assignmentRepo := postgres.NewRoleAssignmentRepository(pool)
	roleRepo := postgres.NewRoleRepository(pool)
	registrationRepo := postgres.NewRegistrationRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Proveedor de identidad: GoTrue (Supabase) o tabla auth_users local
	var (
		identity provisioning.IdentityProvider
		authn    auth.Authenticator
	)
	switch cfg.Identity.Provider {
	case config.IdentityProviderGoTrue:
		client := gotrue.New(cfg.Identity.SupabaseURL, cfg.Identity.ServiceRoleKey, cfg.Identity.AnonKey)
		identity, authn = client, client
	default:
		local := postgres.NewLocalIdentityProvider(pool, postgres.TokenConfig{
			Secret:     cfg.JWT.Secret,
			Issuer:     cfg.JWT.Issuer,
			ExpMinutes: cfg.JWT.Expiration,
		})
		identity, authn = local, local
	}

	// Eventos de ciclo de vida: RabbitMQ si hay AMQP_URL
	var events provisioning.EventPublisher = provisioning.NopPublisher{}
	if cfg.AMQP.URL != "" {
		publisher, err := messaging.NewRabbitPublisher(cfg.AMQP.URL, cfg.AMQP.Exchange, cfg.App.Name)
		if err != nil {
			log.Warn().Err(err).Msg("RabbitMQ no disponible, eventos deshabilitados")
		} else {
			defer publisher.Close()
			events = publisher
		}
	}

	provisioningSvc := provisioning.NewService(
		identity, profileRepo, assignmentRepo, txRunner, events, log,
		provisioning.Config{
			BulkWorkers:  cfg.Provisioning.BulkWorkers,
			PublicRoleID: cfg.Provisioning.PublicRoleID,
		},
	)
	authUC := auth.NewAuthUseCase(authn, profileRepo, assignmentRepo)
	userUC := usecase.NewUserUseCase(profileRepo, roleRepo, txRunner)
	roleUC := usecase.NewRoleUseCase(roleRepo)
	registrationUC := registration.NewUseCase(registrationRepo, infrapdf.NewMarotoPDFGenerator(cfg.App.Name))

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30, // bulk-delete puede tardar con muchos usuarios
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Torneos Admin API",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		AppName:       cfg.App.Name,
		Provisioning:  provisioningSvc,
		Users:         userUC,
		Sessions:      authUC,
		Roles:         roleUC,
		Registrations: registrationUC,
		RoleResolver:  authUC,
		JWTSecret:     cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
