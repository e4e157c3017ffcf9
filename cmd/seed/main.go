// seed siembra el catálogo de roles y, opcionalmente, el primer administrador y usuarios
// importados desde un CSV (full_name;email;password;role_id), pasando por el mismo flujo
// de alta que la API.
//
// Uso: go run ./cmd/seed [ruta/usuarios.csv]
// El administrador se toma de SEED_ADMIN_EMAIL / SEED_ADMIN_PASSWORD / SEED_ADMIN_NAME.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jhoicas/torneos-admin-api/internal/application/dto"
	"github.com/jhoicas/torneos-admin-api/internal/application/provisioning"
	"github.com/jhoicas/torneos-admin-api/internal/application/usecase"
	"github.com/jhoicas/torneos-admin-api/internal/domain/entity"
	"github.com/jhoicas/torneos-admin-api/internal/infrastructure/gotrue"
	"github.com/jhoicas/torneos-admin-api/internal/infrastructure/postgres"
	"github.com/jhoicas/torneos-admin-api/pkg/config"
	"github.com/jhoicas/torneos-admin-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel}).Named("seed")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	roleUC := usecase.NewRoleUseCase(postgres.NewRoleRepository(pool))
	if err := roleUC.Seed(ctx); err != nil {
		log.Fatal().Err(err).Msg("sembrar roles")
	}
	log.Info().Int("roles", len(entity.DefaultRoles())).Msg("roles sembrados")

	var identity provisioning.IdentityProvider
	if cfg.Identity.Provider == config.IdentityProviderGoTrue {
		identity = gotrue.New(cfg.Identity.SupabaseURL, cfg.Identity.ServiceRoleKey, cfg.Identity.AnonKey)
	} else {
		identity = postgres.NewLocalIdentityProvider(pool, postgres.TokenConfig{
			Secret: cfg.JWT.Secret, Issuer: cfg.JWT.Issuer, ExpMinutes: cfg.JWT.Expiration,
		})
	}
	svc := provisioning.NewService(
		identity,
		postgres.NewProfileRepository(pool),
		postgres.NewRoleAssignmentRepository(pool),
		postgres.NewTxRunner(pool),
		nil, log,
		provisioning.Config{BulkWorkers: cfg.Provisioning.BulkWorkers, PublicRoleID: cfg.Provisioning.PublicRoleID},
	)

	var users []dto.CreateUserRequest
	if cfg.Seed.AdminEmail != "" && cfg.Seed.AdminPassword != "" {
		users = append(users, dto.CreateUserRequest{
			FullName: cfg.Seed.AdminName,
			Email:    cfg.Seed.AdminEmail,
			Password: cfg.Seed.AdminPassword,
			RoleID:   entity.RoleAdministrador,
		})
	}
	if len(os.Args) > 1 {
		f, err := os.Open(os.Args[1])
		if err != nil {
			log.Fatal().Err(err).Msg("abrir CSV")
		}
		fromCSV, err := parseUsersCSV(f)
		f.Close()
		if err != nil {
			log.Fatal().Err(err).Msg("leer CSV")
		}
		users = append(users, fromCSV...)
	}

	var failed int
	for _, u := range users {
		out, err := svc.CreateUser(ctx, u)
		if err != nil {
			failed++
			log.Error().Err(err).Str("email", u.Email).Msg("crear usuario")
			continue
		}
		log.Info().Str("email", u.Email).Str("user_id", out.UserID).Int("id_rol", u.RoleID).Msg("usuario listo")
	}
	log.Info().Int("usuarios", len(users)).Int("fallidos", failed).Msg("seed terminado")
	if failed > 0 {
		os.Exit(1)
	}
}
