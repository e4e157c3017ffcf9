package auth

import (
	"context"
	"strings"

	"github.com/jhoicas/torneos-admin-api/internal/application/dto"
	"github.com/jhoicas/torneos-admin-api/internal/domain"
	"github.com/jhoicas/torneos-admin-api/internal/domain/entity"
	"github.com/jhoicas/torneos-admin-api/internal/domain/repository"
)

// Session sesión emitida por el proveedor de identidad tras un login correcto.
type Session struct {
	AccessToken string
	ExpiresIn   int // segundos
	Identity    entity.Identity
}

// Authenticator login por email y contraseña contra el proveedor de identidad.
// Devuelve domain.ErrUnauthorized si las credenciales no son válidas.
type Authenticator interface {
	SignIn(ctx context.Context, email, password string) (*Session, error)
}

// AuthUseCase casos de uso de autenticación: login, perfil propio y resolución de rol.
type AuthUseCase struct {
	authn    Authenticator
	profiles repository.ProfileRepository
	roles    repository.RoleAssignmentRepository
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(authn Authenticator, profiles repository.ProfileRepository, roles repository.RoleAssignmentRepository) *AuthUseCase {
	return &AuthUseCase{authn: authn, profiles: profiles, roles: roles}
}

// Login valida credenciales y devuelve el token del proveedor junto con el perfil.
// Una identidad sin perfil no puede entrar al panel.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || in.Password == "" {
		return nil, domain.ErrValidation
	}
	session, err := uc.authn.SignIn(ctx, email, in.Password)
	if err != nil {
		return nil, err
	}
	profile, err := uc.profiles.GetByID(ctx, session.Identity.ID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, domain.ErrForbidden
	}
	return &dto.LoginResponse{
		AccessToken: session.AccessToken,
		TokenType:   "bearer",
		ExpiresIn:   session.ExpiresIn,
		User:        ToUserResponse(profile),
	}, nil
}

// Me devuelve el perfil del usuario autenticado.
func (uc *AuthUseCase) Me(ctx context.Context, userID string) (*dto.UserResponse, error) {
	profile, err := uc.profiles.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, domain.ErrUserNotFound
	}
	out := ToUserResponse(profile)
	return &out, nil
}

// RoleOf resuelve el rol vigente del usuario (0 si no tiene). Lo usa el middleware RBAC.
func (uc *AuthUseCase) RoleOf(ctx context.Context, userID string) (int, error) {
	return uc.roles.RoleOf(ctx, userID)
}

// ToUserResponse convierte un perfil a su DTO.
func ToUserResponse(p *entity.Profile) dto.UserResponse {
	return dto.UserResponse{
		ID:        p.ID,
		FullName:  p.FullName,
		Email:     p.Email,
		RoleID:    p.RoleID,
		RoleName:  p.RoleName,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}
