package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/torneos-admin-api/internal/application/auth"
	"github.com/jhoicas/torneos-admin-api/internal/application/provisioning"
	"github.com/jhoicas/torneos-admin-api/internal/domain"
	"github.com/jhoicas/torneos-admin-api/internal/domain/entity"
	"github.com/jhoicas/torneos-admin-api/pkg/jwt"
)

var (
	_ provisioning.IdentityProvider = (*LocalIdentityProvider)(nil)
	_ auth.Authenticator            = (*LocalIdentityProvider)(nil)
)

// TokenConfig firma de tokens del proveedor local (mismo formato que GoTrue).
type TokenConfig struct {
	Secret     string
	Issuer     string
	ExpMinutes int
}

// LocalIdentityProvider proveedor de identidad sobre la tabla auth_users, para desarrollo
// y despliegues sin GoTrue. Contraseñas con bcrypt.
type LocalIdentityProvider struct {
	q      Querier
	tokens TokenConfig
}

// NewLocalIdentityProvider construye el proveedor local.
func NewLocalIdentityProvider(q Querier, tokens TokenConfig) *LocalIdentityProvider {
	return &LocalIdentityProvider{q: q, tokens: tokens}
}

// CreateUser crea la identidad. Email repetido → domain.ErrIdentityExists.
func (p *LocalIdentityProvider) CreateUser(ctx context.Context, email, password string) (*entity.Identity, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	id := entity.Identity{ID: uuid.New().String(), Email: email, CreatedAt: time.Now().UTC()}
	_, err = p.q.Exec(ctx,
		`INSERT INTO auth_users (id, email, password_hash, created_at) VALUES ($1, $2, $3, $4)`,
		id.ID, id.Email, string(hash), id.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrIdentityExists
		}
		return nil, fmt.Errorf("insert auth user: %w", err)
	}
	return &id, nil
}

// GetUserByEmail devuelve nil, nil si no existe.
func (p *LocalIdentityProvider) GetUserByEmail(ctx context.Context, email string) (*entity.Identity, error) {
	id, _, err := p.findByEmail(ctx, email)
	return id, err
}

// DeleteUser borra la identidad; cero filas afectadas no es error.
func (p *LocalIdentityProvider) DeleteUser(ctx context.Context, id string) error {
	if _, err := p.q.Exec(ctx, `DELETE FROM auth_users WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete auth user: %w", err)
	}
	return nil
}

// SignIn verifica la contraseña y emite un access token HS256.
func (p *LocalIdentityProvider) SignIn(ctx context.Context, email, password string) (*auth.Session, error) {
	id, hash, err := p.findByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if id == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	token, err := jwt.Generate(p.tokens.Secret, id.ID, id.Email, p.tokens.Issuer, p.tokens.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &auth.Session{AccessToken: token, ExpiresIn: p.tokens.ExpMinutes * 60, Identity: *id}, nil
}

func (p *LocalIdentityProvider) findByEmail(ctx context.Context, email string) (*entity.Identity, string, error) {
	var (
		id   entity.Identity
		hash string
	)
	err := p.q.QueryRow(ctx,
		`SELECT id, email, password_hash, created_at FROM auth_users WHERE email = $1`, email,
	).Scan(&id.ID, &id.Email, &hash, &id.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", nil
		}
		return nil, "", fmt.Errorf("get auth user by email: %w", err)
	}
	return &id, hash, nil
}
