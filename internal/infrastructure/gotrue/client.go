// Package gotrue implementa el proveedor de identidad sobre la API de GoTrue (Supabase Auth):
// endpoints admin con la clave service_role y login por password con la clave anon.
package gotrue

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/jhoicas/torneos-admin-api/internal/application/auth"
	"github.com/jhoicas/torneos-admin-api/internal/application/provisioning"
	"github.com/jhoicas/torneos-admin-api/internal/domain"
	"github.com/jhoicas/torneos-admin-api/internal/domain/entity"
)

var (
	_ provisioning.IdentityProvider = (*Client)(nil)
	_ auth.Authenticator            = (*Client)(nil)
)

const (
	// perPage tamaño de página al buscar por email (la API admin no filtra por email).
	perPage = 200
	// maxPages corta la búsqueda en proyectos muy grandes.
	maxPages = 50
)

// Client adaptador HTTP de GoTrue. Usa net/http como el resto de adaptadores REST del proyecto.
type Client struct {
	baseURL    string
	serviceKey string
	anonKey    string
	httpClient *http.Client
}

// New construye el cliente. baseURL es la URL del proyecto (https://<ref>.supabase.co).
func New(baseURL, serviceKey, anonKey string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/") + "/auth/v1",
		serviceKey: serviceKey,
		anonKey:    anonKey,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// ── Estructuras del protocolo GoTrue ─────────────────────────────────────────

type gotrueUser struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

type adminCreateRequest struct {
	Email        string `json:"email"`
	Password     string `json:"password"`
	EmailConfirm bool   `json:"email_confirm"`
}

type listUsersResponse struct {
	Users []gotrueUser `json:"users"`
}

type tokenResponse struct {
	AccessToken string     `json:"access_token"`
	TokenType   string     `json:"token_type"`
	ExpiresIn   int        `json:"expires_in"`
	User        gotrueUser `json:"user"`
}

// apiError cubre los dos formatos de error de GoTrue (msg/error_code y error/error_description).
type apiError struct {
	Status           int    `json:"-"`
	Code             any    `json:"code"`
	ErrorCode        string `json:"error_code"`
	Msg              string `json:"msg"`
	Message          string `json:"message"`
	Err              string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

func (e *apiError) Error() string {
	msg := firstNonEmpty(e.Msg, e.Message, e.ErrorDescription, e.Err)
	if e.ErrorCode != "" {
		return fmt.Sprintf("gotrue: HTTP %d (%s): %s", e.Status, e.ErrorCode, msg)
	}
	return fmt.Sprintf("gotrue: HTTP %d: %s", e.Status, msg)
}

// isDuplicate reconoce "email ya registrado" por código o, en versiones viejas, por el mensaje.
func (e *apiError) isDuplicate() bool {
	switch e.ErrorCode {
	case "email_exists", "user_already_exists":
		return true
	}
	msg := strings.ToLower(firstNonEmpty(e.Msg, e.Message, e.ErrorDescription))
	return strings.Contains(msg, "already registered") || strings.Contains(msg, "already been registered")
}

// ── IdentityProvider ─────────────────────────────────────────────────────────

// CreateUser crea la identidad con el email ya confirmado.
func (c *Client) CreateUser(ctx context.Context, email, password string) (*entity.Identity, error) {
	var u gotrueUser
	err := c.do(ctx, http.MethodPost, "/admin/users", c.serviceKey,
		adminCreateRequest{Email: email, Password: password, EmailConfirm: true}, &u)
	if err != nil {
		if apiErr, ok := err.(*apiError); ok && apiErr.isDuplicate() {
			return nil, domain.ErrIdentityExists
		}
		return nil, err
	}
	return toIdentity(u), nil
}

// GetUserByEmail recorre las páginas de /admin/users hasta encontrar el email.
func (c *Client) GetUserByEmail(ctx context.Context, email string) (*entity.Identity, error) {
	for page := 1; page <= maxPages; page++ {
		var out listUsersResponse
		path := fmt.Sprintf("/admin/users?page=%d&per_page=%d", page, perPage)
		if err := c.do(ctx, http.MethodGet, path, c.serviceKey, nil, &out); err != nil {
			return nil, err
		}
		for _, u := range out.Users {
			if strings.EqualFold(u.Email, email) {
				return toIdentity(u), nil
			}
		}
		if len(out.Users) < perPage {
			return nil, nil
		}
	}
	return nil, fmt.Errorf("gotrue: email no encontrado en las primeras %d páginas", maxPages)
}

// DeleteUser borra la identidad. 404 se trata como éxito: no había nada que borrar.
func (c *Client) DeleteUser(ctx context.Context, id string) error {
	err := c.do(ctx, http.MethodDelete, "/admin/users/"+url.PathEscape(id), c.serviceKey, nil, nil)
	if apiErr, ok := err.(*apiError); ok && apiErr.Status == http.StatusNotFound {
		return nil
	}
	return err
}

// ── Authenticator ────────────────────────────────────────────────────────────

// SignIn login con grant_type=password.
func (c *Client) SignIn(ctx context.Context, email, password string) (*auth.Session, error) {
	var out tokenResponse
	body := map[string]string{"email": email, "password": password}
	err := c.do(ctx, http.MethodPost, "/token?grant_type=password", c.anonKey, body, &out)
	if err != nil {
		if apiErr, ok := err.(*apiError); ok && (apiErr.Status == http.StatusBadRequest || apiErr.Status == http.StatusUnauthorized) {
			return nil, domain.ErrUnauthorized
		}
		return nil, err
	}
	return &auth.Session{AccessToken: out.AccessToken, ExpiresIn: out.ExpiresIn, Identity: *toIdentity(out.User)}, nil
}

// ── Transporte ───────────────────────────────────────────────────────────────

func (c *Client) do(ctx context.Context, method, path, key string, in, out any) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("gotrue: serializar request: %w", err)
		}
		body = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("gotrue: crear HTTP request: %w", err)
	}
	req.Header.Set("apikey", key)
	req.Header.Set("Authorization", "Bearer "+key)
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("gotrue: timeout o cancelación: %w", ctx.Err())
		}
		return fmt.Errorf("gotrue: llamada HTTP fallida: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("gotrue: leer respuesta: %w", err)
	}
	if resp.StatusCode >= 300 {
		apiErr := &apiError{}
		_ = json.Unmarshal(raw, apiErr)
		apiErr.Status = resp.StatusCode
		if firstNonEmpty(apiErr.Msg, apiErr.Message, apiErr.ErrorDescription, apiErr.Err) == "" {
			apiErr.Msg = strings.TrimSpace(string(raw))
		}
		return apiErr
	}
	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("gotrue: parsear respuesta: %w", err)
	}
	return nil
}

func toIdentity(u gotrueUser) *entity.Identity {
	return &entity.Identity{ID: u.ID, Email: u.Email, CreatedAt: u.CreatedAt}
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
