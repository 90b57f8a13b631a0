package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/Edney2025/edyfinance-pro/domain"
)

// IdentityService is the boundary to the external identity provider.
// GetSession returns (nil, nil) for an anonymous visitor; an error means
// the provider could not be consulted at all.
type IdentityService interface {
	SignIn(ctx context.Context, email, password string) (*domain.Session, error)
	GetSession(ctx context.Context) (*domain.Session, error)
	OnAuthStateChange(fn func(*domain.Session)) (unsubscribe func())
	SignOut(ctx context.Context) error
}

// CPFEmail maps a CPF to the e-mail the identity service expects:
// punctuation stripped, fictitious domain appended.
func CPFEmail(cpf, domain string) string {
	clean := strings.NewReplacer(".", "", "-", "", " ", "").Replace(cpf)
	return clean + domain
}

// GoTrueClient implements IdentityService against a Supabase-style auth
// endpoint. The process-local session is the only mutable state; every
// change is broadcast to subscribers.
type GoTrueClient struct {
	baseURL string
	anonKey string
	http    *http.Client
	logger  *zap.Logger

	mu        sync.Mutex
	session   *domain.Session
	listeners map[int]func(*domain.Session)
	nextID    int
}

func NewGoTrueClient(baseURL, anonKey string, logger *zap.Logger) *GoTrueClient {
	return &GoTrueClient{
		baseURL:   strings.TrimRight(baseURL, "/"),
		anonKey:   anonKey,
		http:      &http.Client{Timeout: 15 * time.Second},
		logger:    logger,
		listeners: make(map[int]func(*domain.Session)),
	}
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
	User        struct {
		ID    string `json:"id"`
		Email string `json:"email"`
	} `json:"user"`
}

func (c *GoTrueClient) SignIn(ctx context.Context, email, password string) (*domain.Session, error) {
	payload, err := json.Marshal(map[string]string{"email": email, "password": password})
	if err != nil {
		return nil, &RequestError{Err: err}
	}

	url := c.baseURL + "/auth/v1/token?grant_type=password"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, &RequestError{Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apikey", c.anonKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &RequestError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var body struct {
			Error            string `json:"error"`
			ErrorDescription string `json:"error_description"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&body)
		reason := body.ErrorDescription
		if reason == "" {
			reason = body.Error
		}
		return nil, &RequestError{Status: resp.StatusCode, Reason: reason}
	}

	var token tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&token); err != nil {
		return nil, &RequestError{Status: resp.StatusCode, Err: err}
	}

	session := &domain.Session{
		UserID:      token.User.ID,
		Email:       token.User.Email,
		AccessToken: token.AccessToken,
		ExpiresAt:   time.Now().Add(time.Duration(token.ExpiresIn) * time.Second),
	}
	c.fillFromClaims(session)

	c.setSession(session)
	return session, nil
}

// fillFromClaims recovers subject and expiry from the access token when
// the response body did not carry them. Signature verification belongs to
// the identity service, not to this client.
func (c *GoTrueClient) fillFromClaims(session *domain.Session) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(session.AccessToken, claims); err != nil {
		c.logger.Debug("token de acesso ilegível", zap.Error(err))
		return
	}
	if session.UserID == "" {
		if sub, err := claims.GetSubject(); err == nil {
			session.UserID = sub
		}
	}
	if session.ExpiresAt.IsZero() {
		if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
			session.ExpiresAt = exp.Time
		}
	}
}

func (c *GoTrueClient) GetSession(_ context.Context) (*domain.Session, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.session == nil {
		return nil, nil
	}
	if !c.session.ExpiresAt.IsZero() && time.Now().After(c.session.ExpiresAt) {
		return nil, nil
	}
	return c.session, nil
}

// OnAuthStateChange registers fn for future session transitions. The
// returned closure removes the registration; fn is never invoked after it
// runs.
func (c *GoTrueClient) OnAuthStateChange(fn func(*domain.Session)) (unsubscribe func()) {
	c.mu.Lock()
	id := c.nextID
	c.nextID++
	c.listeners[id] = fn
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		delete(c.listeners, id)
		c.mu.Unlock()
	}
}

func (c *GoTrueClient) SignOut(ctx context.Context) error {
	c.mu.Lock()
	session := c.session
	c.mu.Unlock()

	if session != nil {
		url := c.baseURL + "/auth/v1/logout"
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, nil)
		if err == nil {
			req.Header.Set("apikey", c.anonKey)
			req.Header.Set("Authorization", "Bearer "+session.AccessToken)
			if resp, err := c.http.Do(req); err != nil {
				c.logger.Warn("falha ao encerrar sessão no provedor", zap.Error(err))
			} else {
				resp.Body.Close()
			}
		}
	}

	c.setSession(nil)
	return nil
}

func (c *GoTrueClient) setSession(session *domain.Session) {
	c.mu.Lock()
	c.session = session
	fns := make([]func(*domain.Session), 0, len(c.listeners))
	for _, fn := range c.listeners {
		fns = append(fns, fn)
	}
	c.mu.Unlock()

	for _, fn := range fns {
		fn(session)
	}
}

// AdminDirectory resolves whether an authenticated identity holds the
// administrative role.
type AdminDirectory interface {
	IsAdmin(ctx context.Context, userID string) (bool, error)
}

// SupabaseAdminDirectory checks the admins table through the REST
// endpoint. An empty result is reported as ErrNoRecord so callers can
// tell it apart from an ambiguous failure.
type SupabaseAdminDirectory struct {
	baseURL string
	anonKey string
	http    *http.Client
}

func NewSupabaseAdminDirectory(baseURL, anonKey string) *SupabaseAdminDirectory {
	return &SupabaseAdminDirectory{
		baseURL: strings.TrimRight(baseURL, "/"),
		anonKey: anonKey,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

func (d *SupabaseAdminDirectory) IsAdmin(ctx context.Context, userID string) (bool, error) {
	url := fmt.Sprintf("%s/rest/v1/admins?select=id&id=eq.%s", d.baseURL, userID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return false, err
	}
	req.Header.Set("apikey", d.anonKey)

	resp, err := d.http.Do(req)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return false, &RequestError{Status: resp.StatusCode}
	}

	var rows []struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&rows); err != nil {
		return false, err
	}
	if len(rows) == 0 {
		return false, fmt.Errorf("admin %s: %w", userID, ErrNoRecord)
	}
	return true, nil
}
