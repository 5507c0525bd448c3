// Package session owns the authentication token and is the sole gateway
// through which the rest of the console talks to the backend.
package session

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/inventoryhub/admin-console/internal/core/domain"
	"github.com/inventoryhub/admin-console/internal/metrics"
)

// Manager resolves the current principal, decides which capabilities are
// enabled, and funnels every backend call through one chokepoint. It never
// panics past its boundary; every failure path returns a tagged error.
type Manager struct {
	baseURL   string
	http      *http.Client
	store     TokenStore
	logger    zerolog.Logger
	principal *domain.Principal
	onExpired func()
}

// NewManager builds a manager for the backend at baseURL (including the
// /api prefix). The HTTP client carries no timeout of its own; the
// transport's defaults apply.
func NewManager(baseURL string, store TokenStore, logger zerolog.Logger) *Manager {
	return &Manager{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
		store:   store,
		logger:  logger,
	}
}

// OnSessionExpired registers the hook fired when the backend rejects the
// stored token. The view layer uses it to force the login screen back up.
func (m *Manager) OnSessionExpired(fn func()) { m.onExpired = fn }

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	AccessToken string `json:"access_token"`
}

// Authenticate exchanges credentials for a token, persists it, and adopts
// the resulting session. On failure the prior session is left untouched.
func (m *Manager) Authenticate(ctx context.Context, username, password string) (*domain.Principal, error) {
	var resp loginResponse
	err := m.do(ctx, http.MethodPost, "/auth/login", loginRequest{Username: username, Password: password}, &resp, false)
	if err != nil {
		var re *domain.RequestError
		if errors.As(err, &re) {
			return nil, &domain.AuthError{Message: re.Error()}
		}
		return nil, err
	}
	if resp.AccessToken == "" {
		return nil, &domain.DecodeError{Err: errors.New("login response missing access_token")}
	}
	if err := m.store.Save(resp.AccessToken); err != nil {
		return nil, err
	}
	m.principal = nil
	p, err := m.CurrentPrincipal(ctx)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, &domain.AuthError{Message: "login succeeded but identity could not be resolved"}
	}
	m.logger.Info().Str("username", p.Username).Str("role", string(p.Role)).Msg("authenticated")
	return p, nil
}

// CurrentPrincipal probes who-am-I with the stored token, caching the
// answer. Any failure clears the token and yields an absent principal.
// This is the sole re-entry point at startup: it must complete before any
// UI reflecting identity is shown.
func (m *Manager) CurrentPrincipal(ctx context.Context) (*domain.Principal, error) {
	if m.principal != nil {
		return m.principal, nil
	}
	token, err := m.store.Load()
	if err != nil || token == "" {
		return nil, nil
	}
	var p domain.Principal
	if err := m.do(ctx, http.MethodGet, "/auth/me", nil, &p, true); err != nil {
		_ = m.store.Clear()
		m.principal = nil
		m.logger.Debug().Err(err).Msg("stored token rejected, session discarded")
		return nil, nil
	}
	m.principal = &p
	return m.principal, nil
}

// Capabilities resolves the capability set of the current principal; an
// absent principal gets the empty (read-nothing) set.
func (m *Manager) Capabilities() domain.CapabilitySet {
	if m.principal == nil {
		return domain.CapabilitySet{}
	}
	return domain.CapabilitiesFor(m.principal.Role)
}

// Logout clears the stored token and cached principal. Idempotent.
func (m *Manager) Logout() {
	_ = m.store.Clear()
	m.principal = nil
	m.logger.Info().Msg("logged out")
}

// Request performs an authenticated call and decodes the JSON response
// into out (which may be nil when the body is irrelevant). On 401 the
// token is cleared, the expiry hook fires, and domain.ErrSessionExpired is
// returned; it is never possible to mistake that outcome for success.
func (m *Manager) Request(ctx context.Context, method, endpoint string, body, out any) error {
	return m.do(ctx, method, endpoint, body, out, true)
}

func (m *Manager) do(ctx context.Context, method, endpoint string, body, out any, withAuth bool) error {
	err := m.roundTrip(ctx, method, endpoint, body, out, withAuth)
	metrics.APIRequestsTotal.WithLabelValues(method, outcome(err)).Inc()
	return err
}

func (m *Manager) roundTrip(ctx context.Context, method, endpoint string, body, out any, withAuth bool) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, m.baseURL+endpoint, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if withAuth {
		token, err := m.store.Load()
		if err != nil {
			return err
		}
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := m.http.Do(req)
	if err != nil {
		return &domain.ConnectivityError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized && withAuth {
		m.expire()
		return domain.ErrSessionExpired
	}

	contentType := resp.Header.Get("Content-Type")
	if mediaType, _, err := mime.ParseMediaType(contentType); err != nil || mediaType != "application/json" {
		return &domain.DecodeError{ContentType: contentType}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &domain.ConnectivityError{Err: err}
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		var envelope struct {
			Detail string `json:"detail"`
		}
		_ = json.Unmarshal(data, &envelope)
		return &domain.RequestError{StatusCode: resp.StatusCode, Message: envelope.Detail}
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return &domain.DecodeError{ContentType: contentType, Err: err}
		}
	}
	return nil
}

// expire handles the one error that forces a logout as a side effect.
func (m *Manager) expire() {
	_ = m.store.Clear()
	m.principal = nil
	metrics.SessionExpiriesTotal.Inc()
	m.logger.Warn().Msg("backend rejected token, re-authentication required")
	if m.onExpired != nil {
		m.onExpired()
	}
}

func outcome(err error) string {
	var (
		reqErr  *domain.RequestError
		decErr  *domain.DecodeError
		connErr *domain.ConnectivityError
	)
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrSessionExpired):
		return "session_expired"
	case errors.As(err, &connErr):
		return "connectivity"
	case errors.As(err, &decErr):
		return "decode_error"
	case errors.As(err, &reqErr):
		return "http_error"
	default:
		return "error"
	}
}
