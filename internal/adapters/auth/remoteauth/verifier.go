// Package remoteauth valida bearer tokens preguntándole al servicio de login.
// Se usa cuando la API no comparte el secreto de firma con ese servicio.
package remoteauth

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"vet-clinic/internal/ports/auth"
)

var (
	ErrNotConfigured = errors.New("remote auth not configured")
	ErrTokenEmpty    = errors.New("token is empty")
	ErrUpstream      = errors.New("auth service error")
)

type Config struct {
	// VerifyURL es la URL completa del endpoint de verificación (POST {"token": "..."}).
	VerifyURL string
	APIKey    string

	// Por defecto "X-Api-Key".
	APIKeyHeader string

	Timeout time.Duration
}

type Verifier struct {
	url          string
	apiKey       string
	apiKeyHeader string
	http         *http.Client
}

func NewVerifier(cfg Config) *Verifier {
	h := strings.TrimSpace(cfg.APIKeyHeader)
	if h == "" {
		h = "X-Api-Key"
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Verifier{
		url:          strings.TrimSpace(cfg.VerifyURL),
		apiKey:       strings.TrimSpace(cfg.APIKey),
		apiKeyHeader: h,
		http:         &http.Client{Timeout: timeout},
	}
}

func (v *Verifier) IsConfigured() bool {
	return v != nil && v.url != ""
}

type verifyResponse struct {
	UserID    any        `json:"user_id"`
	Email     string     `json:"email"`
	Role      string     `json:"role"`
	ExpiresAt *time.Time `json:"expires_at"`
}

// Verify devuelve auth.ErrInvalidToken (envuelto) si el servicio responde 401/403
// y ErrUpstream ante cualquier otra falla.
func (v *Verifier) Verify(ctx context.Context, token string) (auth.Claims, error) {
	if !v.IsConfigured() {
		return auth.Claims{}, ErrNotConfigured
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Claims{}, ErrTokenEmpty
	}

	b, _ := json.Marshal(map[string]string{"token": token})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, v.url, bytes.NewReader(b))
	if err != nil {
		return auth.Claims{}, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	if v.apiKey != "" {
		req.Header.Set(v.apiKeyHeader, v.apiKey)
	}

	resp, err := v.http.Do(req)
	if err != nil {
		return auth.Claims{}, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusUnauthorized, http.StatusForbidden:
		return auth.Claims{}, fmt.Errorf("%w: rejected by auth service", auth.ErrInvalidToken)
	default:
		return auth.Claims{}, fmt.Errorf("%w: status=%d", ErrUpstream, resp.StatusCode)
	}

	var out verifyResponse
	dec := json.NewDecoder(io.LimitReader(resp.Body, 1<<20))
	dec.UseNumber()
	if err := dec.Decode(&out); err != nil {
		return auth.Claims{}, fmt.Errorf("%w: invalid json: %v", ErrUpstream, err)
	}

	claims := auth.Claims{
		UserID: userID(out.UserID),
		Email:  strings.TrimSpace(out.Email),
		Role:   strings.TrimSpace(out.Role),
	}
	if out.ExpiresAt != nil {
		claims.ExpiresAt = *out.ExpiresAt
	}
	if claims.UserID == "" {
		return auth.Claims{}, fmt.Errorf("%w: missing user_id", auth.ErrInvalidToken)
	}
	return claims, nil
}

var _ auth.AuthVerifier = (*Verifier)(nil)

// userID acepta user_id string o numérico.
func userID(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case json.Number:
		return t.String()
	default:
		return ""
	}
}
