// Package client es el gateway HTTP que usan los consumidores de la API de la clínica.
// Todas las llamadas pasan por Client.Request: agrega el bearer token, serializa el
// body y convierte cualquier falla en *RequestError.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	DefaultBaseURL = "http://localhost:8080/api"
	DefaultTimeout = 10 * time.Second

	// MaxResponseBytes es el tope de body que Request acepta leer.
	MaxResponseBytes = 1 << 20
)

type Client struct {
	HTTP    *http.Client
	BaseURL string
	// Tokens es de donde sale el token cuando RequestOptions.Token viene vacío. Puede ser nil.
	Tokens TokenStore
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.HTTP = hc
		}
	}
}

func WithTokenStore(ts TokenStore) Option {
	return func(c *Client) { c.Tokens = ts }
}

// New crea un Client contra baseURL (por ejemplo "http://localhost:8080/api").
func New(baseURL string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, fmt.Errorf("invalid base url: %w", err)
	}

	c := &Client{
		HTTP:    &http.Client{Timeout: DefaultTimeout},
		BaseURL: strings.TrimRight(baseURL, "/"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// RequestOptions: Method por defecto GET. Body solo se envía si Method no es GET.
type RequestOptions struct {
	Method string
	Body   any
	Token  string
}

// RequestError es el único error que devuelve Request. Status es 0 si la
// falla fue de transporte (no hubo respuesta).
type RequestError struct {
	Status  int
	Message string
	Err     error
}

func (e *RequestError) Error() string { return e.Message }

func (e *RequestError) Unwrap() error { return e.Err }

// IsStatus es true si err es un *RequestError con ese status.
func IsStatus(err error, status int) bool {
	var re *RequestError
	return errors.As(err, &re) && re.Status == status
}

// Request llama endpoint (relativo a BaseURL) y decodifica la respuesta JSON en out (puede ser nil).
func (c *Client) Request(ctx context.Context, endpoint string, opts RequestOptions, out any) error {
	method := strings.ToUpper(strings.TrimSpace(opts.Method))
	if method == "" {
		method = http.MethodGet
	}

	var body io.Reader
	if opts.Body != nil && method != http.MethodGet {
		b, err := json.Marshal(opts.Body)
		if err != nil {
			return &RequestError{Message: "marshal request body: " + err.Error(), Err: err}
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.resolve(endpoint), body)
	if err != nil {
		return &RequestError{Message: err.Error(), Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if token := c.token(opts.Token); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return &RequestError{Message: err.Error(), Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, MaxResponseBytes+1))
	if err != nil {
		return &RequestError{Status: resp.StatusCode, Message: "read response: " + err.Error(), Err: err}
	}
	if len(raw) > MaxResponseBytes {
		return &RequestError{Status: resp.StatusCode, Message: fmt.Sprintf("response body exceeds %d bytes", MaxResponseBytes)}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &RequestError{Status: resp.StatusCode, Message: errorMessage(resp, raw)}
	}

	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &RequestError{Status: resp.StatusCode, Message: "decode response: " + err.Error(), Err: err}
	}
	return nil
}

func (c *Client) resolve(endpoint string) string {
	endpoint = strings.TrimSpace(endpoint)
	if !strings.HasPrefix(endpoint, "/") {
		endpoint = "/" + endpoint
	}
	return c.BaseURL + endpoint
}

func (c *Client) token(explicit string) string {
	if t := strings.TrimSpace(explicit); t != "" {
		return t
	}
	if c.Tokens == nil {
		return ""
	}
	t, err := c.Tokens.Get(AuthTokenKey)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(t)
}

// errorMessage usa el campo "error" del body; si no hay JSON cae al texto del status.
func errorMessage(resp *http.Response, raw []byte) string {
	msg := fmt.Sprintf("HTTP error %d", resp.StatusCode)

	var body struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return msg + ": " + http.StatusText(resp.StatusCode)
	}
	if body.Error != "" {
		return body.Error
	}
	return msg
}
