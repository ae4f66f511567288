package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorded struct {
	method string
	path   string
	header http.Header
	body   string
}

func newRecordingServer(t *testing.T, status int, respBody string) (*httptest.Server, *recorded) {
	t.Helper()
	rec := &recorded{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		rec.method = r.Method
		rec.path = r.URL.Path
		rec.header = r.Header.Clone()
		rec.body = string(b)
		w.WriteHeader(status)
		_, _ = w.Write([]byte(respBody))
	}))
	t.Cleanup(srv.Close)
	return srv, rec
}

func TestRequest_HeadersAndBody(t *testing.T) {
	srv, rec := newRecordingServer(t, http.StatusCreated, `{"id":7,"message":"Owner created successfully"}`)
	c, err := New(srv.URL + "/api")
	require.NoError(t, err)

	var out struct {
		ID      int64  `json:"id"`
		Message string `json:"message"`
	}
	err = c.Request(context.Background(), "/owners", RequestOptions{
		Method: http.MethodPost,
		Body:   map[string]string{"first_name": "Ana"},
		Token:  "tok-123",
	}, &out)
	require.NoError(t, err)

	assert.Equal(t, int64(7), out.ID)
	assert.Equal(t, http.MethodPost, rec.method)
	assert.Equal(t, "/api/owners", rec.path)
	assert.Equal(t, "application/json", rec.header.Get("Content-Type"))
	assert.Equal(t, "Bearer tok-123", rec.header.Get("Authorization"))
	assert.NotEmpty(t, rec.header.Get("X-Request-ID"))
	assert.JSONEq(t, `{"first_name":"Ana"}`, rec.body)
}

func TestRequest_GetNeverSendsBody(t *testing.T) {
	srv, rec := newRecordingServer(t, http.StatusOK, `[]`)
	c, err := New(srv.URL)
	require.NoError(t, err)

	require.NoError(t, c.Request(context.Background(), "pets", RequestOptions{Body: map[string]int{"x": 1}}, nil))
	assert.Equal(t, http.MethodGet, rec.method)
	assert.Empty(t, rec.body)
	assert.Equal(t, "application/json", rec.header.Get("Content-Type"), "content type is always set")
}

func TestRequest_TokenFallsBackToStore(t *testing.T) {
	srv, rec := newRecordingServer(t, http.StatusOK, `{}`)
	store := NewMemoryTokenStore()
	require.NoError(t, store.Set(AuthTokenKey, "stored-token"))

	c, err := New(srv.URL, WithTokenStore(store))
	require.NoError(t, err)

	require.NoError(t, c.Request(context.Background(), "/owners", RequestOptions{}, nil))
	assert.Equal(t, "Bearer stored-token", rec.header.Get("Authorization"))

	require.NoError(t, c.Request(context.Background(), "/owners", RequestOptions{Token: "explicit"}, nil))
	assert.Equal(t, "Bearer explicit", rec.header.Get("Authorization"), "explicit token wins")

	require.NoError(t, store.Remove(AuthTokenKey))
	require.NoError(t, c.Request(context.Background(), "/owners", RequestOptions{}, nil))
	assert.Empty(t, rec.header.Get("Authorization"))
}

func TestRequest_Errors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantMsg string
	}{
		{"api_error_field", http.StatusNotFound, `{"error":"Owner not found"}`, "Owner not found"},
		{"json_without_error", http.StatusBadRequest, `{"message":"nope"}`, "HTTP error 400"},
		{"not_json", http.StatusBadGateway, `<html>bad gateway</html>`, "HTTP error 502: Bad Gateway"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, _ := newRecordingServer(t, tt.status, tt.body)
			c, err := New(srv.URL)
			require.NoError(t, err)

			err = c.Request(context.Background(), "/x", RequestOptions{}, nil)
			var re *RequestError
			require.ErrorAs(t, err, &re)
			assert.Equal(t, tt.status, re.Status)
			assert.Equal(t, tt.wantMsg, re.Message)
			assert.True(t, IsStatus(err, tt.status))
		})
	}

	t.Run("transport", func(t *testing.T) {
		srv, _ := newRecordingServer(t, http.StatusOK, `{}`)
		url := srv.URL
		srv.Close()

		c, err := New(url)
		require.NoError(t, err)
		err = c.Request(context.Background(), "/x", RequestOptions{}, nil)

		var re *RequestError
		require.ErrorAs(t, err, &re)
		assert.Zero(t, re.Status)
		assert.NotEmpty(t, re.Message)
	})
}

func TestRequest_BodyFailures(t *testing.T) {
	t.Run("truncated", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Length", "100")
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`{"id":`))
		}))
		t.Cleanup(srv.Close)

		c, err := New(srv.URL)
		require.NoError(t, err)

		var out map[string]any
		err = c.Request(context.Background(), "/owners", RequestOptions{}, &out)
		var re *RequestError
		require.ErrorAs(t, err, &re)
		assert.Equal(t, http.StatusOK, re.Status)
		assert.Contains(t, re.Message, "read response")
		assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
	})

	t.Run("too_large", func(t *testing.T) {
		big := `"` + strings.Repeat("a", MaxResponseBytes) + `"`
		srv, _ := newRecordingServer(t, http.StatusOK, big)
		c, err := New(srv.URL)
		require.NoError(t, err)

		var out string
		err = c.Request(context.Background(), "/owners", RequestOptions{}, &out)
		var re *RequestError
		require.ErrorAs(t, err, &re)
		assert.Contains(t, re.Message, "exceeds")
		assert.Empty(t, out)
	})
}

func TestResources_Paths(t *testing.T) {
	srv, rec := newRecordingServer(t, http.StatusOK, `{}`)
	c, err := New(srv.URL + "/api")
	require.NoError(t, err)
	ctx := context.Background()

	tests := []struct {
		name       string
		call       func() error
		wantMethod string
		wantPath   string
	}{
		{"owner_pets", func() error { return c.Owners().Pets(ctx, 3, nil) }, http.MethodGet, "/api/owners/3/pets"},
		{"pet_types", func() error { return c.Pets().Types(ctx, nil) }, http.MethodGet, "/api/pets/pet-types"},
		{"vaccination_update", func() error { return c.Vaccinations().Update(ctx, 9, map[string]string{"temp": ""}, nil) }, http.MethodPut, "/api/vaccinations/9"},
		{"consultation_delete", func() error { return c.Consultations().Delete(ctx, "4", nil) }, http.MethodDelete, "/api/consultations/4"},
		{"laboratory_list", func() error { return c.Laboratory().List(ctx, nil) }, http.MethodGet, "/api/laboratory"},
		{"surgery_get", func() error { return c.Surgery().Get(ctx, 1, nil) }, http.MethodGet, "/api/surgery/1"},
		{"appointment_create", func() error { return c.Appointments().Create(ctx, map[string]any{}, nil) }, http.MethodPost, "/api/appointments"},
		{"shop_add", func() error { return c.Shop().AddToCart(ctx, 5, 2, nil) }, http.MethodPost, "/api/shop/cart/add"},
		{"shop_remove", func() error { return c.Shop().RemoveCartItem(ctx, 8, nil) }, http.MethodDelete, "/api/shop/cart/remove"},
		{"shop_checkout", func() error { return c.Shop().Checkout(ctx, nil) }, http.MethodPost, "/api/shop/checkout"},
		{"shop_order", func() error { return c.Shop().Order(ctx, 12, nil) }, http.MethodGet, "/api/shop/orders/12"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, tt.call())
			assert.Equal(t, tt.wantMethod, rec.method)
			assert.Equal(t, tt.wantPath, rec.path)
		})
	}

	require.NoError(t, c.Shop().RemoveCartItem(ctx, 8, nil))
	var body map[string]any
	require.NoError(t, json.Unmarshal([]byte(rec.body), &body))
	assert.Equal(t, float64(8), body["itemId"], "DELETE with a body is still sent")
}

func TestFileTokenStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "tokens.json")
	s := NewFileTokenStore(path)

	v, err := s.Get(AuthTokenKey)
	require.NoError(t, err)
	assert.Empty(t, v, "missing file reads as empty")

	require.NoError(t, s.Set(AuthTokenKey, "abc"))

	// otra instancia sobre el mismo archivo ve el valor
	v, err = NewFileTokenStore(path).Get(AuthTokenKey)
	require.NoError(t, err)
	assert.Equal(t, "abc", v)

	require.NoError(t, s.Remove(AuthTokenKey))
	v, err = s.Get(AuthTokenKey)
	require.NoError(t, err)
	assert.Empty(t, v)
}

func TestNew_InvalidBaseURL(t *testing.T) {
	_, err := New("::not a url")
	assert.Error(t, err)

	c, err := New("")
	require.NoError(t, err)
	assert.Equal(t, DefaultBaseURL, c.BaseURL)
}
