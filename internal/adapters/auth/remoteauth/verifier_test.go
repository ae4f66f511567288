package remoteauth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vet-clinic/internal/ports/auth"
)

func newAuthServer(t *testing.T, status int, body string) (*httptest.Server, *http.Header) {
	t.Helper()
	var got http.Header
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		var in map[string]string
		_ = json.NewDecoder(r.Body).Decode(&in)
		if in["token"] == "" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, &got
}

func TestVerifier_Accepts(t *testing.T) {
	srv, hdr := newAuthServer(t, http.StatusOK, `{"user_id":42,"email":"vet@clinic.test","role":"vet","expires_at":"2030-01-01T00:00:00Z"}`)
	v := NewVerifier(Config{VerifyURL: srv.URL + "/verify", APIKey: "k1"})

	claims, err := v.Verify(context.Background(), "tok")
	require.NoError(t, err)
	assert.Equal(t, "42", claims.UserID)
	assert.Equal(t, "vet@clinic.test", claims.Email)
	assert.Equal(t, "vet", claims.Role)
	assert.Equal(t, 2030, claims.ExpiresAt.Year())

	assert.Equal(t, "k1", hdr.Get("X-Api-Key"))
	assert.Equal(t, "Bearer tok", hdr.Get("Authorization"))
}

func TestVerifier_StringUserID(t *testing.T) {
	srv, _ := newAuthServer(t, http.StatusOK, `{"user_id":"u-9"}`)

	claims, err := NewVerifier(Config{VerifyURL: srv.URL}).Verify(context.Background(), "tok")
	require.NoError(t, err)
	assert.Equal(t, "u-9", claims.UserID)
}

func TestVerifier_Rejects(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		wantInvalid bool
	}{
		{"unauthorized", http.StatusUnauthorized, `{"error":"expired"}`, true},
		{"forbidden", http.StatusForbidden, ``, true},
		{"missing_user", http.StatusOK, `{"email":"x@y.z"}`, true},
		{"upstream_down", http.StatusBadGateway, ``, false},
		{"bad_json", http.StatusOK, `not json`, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, _ := newAuthServer(t, tt.status, tt.body)
			_, err := NewVerifier(Config{VerifyURL: srv.URL}).Verify(context.Background(), "tok")
			require.Error(t, err)
			assert.Equal(t, tt.wantInvalid, errors.Is(err, auth.ErrInvalidToken))
			if !tt.wantInvalid {
				assert.ErrorIs(t, err, ErrUpstream)
			}
		})
	}
}

func TestVerifier_NotConfiguredAndEmptyToken(t *testing.T) {
	_, err := NewVerifier(Config{}).Verify(context.Background(), "tok")
	assert.ErrorIs(t, err, ErrNotConfigured)

	_, err = NewVerifier(Config{VerifyURL: "http://127.0.0.1:1"}).Verify(context.Background(), "  ")
	assert.ErrorIs(t, err, ErrTokenEmpty)
}
