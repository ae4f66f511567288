package pets

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vet-clinic/internal/platform/logger"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	r := chi.NewRouter()
	RegisterRoutes(r, NewService(newTestRepo(), DefaultPolicy()), logger.Nop())
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func do(t *testing.T, method, url, body string) (int, map[string]any) {
	t.Helper()
	req, err := http.NewRequest(method, url, strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer res.Body.Close()

	var out map[string]any
	require.NoError(t, json.NewDecoder(res.Body).Decode(&out))
	return res.StatusCode, out
}

func TestHandler_Create_NormalizesGenderAndDate(t *testing.T) {
	srv := newTestServer(t)

	status, created := do(t, http.MethodPost, srv.URL+"/pets",
		`{"name":"Milo","type_id":"1","owner_id":1,"gender":"Male","date_of_birth":"2020-01-01T00:00:00.000Z"}`)
	require.Equal(t, http.StatusCreated, status, created)
	id := int64(created["id"].(float64))

	status, got := do(t, http.MethodGet, srv.URL+"/pets/"+jsonID(id), "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "male", got["gender"])
	assert.Equal(t, "2020-01-01", got["date_of_birth"])
}

func TestHandler_Create_InvalidFields(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{"unknown_gender", `{"name":"Milo","type_id":1,"owner_id":1,"gender":"robot"}`, "Invalid fields: gender (expected one of male female unknown)"},
		{"bad_date", `{"name":"Milo","type_id":1,"owner_id":1,"date_of_birth":"01/01/2020"}`, "Invalid fields: date_of_birth (expected YYYY-MM-DD)"},
		{"wrong_type", `{"name":12,"type_id":1,"owner_id":1}`, "Invalid fields: name"},
		{"empty_body", ``, "Required fields: name, type_id, owner_id"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := do(t, http.MethodPost, srv.URL+"/pets", tt.body)
			assert.Equal(t, http.StatusBadRequest, status)
			assert.Equal(t, tt.wantErr, body["error"])
		})
	}
}

func jsonID(id int64) string {
	b, _ := json.Marshal(id)
	return string(b)
}
