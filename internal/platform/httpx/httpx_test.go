package httpx

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vet-clinic/internal/platform/apperr"
	"vet-clinic/internal/platform/logger"
)

type sampleRequest struct {
	Name   string `json:"name" validate:"required"`
	Gender string `json:"gender" validate:"omitempty,oneof=male female unknown"`
	Born   string `json:"date_of_birth" validate:"omitempty,datetime=2006-01-02"`
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{"ok", `{"name":"Milo","gender":"male","date_of_birth":"2020-02-29"}`, ""},
		{"missing_required", `{"gender":"male"}`, "Required fields: name"},
		{"empty_body", ``, "Required fields: name"},
		{"bad_enum", `{"name":"Milo","gender":"robot"}`, "Invalid fields: gender (expected one of male female unknown)"},
		{"bad_date", `{"name":"Milo","date_of_birth":"29/02/2020"}`, "Invalid fields: date_of_birth (expected YYYY-MM-DD)"},
		{"bad_json", `{"name":`, "Invalid JSON body"},
		{"wrong_type", `{"name":12}`, "Invalid fields: name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))

			var dst sampleRequest
			err := Decode(r, &dst, "Required fields: name")
			if tt.wantErr == "" {
				require.NoError(t, err)
				assert.Equal(t, "Milo", dst.Name)
				return
			}
			require.Error(t, err)
			assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
			assert.Contains(t, err.Error(), tt.wantErr)
			assert.NotContains(t, err.Error(), "Go struct field")
		})
	}
}

type patchRequest struct {
	Notes *string `json:"notes"`
}

func TestDecode_EmptyBodyIsEmptyObject(t *testing.T) {
	r := httptest.NewRequest(http.MethodPut, "/", strings.NewReader(""))

	var dst patchRequest
	require.NoError(t, Decode(r, &dst, "Required fields: name"))
	assert.Nil(t, dst.Notes)
}

func TestParseDate(t *testing.T) {
	for _, raw := range []string{"2020-01-01", " 2020-01-01 ", "2020-01-01T00:00:00.000Z"} {
		d, err := ParseDate(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, "2020-01-01", d.Format(DateLayout))
	}

	_, err := ParseDate("01/01/2020")
	assert.Error(t, err)
}

func TestWriteError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantBody string
	}{
		{"validation", apperr.Validation("Invalid pet ID"), http.StatusBadRequest, `{"error":"Invalid pet ID"}`},
		{"not_found", apperr.NotFound("Owner not found"), http.StatusNotFound, `{"error":"Owner not found"}`},
		{"raw_store_error_hidden", errors.New("pq: relation owners does not exist"), http.StatusInternalServerError, `{"error":"Error fetching owners"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodGet, "/api/owners", nil)

			WriteError(rr, r, logger.Nop(), tt.err, "Error fetching owners")

			assert.Equal(t, tt.wantCode, rr.Code)
			assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
			assert.JSONEq(t, tt.wantBody, rr.Body.String())
		})
	}
}

func TestParseID(t *testing.T) {
	id, ok := ParseID("42")
	assert.True(t, ok)
	assert.Equal(t, int64(42), id)

	for _, raw := range []string{"", "abc", "0", "-3", "1.5"} {
		_, ok := ParseID(raw)
		assert.False(t, ok, raw)
	}
}
