package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", Validation("Required fields: name"), http.StatusBadRequest},
		{"not_found", NotFound("Owner not found"), http.StatusNotFound},
		{"internal", Internal("Error fetching owners", errors.New("conn reset")), http.StatusInternalServerError},
		{"plain_error", errors.New("boom"), http.StatusInternalServerError},
		{"wrapped_not_found", fmt.Errorf("repo: %w", NotFound("Pet not found")), http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Status(tt.err))
		})
	}
}

func TestIs_MatchesByKind(t *testing.T) {
	err := fmt.Errorf("wrap: %w", NotFound("Vaccination not found"))

	assert.True(t, errors.Is(err, ErrNotFound))
	assert.False(t, errors.Is(err, ErrValidation))
	assert.False(t, errors.Is(err, ErrInternal))
}

func TestInternal_UnwrapsCause(t *testing.T) {
	cause := errors.New("disk full")
	err := Internal("Error creating owner", cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "Error creating owner: disk full", err.Error())
	assert.Equal(t, "Error creating owner", Message(err, "fallback"))
	assert.Equal(t, "fallback", Message(errors.New("x"), "fallback"))
}
