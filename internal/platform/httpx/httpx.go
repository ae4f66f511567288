// Package httpx reúne lo que antes estaba duplicado en cada handler
// (writeJSON, decode, mapeo de errores). Con tres recursos ya valía la pena extraerlo.
package httpx

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"vet-clinic/internal/platform/apperr"
	"vet-clinic/internal/platform/logger"
)

// ErrorResponse es el cuerpo de todos los errores de la API.
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse es la respuesta de create/update/delete que no devuelven la fila.
type MessageResponse struct {
	ID      any    `json:"id,omitempty"`
	Message string `json:"message"`
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError traduce err a status + {"error": msg}. Los errores internos se
// loguean con la causa y se responden con fallback, sin filtrar el texto del driver.
func WriteError(w http.ResponseWriter, r *http.Request, log logger.Logger, err error, fallback string) {
	l := logger.FromContext(r.Context(), log)
	status := apperr.Status(err)

	if apperr.KindOf(err) == apperr.KindInternal {
		l.Error(fallback, logger.Fields{"err": err, "method": r.Method, "path": r.URL.Path})
	} else {
		l.Debug("request rejected", logger.Fields{"status": status, "reason": err.Error(), "path": r.URL.Path})
	}

	WriteJSON(w, status, ErrorResponse{Error: apperr.Message(err, fallback)})
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Reportar los campos con su nombre JSON, que es lo que ve el cliente.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validator expone la instancia compartida (ya configurada con nombres JSON).
func Validator() *validator.Validate { return validate }

// Decode lee el JSON del body en dst y corre las reglas `validate`.
// Un body vacío equivale a {}: si faltan requeridos responde con requiredMsg.
// Si falla otra regla (formato, enum, tipo) nombra los campos inválidos.
func Decode(r *http.Request, dst any, requiredMsg string) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, 1<<20))
	if err := dec.Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		return decodeError(err)
	}
	return Validate(dst, requiredMsg)
}

func decodeError(err error) error {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return apperr.Validation("Invalid fields: " + typeErr.Field)
	}
	return apperr.Validation("Invalid JSON body")
}

func Validate(v any, requiredMsg string) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperr.Validation(requiredMsg)
	}

	invalid := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if fe.Tag() == "required" {
			return apperr.Validation(requiredMsg)
		}
		invalid = append(invalid, fe.Field()+" ("+describe(fe)+")")
	}
	return apperr.Validation("Invalid fields: " + strings.Join(invalid, ", "))
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "datetime":
		return "expected YYYY-MM-DD"
	case "oneof":
		return "expected one of " + fe.Param()
	default:
		return fe.Tag()
	}
}

// DateLayout es el formato de todas las fechas de la API.
const DateLayout = "2006-01-02"

// ParseDate acepta YYYY-MM-DD o un ISO completo, que se corta en la T.
func ParseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if len(raw) > len(DateLayout) && raw[len(DateLayout)] == 'T' {
		raw = raw[:len(DateLayout)]
	}
	return time.Parse(DateLayout, raw)
}

// ParseID convierte el path param a un id positivo.
func ParseID(raw string) (int64, bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
