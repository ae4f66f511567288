package vaccinations

import (
	"net/http"
	"strings"
	"time"

	"vet-clinic/internal/platform/apperr"
	"vet-clinic/internal/platform/httpx"
	"vet-clinic/internal/platform/logger"
	"vet-clinic/internal/platform/optional"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, log logger.Logger) {
	r.Route("/vaccinations", func(vr chi.Router) {
		vr.Get("/", listVaccinationsHandler(svc, log))
		vr.Post("/", createVaccinationHandler(svc, log))

		vr.Get("/{vaccinationID}", getVaccinationHandler(svc, log))
		vr.Put("/{vaccinationID}", updateVaccinationHandler(svc, log))
		vr.Delete("/{vaccinationID}", deleteVaccinationHandler(svc, log))
	})
}

// vaccinationRequest usa los nombres camelCase del front. Cada campo recuerda
// si vino en el cuerpo, para que update distinga "ausente" de "vacío".
type vaccinationRequest struct {
	PetID          optional.Value[optional.Int]  `json:"petId" swaggertype:"string"`
	Date           optional.Value[string]        `json:"date" swaggertype:"string" example:"2024-01-15"`
	VaccineTypeID  optional.Value[optional.Int]  `json:"vaccineTypeId" swaggertype:"string"`
	AdministeredBy optional.Value[string]        `json:"administeredBy" swaggertype:"string"`
	Temp           optional.Value[optional.Text] `json:"temp" swaggertype:"string"`
	Dose           optional.Value[optional.Text] `json:"dose" swaggertype:"string"`
	BatchNumber    optional.Value[string]        `json:"batchNumber" swaggertype:"string"`
	ExpiryDate     optional.Value[string]        `json:"expiryDate" swaggertype:"string" example:"2025-01-15"`
	Notes          optional.Value[string]        `json:"notes" swaggertype:"string"`
}

// Response es la fila con las columnas renombradas a camelCase y las fechas como YYYY-MM-DD.
type Response struct {
	ID             int64     `json:"id"`
	PetID          int64     `json:"petId,string"`
	VaccineTypeID  int64     `json:"vaccineTypeId,string"`
	Date           string    `json:"date"`
	AdministeredBy *string   `json:"administeredBy"`
	Temp           *string   `json:"temp"`
	Dose           *string   `json:"dose"`
	BatchNumber    *string   `json:"batchNumber"`
	ExpiryDate     *string   `json:"expiryDate"`
	Notes          *string   `json:"notes"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

type deleteResponse struct {
	Message string `json:"message"`
	ID      string `json:"id"`
}

func NewResponse(v Vaccination) Response {
	var expiry *string
	if v.ExpiryDate != nil {
		s := v.ExpiryDate.Format(httpx.DateLayout)
		expiry = &s
	}
	return Response{
		ID:             v.ID,
		PetID:          v.PetID,
		VaccineTypeID:  v.VaccineTypeID,
		Date:           v.AdministeredDate.Format(httpx.DateLayout),
		AdministeredBy: v.AdministeredBy,
		Temp:           v.Temperature,
		Dose:           v.Dose,
		BatchNumber:    v.BatchNumber,
		ExpiryDate:     expiry,
		Notes:          v.Notes,
		CreatedAt:      v.CreatedAt,
		UpdatedAt:      v.UpdatedAt,
	}
}

// listVaccinationsHandler godoc
// @Summary Listar vacunas
// @Description Ordenadas por id descendente.
// @Tags vaccinations
// @Produce json
// @Success 200 {array} Response
// @Failure 500 {object} httpx.ErrorResponse
// @Router /vaccinations [get]
func listVaccinationsHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context())
		if err != nil {
			httpx.WriteError(w, r, log, err, "Error fetching vaccinations")
			return
		}

		out := make([]Response, 0, len(items))
		for _, v := range items {
			out = append(out, NewResponse(v))
		}
		httpx.WriteJSON(w, http.StatusOK, out)
	}
}

// getVaccinationHandler godoc
// @Summary Obtener vacuna
// @Tags vaccinations
// @Produce json
// @Param vaccinationID path int true "ID de la vacuna"
// @Success 200 {object} Response
// @Failure 404 {object} httpx.ErrorResponse "Vaccination not found"
// @Router /vaccinations/{vaccinationID} [get]
func getVaccinationHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := httpx.ParseID(chi.URLParam(r, "vaccinationID"))
		if !ok {
			httpx.WriteError(w, r, log, ErrNotFound, "")
			return
		}

		v, err := svc.GetByID(r.Context(), id)
		if err != nil {
			httpx.WriteError(w, r, log, err, "Error fetching vaccination")
			return
		}
		httpx.WriteJSON(w, http.StatusOK, NewResponse(v))
	}
}

// createVaccinationHandler godoc
// @Summary Registrar vacuna
// @Description petId, date y vaccineTypeId son obligatorios. Devuelve la fila creada.
// @Tags vaccinations
// @Accept json
// @Produce json
// @Param payload body vaccinationRequest true "Vacuna"
// @Success 201 {object} Response
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 500 {object} httpx.ErrorResponse
// @Router /vaccinations [post]
func createVaccinationHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		in, err := decodeVaccinationRequest(r)
		if err != nil {
			httpx.WriteError(w, r, log, err, "")
			return
		}

		v, err := svc.Create(r.Context(), in)
		if err != nil {
			httpx.WriteError(w, r, log, err, "Error creating vaccination record")
			return
		}

		logger.FromContext(r.Context(), log).Info("vaccination created", logger.Fields{"vaccination_id": v.ID, "pet_id": v.PetID})
		httpx.WriteJSON(w, http.StatusCreated, NewResponse(v))
	}
}

// updateVaccinationHandler godoc
// @Summary Actualizar vacuna
// @Description Los campos ausentes conservan el valor guardado. Con UPDATE_MODE=coalesce también los vacíos.
// @Tags vaccinations
// @Accept json
// @Produce json
// @Param vaccinationID path int true "ID de la vacuna"
// @Param payload body vaccinationRequest true "Campos a cambiar"
// @Success 200 {object} Response
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Failure 500 {object} httpx.ErrorResponse
// @Router /vaccinations/{vaccinationID} [put]
func updateVaccinationHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := httpx.ParseID(chi.URLParam(r, "vaccinationID"))
		if !ok {
			httpx.WriteError(w, r, log, ErrNotFound, "")
			return
		}

		in, err := decodeVaccinationRequest(r)
		if err != nil {
			httpx.WriteError(w, r, log, err, "")
			return
		}

		v, err := svc.Update(r.Context(), id, in)
		if err != nil {
			httpx.WriteError(w, r, log, err, "Error updating vaccination record")
			return
		}
		httpx.WriteJSON(w, http.StatusOK, NewResponse(v))
	}
}

// deleteVaccinationHandler godoc
// @Summary Borrar vacuna
// @Tags vaccinations
// @Produce json
// @Param vaccinationID path int true "ID de la vacuna"
// @Success 200 {object} deleteResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Failure 500 {object} httpx.ErrorResponse "Failed to delete vaccination"
// @Router /vaccinations/{vaccinationID} [delete]
func deleteVaccinationHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw := chi.URLParam(r, "vaccinationID")
		id, ok := httpx.ParseID(raw)
		if !ok {
			httpx.WriteError(w, r, log, ErrNotFound, "")
			return
		}

		if err := svc.Delete(r.Context(), id); err != nil {
			httpx.WriteError(w, r, log, err, "Error deleting vaccination record")
			return
		}
		httpx.WriteJSON(w, http.StatusOK, deleteResponse{Message: "Vaccination deleted successfully", ID: raw})
	}
}

func decodeVaccinationRequest(r *http.Request) (Input, error) {
	var req vaccinationRequest
	if err := httpx.Decode(r, &req, ErrRequired.Message); err != nil {
		return Input{}, err
	}

	date, err := parseDate(req.Date, "date")
	if err != nil {
		return Input{}, err
	}
	expiry, err := parseDate(req.ExpiryDate, "expiryDate")
	if err != nil {
		return Input{}, err
	}

	return Input{
		PetID:          intValue(req.PetID),
		VaccineTypeID:  intValue(req.VaccineTypeID),
		Date:           date,
		AdministeredBy: req.AdministeredBy,
		Temperature:    textValue(req.Temp),
		Dose:           textValue(req.Dose),
		BatchNumber:    req.BatchNumber,
		ExpiryDate:     expiry,
		Notes:          req.Notes,
	}, nil
}

// parseDate usa httpx.ParseDate; "" se trata como null.
func parseDate(f optional.Value[string], field string) (optional.Value[time.Time], error) {
	switch {
	case !f.Set:
		return optional.Value[time.Time]{}, nil
	case f.Null || strings.TrimSpace(f.V) == "":
		return optional.Null[time.Time](), nil
	}

	t, err := httpx.ParseDate(f.V)
	if err != nil {
		return optional.Value[time.Time]{}, apperr.Validation("Invalid fields: " + field + " (expected YYYY-MM-DD)")
	}
	return optional.Of(t), nil
}

func intValue(f optional.Value[optional.Int]) optional.Value[int64] {
	return optional.Value[int64]{Set: f.Set, Null: f.Null, V: f.V.Int64()}
}

func textValue(f optional.Value[optional.Text]) optional.Value[string] {
	return optional.Value[string]{Set: f.Set, Null: f.Null, V: string(f.V)}
}
