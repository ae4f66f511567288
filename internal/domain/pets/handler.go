package pets

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
	r.Route("/pets", func(pr chi.Router) {
		pr.Get("/", listPetsHandler(svc, log))
		pr.Post("/", createPetHandler(svc, log))

		pr.Get("/pet-types", listPetTypesHandler(svc, log))

		pr.Get("/{petID}", getPetHandler(svc, log))
		pr.Put("/{petID}", updatePetHandler(svc, log))
		pr.Delete("/{petID}", deletePetHandler(svc, log))
	})
}

// petRequest es el cuerpo de create y update (update pisa todos los campos).
type petRequest struct {
	Name        string       `json:"name" validate:"required"`
	TypeID      optional.Int `json:"type_id" validate:"required"`
	Breed       *string      `json:"breed"`
	DateOfBirth string       `json:"date_of_birth" example:"2020-01-31"` // YYYY-MM-DD o ISO completo
	Gender      string       `json:"gender" enums:"male,female,unknown"` // sin distinguir mayúsculas
	OwnerID     optional.Int `json:"owner_id" validate:"required"`
	Notes       *string      `json:"notes"`
}

// Response es una fila de pets tal como la ve el cliente.
type Response struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	TypeID      int64     `json:"type_id"`
	Breed       *string   `json:"breed"`
	DateOfBirth *string   `json:"date_of_birth"`
	Gender      Gender    `json:"gender"`
	OwnerID     int64     `json:"owner_id"`
	Notes       *string   `json:"notes"`
	CreatedAt   time.Time `json:"created_at"`
}

type listItemResponse struct {
	Response
	OwnerName  *string `json:"owner_name"`
	OwnerEmail *string `json:"owner_email"`
}

type detailResponse struct {
	Response
	OwnerName *string `json:"owner_name"`
}

type petTypeResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// listPetsHandler godoc
// @Summary Listar mascotas
// @Description Todas las mascotas con el nombre y email del dueño, más recientes primero.
// @Tags pets
// @Produce json
// @Success 200 {array} listItemResponse
// @Failure 500 {object} httpx.ErrorResponse
// @Router /pets [get]
func listPetsHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context())
		if err != nil {
			httpx.WriteError(w, r, log, err, "Error fetching pets")
			return
		}

		out := make([]listItemResponse, 0, len(items))
		for _, it := range items {
			out = append(out, listItemResponse{
				Response:   NewResponse(it.Pet),
				OwnerName:  it.OwnerName,
				OwnerEmail: it.OwnerEmail,
			})
		}
		httpx.WriteJSON(w, http.StatusOK, out)
	}
}

// getPetHandler godoc
// @Summary Obtener mascota
// @Tags pets
// @Produce json
// @Param petID path int true "ID numérico de la mascota"
// @Success 200 {object} detailResponse
// @Failure 400 {object} httpx.ErrorResponse "Invalid pet ID"
// @Failure 404 {object} httpx.ErrorResponse
// @Router /pets/{petID} [get]
func getPetHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := httpx.ParseID(chi.URLParam(r, "petID"))
		if !ok {
			httpx.WriteError(w, r, log, ErrInvalidID, "")
			return
		}

		d, err := svc.GetByID(r.Context(), id)
		if err != nil {
			httpx.WriteError(w, r, log, err, "Error fetching pet")
			return
		}

		httpx.WriteJSON(w, http.StatusOK, detailResponse{Response: NewResponse(d.Pet), OwnerName: d.OwnerName})
	}
}

// createPetHandler godoc
// @Summary Crear mascota
// @Description name, type_id y owner_id son obligatorios; gender por defecto "unknown".
// @Tags pets
// @Accept json
// @Produce json
// @Param payload body petRequest true "Mascota"
// @Success 201 {object} httpx.MessageResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 500 {object} httpx.ErrorResponse
// @Router /pets [post]
func createPetHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		in, err := decodePetRequest(r)
		if err != nil {
			httpx.WriteError(w, r, log, err, "")
			return
		}

		id, err := svc.Create(r.Context(), in)
		if err != nil {
			httpx.WriteError(w, r, log, err, "Error creating pet")
			return
		}

		logger.FromContext(r.Context(), log).Info("pet created", logger.Fields{"pet_id": id})
		httpx.WriteJSON(w, http.StatusCreated, httpx.MessageResponse{ID: id, Message: "Pet created successfully"})
	}
}

// updatePetHandler godoc
// @Summary Actualizar mascota
// @Description Reemplaza todos los campos. No comprueba que el id exista.
// @Tags pets
// @Accept json
// @Produce json
// @Param petID path int true "ID de la mascota"
// @Param payload body petRequest true "Mascota"
// @Success 200 {object} httpx.MessageResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 500 {object} httpx.ErrorResponse
// @Router /pets/{petID} [put]
func updatePetHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := httpx.ParseID(chi.URLParam(r, "petID"))
		if !ok {
			httpx.WriteError(w, r, log, ErrInvalidID, "")
			return
		}

		in, err := decodePetRequest(r)
		if err != nil {
			httpx.WriteError(w, r, log, err, "")
			return
		}

		if err := svc.Update(r.Context(), id, in); err != nil {
			httpx.WriteError(w, r, log, err, "Error updating pet")
			return
		}

		httpx.WriteJSON(w, http.StatusOK, httpx.MessageResponse{Message: "Pet updated successfully"})
	}
}

// deletePetHandler godoc
// @Summary Borrar mascota
// @Description Con PET_DELETE_MISSING=not_found un id inexistente responde 404; con "ok" responde 200.
// @Tags pets
// @Produce json
// @Param petID path int true "ID de la mascota"
// @Success 200 {object} httpx.MessageResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Failure 500 {object} httpx.ErrorResponse
// @Router /pets/{petID} [delete]
func deletePetHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := httpx.ParseID(chi.URLParam(r, "petID"))
		if !ok {
			httpx.WriteError(w, r, log, ErrInvalidID, "")
			return
		}

		if err := svc.Delete(r.Context(), id); err != nil {
			httpx.WriteError(w, r, log, err, "Error deleting pet")
			return
		}

		httpx.WriteJSON(w, http.StatusOK, httpx.MessageResponse{Message: "Pet deleted successfully"})
	}
}

// listPetTypesHandler godoc
// @Summary Listar tipos de mascota
// @Tags pets
// @Produce json
// @Success 200 {array} petTypeResponse
// @Failure 404 {object} httpx.ErrorResponse "No pet types found."
// @Router /pets/pet-types [get]
func listPetTypesHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		types, err := svc.ListTypes(r.Context())
		if err != nil {
			if apperr.KindOf(err) == apperr.KindNotFound {
				logger.FromContext(r.Context(), log).Warn("no pet types found in the database", nil)
			}
			httpx.WriteError(w, r, log, err, "Error fetching pet types. Please check the database.")
			return
		}

		out := make([]petTypeResponse, 0, len(types))
		for _, t := range types {
			out = append(out, petTypeResponse{ID: t.ID, Name: t.Name})
		}
		httpx.WriteJSON(w, http.StatusOK, out)
	}
}

func decodePetRequest(r *http.Request) (Input, error) {
	var req petRequest
	if err := httpx.Decode(r, &req, requiredFieldsMsg); err != nil {
		return Input{}, err
	}

	var dob *time.Time
	if strings.TrimSpace(req.DateOfBirth) != "" {
		t, err := httpx.ParseDate(req.DateOfBirth)
		if err != nil {
			return Input{}, apperr.Validation("Invalid fields: date_of_birth (expected YYYY-MM-DD)")
		}
		dob = &t
	}

	return Input{
		Name:        req.Name,
		TypeID:      req.TypeID.Int64(),
		Breed:       req.Breed,
		DateOfBirth: dob,
		Gender:      Gender(req.Gender),
		OwnerID:     req.OwnerID.Int64(),
		Notes:       req.Notes,
	}, nil
}

// NewResponse arma la representación JSON de una fila de pets.
// La usa también owners para GET /owners/{id}/pets.
func NewResponse(p Pet) Response {
	var dob *string
	if p.DateOfBirth != nil {
		s := p.DateOfBirth.Format(httpx.DateLayout)
		dob = &s
	}
	return Response{
		ID:          p.ID,
		Name:        p.Name,
		TypeID:      p.TypeID,
		Breed:       p.Breed,
		DateOfBirth: dob,
		Gender:      p.Gender,
		OwnerID:     p.OwnerID,
		Notes:       p.Notes,
		CreatedAt:   p.CreatedAt,
	}
}
