package owners

import (
	"net/http"
	"time"

	"vet-clinic/internal/domain/pets"
	"vet-clinic/internal/platform/httpx"
	"vet-clinic/internal/platform/logger"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, log logger.Logger) {
	r.Route("/owners", func(or chi.Router) {
		or.Get("/", listOwnersHandler(svc, log))
		or.Post("/", createOwnerHandler(svc, log))

		or.Get("/{ownerID}", getOwnerHandler(svc, log))
		or.Put("/{ownerID}", updateOwnerHandler(svc, log))
		or.Delete("/{ownerID}", deleteOwnerHandler(svc, log))
		or.Get("/{ownerID}/pets", listOwnerPetsHandler(svc, log))
	})
}

type ownerRequest struct {
	FirstName string  `json:"first_name" validate:"required"`
	LastName  string  `json:"last_name" validate:"required"`
	Email     string  `json:"email" validate:"required"`
	Telephone *string `json:"telephone"`
	Address   *string `json:"address"`
	City      *string `json:"city"`
}

type ownerResponse struct {
	ID        int64     `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
	Telephone *string   `json:"telephone"`
	Address   *string   `json:"address"`
	City      *string   `json:"city"`
	CreatedAt time.Time `json:"created_at"`
}

type summaryResponse struct {
	ownerResponse
	Name      string `json:"name"`
	PetsCount int    `json:"pets_count"`
}

func toResponse(o Owner) ownerResponse {
	return ownerResponse{
		ID:        o.ID,
		FirstName: o.FirstName,
		LastName:  o.LastName,
		Email:     o.Email,
		Telephone: o.Telephone,
		Address:   o.Address,
		City:      o.City,
		CreatedAt: o.CreatedAt,
	}
}

// listOwnersHandler godoc
// @Summary Listar dueños
// @Description Dueños más recientes primero, con name y pets_count calculados.
// @Tags owners
// @Produce json
// @Success 200 {array} summaryResponse
// @Failure 500 {object} httpx.ErrorResponse
// @Router /owners [get]
func listOwnersHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context())
		if err != nil {
			httpx.WriteError(w, r, log, err, "Error fetching owners")
			return
		}

		out := make([]summaryResponse, 0, len(items))
		for _, it := range items {
			out = append(out, summaryResponse{
				ownerResponse: toResponse(it.Owner),
				Name:          it.Name(),
				PetsCount:     it.PetsCount,
			})
		}
		httpx.WriteJSON(w, http.StatusOK, out)
	}
}

// getOwnerHandler godoc
// @Summary Obtener dueño
// @Tags owners
// @Produce json
// @Param ownerID path int true "ID del dueño"
// @Success 200 {object} ownerResponse
// @Failure 404 {object} httpx.ErrorResponse "Owner not found"
// @Router /owners/{ownerID} [get]
func getOwnerHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// un id no numérico no puede existir: 404 como cualquier id desconocido
		id, ok := httpx.ParseID(chi.URLParam(r, "ownerID"))
		if !ok {
			httpx.WriteError(w, r, log, ErrNotFound, "")
			return
		}

		o, err := svc.GetByID(r.Context(), id)
		if err != nil {
			httpx.WriteError(w, r, log, err, "Error fetching owner")
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toResponse(o))
	}
}

// listOwnerPetsHandler godoc
// @Summary Mascotas de un dueño
// @Description Lista vacía si el dueño no tiene mascotas o no existe.
// @Tags owners
// @Produce json
// @Param ownerID path int true "ID del dueño"
// @Success 200 {array} pets.Response
// @Failure 500 {object} httpx.ErrorResponse
// @Router /owners/{ownerID}/pets [get]
func listOwnerPetsHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := httpx.ParseID(chi.URLParam(r, "ownerID"))
		if !ok {
			httpx.WriteJSON(w, http.StatusOK, []pets.Response{})
			return
		}

		items, err := svc.ListPets(r.Context(), id)
		if err != nil {
			httpx.WriteError(w, r, log, err, "Error fetching owner pets")
			return
		}

		out := make([]pets.Response, 0, len(items))
		for _, p := range items {
			out = append(out, pets.NewResponse(p))
		}
		httpx.WriteJSON(w, http.StatusOK, out)
	}
}

// createOwnerHandler godoc
// @Summary Crear dueño
// @Tags owners
// @Accept json
// @Produce json
// @Param payload body ownerRequest true "Dueño"
// @Success 201 {object} httpx.MessageResponse
// @Failure 400 {object} httpx.ErrorResponse "Required fields: first_name, last_name, email"
// @Failure 500 {object} httpx.ErrorResponse
// @Router /owners [post]
func createOwnerHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ownerRequest
		if err := httpx.Decode(r, &req, requiredFieldsMsg); err != nil {
			httpx.WriteError(w, r, log, err, "")
			return
		}

		id, err := svc.Create(r.Context(), req.input())
		if err != nil {
			httpx.WriteError(w, r, log, err, "Error creating owner")
			return
		}

		logger.FromContext(r.Context(), log).Info("owner created", logger.Fields{"owner_id": id})
		httpx.WriteJSON(w, http.StatusCreated, httpx.MessageResponse{ID: id, Message: "Owner created successfully"})
	}
}

// updateOwnerHandler godoc
// @Summary Actualizar dueño
// @Description Pisa todos los campos. Un id inexistente responde 200 sin escribir nada.
// @Tags owners
// @Accept json
// @Produce json
// @Param ownerID path int true "ID del dueño"
// @Param payload body ownerRequest true "Dueño"
// @Success 200 {object} httpx.MessageResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 500 {object} httpx.ErrorResponse
// @Router /owners/{ownerID} [put]
func updateOwnerHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ownerRequest
		if err := httpx.Decode(r, &req, requiredFieldsMsg); err != nil {
			httpx.WriteError(w, r, log, err, "")
			return
		}

		id, ok := httpx.ParseID(chi.URLParam(r, "ownerID"))
		if !ok {
			// nada que pisar
			httpx.WriteJSON(w, http.StatusOK, httpx.MessageResponse{Message: "Owner updated successfully"})
			return
		}

		if err := svc.Update(r.Context(), id, req.input()); err != nil {
			httpx.WriteError(w, r, log, err, "Error updating owner")
			return
		}
		httpx.WriteJSON(w, http.StatusOK, httpx.MessageResponse{Message: "Owner updated successfully"})
	}
}

// deleteOwnerHandler godoc
// @Summary Borrar dueño
// @Description Borra el dueño y todas sus mascotas en una transacción.
// @Tags owners
// @Produce json
// @Param ownerID path int true "ID del dueño"
// @Success 200 {object} httpx.MessageResponse
// @Failure 404 {object} httpx.ErrorResponse "Owner not found"
// @Failure 500 {object} httpx.ErrorResponse
// @Router /owners/{ownerID} [delete]
func deleteOwnerHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := httpx.ParseID(chi.URLParam(r, "ownerID"))
		if !ok {
			httpx.WriteError(w, r, log, ErrNotFound, "")
			return
		}

		if err := svc.Delete(r.Context(), id); err != nil {
			httpx.WriteError(w, r, log, err, "Error deleting owner")
			return
		}

		logger.FromContext(r.Context(), log).Info("owner deleted", logger.Fields{"owner_id": id})
		httpx.WriteJSON(w, http.StatusOK, httpx.MessageResponse{Message: "Owner and associated pets deleted successfully"})
	}
}

func (req ownerRequest) input() Input {
	return Input{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Telephone: req.Telephone,
		Address:   req.Address,
		City:      req.City,
	}
}
