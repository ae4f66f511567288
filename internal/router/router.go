package router

import (
	"context"
	"net/http"
	"time"

	mem "vet-clinic/internal/adapters/storage/memory"
	"vet-clinic/internal/domain/owners"
	"vet-clinic/internal/domain/pets"
	"vet-clinic/internal/domain/vaccinations"
	"vet-clinic/internal/middleware"
	"vet-clinic/internal/platform/httpx"
	"vet-clinic/internal/platform/logger"
	"vet-clinic/internal/ports/auth"

	_ "vet-clinic/docs"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

// Repos agrupa los repositorios de cada módulo. Si Owners es nil se usa un
// store en memoria para los tres.
type Repos struct {
	Owners       owners.Repository
	Pets         pets.Repository
	Vaccinations vaccinations.Repository
}

type Options struct {
	Repos Repos
	Log   logger.Logger

	AuthVerifier auth.AuthVerifier // puede ser nil (sin auth)
	CORSOrigins  []string

	PetPolicy  pets.Policy
	UpdateMode vaccinations.MergeMode

	SwaggerEnabled bool

	// Ping lo usa /health para chequear la base. Puede ser nil.
	Ping func(ctx context.Context) error
}

func NewRouter(opts Options) http.Handler {
	log := opts.Log
	if log == nil {
		log = logger.Nop()
	}

	repos := opts.Repos
	if repos.Owners == nil || repos.Pets == nil || repos.Vaccinations == nil {
		store := mem.NewStore()
		repos = Repos{Owners: store.Owners(), Pets: store.Pets(), Vaccinations: store.Vaccinations()}
		log.Info("using in-memory store", nil)
	}

	policy := opts.PetPolicy
	if policy == (pets.Policy{}) {
		policy = pets.DefaultPolicy()
	}
	mode := opts.UpdateMode
	if mode == "" {
		mode = vaccinations.MergeReplace
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.Recover(log))
	r.Use(middleware.CORS(opts.CORSOrigins))

	r.Get("/health", healthHandler(opts.Ping))

	if opts.SwaggerEnabled {
		r.Get("/swagger/*", httpSwagger.WrapHandler)
	}

	// Services por módulo
	ownersSvc := owners.NewService(repos.Owners)
	petsSvc := pets.NewService(repos.Pets, policy)
	vaccSvc := vaccinations.NewService(repos.Vaccinations, mode)

	r.Route("/api", func(api chi.Router) {
		api.Use(middleware.AuthContext(opts.AuthVerifier, log))
		if opts.AuthVerifier != nil {
			api.Use(middleware.RequireAuth)
		}

		owners.RegisterRoutes(api, ownersSvc, log)
		pets.RegisterRoutes(api, petsSvc, log)
		vaccinations.RegisterRoutes(api, vaccSvc, log)
	})

	return r
}

type healthResponse struct {
	Status string `json:"status"`
}

func healthHandler(ping func(ctx context.Context) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if ping != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := ping(ctx); err != nil {
				logger.FromContext(r.Context(), logger.Nop()).Warn("health: database ping failed", logger.Fields{"err": err.Error()})
				httpx.WriteJSON(w, http.StatusServiceUnavailable, healthResponse{Status: "unavailable"})
				return
			}
		}
		httpx.WriteJSON(w, http.StatusOK, healthResponse{Status: "ok"})
	}
}
