package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"vet-clinic/internal/adapters/auth/jwtauth"
	"vet-clinic/internal/adapters/auth/remoteauth"
	"vet-clinic/internal/adapters/storage/sqlstore"
	"vet-clinic/internal/config"
	"vet-clinic/internal/platform/logger"
	"vet-clinic/internal/router"
)

// @title        Vet Clinic API
// @version      1.0
// @description  API REST de dueños, mascotas y vacunas de la clínica veterinaria.
// @BasePath     /api
// @securityDefinitions.apikey BearerAuth
// @in           header
// @name         Authorization
func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logger.New(logger.Options{}).Error("invalid configuration", logger.Fields{"err": err.Error()})
		os.Exit(1)
	}

	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.Log.Level),
		Format: logger.ParseFormat(cfg.Log.Format),
		App:    cfg.App.Name,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := router.Options{
		Log:            log,
		CORSOrigins:    cfg.CORS.AllowOrigins,
		PetPolicy:      cfg.Policies.Pets,
		UpdateMode:     cfg.Policies.UpdateMode,
		SwaggerEnabled: cfg.App.SwaggerEnabled,
	}

	if !cfg.Database.UsesMemoryStore() {
		store, err := sqlstore.Open(ctx, cfg.Database.Driver, cfg.Database.DSN)
		if err != nil {
			log.Error("database connection failed", logger.Fields{"driver": cfg.Database.Driver, "err": err.Error()})
			os.Exit(1)
		}
		defer store.Close()

		if cfg.Database.AutoMigrate {
			if err := store.Migrate(ctx); err != nil {
				log.Error("database migration failed", logger.Fields{"err": err.Error()})
				os.Exit(1)
			}
		}

		opts.Repos = router.Repos{
			Owners:       sqlstore.NewOwnersRepo(store),
			Pets:         sqlstore.NewPetsRepo(store),
			Vaccinations: sqlstore.NewVaccinationsRepo(store),
		}
		opts.Ping = store.Ping
		log.Info("database ready", logger.Fields{"driver": store.Driver()})
	}

	switch {
	case cfg.Auth.JWTSecret != "":
		opts.AuthVerifier = jwtauth.NewVerifier(cfg.Auth.JWTSecret)
	case cfg.Auth.VerifyURL != "":
		opts.AuthVerifier = remoteauth.NewVerifier(remoteauth.Config{
			VerifyURL: cfg.Auth.VerifyURL,
			APIKey:    cfg.Auth.APIKey,
		})
	default:
		log.Warn("no AUTH_JWT_SECRET or AUTH_VERIFY_URL, /api is not protected", nil)
	}

	srv := &http.Server{
		Addr:         cfg.HTTP.Addr(),
		Handler:      router.NewRouter(opts),
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", logger.Fields{"addr": srv.Addr})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			log.Error("server error", logger.Fields{"err": err.Error()})
			os.Exit(1)
		}
	case <-ctx.Done():
	}

	log.Info("shutting down", logger.Fields{"timeout": cfg.HTTP.ShutdownTimeout.String()})
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", logger.Fields{"err": err.Error()})
	}
}
