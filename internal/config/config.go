package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"vet-clinic/internal/domain/pets"
	"vet-clinic/internal/domain/vaccinations"
)

type (
	Config struct {
		App
		HTTP
		Database
		Log
		Auth
		CORS
		Policies
	}

	App struct {
		Name           string
		SwaggerEnabled bool
	}
	HTTP struct {
		Port            int
		ReadTimeout     time.Duration
		WriteTimeout    time.Duration
		ShutdownTimeout time.Duration
	}
	Database struct {
		Driver      string // pgx | sqlite3
		DSN         string // vacío = store en memoria
		AutoMigrate bool
	}
	Log struct {
		Level  string
		Format string
	}
	Auth struct {
		JWTSecret string // vacío = /api sin autenticación
		// VerifyURL se usa solo si JWTSecret está vacío: los tokens se validan contra el servicio de login.
		VerifyURL string
		APIKey    string
	}
	CORS struct {
		AllowOrigins []string
	}
	Policies struct {
		Pets       pets.Policy
		UpdateMode vaccinations.MergeMode
	}
)

func (h HTTP) Addr() string { return fmt.Sprintf(":%d", h.Port) }

// UsesMemoryStore es true cuando no hay DSN configurado.
func (d Database) UsesMemoryStore() bool { return strings.TrimSpace(d.DSN) == "" }

// Load lee la configuración del entorno. Un valor de política desconocido es error.
func Load() (*Config, error) {
	return load(viper.New())
}

func load(v *viper.Viper) (*Config, error) {
	v.AutomaticEnv()
	v.SetDefault("app_name", "vet-clinic")
	v.SetDefault("swagger_enabled", true)
	v.SetDefault("port", 8080)
	v.SetDefault("read_timeout", "5s")
	v.SetDefault("write_timeout", "10s")
	v.SetDefault("shutdown_timeout", "5s")
	v.SetDefault("db_driver", "pgx")
	v.SetDefault("db_dsn", "")
	v.SetDefault("db_auto_migrate", true)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "text")
	v.SetDefault("auth_jwt_secret", "")
	v.SetDefault("auth_verify_url", "")
	v.SetDefault("auth_api_key", "")
	v.SetDefault("cors_allow_origins", "*")

	// políticas de las preguntas abiertas
	v.SetDefault("pet_delete_missing", string(pets.DeleteMissingNotFound))
	v.SetDefault("orphan_pets", string(pets.OrphansHidden))
	v.SetDefault("update_mode", string(vaccinations.MergeReplace))

	petPolicy, err := pets.ParsePolicy(v.GetString("PET_DELETE_MISSING"), v.GetString("ORPHAN_PETS"))
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	mode, err := vaccinations.ParseMergeMode(v.GetString("UPDATE_MODE"))
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	driver := strings.ToLower(strings.TrimSpace(v.GetString("DB_DRIVER")))
	switch driver {
	case "postgres", "postgresql":
		driver = "pgx"
	case "sqlite":
		driver = "sqlite3"
	}

	return &Config{
		App: App{
			Name:           v.GetString("APP_NAME"),
			SwaggerEnabled: v.GetBool("SWAGGER_ENABLED"),
		},
		HTTP: HTTP{
			Port:            v.GetInt("PORT"),
			ReadTimeout:     v.GetDuration("READ_TIMEOUT"),
			WriteTimeout:    v.GetDuration("WRITE_TIMEOUT"),
			ShutdownTimeout: v.GetDuration("SHUTDOWN_TIMEOUT"),
		},
		Database: Database{
			Driver:      driver,
			DSN:         v.GetString("DB_DSN"),
			AutoMigrate: v.GetBool("DB_AUTO_MIGRATE"),
		},
		Log: Log{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
		},
		Auth: Auth{
			JWTSecret: v.GetString("AUTH_JWT_SECRET"),
			VerifyURL: v.GetString("AUTH_VERIFY_URL"),
			APIKey:    v.GetString("AUTH_API_KEY"),
		},
		CORS: CORS{
			AllowOrigins: splitCSV(v.GetString("CORS_ALLOW_ORIGINS")),
		},
		Policies: Policies{
			Pets:       petPolicy,
			UpdateMode: mode,
		},
	}, nil
}

func splitCSV(raw string) []string {
	out := make([]string, 0)
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
