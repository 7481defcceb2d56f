package router

import (
	"database/sql"
	"net/http"
	"os"
	"time"

	mem "cat-a-log/internal/adapters/storage/memory"
	pg "cat-a-log/internal/adapters/storage/postgres"
	"cat-a-log/internal/domain/backup"
	"cat-a-log/internal/domain/encounters"
	"cat-a-log/internal/domain/photos"
	"cat-a-log/internal/domain/preferences"
	"cat-a-log/internal/middleware"
	"cat-a-log/internal/platform/logger"
	"cat-a-log/internal/ports/auth"
	"cat-a-log/internal/ports/geocode"

	_ "cat-a-log/docs" // registro del spec swagger generado

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	AuthVerifier auth.AuthVerifier // puede ser nil (modo dev: X-Debug-User-ID)

	// Opcional: si viene, usa Postgres. Si no, intenta DB_DSN y cae a in-memory.
	DB *sql.DB

	// Opcional: reverse geocoding para completar location_name.
	Geocoder geocode.Resolver

	// Opcional: logger; nil => NewFromEnv.
	Log logger.Logger
}

func NewRouter(opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(60 * time.Second))

	r.Use(middleware.AuthContext(opts.AuthVerifier))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	log := opts.Log
	if log == nil {
		log = logger.NewFromEnv()
	}

	var (
		encounterRepo   encounters.Repository
		photoRepo       photos.Repository
		preferencesRepo preferences.Repository
	)

	// Si no te pasan DB explícita, intenta por env (para dev/handoff)
	db := opts.DB
	if db == nil {
		if dsn := os.Getenv("DB_DSN"); dsn != "" {
			opened, err := pg.Open(dsn)
			if err == nil {
				db = opened
			} else {
				log.Warn("postgres unavailable, falling back to in-memory", map[string]any{
					"error": err.Error(),
				})
			}
		}
	}

	if db != nil {
		encounterRepo = pg.NewEncountersRepo(db)
		photoRepo = pg.NewPhotosRepo(db)
		preferencesRepo = pg.NewPreferencesRepo(db)
	} else {
		encounterRepo = mem.NewEncounterRepo()
		photoRepo = mem.NewPhotoRepo()
		preferencesRepo = mem.NewPreferencesRepo()
	}

	// Services por módulo
	var encountersSvc *encounters.Service
	if opts.Geocoder != nil {
		encountersSvc = encounters.NewServiceWithGeocoder(encounterRepo, opts.Geocoder)
	} else {
		encountersSvc = encounters.NewService(encounterRepo)
	}
	photosSvc := photos.NewService(photoRepo)
	preferencesSvc := preferences.NewService(preferencesRepo)
	backupSvc := backup.NewService(encountersSvc, photosSvc, preferencesSvc, log)

	// Rutas por módulo
	encounters.RegisterRoutes(r, encountersSvc)
	photos.RegisterRoutes(r, photosSvc, encountersSvc)
	preferences.RegisterRoutes(r, preferencesSvc)
	backup.RegisterRoutes(r, backupSvc)

	return r
}
