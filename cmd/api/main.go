package main

import (
	"net/http"
	"os"
	"time"

	"cat-a-log/internal/adapters/auth/tokenapi"
	"cat-a-log/internal/adapters/geocode/nominatim"
	"cat-a-log/internal/platform/logger"
	"cat-a-log/internal/ports/auth"
	"cat-a-log/internal/ports/geocode"
	"cat-a-log/internal/router"
)

// @title cat-a-log API
// @version 1.0
// @description Registro de avistamientos de gatos en campo: encuentros estructurados, fotos y export/import con merge.
func main() {
	log := logger.NewFromEnv()

	addr := ":8080"
	if v := os.Getenv("PORT"); v != "" {
		addr = ":" + v
	}

	// Verifier externo solo si está configurado; si no, modo dev (X-Debug-User-ID).
	var verifier auth.AuthVerifier
	if base := os.Getenv("AUTH_API_URL"); base != "" {
		client, err := tokenapi.NewClient(tokenapi.Config{
			BaseURL: base,
			APIKey:  os.Getenv("AUTH_API_KEY"),
		})
		if err != nil {
			log.Error("invalid AUTH_API_URL", map[string]any{"error": err.Error()})
			os.Exit(1)
		}
		verifier = tokenapi.NewVerifier(client)
	}

	var geocoder geocode.Resolver
	if base := os.Getenv("GEOCODE_API_URL"); base != "" {
		client, err := nominatim.NewClient(nominatim.Config{
			BaseURL:   base,
			UserAgent: os.Getenv("GEOCODE_USER_AGENT"),
		})
		if err != nil {
			log.Error("invalid GEOCODE_API_URL", map[string]any{"error": err.Error()})
			os.Exit(1)
		}
		geocoder = client
	}

	r := router.NewRouter(router.Options{
		AuthVerifier: verifier,
		Geocoder:     geocoder,
		Log:          log,
	})

	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second, // exports con fotos embebidas pueden ser grandes
	}

	log.Info("starting server", map[string]any{"addr": addr})
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
}
