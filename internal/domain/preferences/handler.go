package preferences

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"cat-a-log/internal/middleware"

	"github.com/go-chi/chi/v5"
)

const maxPreferencesBytes = 64 << 10 // 64KB es de sobra para settings de UI

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Get("/preferences", getPreferencesHandler(svc))
	r.Put("/preferences", putPreferencesHandler(svc))
}

func getPreferencesHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		p, err := svc.Get(r.Context(), claims.UserID)
		if err != nil {
			if errors.Is(err, ErrNotFound) || strings.Contains(strings.ToLower(err.Error()), "not found") {
				// Sin preferencias guardadas => objeto vacío, no 404.
				writeRaw(w, http.StatusOK, json.RawMessage(`{}`))
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeRaw(w, http.StatusOK, p.Data)
	}
}

func putPreferencesHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		data, err := io.ReadAll(io.LimitReader(r.Body, maxPreferencesBytes+1))
		if err != nil || len(data) == 0 || len(data) > maxPreferencesBytes {
			http.Error(w, "body must be JSON (max 64KB)", http.StatusBadRequest)
			return
		}

		p, err := svc.Put(r.Context(), claims.UserID, data)
		if err != nil {
			http.Error(w, "body must be valid JSON", http.StatusBadRequest)
			return
		}

		writeRaw(w, http.StatusOK, p.Data)
	}
}

func writeRaw(w http.ResponseWriter, status int, data json.RawMessage) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}
