package photos

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"cat-a-log/internal/domain/encounters"
	"cat-a-log/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, encountersSvc *encounters.Service) {
	// Subir/reemplazar foto de un avistamiento (body = bytes de la imagen).
	r.Post("/encounters/{encounterID}/photo", uploadPhotoHandler(svc, encountersSvc))

	r.Get("/photos/{photoID}", getPhotoHandler(svc))
}

type photoResponse struct {
	ID          string `json:"id"`
	ContentType string `json:"content_type"`
	Size        int    `json:"size"`
}

// uploadPhotoHandler godoc
// @Summary Subir foto de un avistamiento
// @Description Sube la foto (JPEG o PNG) de un avistamiento. Se reescala a un máximo de 1600px de lado largo y se reencodea a JPEG. Reemplaza la foto anterior si existía.
// @Tags photos
// @Accept octet-stream
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param encounterID path string true "ID del avistamiento"
// @Success 201 {object} photoResponse
// @Failure 400 {string} string "body vacío o no es una imagen decodificable"
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "encounter not found"
// @Router /encounters/{encounterID}/photo [post]
func uploadPhotoHandler(svc *Service, encountersSvc *encounters.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		encounterID := chi.URLParam(r, "encounterID")
		e, err := encountersSvc.GetByID(r.Context(), encounterID)
		if err != nil || e.OwnerUserID != claims.UserID {
			http.Error(w, "encounter not found", http.StatusNotFound)
			return
		}

		data, err := io.ReadAll(io.LimitReader(r.Body, MaxUploadBytes+1))
		if err != nil {
			http.Error(w, "read body", http.StatusBadRequest)
			return
		}
		if len(data) == 0 || len(data) > MaxUploadBytes {
			http.Error(w, "image required (max 15MB)", http.StatusBadRequest)
			return
		}

		p, err := svc.Store(r.Context(), claims.UserID, data)
		if err != nil {
			if errors.Is(err, ErrInvalidInput) {
				http.Error(w, "body must be a JPEG or PNG image", http.StatusBadRequest)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		// Reemplazo: la foto anterior deja de estar referenciada.
		old := e.PhotoID
		if _, err := encountersSvc.AttachPhoto(r.Context(), encounterID, claims.UserID, p.ID); err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		if old != "" {
			_ = svc.Delete(r.Context(), old, claims.UserID)
		}

		writeJSON(w, http.StatusCreated, photoResponse{
			ID:          p.ID,
			ContentType: p.ContentType,
			Size:        len(p.Data),
		})
	}
}

func getPhotoHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		p, err := svc.GetByID(r.Context(), chi.URLParam(r, "photoID"))
		if err != nil || p.OwnerUserID != claims.UserID {
			http.Error(w, "photo not found", http.StatusNotFound)
			return
		}

		w.Header().Set("Content-Type", p.ContentType)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(p.Data)
	}
}

// writeJSON está duplicado intencionalmente por módulo (ver encounters/handler.go).
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
